package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeNoAction Outcome = "no_action"
)

var ErrInvalidTarget = errors.New("invalid reconcile target")

// Target is one desired contract state. The reconciler converges the store
// on it: exactly one active contract per key, created if missing, updated in
// place otherwise.
type Target struct {
	Kind           economy.ContractKind
	Buyer          string
	Seller         string
	BuyerBuilding  string
	SellerBuilding string
	ResourceType   string
	PricePerUnit   float64

	// Amount sizes the contract directly. For fetch-oriented kinds set
	// DesiredStock instead and the reconciler sizes the gap from current
	// stock.
	Amount       float64
	DesiredStock float64

	EndAt    time.Time
	Metadata economy.Metadata

	// ActivityKind, when set, requests execution through the activity API
	// after a successful create/update, on behalf of ActivityCitizen.
	ActivityKind    string
	ActivityCitizen string
}

func (t Target) keyParty() string {
	if t.Kind == economy.KindPublicSell {
		return t.Seller
	}
	return t.Buyer
}

func (t Target) keyBuilding() string {
	if t.Kind == economy.KindPublicSell {
		return t.SellerBuilding
	}
	// Exclusive supply locks key on the supplier's building: one contract per
	// production site, regardless of where the buyer stores the goods.
	if t.BuyerBuilding == "" {
		return t.SellerBuilding
	}
	return t.BuyerBuilding
}

func (t Target) fetchOriented() bool {
	switch t.Kind {
	case economy.KindImport, economy.KindImportExclusive, economy.KindMarkupBuy:
		return true
	}
	return false
}

type Result struct {
	Outcome    Outcome
	ContractID string
	Price      float64
	Amount     float64
}

// Reconciler converts a candidate value into an idempotent create-or-update
// of the corresponding contract record. It never mutates resource stock; side
// effects go through the activity API.
type Reconciler struct {
	Contracts ports.ContractRepository
	Stocks    ports.StockRepository
	Activity  ports.ActivityAPI
	Jitter    Jitter

	// MinFetchAmount is the smallest stock gap worth a contract; below it
	// the reconciler reports no action needed rather than an error.
	MinFetchAmount float64

	DryRun bool
	Now    func() time.Time
}

func (r Reconciler) Reconcile(ctx context.Context, t Target) (Result, error) {
	if t.ResourceType == "" && t.Kind != economy.KindConstructionProject {
		return Result{}, fmt.Errorf("%w: missing resource type", ErrInvalidTarget)
	}
	if t.keyParty() == "" || t.keyBuilding() == "" {
		return Result{}, fmt.Errorf("%w: missing key party or building for kind %s", ErrInvalidTarget, t.Kind)
	}
	if err := t.Metadata.Validate(t.Kind); err != nil {
		return Result{}, err
	}

	id := economy.BuildContractID(t.Kind, t.keyParty(), t.keyBuilding(), t.ResourceType)

	amount := t.Amount
	if t.fetchOriented() && t.DesiredStock > 0 {
		stock, err := r.Stocks.Get(ctx, t.ResourceType, t.BuyerBuilding, t.Buyer)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return Result{}, fmt.Errorf("read stock for %s: %w", id, err)
		}
		gap := t.DesiredStock - stock.Quantity
		if gap < r.MinFetchAmount {
			return Result{Outcome: OutcomeNoAction, ContractID: id}, nil
		}
		amount = gap
	}

	now := r.now()
	existing, err := r.Contracts.GetByID(ctx, id)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return r.create(ctx, t, id, amount, now, false)
	case err != nil:
		return Result{}, fmt.Errorf("lookup contract %s: %w", id, err)
	case existing.Status == economy.StatusSuspended:
		// Suspended offers belong to an exclusivity lock; only the stratagem
		// that suspended them may reactivate them.
		return Result{Outcome: OutcomeNoAction, ContractID: id}, nil
	case existing.Status != economy.StatusActive:
		// A terminal record under the same key is refreshed in place so the
		// at-most-one-active invariant holds structurally.
		return r.create(ctx, t, id, amount, now, true)
	}

	if !r.Jitter.ShouldUpdate(id) {
		return Result{Outcome: OutcomeSkipped, ContractID: id}, nil
	}

	updated := existing
	updated.PricePerUnit = t.PricePerUnit
	updated.TargetAmount = amount
	if !t.EndAt.IsZero() {
		updated.EndAt = t.EndAt
	}
	if !t.Metadata.IsZero() {
		updated.Metadata = t.Metadata
	}

	if r.DryRun {
		log.Printf("dry-run: would update contract %s price=%.2f amount=%.2f", id, updated.PricePerUnit, updated.TargetAmount)
		return Result{Outcome: OutcomeUpdated, ContractID: id, Price: updated.PricePerUnit, Amount: updated.TargetAmount}, nil
	}
	if err := r.Contracts.Update(ctx, updated); err != nil {
		return Result{}, fmt.Errorf("update contract %s: %w", id, err)
	}
	if err := r.requestExecution(ctx, t, updated); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeUpdated, ContractID: id, Price: updated.PricePerUnit, Amount: updated.TargetAmount}, nil
}

func (r Reconciler) create(ctx context.Context, t Target, id string, amount float64, now time.Time, refresh bool) (Result, error) {
	contract := economy.Contract{
		ID:             id,
		Kind:           t.Kind,
		Buyer:          t.Buyer,
		Seller:         t.Seller,
		SellerBuilding: t.SellerBuilding,
		BuyerBuilding:  t.BuyerBuilding,
		ResourceType:   t.ResourceType,
		PricePerUnit:   t.PricePerUnit,
		TargetAmount:   amount,
		Status:         economy.StatusActive,
		CreatedAt:      now,
		EndAt:          t.EndAt,
		Metadata:       t.Metadata,
	}

	if r.DryRun {
		log.Printf("dry-run: would create contract %s price=%.2f amount=%.2f", id, contract.PricePerUnit, contract.TargetAmount)
		return Result{Outcome: OutcomeCreated, ContractID: id, Price: contract.PricePerUnit, Amount: contract.TargetAmount}, nil
	}

	var err error
	if refresh {
		err = r.Contracts.Update(ctx, contract)
	} else {
		err = r.Contracts.Create(ctx, contract)
		if errors.Is(err, ports.ErrConflict) {
			// A concurrent run created the same id first; converge on it.
			err = r.Contracts.Update(ctx, contract)
		}
	}
	if err != nil {
		return Result{}, fmt.Errorf("write contract %s: %w", id, err)
	}
	if err := r.requestExecution(ctx, t, contract); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeCreated, ContractID: id, Price: contract.PricePerUnit, Amount: contract.TargetAmount}, nil
}

func (r Reconciler) requestExecution(ctx context.Context, t Target, c economy.Contract) error {
	if t.ActivityKind == "" || r.Activity == nil {
		return nil
	}
	ack, err := r.Activity.Submit(ctx, t.ActivityCitizen, t.ActivityKind, map[string]any{
		"contract_id":    c.ID,
		"resource_type":  c.ResourceType,
		"price_per_unit": c.PricePerUnit,
		"target_amount":  c.TargetAmount,
	})
	if err != nil {
		return fmt.Errorf("submit %s for %s: %w", t.ActivityKind, c.ID, err)
	}
	if !ack.Accepted {
		log.Printf("warn: activity %s for %s not accepted", t.ActivityKind, c.ID)
	}
	return nil
}

func (r Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
