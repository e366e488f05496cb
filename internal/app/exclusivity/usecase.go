package exclusivity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/reconcile"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid stratagem request")

const defaultDurationDays = 7

// UseCase drives exclusivity lockout stratagems through their lifecycle:
// proposed -> active -> maintained -> expired (or failed). Activation locks a
// buyer's access to a supplier with premium import_exclusive contracts and
// suspends the supplier's competing public offers; expiry reverses exactly
// what this instance suspended.
type UseCase struct {
	Tx            ports.TxManager
	Stratagems    ports.StratagemRepository
	Contracts     ports.ContractRepository
	Buildings     ports.BuildingRepository
	Relationships ports.RelationshipRepository
	Catalog       ports.CatalogProvider
	Notifier      ports.Notifier
	Reconciler    reconcile.Reconciler
	Metrics       ports.PassMetrics
	Policy        economy.PolicyConfig
	Now           func() time.Time
	NewID         func() string
}

// Submit validates and persists a new proposed stratagem. Nothing moves
// until the next exclusivity pass picks it up.
func (u UseCase) Submit(ctx context.Context, req SubmitRequest) (economy.Stratagem, error) {
	req.Initiator = strings.TrimSpace(req.Initiator)
	req.Supplier = strings.TrimSpace(req.Supplier)
	req.ResourceType = strings.TrimSpace(req.ResourceType)
	if req.Initiator == "" || req.Supplier == "" || req.ResourceType == "" {
		return economy.Stratagem{}, fmt.Errorf("%w: initiator, supplier and resource type are required", ErrInvalidRequest)
	}
	if req.Initiator == req.Supplier {
		return economy.Stratagem{}, fmt.Errorf("%w: cannot lock out yourself", ErrInvalidRequest)
	}
	if req.PremiumPct <= 0 {
		req.PremiumPct = u.Policy.DefaultPremiumPct
	}
	if req.DurationDays <= 0 {
		req.DurationDays = defaultDurationDays
	}

	s := economy.Stratagem{
		ID:           u.newID(),
		Kind:         economy.StratagemExclusivityLockout,
		Initiator:    req.Initiator,
		Supplier:     req.Supplier,
		ResourceType: req.ResourceType,
		PremiumPct:   req.PremiumPct,
		DurationDays: req.DurationDays,
		Status:       economy.StratagemProposed,
		CreatedAt:    u.now(),
		Notes:        req.Notes,
	}
	if err := u.Stratagems.Create(ctx, s); err != nil {
		return economy.Stratagem{}, err
	}
	return s, nil
}

// Advance moves every open stratagem one step through its state machine.
// Validation failures mark the single stratagem failed; external call
// failures skip it until the next scheduled pass.
func (u UseCase) Advance(ctx context.Context, req Request) (report.Summary, error) {
	if req.Strategy == "" {
		req.Strategy = economy.StrategyStandard
	}
	open, err := u.Stratagems.ListOpen(ctx)
	if err != nil {
		return report.Summary{}, err
	}

	rec := u.Reconciler
	rec.DryRun = req.DryRun

	var s report.Summary
	for _, st := range open {
		s.Processed++
		// each stratagem steps inside one transaction so a failed activation
		// leaves no half-suspended market behind
		stepErr := u.inTx(ctx, func(ctx context.Context) error {
			switch st.Status {
			case economy.StratagemProposed:
				return u.activate(ctx, &st, rec, req)
			case economy.StratagemActive, economy.StratagemMaintained:
				return u.maintain(ctx, &st, req)
			}
			return nil
		})
		if stepErr != nil {
			log.Printf("warn: stratagem %s: %v", st.ID, stepErr)
			s.Fail(st.ID, stepErr)
			continue
		}
		switch st.Status {
		case economy.StratagemActive:
			s.Created++
		case economy.StratagemExpired:
			s.Updated++
		case economy.StratagemFailed:
			s.Fail(st.ID, errors.New(st.Notes))
		default:
			s.NoAction++
		}
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("exclusivity", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "exclusivity", s)
	}
	log.Printf("exclusivity pass done: %s (dry_run=%v)", s.String(), req.DryRun)
	return s, nil
}

func (u UseCase) activate(ctx context.Context, st *economy.Stratagem, rec reconcile.Reconciler, req Request) error {
	if st.Initiator == "" || st.Supplier == "" || st.ResourceType == "" {
		st.Status = economy.StratagemFailed
		st.Notes = "missing required fields"
		return u.saveStratagem(ctx, *st, req.DryRun)
	}

	buildingTypes, err := u.Catalog.BuildingTypes(ctx)
	if err != nil {
		return err
	}
	supplierBuildings, err := u.Buildings.List(ctx, ports.BuildingFilter{
		Operator: st.Supplier,
		Category: economy.CategoryBusiness,
	})
	if err != nil {
		return err
	}
	qualifying := []economy.Building{}
	for _, b := range supplierBuildings {
		if produces(buildingTypes[b.Type], st.ResourceType) {
			qualifying = append(qualifying, b)
		}
	}
	if len(qualifying) == 0 {
		log.Printf("warn: stratagem %s: supplier %s has no production capability for %s", st.ID, st.Supplier, st.ResourceType)
		st.Status = economy.StratagemFailed
		st.Notes = "supplier has no production capability for " + st.ResourceType
		return u.saveStratagem(ctx, *st, req.DryRun)
	}

	market, err := u.marketPrice(ctx, st.ResourceType)
	if err != nil {
		return err
	}
	if market <= 0 {
		st.Status = economy.StratagemFailed
		st.Notes = "no market or reference price for " + st.ResourceType
		return u.saveStratagem(ctx, *st, req.DryRun)
	}
	premium := market * (1 + st.PremiumPct)
	endAt := u.now().AddDate(0, 0, st.DurationDays)

	for _, b := range qualifying {
		_, err := rec.Reconcile(ctx, reconcile.Target{
			Kind:           economy.KindImportExclusive,
			Buyer:          st.Initiator,
			Seller:         st.Supplier,
			SellerBuilding: b.ID,
			ResourceType:   st.ResourceType,
			PricePerUnit:   premium,
			Amount:         u.Policy.DesiredStock,
			EndAt:          endAt,
			Metadata: economy.Metadata{
				Exclusive: &economy.ExclusiveTerms{PremiumPct: st.PremiumPct, StratagemID: st.ID},
			},
			ActivityKind:    ports.ActivityManageImportContract,
			ActivityCitizen: st.Initiator,
		})
		if err != nil {
			return fmt.Errorf("exclusive contract for building %s: %w", b.ID, err)
		}
	}

	suspended, err := u.suspendPublicOffers(ctx, *st, req.DryRun)
	if err != nil {
		return err
	}
	st.Suspended = suspended
	st.ExpiresAt = endAt
	st.Status = economy.StratagemActive

	if !req.DryRun {
		if err := u.bumpTrust(ctx, st.Initiator, st.Supplier); err != nil {
			log.Printf("warn: trust adjustment for stratagem %s failed: %v", st.ID, err)
		}
		u.notify(ctx, st.Initiator, "Your exclusivity arrangement is now in force.", st)
		u.notify(ctx, st.Supplier, "You have entered an exclusive supply arrangement.", st)
	} else {
		log.Printf("dry-run: would activate stratagem %s (%d exclusive contracts, %d suspensions)", st.ID, len(qualifying), suspended)
	}
	return u.saveStratagem(ctx, *st, req.DryRun)
}

func (u UseCase) maintain(ctx context.Context, st *economy.Stratagem, req Request) error {
	exclusives, err := u.Contracts.List(ctx, ports.ContractFilter{
		Buyer:        st.Initiator,
		Kind:         economy.KindImportExclusive,
		ResourceType: st.ResourceType,
	})
	if err != nil {
		return err
	}

	now := u.now()
	activeCount, total := 0, 0
	for _, c := range exclusives {
		if c.Metadata.Exclusive == nil || c.Metadata.Exclusive.StratagemID != st.ID {
			continue
		}
		total++
		if c.Status == economy.StatusActive && !c.EndAt.IsZero() && !c.EndAt.After(now) {
			c.Status = economy.StatusExpired
			if !req.DryRun {
				if err := u.Contracts.Update(ctx, c); err != nil {
					return fmt.Errorf("expire contract %s: %w", c.ID, err)
				}
			}
		}
		if c.Status == economy.StatusActive {
			activeCount++
		}
	}

	if total == 0 || activeCount > 0 {
		st.Status = economy.StratagemMaintained
		return u.saveStratagem(ctx, *st, req.DryRun)
	}

	// every exclusive contract has run out: undo the suspensions this
	// instance made and close the stratagem
	if err := u.reactivateSuspended(ctx, *st, req.DryRun); err != nil {
		return err
	}
	st.Status = economy.StratagemExpired
	if !req.DryRun {
		u.notify(ctx, st.Initiator, "Your exclusivity arrangement has ended.", st)
		u.notify(ctx, st.Supplier, "Your exclusive supply arrangement has ended; public offers are restored.", st)
	}
	return u.saveStratagem(ctx, *st, req.DryRun)
}

func (u UseCase) suspendPublicOffers(ctx context.Context, st economy.Stratagem, dryRun bool) (int, error) {
	offers, err := u.Contracts.List(ctx, ports.ContractFilter{
		Seller:       st.Supplier,
		Kind:         economy.KindPublicSell,
		Status:       economy.StatusActive,
		ResourceType: st.ResourceType,
	})
	if err != nil {
		return 0, err
	}
	for _, c := range offers {
		c.Status = economy.StatusSuspended
		c.Metadata = economy.Metadata{Suspension: &economy.SuspensionRef{StratagemID: st.ID}}
		if dryRun {
			log.Printf("dry-run: would suspend public offer %s", c.ID)
			continue
		}
		if err := u.Contracts.Update(ctx, c); err != nil {
			return 0, fmt.Errorf("suspend offer %s: %w", c.ID, err)
		}
	}
	return len(offers), nil
}

func (u UseCase) reactivateSuspended(ctx context.Context, st economy.Stratagem, dryRun bool) error {
	suspended, err := u.Contracts.List(ctx, ports.ContractFilter{
		Seller: st.Supplier,
		Kind:   economy.KindPublicSell,
		Status: economy.StatusSuspended,
	})
	if err != nil {
		return err
	}
	for _, c := range suspended {
		// match on the back-reference, not the resource type: another
		// stratagem's suspensions must stay untouched
		if c.Metadata.Suspension == nil || c.Metadata.Suspension.StratagemID != st.ID {
			continue
		}
		c.Status = economy.StatusActive
		c.Metadata = economy.Metadata{}
		if dryRun {
			log.Printf("dry-run: would reactivate public offer %s", c.ID)
			continue
		}
		if err := u.Contracts.Update(ctx, c); err != nil {
			return fmt.Errorf("reactivate offer %s: %w", c.ID, err)
		}
	}
	return nil
}

func (u UseCase) marketPrice(ctx context.Context, resource string) (float64, error) {
	offers, err := u.Contracts.List(ctx, ports.ContractFilter{
		Kind:         economy.KindPublicSell,
		Status:       economy.StatusActive,
		ResourceType: resource,
	})
	if err != nil {
		return 0, err
	}
	prices := make([]float64, 0, len(offers))
	for _, c := range offers {
		prices = append(prices, c.PricePerUnit)
	}
	_, global := economy.Comparables{Global: prices}.Medians(0)
	if global > 0 {
		return global, nil
	}
	resources, err := u.Catalog.ResourceTypes(ctx)
	if err != nil {
		return 0, err
	}
	return resources[resource].ReferencePrice, nil
}

func (u UseCase) bumpTrust(ctx context.Context, a, b string) error {
	rel, err := u.Relationships.Get(ctx, a, b)
	if errors.Is(err, ports.ErrNotFound) {
		rel = economy.Relationship{CitizenA: a, CitizenB: b, TrustScore: 50}
	} else if err != nil {
		return err
	}
	rel.TrustScore += u.Policy.TrustBump
	if rel.TrustScore > 100 {
		rel.TrustScore = 100
	}
	if rel.TrustScore < 0 {
		rel.TrustScore = 0
	}
	rel.LastInteraction = u.now()
	return u.Relationships.Upsert(ctx, rel)
}

func (u UseCase) notify(ctx context.Context, citizen, message string, st *economy.Stratagem) {
	if u.Notifier == nil {
		return
	}
	details := map[string]any{
		"stratagem_id":  st.ID,
		"resource_type": st.ResourceType,
		"supplier":      st.Supplier,
		"initiator":     st.Initiator,
	}
	if err := u.Notifier.Notify(ctx, citizen, message, details); err != nil {
		log.Printf("warn: notification to %s failed: %v", citizen, err)
	}
}

func (u UseCase) saveStratagem(ctx context.Context, st economy.Stratagem, dryRun bool) error {
	if dryRun {
		log.Printf("dry-run: stratagem %s would become %s", st.ID, st.Status)
		return nil
	}
	return u.Stratagems.Update(ctx, st)
}

func produces(def economy.BuildingDef, resource string) bool {
	for _, recipe := range def.Recipes {
		if recipe.Outputs[resource] > 0 {
			return true
		}
	}
	return false
}

func (u UseCase) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.Tx == nil {
		return fn(ctx)
	}
	return u.Tx.RunInTx(ctx, fn)
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}
