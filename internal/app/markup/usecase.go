package markup

import (
	"context"
	"errors"
	"log"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/reconcile"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid markup request")

type Request struct {
	DryRun     bool
	Strategy   economy.Strategy
	BuildingID string
}

// UseCase runs one markup-buy pass: standing buy offers above the reference
// price for the inputs a building is short of, so local sellers have a
// premium outlet before imports arrive.
type UseCase struct {
	Buildings  ports.BuildingRepository
	Contracts  ports.ContractRepository
	Catalog    ports.CatalogProvider
	Reconciler reconcile.Reconciler
	Notifier   ports.Notifier
	Metrics    ports.PassMetrics
	Policy     economy.PolicyConfig
}

func (u UseCase) Execute(ctx context.Context, req Request) (report.Summary, error) {
	if req.Strategy == "" {
		req.Strategy = economy.StrategyStandard
	}
	if !req.Strategy.Valid() {
		return report.Summary{}, ErrInvalidRequest
	}

	resources, err := u.Catalog.ResourceTypes(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	buildingTypes, err := u.Catalog.BuildingTypes(ctx)
	if err != nil {
		return report.Summary{}, err
	}

	buildings, err := u.Buildings.List(ctx, ports.BuildingFilter{
		ID:       req.BuildingID,
		Category: economy.CategoryBusiness,
	})
	if err != nil {
		return report.Summary{}, err
	}

	rec := u.Reconciler
	rec.DryRun = req.DryRun

	var s report.Summary
	for _, b := range buildings {
		if b.Operator == "" {
			continue
		}
		def, ok := buildingTypes[b.Type]
		if !ok {
			continue
		}

		for _, recipe := range def.Recipes {
			for resource := range recipe.Inputs {
				s.Processed++

				ref := resources[resource]
				if ref.ReferencePrice <= 0 {
					log.Printf("warn: resource %s has no reference price, skipping markup offer", resource)
					s.Skipped++
					continue
				}

				current := 0.0
				id := economy.BuildContractID(economy.KindMarkupBuy, b.Operator, b.ID, resource)
				if existing, err := u.Contracts.GetByID(ctx, id); err == nil && existing.Status == economy.StatusActive {
					current = existing.PricePerUnit
				}

				price := u.Policy.MarkupBuyPrice(ref.ReferencePrice, current, req.Strategy)
				if price <= 0 {
					s.Skipped++
					continue
				}

				res, err := rec.Reconcile(ctx, reconcile.Target{
					Kind:            economy.KindMarkupBuy,
					Buyer:           b.Operator,
					BuyerBuilding:   b.ID,
					ResourceType:    resource,
					PricePerUnit:    price,
					DesiredStock:    u.Policy.DesiredStock,
					ActivityKind:    ports.ActivityManageMarkupBuyContract,
					ActivityCitizen: b.Operator,
				})
				if err != nil {
					log.Printf("warn: markup reconcile for %s/%s failed: %v", b.ID, resource, err)
					s.Fail(b.ID+"/"+resource, err)
					continue
				}
				s.Count(string(res.Outcome))
			}
		}
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("markup", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "markup", s)
	}
	log.Printf("markup pass done: %s (dry_run=%v strategy=%s)", s.String(), req.DryRun, req.Strategy)
	return s, nil
}
