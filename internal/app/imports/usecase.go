package imports

import (
	"context"
	"errors"
	"log"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/reconcile"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid imports request")

type Request struct {
	DryRun     bool
	Strategy   economy.Strategy
	BuildingID string
}

// UseCase runs one import pass: for every recipe input a producer building
// consumes, keep an import contract sized to the gap between desired and
// current stock, priced at the going market rate.
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

	offers, err := u.Contracts.List(ctx, ports.ContractFilter{
		Kind:   economy.KindPublicSell,
		Status: economy.StatusActive,
	})
	if err != nil {
		return report.Summary{}, err
	}
	marketByResource := map[string][]float64{}
	for _, c := range offers {
		if c.PricePerUnit > 0 {
			marketByResource[c.ResourceType] = append(marketByResource[c.ResourceType], c.PricePerUnit)
		}
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

		for _, resource := range consumedResources(def) {
			s.Processed++

			ref := resources[resource]
			market := economy.Comparables{Global: marketByResource[resource]}
			_, globalMedian := market.Medians(0)

			current := 0.0
			id := economy.BuildContractID(economy.KindImport, b.Operator, b.ID, resource)
			if existing, err := u.Contracts.GetByID(ctx, id); err == nil && existing.Status == economy.StatusActive {
				current = existing.PricePerUnit
			}

			price := u.Policy.NewImportPrice(economy.ImportPriceInputs{
				Current:        current,
				MarketPrice:    globalMedian,
				ReferencePrice: ref.ReferencePrice,
				Strategy:       req.Strategy,
			})
			if price <= 0 {
				log.Printf("warn: no import price for %s, skipping", resource)
				s.Skipped++
				continue
			}

			res, err := rec.Reconcile(ctx, reconcile.Target{
				Kind:            economy.KindImport,
				Buyer:           b.Operator,
				BuyerBuilding:   b.ID,
				ResourceType:    resource,
				PricePerUnit:    price,
				DesiredStock:    u.Policy.DesiredStock,
				ActivityKind:    ports.ActivityManageImportContract,
				ActivityCitizen: b.Operator,
			})
			if err != nil {
				log.Printf("warn: import reconcile for %s/%s failed: %v", b.ID, resource, err)
				s.Fail(b.ID+"/"+resource, err)
				continue
			}
			s.Count(string(res.Outcome))
		}
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("imports", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "imports", s)
	}
	log.Printf("imports pass done: %s (dry_run=%v strategy=%s)", s.String(), req.DryRun, req.Strategy)
	return s, nil
}

func consumedResources(def economy.BuildingDef) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, recipe := range def.Recipes {
		for resource := range recipe.Inputs {
			if seen[resource] {
				continue
			}
			seen[resource] = true
			out = append(out, resource)
		}
	}
	return out
}
