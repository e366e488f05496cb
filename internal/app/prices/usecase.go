package prices

import (
	"context"
	"errors"
	"log"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/reconcile"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid prices request")

type Request struct {
	DryRun     bool
	Strategy   economy.Strategy
	BuildingID string
}

// UseCase runs one public-sell price pass: for every resource a producer
// building can craft, derive a price from cost basis (or reference markup)
// and market comparables, then reconcile the building's public_sell offer.
type UseCase struct {
	Buildings  ports.BuildingRepository
	Contracts  ports.ContractRepository
	Stocks     ports.StockRepository
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
	refPrices := make(map[string]float64, len(resources))
	for id, def := range resources {
		refPrices[id] = def.ReferencePrice
	}

	allBusiness, err := u.Buildings.List(ctx, ports.BuildingFilter{Category: economy.CategoryBusiness})
	if err != nil {
		return report.Summary{}, err
	}
	parcelOf := make(map[string]string, len(allBusiness))
	for _, b := range allBusiness {
		parcelOf[b.ID] = b.Parcel
	}

	offers, err := u.Contracts.List(ctx, ports.ContractFilter{
		Kind:   economy.KindPublicSell,
		Status: economy.StatusActive,
	})
	if err != nil {
		return report.Summary{}, err
	}
	globalByResource := map[string][]float64{}
	localByParcelResource := map[string][]float64{}
	for _, c := range offers {
		if c.PricePerUnit <= 0 {
			continue
		}
		globalByResource[c.ResourceType] = append(globalByResource[c.ResourceType], c.PricePerUnit)
		key := parcelOf[c.SellerBuilding] + "::" + c.ResourceType
		localByParcelResource[key] = append(localByParcelResource[key], c.PricePerUnit)
	}

	rec := u.Reconciler
	rec.DryRun = req.DryRun

	var s report.Summary
	for _, b := range allBusiness {
		if b.Operator == "" {
			continue
		}
		if req.BuildingID != "" && b.ID != req.BuildingID {
			continue
		}
		def, ok := buildingTypes[b.Type]
		if !ok {
			log.Printf("warn: building %s has unknown type %s, skipping", b.ID, b.Type)
			s.Fail(b.ID, errors.New("unknown building type"))
			continue
		}

		for _, resource := range producedResources(def) {
			s.Processed++

			ref, known := resources[resource]
			if !known || ref.ReferencePrice <= 0 {
				log.Printf("warn: resource %s has no usable reference price, skipping", resource)
				s.Skipped++
				continue
			}

			basis, basisErr := economy.CostBasis(resource, def.Recipes, refPrices, u.Policy.LaborUnitCost)
			if basisErr != nil && !errors.Is(basisErr, economy.ErrNoCostBasis) {
				s.Fail(b.ID+"/"+resource, basisErr)
				continue
			}

			current := 0.0
			id := economy.BuildContractID(economy.KindPublicSell, b.Operator, b.ID, resource)
			if existing, err := u.Contracts.GetByID(ctx, id); err == nil && existing.Status == economy.StatusActive {
				current = existing.PricePerUnit
			}

			price := u.Policy.NewSellPrice(economy.SellPriceInputs{
				Current:        current,
				CostBasis:      basis,
				HasCostBasis:   basisErr == nil,
				ReferencePrice: ref.ReferencePrice,
				Comparables: economy.Comparables{
					Local:  localByParcelResource[b.Parcel+"::"+resource],
					Global: globalByResource[resource],
				},
				Strategy: req.Strategy,
			})
			if price <= 0 {
				log.Printf("warn: no sellable price for %s at %s, skipping", resource, b.ID)
				s.Skipped++
				continue
			}

			amount := 0.0
			if stock, err := u.Stocks.Get(ctx, resource, b.ID, b.Operator); err == nil {
				amount = stock.Quantity
			}

			res, err := rec.Reconcile(ctx, reconcile.Target{
				Kind:            economy.KindPublicSell,
				Seller:          b.Operator,
				SellerBuilding:  b.ID,
				ResourceType:    resource,
				PricePerUnit:    price,
				Amount:          amount,
				ActivityKind:    ports.ActivityManagePublicSellContract,
				ActivityCitizen: b.Operator,
			})
			if err != nil {
				log.Printf("warn: sell reconcile for %s/%s failed: %v", b.ID, resource, err)
				s.Fail(b.ID+"/"+resource, err)
				continue
			}
			s.Count(string(res.Outcome))
		}
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("prices", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "prices", s)
	}
	log.Printf("prices pass done: %s (dry_run=%v strategy=%s)", s.String(), req.DryRun, req.Strategy)
	return s, nil
}

func producedResources(def economy.BuildingDef) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, recipe := range def.Recipes {
		for resource := range recipe.Outputs {
			if seen[resource] {
				continue
			}
			seen[resource] = true
			out = append(out, resource)
		}
	}
	return out
}
