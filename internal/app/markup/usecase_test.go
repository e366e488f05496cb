package markup

import (
	"context"
	"testing"
	"time"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/memory"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/reconcile"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type fakeCatalog struct {
	resources map[string]economy.ResourceDef
	buildings map[string]economy.BuildingDef
}

func (f fakeCatalog) ResourceTypes(_ context.Context) (map[string]economy.ResourceDef, error) {
	return f.resources, nil
}

func (f fakeCatalog) BuildingTypes(_ context.Context) (map[string]economy.BuildingDef, error) {
	return f.buildings, nil
}

type fakeActivity struct{}

func (fakeActivity) Submit(_ context.Context, _, _ string, _ map[string]any) (ports.ActivityAck, error) {
	return ports.ActivityAck{Accepted: true}, nil
}

func TestExecute_CreatesMarkupBuyOffer(t *testing.T) {
	store := memory.NewStore()
	store.SeedBuilding(economy.Building{ID: "bld-1", Type: "smithy", Category: economy.CategoryBusiness, Operator: "marco"})
	uc := UseCase{
		Buildings: memory.NewBuildingRepo(store),
		Contracts: memory.NewContractRepo(store),
		Catalog: fakeCatalog{
			resources: map[string]economy.ResourceDef{"iron": {ID: "iron", ReferencePrice: 100}},
			buildings: map[string]economy.BuildingDef{
				"smithy": {ID: "smithy", Category: economy.CategoryBusiness, Recipes: []economy.Recipe{{
					Inputs:  map[string]float64{"iron": 1},
					Outputs: map[string]float64{"tools": 1},
				}}},
			},
		},
		Reconciler: reconcile.Reconciler{
			Contracts:      memory.NewContractRepo(store),
			Stocks:         memory.NewStockRepo(store),
			Activity:       fakeActivity{},
			Jitter:         reconcile.Jitter{Rate: 1},
			MinFetchAmount: 1,
			Now:            func() time.Time { return time.Unix(1000, 0) },
		},
		Policy: economy.DefaultPolicyConfig(),
	}

	s, err := uc.Execute(context.Background(), Request{Strategy: economy.StrategyStandard})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if s.Created != 1 {
		t.Fatalf("expected one markup offer, got %s", s.String())
	}
	id := economy.BuildContractID(economy.KindMarkupBuy, "marco", "bld-1", "iron")
	c, ok := store.Contract(id)
	if !ok {
		t.Fatalf("expected contract %s", id)
	}
	// reference 100 x standard markup 1.25
	if c.PricePerUnit != 125 {
		t.Fatalf("expected markup price 125, got %v", c.PricePerUnit)
	}
}
