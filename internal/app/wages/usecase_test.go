package wages

import (
	"context"
	"errors"
	"testing"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/memory"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type fakeActivity struct {
	calls int
	err   error
}

func (f *fakeActivity) Submit(_ context.Context, _, _ string, _ map[string]any) (ports.ActivityAck, error) {
	if f.err != nil {
		return ports.ActivityAck{}, f.err
	}
	f.calls++
	return ports.ActivityAck{Accepted: true}, nil
}

func seedWorkshops(store *memory.Store) {
	store.SeedBuilding(economy.Building{
		ID: "bld-1", Category: economy.CategoryBusiness, Operator: "marco",
		Parcel: "rialto", Wages: 1000, GrossIncome: 5000, InputCosts: 3000,
		SocialClass: "popolani",
	})
	store.SeedBuilding(economy.Building{
		ID: "bld-2", Category: economy.CategoryBusiness, Operator: "giulia",
		Parcel: "rialto", Wages: 1200, GrossIncome: 2000, InputCosts: 2500,
	})
	store.SeedBuilding(economy.Building{
		ID: "bld-3", Category: economy.CategoryHome, Owner: "nobile",
	})
}

func TestExecute_AdjustsWagesWithinRateClamp(t *testing.T) {
	store := memory.NewStore()
	seedWorkshops(store)
	activity := &fakeActivity{}
	uc := UseCase{
		Buildings: memory.NewBuildingRepo(store),
		Activity:  activity,
		Policy:    economy.DefaultPolicyConfig(),
	}

	s, err := uc.Execute(context.Background(), Request{Strategy: economy.StrategyStandard})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if s.Processed != 2 {
		t.Fatalf("home buildings must be ignored, processed=%d", s.Processed)
	}
	for _, id := range []string{"bld-1", "bld-2"} {
		b, _ := store.Building(id)
		var prev float64
		if id == "bld-1" {
			prev = 1000
		} else {
			prev = 1200
		}
		if b.Wages < prev*0.95 || b.Wages > prev*1.05 {
			t.Fatalf("%s: wage %v outside the 5%% clamp of %v", id, b.Wages, prev)
		}
	}
	if activity.calls != s.Updated {
		t.Fatalf("expected one activity per updated building: calls=%d updated=%d", activity.calls, s.Updated)
	}
}

func TestExecute_DryRunWritesNothing(t *testing.T) {
	store := memory.NewStore()
	seedWorkshops(store)
	activity := &fakeActivity{}
	uc := UseCase{
		Buildings: memory.NewBuildingRepo(store),
		Activity:  activity,
		Policy:    economy.DefaultPolicyConfig(),
	}

	if _, err := uc.Execute(context.Background(), Request{DryRun: true}); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if store.Writes() != 0 {
		t.Fatalf("dry run wrote to the store %d times", store.Writes())
	}
	if activity.calls != 0 {
		t.Fatalf("dry run submitted %d activities", activity.calls)
	}
}

func TestExecute_ActivityFailureDoesNotAbortPass(t *testing.T) {
	store := memory.NewStore()
	seedWorkshops(store)
	uc := UseCase{
		Buildings: memory.NewBuildingRepo(store),
		Activity:  &fakeActivity{err: errors.New("timeout")},
		Policy:    economy.DefaultPolicyConfig(),
	}

	s, err := uc.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("a per-entity failure must not abort the pass: %v", err)
	}
	if s.Failed == 0 {
		t.Fatal("expected failures to be counted")
	}
}

func TestExecute_RejectsUnknownStrategy(t *testing.T) {
	uc := UseCase{Buildings: memory.NewBuildingRepo(memory.NewStore()), Policy: economy.DefaultPolicyConfig()}
	if _, err := uc.Execute(context.Background(), Request{Strategy: "reckless"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
