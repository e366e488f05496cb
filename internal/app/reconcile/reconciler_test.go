package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/memory"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type fakeActivity struct {
	calls []string
	err   error
}

func (f *fakeActivity) Submit(_ context.Context, _, kind string, _ map[string]any) (ports.ActivityAck, error) {
	if f.err != nil {
		return ports.ActivityAck{}, f.err
	}
	f.calls = append(f.calls, kind)
	return ports.ActivityAck{Accepted: true, ActivityRef: "act-1"}, nil
}

func newReconciler(store *memory.Store, activity *fakeActivity) Reconciler {
	return Reconciler{
		Contracts:      memory.NewContractRepo(store),
		Stocks:         memory.NewStockRepo(store),
		Activity:       activity,
		Jitter:         Jitter{Rate: 1},
		MinFetchAmount: 1,
		Now:            func() time.Time { return time.Unix(1000, 0) },
	}
}

func sellTarget() Target {
	return Target{
		Kind:            economy.KindPublicSell,
		Seller:          "lorenzo",
		SellerBuilding:  "bld-1",
		ResourceType:    "fish",
		PricePerUnit:    50,
		Amount:          10,
		ActivityKind:    ports.ActivityManagePublicSellContract,
		ActivityCitizen: "lorenzo",
	}
}

func TestReconcile_CreatesThenUpdatesSameRecord(t *testing.T) {
	store := memory.NewStore()
	activity := &fakeActivity{}
	r := newReconciler(store, activity)

	res, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeCreated {
		t.Fatalf("expected created, got %s", res.Outcome)
	}

	second := sellTarget()
	second.PricePerUnit = 52
	res2, err := r.Reconcile(context.Background(), second)
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res2.Outcome != OutcomeUpdated {
		t.Fatalf("expected updated, got %s", res2.Outcome)
	}
	if res2.ContractID != res.ContractID {
		t.Fatalf("second pass must land on the same record: %s vs %s", res.ContractID, res2.ContractID)
	}

	active := 0
	for _, c := range store.Contracts() {
		if c.Status == economy.StatusActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active contract, got %d", active)
	}
	if len(activity.calls) != 2 {
		t.Fatalf("expected 2 activity submissions, got %d", len(activity.calls))
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	store := memory.NewStore()
	r := newReconciler(store, &fakeActivity{})

	for i := 0; i < 3; i++ {
		if _, err := r.Reconcile(context.Background(), sellTarget()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if got := len(store.Contracts()); got != 1 {
		t.Fatalf("repeated reconciliation must not duplicate records, got %d", got)
	}
}

func TestReconcile_LeavesSuspendedOffersAlone(t *testing.T) {
	store := memory.NewStore()
	id := economy.BuildContractID(economy.KindPublicSell, "lorenzo", "bld-1", "fish")
	store.SeedContract(economy.Contract{
		ID: id, Kind: economy.KindPublicSell, Status: economy.StatusSuspended,
		Seller: "lorenzo", SellerBuilding: "bld-1", ResourceType: "fish", PricePerUnit: 50,
		Metadata: economy.Metadata{Suspension: &economy.SuspensionRef{StratagemID: "strat-1"}},
	})
	r := newReconciler(store, &fakeActivity{})

	res, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeNoAction {
		t.Fatalf("expected no_action on a suspended offer, got %s", res.Outcome)
	}
	got, _ := store.Contract(id)
	if got.Status != economy.StatusSuspended {
		t.Fatalf("suspended offer must stay suspended, got %s", got.Status)
	}
	if got.Metadata.Suspension == nil || got.Metadata.Suspension.StratagemID != "strat-1" {
		t.Fatalf("suspension back-reference must survive, got %+v", got.Metadata)
	}
}

func TestReconcile_RefreshesExpiredRecord(t *testing.T) {
	store := memory.NewStore()
	id := economy.BuildContractID(economy.KindPublicSell, "lorenzo", "bld-1", "fish")
	store.SeedContract(economy.Contract{
		ID: id, Kind: economy.KindPublicSell, Status: economy.StatusExpired,
		Seller: "lorenzo", SellerBuilding: "bld-1", ResourceType: "fish", PricePerUnit: 40,
	})
	r := newReconciler(store, &fakeActivity{})

	res, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeCreated {
		t.Fatalf("expected refresh of the expired record, got %s", res.Outcome)
	}
	got, _ := store.Contract(id)
	if got.Status != economy.StatusActive || got.PricePerUnit != 50 {
		t.Fatalf("expired record should be refreshed in place, got %+v", got)
	}
}

func TestReconcile_FetchSizing(t *testing.T) {
	store := memory.NewStore()
	store.SeedStock(economy.ResourceStock{ResourceType: "wood", BuildingID: "bld-2", Owner: "marco", Quantity: 45})
	r := newReconciler(store, &fakeActivity{})

	target := Target{
		Kind:          economy.KindImport,
		Buyer:         "marco",
		Seller:        "lorenzo",
		BuyerBuilding: "bld-2",
		ResourceType:  "wood",
		PricePerUnit:  20,
		DesiredStock:  50,
	}
	res, err := r.Reconcile(context.Background(), target)
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Amount != 5 {
		t.Fatalf("expected amount 5 (gap to desired stock), got %v", res.Amount)
	}

	// near-full stock: gap below the minimum threshold means no action
	store.SeedStock(economy.ResourceStock{ResourceType: "wood", BuildingID: "bld-2", Owner: "marco", Quantity: 49.5})
	res, err = r.Reconcile(context.Background(), target)
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeNoAction {
		t.Fatalf("expected no_action, got %s", res.Outcome)
	}
}

func TestReconcile_JitterSkipsActiveContract(t *testing.T) {
	store := memory.NewStore()
	r := newReconciler(store, &fakeActivity{})
	if _, err := r.Reconcile(context.Background(), sellTarget()); err != nil {
		t.Fatalf("seed reconcile: %v", err)
	}

	r.Jitter = Jitter{Rate: 0}
	res, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped under zero update rate, got %s", res.Outcome)
	}
}

func TestReconcile_RefreshesDormantRecord(t *testing.T) {
	store := memory.NewStore()
	r := newReconciler(store, &fakeActivity{})

	first, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	c, _ := store.Contract(first.ContractID)
	c.Status = economy.StatusExpired
	store.SeedContract(c)

	res, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeCreated {
		t.Fatalf("expected created over dormant record, got %s", res.Outcome)
	}
	got, _ := store.Contract(first.ContractID)
	if got.Status != economy.StatusActive {
		t.Fatalf("expected refreshed record to be active, got %s", got.Status)
	}
	if n := len(store.Contracts()); n != 1 {
		t.Fatalf("refresh must reuse the record, got %d records", n)
	}
}

func TestReconcile_DryRunWritesNothing(t *testing.T) {
	store := memory.NewStore()
	activity := &fakeActivity{}
	r := newReconciler(store, activity)
	r.DryRun = true

	res, err := r.Reconcile(context.Background(), sellTarget())
	if err != nil {
		t.Fatalf("reconcile error: %v", err)
	}
	if res.Outcome != OutcomeCreated {
		t.Fatalf("dry run must still report the intended outcome, got %s", res.Outcome)
	}
	if store.Writes() != 0 {
		t.Fatalf("dry run must not write to the store, got %d writes", store.Writes())
	}
	if len(activity.calls) != 0 {
		t.Fatalf("dry run must not call the activity api, got %d calls", len(activity.calls))
	}
}

func TestReconcile_InvalidTarget(t *testing.T) {
	r := newReconciler(memory.NewStore(), &fakeActivity{})
	_, err := r.Reconcile(context.Background(), Target{Kind: economy.KindImport, ResourceType: "wood"})
	if err == nil {
		t.Fatal("expected invalid target error")
	}
}

func TestJitterDeterminism(t *testing.T) {
	j := Jitter{Rate: 0.5, Seed: 42}
	first := j.ShouldUpdate("contract_import_a_b_wood")
	for i := 0; i < 10; i++ {
		if j.ShouldUpdate("contract_import_a_b_wood") != first {
			t.Fatal("same seed and key must always decide the same way")
		}
	}

	for i := 0; i < 20; i++ {
		if !(Jitter{Rate: 1, Seed: uint64(i)}).ShouldUpdate("k") {
			t.Fatal("rate 1 must always update")
		}
		if (Jitter{Rate: 0, Seed: uint64(i)}).ShouldUpdate("k") {
			t.Fatal("rate 0 must never update")
		}
	}

	hits := 0
	for i := 0; i < 1000; i++ {
		if (Jitter{Rate: 0.1, Seed: 7, Epoch: uint64(i)}).ShouldUpdate("k") {
			hits++
		}
	}
	if hits < 50 || hits > 200 {
		t.Fatalf("rate 0.1 over 1000 epochs should land near 100 hits, got %d", hits)
	}
}
