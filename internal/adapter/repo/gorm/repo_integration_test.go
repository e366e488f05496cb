package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("REGULATOR_DB_DSN")
	if dsn == "" {
		t.Skip("REGULATOR_DB_DSN is required for integration test")
	}
	return dsn
}

func TestContractRepo_RoundTripWithMetadata(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	id := economy.BuildContractID(economy.KindImportExclusive, "it-buyer", "it-bld", "it-silk")
	_ = db.Exec("DELETE FROM contracts WHERE id = ?", id).Error

	repo := NewContractRepo(db)
	seed := economy.Contract{
		ID:           id,
		Kind:         economy.KindImportExclusive,
		Buyer:        "it-buyer",
		Seller:       "it-seller",
		ResourceType: "it-silk",
		PricePerUnit: 131.25,
		TargetAmount: 50,
		Status:       economy.StatusActive,
		CreatedAt:    time.Now().UTC(),
		EndAt:        time.Now().UTC().AddDate(0, 0, 7),
		Metadata: economy.Metadata{
			Exclusive: &economy.ExclusiveTerms{PremiumPct: 0.25, StratagemID: "it-strat"},
		},
	}
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, seed); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("second create should conflict, got %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Metadata.Exclusive == nil || got.Metadata.Exclusive.StratagemID != "it-strat" {
		t.Fatalf("metadata did not survive the round trip: %+v", got.Metadata)
	}
	if got.PricePerUnit != 131.25 {
		t.Fatalf("expected price 131.25, got %v", got.PricePerUnit)
	}

	got.Status = economy.StatusSuspended
	got.Metadata = economy.Metadata{Suspension: &economy.SuspensionRef{StratagemID: "it-strat"}}
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if again.Status != economy.StatusSuspended || again.Metadata.Suspension == nil {
		t.Fatalf("update did not stick: %+v", again)
	}
}

func TestContractRepo_ListFilters(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	_ = db.Exec("DELETE FROM contracts WHERE seller = ?", "it-list-seller").Error

	repo := NewContractRepo(db)
	for i, res := range []string{"it-wood", "it-stone"} {
		c := economy.Contract{
			ID:           economy.BuildContractID(economy.KindPublicSell, "it-list-seller", "it-list-bld", res),
			Kind:         economy.KindPublicSell,
			Seller:       "it-list-seller",
			ResourceType: res,
			PricePerUnit: float64(10 + i),
			Status:       economy.StatusActive,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %s: %v", res, err)
		}
	}

	got, err := repo.List(ctx, ports.ContractFilter{
		Seller:       "it-list-seller",
		Kind:         economy.KindPublicSell,
		ResourceType: "it-wood",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ResourceType != "it-wood" {
		t.Fatalf("expected exactly the wood offer, got %+v", got)
	}
}

func TestRelationshipRepo_UpsertIsPairSymmetric(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	_ = db.Exec("DELETE FROM relationships WHERE citizen_a = ? AND citizen_b = ?", "it-alice", "it-bob").Error

	repo := NewRelationshipRepo(db)
	if err := repo.Upsert(ctx, economy.Relationship{CitizenA: "it-bob", CitizenB: "it-alice", TrustScore: 55}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := repo.Get(ctx, "it-alice", "it-bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TrustScore != 55 {
		t.Fatalf("expected trust 55, got %v", got.TrustScore)
	}

	if err := repo.Upsert(ctx, economy.Relationship{CitizenA: "it-alice", CitizenB: "it-bob", TrustScore: 60}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = repo.Get(ctx, "it-bob", "it-alice")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.TrustScore != 60 {
		t.Fatalf("expected trust 60 after upsert, got %v", got.TrustScore)
	}
}

func TestStratagemRepo_ListOpenExcludesTerminal(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	_ = db.Exec("DELETE FROM stratagems WHERE initiator = ?", "it-init").Error

	repo := NewStratagemRepo(db)
	for _, st := range []economy.Stratagem{
		{ID: "it-open", Kind: economy.StratagemExclusivityLockout, Initiator: "it-init", Supplier: "it-sup", ResourceType: "it-silk", Status: economy.StratagemProposed, CreatedAt: time.Now().UTC()},
		{ID: "it-done", Kind: economy.StratagemExclusivityLockout, Initiator: "it-init", Supplier: "it-sup", ResourceType: "it-silk", Status: economy.StratagemExpired, CreatedAt: time.Now().UTC()},
	} {
		if err := repo.Create(ctx, st); err != nil {
			t.Fatalf("create %s: %v", st.ID, err)
		}
	}

	open, err := repo.ListOpen(ctx)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	for _, st := range open {
		if st.Status.Terminal() {
			t.Fatalf("terminal stratagem %s returned as open", st.ID)
		}
	}
}
