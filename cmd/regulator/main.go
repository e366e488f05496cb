package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	activityclient "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/activity/httpclient"
	staticcatalog "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/catalog/static"
	recordnotify "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/notify/record"
	gormrepo "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/exclusivity"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/imports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/leases"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/markup"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/prices"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/problems"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/reconcile"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/wages"
	"github.com/universe-engine-ai/serenissima-sub006/internal/config"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

func main() {
	var (
		passName      = flag.String("pass", "", "pass to run: wages|leases|prices|imports|markup|exclusivity|problems")
		dryRun        = flag.Bool("dry-run", false, "compute and log decisions without writing")
		strategyFlag  = flag.String("strategy", "standard", "adjustment strategy: low|standard|high")
		buildingID    = flag.String("buildingId", "", "limit the pass to one business building")
		buyerBuilding = flag.String("buyerBuilding", "", "limit fetch-oriented passes to one buyer building")
		seed          = flag.Uint64("seed", 0, "jitter seed; 0 derives one from the current date")
	)
	flag.Parse()

	strategy := economy.Strategy(*strategyFlag)
	if !strategy.Valid() {
		log.Fatalf("invalid --strategy %q", *strategyFlag)
	}
	if *passName == "" {
		log.Fatal("--pass is required")
	}

	policy, err := config.LoadPolicy(strings.TrimSpace(os.Getenv("REGULATOR_POLICY_FILE")))
	if err != nil {
		log.Fatalf("load policy: %v", err)
	}

	dsn := strings.TrimSpace(os.Getenv("REGULATOR_DB_DSN"))
	if dsn == "" {
		log.Fatal("REGULATOR_DB_DSN is required")
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("REGULATOR_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}

	catalog := staticcatalog.Provider{Root: envOr("REGULATOR_CATALOG_ROOT", "./catalog")}
	if _, err := catalog.ResourceTypes(context.Background()); err != nil {
		log.Fatalf("catalog unreachable: %v", err)
	}

	var activity ports.ActivityAPI
	if base := strings.TrimSpace(os.Getenv("REGULATOR_ACTIVITY_URL")); base != "" {
		c, err := activityclient.New(base)
		if err != nil {
			log.Fatalf("build activity client: %v", err)
		}
		activity = c
	} else {
		log.Println("warn: REGULATOR_ACTIVITY_URL not set, execution requests disabled")
	}

	jitterSeed := *seed
	if jitterSeed == 0 {
		jitterSeed = uint64(time.Now().UTC().Unix())
	}
	epoch := uint64(time.Now().UTC().Truncate(24 * time.Hour).Unix())

	contracts := gormrepo.NewContractRepo(db)
	buildings := gormrepo.NewBuildingRepo(db)
	stocks := gormrepo.NewStockRepo(db)
	notifier := recordnotify.New(db)

	rec := reconcile.Reconciler{
		Contracts:      contracts,
		Stocks:         stocks,
		Activity:       activity,
		Jitter:         reconcile.Jitter{Rate: policy.UpdateRate, Seed: jitterSeed, Epoch: epoch},
		MinFetchAmount: policy.MinFetchAmount,
	}

	fetchBuilding := *buyerBuilding
	if fetchBuilding == "" {
		fetchBuilding = *buildingID
	}

	ctx := context.Background()
	var summary report.Summary
	switch *passName {
	case "wages":
		uc := wages.UseCase{Buildings: buildings, Activity: activity, Notifier: notifier, Policy: policy}
		summary, err = uc.Execute(ctx, wages.Request{DryRun: *dryRun, Strategy: strategy, BuildingID: *buildingID})
	case "leases":
		uc := leases.UseCase{Buildings: buildings, Activity: activity, Notifier: notifier, Policy: policy}
		summary, err = uc.Execute(ctx, leases.Request{DryRun: *dryRun, Strategy: strategy, BuildingID: *buildingID})
	case "prices":
		uc := prices.UseCase{Buildings: buildings, Contracts: contracts, Stocks: stocks, Catalog: catalog, Reconciler: rec, Notifier: notifier, Policy: policy}
		summary, err = uc.Execute(ctx, prices.Request{DryRun: *dryRun, Strategy: strategy, BuildingID: *buildingID})
	case "imports":
		uc := imports.UseCase{Buildings: buildings, Contracts: contracts, Catalog: catalog, Reconciler: rec, Notifier: notifier, Policy: policy}
		summary, err = uc.Execute(ctx, imports.Request{DryRun: *dryRun, Strategy: strategy, BuildingID: fetchBuilding})
	case "markup":
		uc := markup.UseCase{Buildings: buildings, Contracts: contracts, Catalog: catalog, Reconciler: rec, Notifier: notifier, Policy: policy}
		summary, err = uc.Execute(ctx, markup.Request{DryRun: *dryRun, Strategy: strategy, BuildingID: fetchBuilding})
	case "exclusivity":
		uc := exclusivity.UseCase{
			Tx:            gormrepo.NewTxManager(db),
			Stratagems:    gormrepo.NewStratagemRepo(db),
			Contracts:     contracts,
			Buildings:     buildings,
			Relationships: gormrepo.NewRelationshipRepo(db),
			Catalog:       catalog,
			Notifier:      notifier,
			Reconciler:    rec,
			Policy:        policy,
		}
		summary, err = uc.Advance(ctx, exclusivity.Request{DryRun: *dryRun, Strategy: strategy})
	case "problems":
		uc := problems.UseCase{Contracts: contracts, Stratagems: gormrepo.NewStratagemRepo(db), Problems: gormrepo.NewProblemRepo(db), Notifier: notifier, Policy: policy}
		summary, err = uc.Execute(ctx, problems.Request{DryRun: *dryRun})
	default:
		log.Fatalf("unknown --pass %q", *passName)
	}
	if err != nil {
		log.Fatalf("pass %s: %v", *passName, err)
	}

	fmt.Printf("pass %s: %s\n", *passName, summary.String())
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
