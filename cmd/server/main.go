package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	activityclient "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/activity/httpclient"
	staticcatalog "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/catalog/static"
	httpadapter "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/http"
	metricsinmem "github.com/universe-engine-ai/serenissima-sub006/internal/adapter/metrics/inmemory"
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
)

func main() {
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

	contracts := gormrepo.NewContractRepo(db)
	buildings := gormrepo.NewBuildingRepo(db)
	stocks := gormrepo.NewStockRepo(db)
	stratagems := gormrepo.NewStratagemRepo(db)
	notifier := recordnotify.New(db)
	kpiRecorder := metricsinmem.NewRecorder()

	rec := reconcile.Reconciler{
		Contracts: contracts,
		Stocks:    stocks,
		Activity:  activity,
		Jitter: reconcile.Jitter{
			Rate:  policy.UpdateRate,
			Seed:  uint64(time.Now().UTC().Unix()),
			Epoch: uint64(time.Now().UTC().Truncate(24 * time.Hour).Unix()),
		},
		MinFetchAmount: policy.MinFetchAmount,
	}

	h := httpadapter.Handler{
		WagesUC:   wages.UseCase{Buildings: buildings, Activity: activity, Notifier: notifier, Metrics: kpiRecorder, Policy: policy},
		LeasesUC:  leases.UseCase{Buildings: buildings, Activity: activity, Notifier: notifier, Metrics: kpiRecorder, Policy: policy},
		PricesUC:  prices.UseCase{Buildings: buildings, Contracts: contracts, Stocks: stocks, Catalog: catalog, Reconciler: rec, Notifier: notifier, Metrics: kpiRecorder, Policy: policy},
		ImportsUC: imports.UseCase{Buildings: buildings, Contracts: contracts, Catalog: catalog, Reconciler: rec, Notifier: notifier, Metrics: kpiRecorder, Policy: policy},
		MarkupUC:  markup.UseCase{Buildings: buildings, Contracts: contracts, Catalog: catalog, Reconciler: rec, Notifier: notifier, Metrics: kpiRecorder, Policy: policy},
		ProblemsUC: problems.UseCase{
			Contracts:  contracts,
			Stratagems: stratagems,
			Problems:   gormrepo.NewProblemRepo(db),
			Notifier:   notifier,
			Metrics:    kpiRecorder,
			Policy:     policy,
		},
		ExclusivityUC: exclusivity.UseCase{
			Tx:            gormrepo.NewTxManager(db),
			Stratagems:    stratagems,
			Contracts:     contracts,
			Buildings:     buildings,
			Relationships: gormrepo.NewRelationshipRepo(db),
			Catalog:       catalog,
			Notifier:      notifier,
			Reconciler:    rec,
			Metrics:       kpiRecorder,
			Policy:        policy,
		},
		Stratagems: stratagems,
		KPI:        kpiRecorder,
	}

	startScheduler(h)

	s := server.Default(server.WithHostPorts(envOr("REGULATOR_LISTEN", ":8080")))
	s.Use(httpadapter.CORSMiddleware())
	h.RegisterRoutes(s)

	log.Printf("regulator server listening on %s", envOr("REGULATOR_LISTEN", ":8080"))
	s.Spin()
}

type scheduledPass struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) (report.Summary, error)
}

// startScheduler runs each regulation pass on its own ticker. Intervals of
// zero disable a pass; the HTTP trigger endpoints stay available either way.
func startScheduler(h httpadapter.Handler) {
	passes := []scheduledPass{
		{"wages", durationEnv("REGULATOR_WAGES_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.WagesUC.Execute(ctx, wages.Request{})
		}},
		{"leases", durationEnv("REGULATOR_LEASES_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.LeasesUC.Execute(ctx, leases.Request{})
		}},
		{"prices", durationEnv("REGULATOR_PRICES_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.PricesUC.Execute(ctx, prices.Request{})
		}},
		{"imports", durationEnv("REGULATOR_IMPORTS_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.ImportsUC.Execute(ctx, imports.Request{})
		}},
		{"markup", durationEnv("REGULATOR_MARKUP_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.MarkupUC.Execute(ctx, markup.Request{})
		}},
		{"exclusivity", durationEnv("REGULATOR_EXCLUSIVITY_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.ExclusivityUC.Advance(ctx, exclusivity.Request{})
		}},
		{"problems", durationEnv("REGULATOR_PROBLEMS_INTERVAL", 0), func(ctx context.Context) (report.Summary, error) {
			return h.ProblemsUC.Execute(ctx, problems.Request{})
		}},
	}
	for _, p := range passes {
		if p.interval <= 0 {
			continue
		}
		go func(p scheduledPass) {
			ticker := time.NewTicker(p.interval)
			defer ticker.Stop()
			for range ticker.C {
				if _, err := p.run(context.Background()); err != nil {
					log.Printf("warn: scheduled %s pass failed: %v", p.name, err)
				}
			}
		}(p)
		log.Printf("scheduled %s pass every %s", p.name, p.interval)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("warn: invalid duration %q for %s, pass disabled", v, key)
	return 0
}
