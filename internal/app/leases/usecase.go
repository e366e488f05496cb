package leases

import (
	"context"
	"errors"
	"log"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid leases request")

type Request struct {
	DryRun     bool
	Strategy   economy.Strategy
	BuildingID string
}

// UseCase runs one lease regulation pass. Lease price is what the building
// owner charges the operator for use of the premises; it is blended from
// comparable leases and capped at a fraction of the parcel rent.
type UseCase struct {
	Buildings ports.BuildingRepository
	Activity  ports.ActivityAPI
	Notifier  ports.Notifier
	Metrics   ports.PassMetrics
	Policy    economy.PolicyConfig
}

func (u UseCase) Execute(ctx context.Context, req Request) (report.Summary, error) {
	if req.Strategy == "" {
		req.Strategy = economy.StrategyStandard
	}
	if !req.Strategy.Valid() {
		return report.Summary{}, ErrInvalidRequest
	}

	buildings, err := u.Buildings.List(ctx, ports.BuildingFilter{
		ID:       req.BuildingID,
		Category: economy.CategoryBusiness,
	})
	if err != nil {
		return report.Summary{}, err
	}

	leasesByParcel := map[string][]float64{}
	global := []float64{}
	for _, b := range buildings {
		if b.LeasePrice > 0 {
			leasesByParcel[b.Parcel] = append(leasesByParcel[b.Parcel], b.LeasePrice)
			global = append(global, b.LeasePrice)
		}
	}

	var s report.Summary
	for _, b := range buildings {
		if b.Owner == "" {
			continue
		}
		s.Processed++

		next := u.Policy.NewLease(economy.LeaseInputs{
			Current:     b.LeasePrice,
			RentPrice:   b.RentPrice,
			Comparables: economy.Comparables{Local: leasesByParcel[b.Parcel], Global: global},
			Strategy:    req.Strategy,
			Kickstart:   b.Operator != "",
		})
		if next == b.LeasePrice {
			s.Skipped++
			continue
		}

		if req.DryRun {
			log.Printf("dry-run: would set lease price of %s to %.2f (was %.2f)", b.ID, next, b.LeasePrice)
			s.Updated++
			continue
		}

		prev := b.LeasePrice
		b.LeasePrice = next
		if err := u.Buildings.Update(ctx, b); err != nil {
			log.Printf("warn: lease update for %s failed: %v", b.ID, err)
			s.Fail(b.ID, err)
			continue
		}
		if u.Activity != nil {
			if _, err := u.Activity.Submit(ctx, b.Owner, ports.ActivityAdjustBuildingLeasePrice, map[string]any{
				"building_id": b.ID,
				"lease_price": next,
			}); err != nil {
				log.Printf("warn: lease activity for %s failed: %v", b.ID, err)
				s.Fail(b.ID, err)
				continue
			}
		}
		if u.Notifier != nil && b.Operator != "" {
			details := map[string]any{"building_id": b.ID, "previous": prev, "lease_price": next}
			if err := u.Notifier.Notify(ctx, b.Operator, "The lease price of your workplace has changed.", details); err != nil {
				log.Printf("warn: lease notification for %s failed: %v", b.ID, err)
			}
		}
		s.Updated++
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("leases", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "leases", s)
	}
	log.Printf("leases pass done: %s (dry_run=%v strategy=%s)", s.String(), req.DryRun, req.Strategy)
	return s, nil
}
