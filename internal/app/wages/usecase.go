package wages

import (
	"context"
	"errors"
	"log"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

var ErrInvalidRequest = errors.New("invalid wages request")

type Request struct {
	DryRun     bool
	Strategy   economy.Strategy
	BuildingID string
}

// UseCase runs one wage regulation pass over business buildings with an
// operator. Per-entity failures are logged and counted; the pass continues.
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

	wagesByParcel := map[string][]float64{}
	global := []float64{}
	for _, b := range buildings {
		if b.Wages > 0 {
			wagesByParcel[b.Parcel] = append(wagesByParcel[b.Parcel], b.Wages)
			global = append(global, b.Wages)
		}
	}

	var s report.Summary
	for _, b := range buildings {
		if b.Operator == "" {
			continue
		}
		s.Processed++

		next := u.Policy.NewWage(economy.WageInputs{
			Current:           b.Wages,
			ProfitBeforeWages: b.ProfitBeforeWages(),
			Comparables:       economy.Comparables{Local: wagesByParcel[b.Parcel], Global: global},
			ClassExpected:     u.Policy.WageClassExpectation[b.SocialClass],
			Strategy:          req.Strategy,
			Kickstart:         true,
		})
		if next == b.Wages {
			s.Skipped++
			continue
		}

		if req.DryRun {
			log.Printf("dry-run: would set wages of %s to %.2f (was %.2f)", b.ID, next, b.Wages)
			s.Updated++
			continue
		}

		prev := b.Wages
		b.Wages = next
		if err := u.Buildings.Update(ctx, b); err != nil {
			log.Printf("warn: wage update for %s failed: %v", b.ID, err)
			s.Fail(b.ID, err)
			continue
		}
		if u.Activity != nil {
			if _, err := u.Activity.Submit(ctx, b.Operator, ports.ActivityAdjustBusinessWages, map[string]any{
				"building_id": b.ID,
				"wages":       next,
			}); err != nil {
				log.Printf("warn: wage activity for %s failed: %v", b.ID, err)
				s.Fail(b.ID, err)
				continue
			}
		}
		if u.Notifier != nil {
			details := map[string]any{"building_id": b.ID, "previous": prev, "wages": next}
			if err := u.Notifier.Notify(ctx, b.Operator, "Your wages have been adjusted.", details); err != nil {
				log.Printf("warn: wage notification for %s failed: %v", b.ID, err)
			}
		}
		s.Updated++
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("wages", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "wages", s)
	}
	log.Printf("wages pass done: %s (dry_run=%v strategy=%s)", s.String(), req.DryRun, req.Strategy)
	return s, nil
}
