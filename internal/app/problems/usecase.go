package problems

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/report"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type Request struct {
	DryRun bool
}

// UseCase regenerates the derived problem set on every pass. Problems are
// never written incrementally by the passes that cause them; this pass
// recomputes the desired set from contract and stratagem state, upserts what
// changed and deletes what no longer holds. Running it twice in a row
// converges to zero writes.
type UseCase struct {
	Contracts  ports.ContractRepository
	Stratagems ports.StratagemRepository
	Problems   ports.ProblemRepository
	Notifier   ports.Notifier
	Metrics    ports.PassMetrics
	Policy     economy.PolicyConfig
}

func (u UseCase) Execute(ctx context.Context, req Request) (report.Summary, error) {
	desired, err := u.desired(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	existing, err := u.Problems.List(ctx, ports.ProblemFilter{Kind: economy.ProblemSupplyShortage})
	if err != nil {
		return report.Summary{}, err
	}

	var s report.Summary
	current := make(map[string]economy.Problem, len(existing))
	for _, p := range existing {
		current[p.ID] = p
	}

	for id, want := range desired {
		s.Processed++
		have, ok := current[id]
		if ok && sameProblem(have, want) {
			s.NoAction++
			continue
		}
		if req.DryRun {
			log.Printf("dry-run: would upsert problem %s", id)
		} else if err := u.Problems.Upsert(ctx, want); err != nil {
			s.Fail(id, err)
			continue
		}
		if ok {
			s.Updated++
		} else {
			s.Created++
		}
	}
	for id := range current {
		if _, ok := desired[id]; ok {
			continue
		}
		s.Processed++
		if req.DryRun {
			log.Printf("dry-run: would delete stale problem %s", id)
		} else if err := u.Problems.Delete(ctx, id); err != nil {
			s.Fail(id, err)
			continue
		}
		s.Updated++
	}

	if u.Metrics != nil {
		u.Metrics.RecordPass("problems", s)
	}
	if !req.DryRun {
		report.NotifyOwner(ctx, u.Notifier, u.Policy.PassOwner, "problems", s)
	}
	log.Printf("problem pass done: %s (dry_run=%v)", s.String(), req.DryRun)
	return s, nil
}

// desired derives supply-shortage problems from exclusivity lockouts: every
// buyer holding an active import contract against a locked supplier and
// resource, other than the lockout's initiator, is about to lose that supply
// line.
func (u UseCase) desired(ctx context.Context) (map[string]economy.Problem, error) {
	open, err := u.Stratagems.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	out := map[string]economy.Problem{}
	for _, st := range open {
		if st.Status != economy.StratagemActive && st.Status != economy.StratagemMaintained {
			continue
		}
		rivals, err := u.Contracts.List(ctx, ports.ContractFilter{
			Seller:       st.Supplier,
			Kind:         economy.KindImport,
			Status:       economy.StatusActive,
			ResourceType: st.ResourceType,
		})
		if err != nil {
			return nil, err
		}
		for _, c := range rivals {
			if c.Buyer == "" || c.Buyer == st.Initiator {
				continue
			}
			id := economy.BuildProblemID(economy.ProblemSupplyShortage, c.Buyer, st.ResourceType)
			out[id] = economy.Problem{
				ID:          id,
				Subject:     c.Buyer,
				Kind:        economy.ProblemSupplyShortage,
				Severity:    "medium",
				Description: fmt.Sprintf("Supplier %s has granted exclusive access to %s; your import contract will not be honored.", st.Supplier, st.ResourceType),
				SuggestedSolutions: []string{
					"find an alternative supplier for " + st.ResourceType,
					"negotiate your own exclusivity arrangement",
				},
			}
		}
	}
	return out, nil
}

func sameProblem(a, b economy.Problem) bool {
	return a.ID == b.ID &&
		a.Subject == b.Subject &&
		a.Kind == b.Kind &&
		a.Severity == b.Severity &&
		a.Description == b.Description &&
		slices.Equal(a.SuggestedSolutions, b.SuggestedSolutions)
}
