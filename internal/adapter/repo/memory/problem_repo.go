package memory

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type ProblemRepo struct {
	store *Store
}

func NewProblemRepo(store *Store) ProblemRepo {
	return ProblemRepo{store: store}
}

func (r ProblemRepo) List(_ context.Context, filter ports.ProblemFilter) ([]economy.Problem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []economy.Problem{}
	for _, p := range r.store.problems {
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		if filter.Subject != "" && p.Subject != filter.Subject {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r ProblemRepo) Upsert(_ context.Context, problem economy.Problem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.problems[problem.ID] = problem
	r.store.writes++
	return nil
}

func (r ProblemRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.problems, id)
	r.store.writes++
	return nil
}
