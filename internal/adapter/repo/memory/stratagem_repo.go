package memory

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type StratagemRepo struct {
	store *Store
}

func NewStratagemRepo(store *Store) StratagemRepo {
	return StratagemRepo{store: store}
}

func (r StratagemRepo) GetByID(_ context.Context, id string) (economy.Stratagem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	st, ok := r.store.stratagems[id]
	if !ok {
		return economy.Stratagem{}, ports.ErrNotFound
	}
	return st, nil
}

func (r StratagemRepo) ListOpen(_ context.Context) ([]economy.Stratagem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []economy.Stratagem{}
	for _, st := range r.store.stratagems {
		if st.Status.Terminal() {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func (r StratagemRepo) Create(_ context.Context, s economy.Stratagem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.stratagems[s.ID]; exists {
		return ports.ErrConflict
	}
	r.store.stratagems[s.ID] = s
	r.store.writes++
	return nil
}

func (r StratagemRepo) Update(_ context.Context, s economy.Stratagem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.stratagems[s.ID]; !exists {
		return ports.ErrNotFound
	}
	r.store.stratagems[s.ID] = s
	r.store.writes++
	return nil
}
