package memory

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type BuildingRepo struct {
	store *Store
}

func NewBuildingRepo(store *Store) BuildingRepo {
	return BuildingRepo{store: store}
}

func (r BuildingRepo) GetByID(_ context.Context, id string) (economy.Building, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.buildings[id]
	if !ok {
		return economy.Building{}, ports.ErrNotFound
	}
	return b, nil
}

func (r BuildingRepo) List(_ context.Context, filter ports.BuildingFilter) ([]economy.Building, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []economy.Building{}
	for _, b := range r.store.buildings {
		if filter.ID != "" && b.ID != filter.ID {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Owner != "" && b.Owner != filter.Owner {
			continue
		}
		if filter.Operator != "" && b.Operator != filter.Operator {
			continue
		}
		if filter.Parcel != "" && b.Parcel != filter.Parcel {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r BuildingRepo) Update(_ context.Context, building economy.Building) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.buildings[building.ID]; !exists {
		return ports.ErrNotFound
	}
	r.store.buildings[building.ID] = building
	r.store.writes++
	return nil
}
