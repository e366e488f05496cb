package memory

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type StockRepo struct {
	store *Store
}

func NewStockRepo(store *Store) StockRepo {
	return StockRepo{store: store}
}

func (r StockRepo) Get(_ context.Context, resourceType, buildingID, owner string) (economy.ResourceStock, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	st, ok := r.store.stocks[stockKey(resourceType, buildingID, owner)]
	if !ok {
		return economy.ResourceStock{}, ports.ErrNotFound
	}
	return st, nil
}
