package memory

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type ContractRepo struct {
	store *Store
}

func NewContractRepo(store *Store) ContractRepo {
	return ContractRepo{store: store}
}

func (r ContractRepo) GetByID(_ context.Context, id string) (economy.Contract, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.contracts[id]
	if !ok {
		return economy.Contract{}, ports.ErrNotFound
	}
	return c, nil
}

func (r ContractRepo) List(_ context.Context, filter ports.ContractFilter) ([]economy.Contract, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []economy.Contract{}
	for _, c := range r.store.contracts {
		if !matchContract(c, filter) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r ContractRepo) Create(_ context.Context, contract economy.Contract) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.contracts[contract.ID]; exists {
		return ports.ErrConflict
	}
	r.store.contracts[contract.ID] = contract
	r.store.writes++
	return nil
}

func (r ContractRepo) Update(_ context.Context, contract economy.Contract) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.contracts[contract.ID]; !exists {
		return ports.ErrNotFound
	}
	r.store.contracts[contract.ID] = contract
	r.store.writes++
	return nil
}

func matchContract(c economy.Contract, f ports.ContractFilter) bool {
	if f.Buyer != "" && c.Buyer != f.Buyer {
		return false
	}
	if f.Seller != "" && c.Seller != f.Seller {
		return false
	}
	if f.SellerBuilding != "" && c.SellerBuilding != f.SellerBuilding {
		return false
	}
	if f.BuyerBuilding != "" && c.BuyerBuilding != f.BuyerBuilding {
		return false
	}
	if f.ResourceType != "" && c.ResourceType != f.ResourceType {
		return false
	}
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	return true
}
