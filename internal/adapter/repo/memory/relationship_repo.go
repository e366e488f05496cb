package memory

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type RelationshipRepo struct {
	store *Store
}

func NewRelationshipRepo(store *Store) RelationshipRepo {
	return RelationshipRepo{store: store}
}

func (r RelationshipRepo) Get(_ context.Context, citizenA, citizenB string) (economy.Relationship, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rel, ok := r.store.relationships[relKey(citizenA, citizenB)]
	if !ok {
		return economy.Relationship{}, ports.ErrNotFound
	}
	return rel, nil
}

func (r RelationshipRepo) Upsert(_ context.Context, rel economy.Relationship) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.relationships[relKey(rel.CitizenA, rel.CitizenB)] = rel
	r.store.writes++
	return nil
}
