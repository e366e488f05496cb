package memory

import (
	"sync"

	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

// Store is the in-memory mirror of the record store, used by usecase tests.
// It tracks write counts so the dry-run invariant (zero store writes) is
// directly assertable.
type Store struct {
	mu            sync.RWMutex
	contracts     map[string]economy.Contract
	buildings     map[string]economy.Building
	stocks        map[string]economy.ResourceStock
	relationships map[string]economy.Relationship
	problems      map[string]economy.Problem
	stratagems    map[string]economy.Stratagem
	writes        int
}

func NewStore() *Store {
	return &Store{
		contracts:     make(map[string]economy.Contract),
		buildings:     make(map[string]economy.Building),
		stocks:        make(map[string]economy.ResourceStock),
		relationships: make(map[string]economy.Relationship),
		problems:      make(map[string]economy.Problem),
		stratagems:    make(map[string]economy.Stratagem),
	}
}

func stockKey(resourceType, buildingID, owner string) string {
	return resourceType + "::" + buildingID + "::" + owner
}

func relKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "::" + b
}

func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *Store) SeedContract(c economy.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts[c.ID] = c
}

func (s *Store) SeedBuilding(b economy.Building) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buildings[b.ID] = b
}

func (s *Store) SeedStock(st economy.ResourceStock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks[stockKey(st.ResourceType, st.BuildingID, st.Owner)] = st
}

func (s *Store) SeedRelationship(r economy.Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relationships[relKey(r.CitizenA, r.CitizenB)] = r
}

func (s *Store) SeedStratagem(st economy.Stratagem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stratagems[st.ID] = st
}

func (s *Store) SeedProblem(p economy.Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.problems[p.ID] = p
}

func (s *Store) Contract(id string) (economy.Contract, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contracts[id]
	return c, ok
}

func (s *Store) Building(id string) (economy.Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buildings[id]
	return b, ok
}

func (s *Store) Relationship(a, b string) (economy.Relationship, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relationships[relKey(a, b)]
	return r, ok
}

func (s *Store) Stratagem(id string) (economy.Stratagem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stratagems[id]
	return st, ok
}

func (s *Store) Problems() []economy.Problem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]economy.Problem, 0, len(s.problems))
	for _, p := range s.problems {
		out = append(out, p)
	}
	return out
}

func (s *Store) Contracts() []economy.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]economy.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		out = append(out, c)
	}
	return out
}
