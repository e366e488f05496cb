package ports

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

// ContractFilter is a typed query against the contract collection. Zero
// fields are not part of the filter; adapters must parameterize, never
// interpolate.
type ContractFilter struct {
	Buyer          string
	Seller         string
	SellerBuilding string
	BuyerBuilding  string
	ResourceType   string
	Kind           economy.ContractKind
	Status         economy.ContractStatus
}

type ContractRepository interface {
	GetByID(ctx context.Context, id string) (economy.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]economy.Contract, error)
	Create(ctx context.Context, contract economy.Contract) error
	Update(ctx context.Context, contract economy.Contract) error
}

type BuildingFilter struct {
	ID       string
	Category economy.BuildingCategory
	Owner    string
	Operator string
	Parcel   string
}

type BuildingRepository interface {
	GetByID(ctx context.Context, id string) (economy.Building, error)
	List(ctx context.Context, filter BuildingFilter) ([]economy.Building, error)
	Update(ctx context.Context, building economy.Building) error
}

type StockRepository interface {
	Get(ctx context.Context, resourceType, buildingID, owner string) (economy.ResourceStock, error)
}

type RelationshipRepository interface {
	Get(ctx context.Context, citizenA, citizenB string) (economy.Relationship, error)
	Upsert(ctx context.Context, rel economy.Relationship) error
}

type ProblemFilter struct {
	Kind    string
	Subject string
}

type ProblemRepository interface {
	List(ctx context.Context, filter ProblemFilter) ([]economy.Problem, error)
	Upsert(ctx context.Context, problem economy.Problem) error
	Delete(ctx context.Context, id string) error
}

type StratagemRepository interface {
	GetByID(ctx context.Context, id string) (economy.Stratagem, error)
	ListOpen(ctx context.Context) ([]economy.Stratagem, error)
	Create(ctx context.Context, s economy.Stratagem) error
	Update(ctx context.Context, s economy.Stratagem) error
}
