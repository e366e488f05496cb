package ports

import (
	"context"

	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type CatalogProvider interface {
	ResourceTypes(ctx context.Context) (map[string]economy.ResourceDef, error)
	BuildingTypes(ctx context.Context) (map[string]economy.BuildingDef, error)
}
