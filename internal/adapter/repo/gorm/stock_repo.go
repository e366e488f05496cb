package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type StockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepo {
	return StockRepo{db: db}
}

func (r StockRepo) Get(ctx context.Context, resourceType, buildingID, owner string) (economy.ResourceStock, error) {
	var m model.ResourceStock
	err := session(ctx, r.db).
		Where("resource_type = ? AND building_id = ? AND owner = ?", resourceType, buildingID, owner).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return economy.ResourceStock{}, ports.ErrNotFound
		}
		return economy.ResourceStock{}, err
	}
	return economy.ResourceStock{
		ResourceType: m.ResourceType,
		BuildingID:   m.BuildingID,
		Owner:        m.Owner,
		Quantity:     m.Quantity,
	}, nil
}
