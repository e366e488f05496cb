package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type BuildingRepo struct {
	db *gorm.DB
}

func NewBuildingRepo(db *gorm.DB) BuildingRepo {
	return BuildingRepo{db: db}
}

func (r BuildingRepo) GetByID(ctx context.Context, id string) (economy.Building, error) {
	var m model.Building
	if err := session(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return economy.Building{}, ports.ErrNotFound
		}
		return economy.Building{}, err
	}
	return toBuilding(m), nil
}

func (r BuildingRepo) List(ctx context.Context, filter ports.BuildingFilter) ([]economy.Building, error) {
	query := session(ctx, r.db).Model(&model.Building{})
	if filter.ID != "" {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}
	if filter.Operator != "" {
		query = query.Where("operator = ?", filter.Operator)
	}
	if filter.Parcel != "" {
		query = query.Where("parcel = ?", filter.Parcel)
	}

	var rows []model.Building
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]economy.Building, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBuilding(row))
	}
	return out, nil
}

func (r BuildingRepo) Update(ctx context.Context, b economy.Building) error {
	res := session(ctx, r.db).Model(&model.Building{}).Where("id = ?", b.ID).Updates(map[string]any{
		"wages":        b.Wages,
		"rent_price":   b.RentPrice,
		"lease_price":  b.LeasePrice,
		"operator":     b.Operator,
		"owner":        b.Owner,
		"social_class": b.SocialClass,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toBuilding(m model.Building) economy.Building {
	return economy.Building{
		ID:          m.ID,
		Type:        m.Type,
		Category:    economy.BuildingCategory(m.Category),
		Owner:       m.Owner,
		Operator:    m.Operator,
		Parcel:      m.Parcel,
		Wages:       m.Wages,
		RentPrice:   m.RentPrice,
		LeasePrice:  m.LeasePrice,
		GrossIncome: m.GrossIncome,
		InputCosts:  m.InputCosts,
		SocialClass: m.SocialClass,
	}
}
