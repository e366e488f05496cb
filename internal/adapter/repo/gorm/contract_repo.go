package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type ContractRepo struct {
	db *gorm.DB
}

func NewContractRepo(db *gorm.DB) ContractRepo {
	return ContractRepo{db: db}
}

func (r ContractRepo) GetByID(ctx context.Context, id string) (economy.Contract, error) {
	var m model.Contract
	if err := session(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return economy.Contract{}, ports.ErrNotFound
		}
		return economy.Contract{}, err
	}
	return toContract(m)
}

func (r ContractRepo) List(ctx context.Context, filter ports.ContractFilter) ([]economy.Contract, error) {
	query := session(ctx, r.db).Model(&model.Contract{})
	if filter.Buyer != "" {
		query = query.Where("buyer = ?", filter.Buyer)
	}
	if filter.Seller != "" {
		query = query.Where("seller = ?", filter.Seller)
	}
	if filter.SellerBuilding != "" {
		query = query.Where("seller_building = ?", filter.SellerBuilding)
	}
	if filter.BuyerBuilding != "" {
		query = query.Where("buyer_building = ?", filter.BuyerBuilding)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []model.Contract
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]economy.Contract, 0, len(rows))
	for _, row := range rows {
		c, err := toContract(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r ContractRepo) Create(ctx context.Context, contract economy.Contract) error {
	m, err := fromContract(contract)
	if err != nil {
		return err
	}
	if err := session(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r ContractRepo) Update(ctx context.Context, contract economy.Contract) error {
	m, err := fromContract(contract)
	if err != nil {
		return err
	}
	res := session(ctx, r.db).Model(&model.Contract{}).Where("id = ?", m.ID).Updates(map[string]any{
		"kind":            m.Kind,
		"buyer":           m.Buyer,
		"seller":          m.Seller,
		"seller_building": m.SellerBuilding,
		"buyer_building":  m.BuyerBuilding,
		"resource_type":   m.ResourceType,
		"price_per_unit":  m.PricePerUnit,
		"target_amount":   m.TargetAmount,
		"status":          m.Status,
		"end_at":          m.EndAt,
		"metadata":        m.Metadata,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toContract(m model.Contract) (economy.Contract, error) {
	var md economy.Metadata
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &md); err != nil {
			return economy.Contract{}, err
		}
	}
	return economy.Contract{
		ID:             m.ID,
		Kind:           economy.ContractKind(m.Kind),
		Buyer:          m.Buyer,
		Seller:         m.Seller,
		SellerBuilding: m.SellerBuilding,
		BuyerBuilding:  m.BuyerBuilding,
		ResourceType:   m.ResourceType,
		PricePerUnit:   m.PricePerUnit,
		TargetAmount:   m.TargetAmount,
		Status:         economy.ContractStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		EndAt:          m.EndAt,
		Metadata:       md,
	}, nil
}

func fromContract(c economy.Contract) (model.Contract, error) {
	var md []byte
	if !c.Metadata.IsZero() {
		b, err := json.Marshal(c.Metadata)
		if err != nil {
			return model.Contract{}, err
		}
		md = b
	}
	return model.Contract{
		ID:             c.ID,
		Kind:           string(c.Kind),
		Buyer:          c.Buyer,
		Seller:         c.Seller,
		SellerBuilding: c.SellerBuilding,
		BuyerBuilding:  c.BuyerBuilding,
		ResourceType:   c.ResourceType,
		PricePerUnit:   c.PricePerUnit,
		TargetAmount:   c.TargetAmount,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		EndAt:          c.EndAt,
		Metadata:       md,
	}, nil
}
