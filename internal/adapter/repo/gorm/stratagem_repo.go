package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type StratagemRepo struct {
	db *gorm.DB
}

func NewStratagemRepo(db *gorm.DB) StratagemRepo {
	return StratagemRepo{db: db}
}

func (r StratagemRepo) GetByID(ctx context.Context, id string) (economy.Stratagem, error) {
	var m model.Stratagem
	if err := session(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return economy.Stratagem{}, ports.ErrNotFound
		}
		return economy.Stratagem{}, err
	}
	return toStratagem(m), nil
}

func (r StratagemRepo) ListOpen(ctx context.Context) ([]economy.Stratagem, error) {
	var rows []model.Stratagem
	err := session(ctx, r.db).
		Where("status NOT IN ?", []string{
			string(economy.StratagemExpired),
			string(economy.StratagemFailed),
		}).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]economy.Stratagem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toStratagem(row))
	}
	return out, nil
}

func (r StratagemRepo) Create(ctx context.Context, s economy.Stratagem) error {
	m := fromStratagem(s)
	if err := session(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r StratagemRepo) Update(ctx context.Context, s economy.Stratagem) error {
	m := fromStratagem(s)
	res := session(ctx, r.db).Model(&model.Stratagem{}).Where("id = ?", m.ID).Updates(map[string]any{
		"status":     m.Status,
		"suspended":  m.Suspended,
		"expires_at": m.ExpiresAt,
		"notes":      m.Notes,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toStratagem(m model.Stratagem) economy.Stratagem {
	return economy.Stratagem{
		ID:           m.ID,
		Kind:         m.Kind,
		Initiator:    m.Initiator,
		Supplier:     m.Supplier,
		ResourceType: m.ResourceType,
		PremiumPct:   m.PremiumPct,
		DurationDays: m.DurationDays,
		Status:       economy.StratagemStatus(m.Status),
		Suspended:    m.Suspended,
		CreatedAt:    m.CreatedAt,
		ExpiresAt:    m.ExpiresAt,
		Notes:        m.Notes,
	}
}

func fromStratagem(s economy.Stratagem) model.Stratagem {
	return model.Stratagem{
		ID:           s.ID,
		Kind:         s.Kind,
		Initiator:    s.Initiator,
		Supplier:     s.Supplier,
		ResourceType: s.ResourceType,
		PremiumPct:   s.PremiumPct,
		DurationDays: s.DurationDays,
		Status:       string(s.Status),
		Suspended:    s.Suspended,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
		Notes:        s.Notes,
	}
}
