package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type RelationshipRepo struct {
	db *gorm.DB
}

func NewRelationshipRepo(db *gorm.DB) RelationshipRepo {
	return RelationshipRepo{db: db}
}

// Relationships are stored under the sorted citizen pair so (a, b) and
// (b, a) land on the same row.
func orderPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

func (r RelationshipRepo) Get(ctx context.Context, citizenA, citizenB string) (economy.Relationship, error) {
	a, b := orderPair(citizenA, citizenB)
	var m model.Relationship
	err := session(ctx, r.db).
		Where("citizen_a = ? AND citizen_b = ?", a, b).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return economy.Relationship{}, ports.ErrNotFound
		}
		return economy.Relationship{}, err
	}
	return economy.Relationship{
		CitizenA:        m.CitizenA,
		CitizenB:        m.CitizenB,
		TrustScore:      m.TrustScore,
		LastInteraction: m.LastInteraction,
	}, nil
}

func (r RelationshipRepo) Upsert(ctx context.Context, rel economy.Relationship) error {
	a, b := orderPair(rel.CitizenA, rel.CitizenB)
	m := model.Relationship{
		CitizenA:        a,
		CitizenB:        b,
		TrustScore:      rel.TrustScore,
		LastInteraction: rel.LastInteraction,
	}
	return session(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "citizen_a"}, {Name: "citizen_b"}},
		UpdateAll: true,
	}).Create(&m).Error
}
