package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/universe-engine-ai/serenissima-sub006/internal/adapter/repo/gorm/model"
	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
	"github.com/universe-engine-ai/serenissima-sub006/internal/domain/economy"
)

type ProblemRepo struct {
	db *gorm.DB
}

func NewProblemRepo(db *gorm.DB) ProblemRepo {
	return ProblemRepo{db: db}
}

func (r ProblemRepo) List(ctx context.Context, filter ports.ProblemFilter) ([]economy.Problem, error) {
	query := session(ctx, r.db).Model(&model.Problem{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}

	var rows []model.Problem
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]economy.Problem, 0, len(rows))
	for _, row := range rows {
		var solutions []string
		if len(row.SuggestedSolutions) > 0 {
			if err := json.Unmarshal(row.SuggestedSolutions, &solutions); err != nil {
				return nil, err
			}
		}
		out = append(out, economy.Problem{
			ID:                 row.ID,
			Subject:            row.Subject,
			Kind:               row.Kind,
			Severity:           row.Severity,
			Description:        row.Description,
			SuggestedSolutions: solutions,
		})
	}
	return out, nil
}

func (r ProblemRepo) Upsert(ctx context.Context, problem economy.Problem) error {
	var solutions []byte
	if len(problem.SuggestedSolutions) > 0 {
		b, err := json.Marshal(problem.SuggestedSolutions)
		if err != nil {
			return err
		}
		solutions = b
	}
	m := model.Problem{
		ID:                 problem.ID,
		Subject:            problem.Subject,
		Kind:               problem.Kind,
		Severity:           problem.Severity,
		Description:        problem.Description,
		SuggestedSolutions: solutions,
	}
	return session(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&m).Error
}

func (r ProblemRepo) Delete(ctx context.Context, id string) error {
	return session(ctx, r.db).Delete(&model.Problem{}, "id = ?", id).Error
}
