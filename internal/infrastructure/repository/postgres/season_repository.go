package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	qb "github.com/riskibarqy/pyramid-ladder/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db sqlx.ExtContext
}

func NewSeasonRepository(db sqlx.ExtContext) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	query, args, err := qb.InsertModel("seasons", seasonInsertModel{
		PublicID:             item.ID,
		ClubID:               item.ClubID,
		Name:                 item.Name,
		Status:               string(item.Status),
		MinTeamSize:          item.MinTeamSize,
		MaxTeamSize:          item.MaxTeamSize,
		BestOf:               item.BestOf,
		OpenEnrollment:       item.OpenEnrollment,
		RequiresConfirmation: item.RequiresConfirmation,
		MatchDeadlineDays:    item.MatchDeadlineDays,
		ReminderDays:         item.ReminderDays,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("public_id", seasonID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return season.Season{
		ID:                   row.PublicID,
		ClubID:               row.ClubID,
		Name:                 row.Name,
		Status:               season.Status(row.Status),
		MinTeamSize:          row.MinTeamSize,
		MaxTeamSize:          row.MaxTeamSize,
		BestOf:               row.BestOf,
		OpenEnrollment:       row.OpenEnrollment,
		RequiresConfirmation: row.RequiresConfirmation,
		MatchDeadlineDays:    row.MatchDeadlineDays,
		ReminderDays:         row.ReminderDays,
		CreatedAt:            row.CreatedAt.UTC(),
		UpdatedAt:            row.UpdatedAt.UTC(),
	}, true, nil
}

func (r *SeasonRepository) UpdateStatus(ctx context.Context, seasonID string, status season.Status) error {
	query, args, err := qb.Update("seasons").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season status query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update season status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update season status: season %s not found", seasonID)
	}
	return nil
}
