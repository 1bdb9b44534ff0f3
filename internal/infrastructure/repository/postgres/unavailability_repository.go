package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
	qb "github.com/riskibarqy/pyramid-ladder/internal/platform/querybuilder"
)

type unavailabilityInsertModel struct {
	PublicID string    `db:"public_id"`
	PlayerID string    `db:"player_id"`
	StartsAt time.Time `db:"starts_at"`
	EndsAt   time.Time `db:"ends_at"`
}

type UnavailabilityRepository struct {
	db sqlx.ExtContext
}

func NewUnavailabilityRepository(db sqlx.ExtContext) *UnavailabilityRepository {
	return &UnavailabilityRepository{db: db}
}

func (r *UnavailabilityRepository) Create(ctx context.Context, item unavailability.Period) error {
	query, args, err := qb.InsertModel("unavailability_periods", unavailabilityInsertModel{
		PublicID: item.ID,
		PlayerID: item.PlayerID,
		StartsAt: item.From.UTC(),
		EndsAt:   item.Until.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert unavailability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert unavailability: %w", err)
	}
	return nil
}

func (r *UnavailabilityRepository) UnavailableTeamIDs(ctx context.Context, seasonID string, at time.Time) (map[string]struct{}, error) {
	query, args, err := qb.Select("DISTINCT t.public_id").
		From("teams t JOIN unavailability_periods u ON u.player_id = ANY(t.player_ids)").
		Where(
			qb.Eq("t.season_public_id", seasonID),
			qb.Expr("u.starts_at <= ?", at.UTC()),
			qb.Expr("u.ends_at > ?", at.UTC()),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build unavailable teams query: %w", err)
	}

	var teamIDs []string
	if err := sqlx.SelectContext(ctx, r.db, &teamIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list unavailable teams: %w", err)
	}
	out := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		out[id] = struct{}{}
	}
	return out, nil
}
