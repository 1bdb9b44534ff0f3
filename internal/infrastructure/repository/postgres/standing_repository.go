package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	qb "github.com/riskibarqy/pyramid-ladder/internal/platform/querybuilder"
)

// StandingRepository is the append-only snapshot log. created_at defaults to
// clock_timestamp() and id is a sequence, so (created_at, id) orders appends
// made inside one transaction too.
type StandingRepository struct {
	db sqlx.ExtContext
}

func NewStandingRepository(db sqlx.ExtContext) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) Latest(ctx context.Context, seasonID string) (standing.Snapshot, bool, error) {
	return r.nth(ctx, seasonID, 0)
}

func (r *StandingRepository) Previous(ctx context.Context, seasonID string) (standing.Snapshot, bool, error) {
	return r.nth(ctx, seasonID, 1)
}

func (r *StandingRepository) Recent(ctx context.Context, seasonID string, limit int) ([]standing.Snapshot, error) {
	if limit <= 0 {
		return []standing.Snapshot{}, nil
	}
	query, args, err := qb.Select("id", "season_public_id", "team_ids", "created_at").From("standing_snapshots").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build recent standings query: %w", err)
	}

	var rows []standingSnapshotTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent standings: %w", err)
	}
	out := make([]standing.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, nil
}

func (r *StandingRepository) Append(ctx context.Context, seasonID string, teamIDs []string) (standing.Snapshot, error) {
	ids := pq.StringArray(append([]string{}, teamIDs...))
	query, args, err := qb.InsertModel("standing_snapshots", standingSnapshotInsertModel{
		SeasonID: seasonID,
		TeamIDs:  ids,
	}, "RETURNING id, season_public_id, team_ids, created_at")
	if err != nil {
		return standing.Snapshot{}, fmt.Errorf("build append standings query: %w", err)
	}

	var row standingSnapshotTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return standing.Snapshot{}, fmt.Errorf("append standings: %w", err)
	}
	return snapshotFromRow(row), nil
}

func (r *StandingRepository) Count(ctx context.Context, seasonID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("standing_snapshots").
		Where(qb.Eq("season_public_id", seasonID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count standings query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count standings: %w", err)
	}
	return count, nil
}

func (r *StandingRepository) nth(ctx context.Context, seasonID string, offset int) (standing.Snapshot, bool, error) {
	query, args, err := qb.Select("id", "season_public_id", "team_ids", "created_at").From("standing_snapshots").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		Offset(offset).
		ToSQL()
	if err != nil {
		return standing.Snapshot{}, false, fmt.Errorf("build get standings query: %w", err)
	}

	var row standingSnapshotTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Snapshot{}, false, nil
		}
		return standing.Snapshot{}, false, fmt.Errorf("get standings: %w", err)
	}
	return snapshotFromRow(row), true, nil
}

func snapshotFromRow(row standingSnapshotTableModel) standing.Snapshot {
	return standing.Snapshot{
		ID:        row.ID,
		SeasonID:  row.SeasonID,
		TeamIDs:   stringsOrEmpty(row.TeamIDs),
		CreatedAt: row.CreatedAt.UTC(),
	}
}
