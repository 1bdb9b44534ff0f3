package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	qb "github.com/riskibarqy/pyramid-ladder/internal/platform/querybuilder"
)

type MatchRepository struct {
	db sqlx.ExtContext
}

func NewMatchRepository(db sqlx.ExtContext) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		PublicID:      item.ID,
		SeasonID:      item.SeasonID,
		Team1ID:       item.Team1ID,
		Team2ID:       item.Team2ID,
		Status:        string(item.Status),
		Team1Scores:   intsToArray(item.Team1Scores),
		Team2Scores:   intsToArray(item.Team2Scores),
		WinnerTeamID:  stringPtrToNullString(item.WinnerTeamID),
		EnteredBy:     stringPtrToNullString(item.EnteredBy),
		ChallengeText: item.ChallengeText,
		ScheduledAt:   timePtrToNullTime(item.ScheduledAt),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// GetByID locks the row for the rest of the transaction.
func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("status", string(item.Status)).
		Set("team1_scores", intsToArray(item.Team1Scores)).
		Set("team2_scores", intsToArray(item.Team2Scores)).
		Set("winner_team_public_id", stringPtrToNullString(item.WinnerTeamID)).
		Set("entered_by", stringPtrToNullString(item.EnteredBy)).
		Set("scheduled_at", timePtrToNullTime(item.ScheduledAt)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update match: match %s not found", item.ID)
	}
	return nil
}

func (r *MatchRepository) HasOpenMatch(ctx context.Context, seasonID, teamID string) (bool, error) {
	open := match.OpenStatuses()
	statuses := make([]any, 0, len(open))
	for _, status := range open {
		statuses = append(statuses, string(status))
	}

	query, args, err := qb.Select("1").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Expr("(team1_public_id = ? OR team2_public_id = ?)", teamID, teamID),
			qb.In("status", statuses),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build open match query: %w", err)
	}

	var found int
	if err := sqlx.GetContext(ctx, r.db, &found, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check open match: %w", err)
	}
	return true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.PublicID,
		SeasonID:      row.SeasonID,
		Team1ID:       row.Team1ID,
		Team2ID:       row.Team2ID,
		Status:        match.Status(row.Status),
		Team1Scores:   arrayToInts(row.Team1Scores),
		Team2Scores:   arrayToInts(row.Team2Scores),
		WinnerTeamID:  nullStringToStringPtr(row.WinnerTeamID),
		EnteredBy:     nullStringToStringPtr(row.EnteredBy),
		ChallengeText: row.ChallengeText,
		ScheduledAt:   nullTimeToTimePtr(row.ScheduledAt),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}
