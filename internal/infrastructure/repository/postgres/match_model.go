package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	SeasonID      string         `db:"season_public_id"`
	Team1ID       string         `db:"team1_public_id"`
	Team2ID       string         `db:"team2_public_id"`
	Status        string         `db:"status"`
	Team1Scores   pq.Int64Array  `db:"team1_scores"`
	Team2Scores   pq.Int64Array  `db:"team2_scores"`
	WinnerTeamID  sql.NullString `db:"winner_team_public_id"`
	EnteredBy     sql.NullString `db:"entered_by"`
	ChallengeText string         `db:"challenge_text"`
	ScheduledAt   sql.NullTime   `db:"scheduled_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID      string         `db:"public_id"`
	SeasonID      string         `db:"season_public_id"`
	Team1ID       string         `db:"team1_public_id"`
	Team2ID       string         `db:"team2_public_id"`
	Status        string         `db:"status"`
	Team1Scores   pq.Int64Array  `db:"team1_scores"`
	Team2Scores   pq.Int64Array  `db:"team2_scores"`
	WinnerTeamID  sql.NullString `db:"winner_team_public_id"`
	EnteredBy     sql.NullString `db:"entered_by"`
	ChallengeText string         `db:"challenge_text"`
	ScheduledAt   sql.NullTime   `db:"scheduled_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
