package postgres

import (
	"time"

	"github.com/lib/pq"
)

type standingSnapshotTableModel struct {
	ID        int64          `db:"id"`
	SeasonID  string         `db:"season_public_id"`
	TeamIDs   pq.StringArray `db:"team_ids"`
	CreatedAt time.Time      `db:"created_at"`
}

type standingSnapshotInsertModel struct {
	SeasonID string         `db:"season_public_id"`
	TeamIDs  pq.StringArray `db:"team_ids"`
}
