package postgres

import (
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	SeasonID  string         `db:"season_public_id"`
	PlayerIDs pq.StringArray `db:"player_ids"`
	OptedOut  bool           `db:"opted_out"`
	CreatedAt time.Time      `db:"created_at"`
}

type teamInsertModel struct {
	PublicID  string         `db:"public_id"`
	SeasonID  string         `db:"season_public_id"`
	PlayerIDs pq.StringArray `db:"player_ids"`
	OptedOut  bool           `db:"opted_out"`
	CreatedAt time.Time      `db:"created_at"`
}
