package event

import "time"

type Type string

const (
	TypeSeasonCreated    Type = "season_created"
	TypeNewPlayer        Type = "new_player"
	TypeChallengeCreated Type = "challenge_created"
	TypeMatchDateSet     Type = "match_date_set"
	TypeResultEntered    Type = "result_entered"
	TypeResultConfirmed  Type = "result_confirmed"
	TypeResultDisputed   Type = "result_disputed"
	TypeMatchForfeited   Type = "match_forfeited"
	TypeMatchWithdrawn   Type = "match_withdrawn"
)

// Event is an append-only feed record written alongside a state change.
type Event struct {
	ID        string
	ClubID    string
	PlayerID  string
	Type      Type
	Metadata  map[string]any
	CreatedAt time.Time
}
