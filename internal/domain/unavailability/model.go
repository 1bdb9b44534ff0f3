package unavailability

import "time"

// Period is a time range during which a player can neither challenge nor be
// challenged. Until is exclusive.
type Period struct {
	ID       string
	PlayerID string
	From     time.Time
	Until    time.Time
}

func (p Period) Covers(at time.Time) bool {
	return !at.Before(p.From) && at.Before(p.Until)
}
