package standing

import "time"

// Snapshot is one immutable ranking of a season. TeamIDs[0] holds rank 1.
type Snapshot struct {
	ID        int64
	SeasonID  string
	TeamIDs   []string
	CreatedAt time.Time
}

// RankOf returns the 1-based rank of teamID.
func (s Snapshot) RankOf(teamID string) (int, bool) {
	for i, id := range s.TeamIDs {
		if id == teamID {
			return i + 1, true
		}
	}
	return 0, false
}

// TeamAt returns the team holding rank, 1-based.
func (s Snapshot) TeamAt(rank int) (string, bool) {
	if rank < 1 || rank > len(s.TeamIDs) {
		return "", false
	}
	return s.TeamIDs[rank-1], true
}

// Order returns a copy of the rank ordering.
func (s Snapshot) Order() []string {
	out := make([]string, len(s.TeamIDs))
	copy(out, s.TeamIDs)
	return out
}
