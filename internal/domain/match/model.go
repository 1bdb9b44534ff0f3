package match

import "time"

type Status string

const (
	StatusChallenged          Status = "challenged"
	StatusDateSet             Status = "date_set"
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusDisputed            Status = "disputed"
	StatusCompleted           Status = "completed"
	StatusWithdrawn           Status = "withdrawn"
	StatusForfeited           Status = "forfeited"
)

// Match is one challenge between two teams of a season. Team1 is always the
// challenger and never changes after creation.
type Match struct {
	ID            string
	SeasonID      string
	Team1ID       string
	Team2ID       string
	Status        Status
	Team1Scores   []int
	Team2Scores   []int
	WinnerTeamID  *string
	EnteredBy     *string
	ChallengeText string
	ScheduledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m Match) ChallengerTeamID() string {
	return m.Team1ID
}

func (m Match) ChallengeeTeamID() string {
	return m.Team2ID
}

// Involves reports whether teamID is one of the two sides.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.Team1ID == teamID || m.Team2ID == teamID)
}

// Opponent returns the other side of teamID, or "" when teamID is not playing.
func (m Match) Opponent(teamID string) string {
	switch teamID {
	case m.Team1ID:
		return m.Team2ID
	case m.Team2ID:
		return m.Team1ID
	default:
		return ""
	}
}
