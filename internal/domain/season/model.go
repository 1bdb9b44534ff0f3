package season

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Season is one ranking competition of a club.
type Season struct {
	ID                   string
	ClubID               string
	Name                 string
	Status               Status
	MinTeamSize          int
	MaxTeamSize          int
	BestOf               int
	OpenEnrollment       bool
	RequiresConfirmation bool
	MatchDeadlineDays    int
	ReminderDays         int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (s Season) IsTeamSeason() bool {
	return s.MaxTeamSize > 1
}

// AcceptsTeamSize reports whether a team of n players fits the season bounds.
func (s Season) AcceptsTeamSize(n int) bool {
	return n >= s.MinTeamSize && n <= s.MaxTeamSize
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.ClubID == "" {
		return fmt.Errorf("season club id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.MinTeamSize < 1 || s.MaxTeamSize < s.MinTeamSize {
		return fmt.Errorf("invalid team size bounds min=%d max=%d", s.MinTeamSize, s.MaxTeamSize)
	}
	if s.BestOf < 1 || s.BestOf%2 == 0 {
		return fmt.Errorf("best of must be a positive odd number, got %d", s.BestOf)
	}
	if s.MatchDeadlineDays < 0 || s.ReminderDays < 0 {
		return fmt.Errorf("day counts cannot be negative")
	}
	return nil
}

// CanMoveTo reports whether the season lifecycle allows from -> to.
func CanMoveTo(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusActive
	case StatusActive:
		return to == StatusEnded
	default:
		return false
	}
}
