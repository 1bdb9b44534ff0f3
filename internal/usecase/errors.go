package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")

	ErrIllegalChallenge  = errors.New("illegal challenge")
	ErrUnavailableTeam   = errors.New("team unavailable")
	ErrChallengeConflict = errors.New("challenge conflict")
	ErrInvalidScores     = errors.New("invalid scores")

	// ErrDataIntegrity marks failures callers must not retry or show verbatim.
	ErrDataIntegrity = errors.New("data integrity violation")
	ErrMatchNotFound = fmt.Errorf("%w: match not found", ErrDataIntegrity)
	ErrInvalidState  = fmt.Errorf("%w: invalid state transition", ErrDataIntegrity)
)

// UnavailableTeamError names the side that blocked a challenge.
type UnavailableTeamError struct {
	TeamID     string
	Challenger bool
}

func (e *UnavailableTeamError) Error() string {
	side := "challengee"
	if e.Challenger {
		side = "challenger"
	}
	return fmt.Sprintf("%s: %s team=%s", ErrUnavailableTeam, side, e.TeamID)
}

func (e *UnavailableTeamError) Unwrap() error {
	return ErrUnavailableTeam
}
