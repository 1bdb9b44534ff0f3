package match

import (
	"errors"
	"fmt"
)

var ErrIllegalTransition = errors.New("illegal match transition")

var transitions = map[Status]map[Status]struct{}{
	StatusChallenged: {
		StatusDateSet:             {},
		StatusPendingConfirmation: {},
		StatusCompleted:           {},
		StatusWithdrawn:           {},
		StatusForfeited:           {},
	},
	StatusDateSet: {
		StatusDateSet:             {},
		StatusPendingConfirmation: {},
		StatusCompleted:           {},
		StatusWithdrawn:           {},
		StatusForfeited:           {},
	},
	StatusPendingConfirmation: {
		StatusCompleted: {},
		StatusDisputed:  {},
		StatusForfeited: {},
	},
	StatusDisputed: {
		StatusCompleted: {},
		StatusForfeited: {},
	},
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusWithdrawn, StatusForfeited:
		return true
	default:
		return false
	}
}

// IsOpen reports whether a match in s still blocks new challenges for its teams.
func (s Status) IsOpen() bool {
	return s.Valid() && !s.IsTerminal()
}

func (s Status) Valid() bool {
	switch s {
	case StatusChallenged, StatusDateSet, StatusPendingConfirmation, StatusDisputed,
		StatusCompleted, StatusWithdrawn, StatusForfeited:
		return true
	default:
		return false
	}
}

// OpenStatuses lists every non-terminal status.
func OpenStatuses() []Status {
	return []Status{StatusChallenged, StatusDateSet, StatusPendingConfirmation, StatusDisputed}
}

func CanTransition(from, to Status) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Transition moves m to status to, or returns ErrIllegalTransition.
func (m *Match) Transition(to Status) error {
	if !CanTransition(m.Status, to) {
		return fmt.Errorf("%w: match=%s %s -> %s", ErrIllegalTransition, m.ID, m.Status, to)
	}
	m.Status = to
	return nil
}
