package standing

import (
	"errors"
	"fmt"
)

var ErrTeamNotRanked = errors.New("team missing from standings")

// ApplyResult returns the ordering that follows a decided match. Only a
// challenger beating a team ranked above it changes the ladder: the winner
// takes the loser's slot and everyone in between shifts down by one.
func ApplyResult(order []string, winnerTeamID, loserTeamID, challengerTeamID string) ([]string, error) {
	winnerIdx := indexOf(order, winnerTeamID)
	if winnerIdx < 0 {
		return nil, fmt.Errorf("%w: winner=%s", ErrTeamNotRanked, winnerTeamID)
	}
	loserIdx := indexOf(order, loserTeamID)
	if loserIdx < 0 {
		return nil, fmt.Errorf("%w: loser=%s", ErrTeamNotRanked, loserTeamID)
	}

	next := make([]string, len(order))
	copy(next, order)
	if winnerTeamID != challengerTeamID || winnerIdx <= loserIdx {
		return next, nil
	}

	return MoveToIndex(next, winnerIdx, loserIdx), nil
}

// MoveToIndex moves the element at from to position to, shifting the
// elements in between. The input slice is modified and returned.
func MoveToIndex(order []string, from, to int) []string {
	if from == to || from < 0 || to < 0 || from >= len(order) || to >= len(order) {
		return order
	}

	moved := order[from]
	if from > to {
		copy(order[to+1:from+1], order[to:from])
	} else {
		copy(order[from:to], order[from+1:to+1])
	}
	order[to] = moved
	return order
}

// AppendTeam returns order with teamID added at the bottom. A team already
// ranked is left in place.
func AppendTeam(order []string, teamID string) []string {
	next := make([]string, 0, len(order)+1)
	next = append(next, order...)
	if indexOf(order, teamID) >= 0 {
		return next
	}
	return append(next, teamID)
}

func indexOf(order []string, teamID string) int {
	for i, id := range order {
		if id == teamID {
			return i
		}
	}
	return -1
}
