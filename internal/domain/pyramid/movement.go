package pyramid

type Movement string

const (
	MovementUp   Movement = "up"
	MovementDown Movement = "down"
	MovementNone Movement = "none"
)

// ComputeMovement compares the team's index in two rank orderings. A nil
// previous ordering, or a team missing from either one, yields MovementNone.
func ComputeMovement(teamID string, current, previous []string) Movement {
	if previous == nil {
		return MovementNone
	}

	currentIdx := indexOf(current, teamID)
	previousIdx := indexOf(previous, teamID)
	if currentIdx < 0 || previousIdx < 0 {
		return MovementNone
	}

	switch {
	case currentIdx < previousIdx:
		return MovementUp
	case currentIdx > previousIdx:
		return MovementDown
	default:
		return MovementNone
	}
}

func indexOf(order []string, teamID string) int {
	for i, id := range order {
		if id == teamID {
			return i
		}
	}
	return -1
}
