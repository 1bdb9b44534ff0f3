package match

// Side identifies which team of a match a score array belongs to.
type Side int

const (
	SideNone Side = iota
	SideTeam1
	SideTeam2
)

// Majority is the number of set wins that decides a best-of-N contest.
func Majority(bestOf int) int {
	return (bestOf + 1) / 2
}

// ValidateScores reports whether the two per-set score arrays describe a
// complete best-of-N contest: every set has a strict winner, no score is
// negative, exactly one side reaches the majority and it does so on the last
// set played.
func ValidateScores(side1, side2 []int, bestOf int) bool {
	if bestOf < 1 || len(side1) == 0 || len(side1) != len(side2) || len(side1) > bestOf {
		return false
	}

	majority := Majority(bestOf)
	wins1, wins2 := 0, 0
	last := len(side1) - 1
	for i := range side1 {
		a, b := side1[i], side2[i]
		if a < 0 || b < 0 || a == b {
			return false
		}
		if a > b {
			wins1++
		} else {
			wins2++
		}
		if i < last && (wins1 >= majority || wins2 >= majority) {
			return false
		}
	}

	return (wins1 == majority) != (wins2 == majority)
}

// SetWins tallies sets won per side. Tied sets count for neither.
func SetWins(side1, side2 []int) (int, int) {
	wins1, wins2 := 0, 0
	for i := 0; i < len(side1) && i < len(side2); i++ {
		switch {
		case side1[i] > side2[i]:
			wins1++
		case side2[i] > side1[i]:
			wins2++
		}
	}
	return wins1, wins2
}

// DecideWinner returns the side holding the set-win majority, SideNone when
// the scores do not validate.
func DecideWinner(side1, side2 []int, bestOf int) Side {
	if !ValidateScores(side1, side2, bestOf) {
		return SideNone
	}
	wins1, wins2 := SetWins(side1, side2)
	if wins1 > wins2 {
		return SideTeam1
	}
	return SideTeam2
}
