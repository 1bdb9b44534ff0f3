package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
)

type MatchRepository struct {
	db access
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	var err error
	r.db.write(func(st *state) {
		if _, exists := st.matches[item.ID]; exists {
			err = fmt.Errorf("match %s already exists", item.ID)
			return
		}
		st.matches[item.ID] = cloneMatch(item)
	})
	return err
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	var (
		item match.Match
		ok   bool
	)
	r.db.read(func(st *state) {
		item, ok = st.matches[matchID]
		item = cloneMatch(item)
	})
	return item, ok, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	var err error
	r.db.write(func(st *state) {
		if _, exists := st.matches[item.ID]; !exists {
			err = fmt.Errorf("match %s not found", item.ID)
			return
		}
		st.matches[item.ID] = cloneMatch(item)
	})
	return err
}

func (r *MatchRepository) HasOpenMatch(_ context.Context, seasonID, teamID string) (bool, error) {
	var open bool
	r.db.read(func(st *state) {
		for _, item := range st.matches {
			if item.SeasonID == seasonID && item.Involves(teamID) && item.Status.IsOpen() {
				open = true
				return
			}
		}
	})
	return open, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	out := make([]match.Match, 0)
	r.db.read(func(st *state) {
		for _, item := range st.matches {
			if item.SeasonID == seasonID {
				out = append(out, cloneMatch(item))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneMatch(item match.Match) match.Match {
	copied := item
	if item.Team1Scores != nil {
		copied.Team1Scores = append([]int(nil), item.Team1Scores...)
	}
	if item.Team2Scores != nil {
		copied.Team2Scores = append([]int(nil), item.Team2Scores...)
	}
	if item.WinnerTeamID != nil {
		winner := *item.WinnerTeamID
		copied.WinnerTeamID = &winner
	}
	if item.EnteredBy != nil {
		enteredBy := *item.EnteredBy
		copied.EnteredBy = &enteredBy
	}
	if item.ScheduledAt != nil {
		at := *item.ScheduledAt
		copied.ScheduledAt = &at
	}
	return copied
}
