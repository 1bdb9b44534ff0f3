package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
)

type TeamRepository struct {
	db access
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	var err error
	r.db.write(func(st *state) {
		if _, exists := st.teams[item.ID]; exists {
			err = fmt.Errorf("team %s already exists", item.ID)
			return
		}
		st.teams[item.ID] = cloneTeam(item)
	})
	return err
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	var (
		item team.Team
		ok   bool
	)
	r.db.read(func(st *state) {
		item, ok = st.teams[teamID]
		item = cloneTeam(item)
	})
	return item, ok, nil
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	out := make([]team.Team, 0)
	r.db.read(func(st *state) {
		for _, item := range st.teams {
			if item.SeasonID == seasonID {
				out = append(out, cloneTeam(item))
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

func (r *TeamRepository) SetOptedOut(_ context.Context, teamID string, optedOut bool) error {
	var err error
	r.db.write(func(st *state) {
		item, ok := st.teams[teamID]
		if !ok {
			err = fmt.Errorf("team %s not found", teamID)
			return
		}
		item.OptedOut = optedOut
		st.teams[teamID] = item
	})
	return err
}

func cloneTeam(item team.Team) team.Team {
	copied := item
	copied.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return copied
}
