package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
)

type UnavailabilityRepository struct {
	db access
}

func (r *UnavailabilityRepository) Create(_ context.Context, item unavailability.Period) error {
	if !item.From.Before(item.Until) {
		return fmt.Errorf("unavailability %s ends before it starts", item.ID)
	}
	r.db.write(func(st *state) {
		st.periods = append(st.periods, item)
	})
	return nil
}

func (r *UnavailabilityRepository) UnavailableTeamIDs(_ context.Context, seasonID string, at time.Time) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	r.db.read(func(st *state) {
		away := make(map[string]struct{})
		for _, period := range st.periods {
			if period.Covers(at) {
				away[period.PlayerID] = struct{}{}
			}
		}
		if len(away) == 0 {
			return
		}
		for _, item := range st.teams {
			if item.SeasonID != seasonID {
				continue
			}
			for _, playerID := range item.PlayerIDs {
				if _, ok := away[playerID]; ok {
					out[item.ID] = struct{}{}
					break
				}
			}
		}
	})
	return out, nil
}
