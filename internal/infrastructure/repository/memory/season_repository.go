package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
)

type SeasonRepository struct {
	db access
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	var err error
	r.db.write(func(st *state) {
		if _, exists := st.seasons[item.ID]; exists {
			err = fmt.Errorf("season %s already exists", item.ID)
			return
		}
		st.seasons[item.ID] = item
	})
	return err
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	var (
		item season.Season
		ok   bool
	)
	r.db.read(func(st *state) {
		item, ok = st.seasons[seasonID]
	})
	return item, ok, nil
}

func (r *SeasonRepository) UpdateStatus(_ context.Context, seasonID string, status season.Status) error {
	var err error
	r.db.write(func(st *state) {
		item, ok := st.seasons[seasonID]
		if !ok {
			err = fmt.Errorf("season %s not found", seasonID)
			return
		}
		item.Status = status
		item.UpdatedAt = r.db.now()
		st.seasons[seasonID] = item
	})
	return err
}
