package memory

import (
	"context"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
)

type EventRepository struct {
	db access
}

func (r *EventRepository) Emit(_ context.Context, item event.Event) error {
	copied := item
	copied.Metadata = make(map[string]any, len(item.Metadata))
	for k, v := range item.Metadata {
		copied.Metadata[k] = v
	}
	r.db.write(func(st *state) {
		st.events = append(st.events, copied)
	})
	return nil
}

// ListByClub returns the newest events first.
func (r *EventRepository) ListByClub(_ context.Context, clubID string, limit int) ([]event.Event, error) {
	out := make([]event.Event, 0)
	r.db.read(func(st *state) {
		for i := len(st.events) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				return
			}
			if st.events[i].ClubID == clubID {
				out = append(out, st.events[i])
			}
		}
	})
	return out, nil
}
