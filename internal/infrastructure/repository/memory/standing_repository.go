package memory

import (
	"context"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
)

// StandingRepository keeps each season's snapshots in append order, which
// matches (created_at, id) ordering because ids are assigned from one
// counter.
type StandingRepository struct {
	db access
}

func (r *StandingRepository) Latest(_ context.Context, seasonID string) (standing.Snapshot, bool, error) {
	return r.fromEnd(seasonID, 1)
}

func (r *StandingRepository) Previous(_ context.Context, seasonID string) (standing.Snapshot, bool, error) {
	return r.fromEnd(seasonID, 2)
}

func (r *StandingRepository) Recent(_ context.Context, seasonID string, limit int) ([]standing.Snapshot, error) {
	out := []standing.Snapshot{}
	r.db.read(func(st *state) {
		items := st.snapshots[seasonID]
		for i := len(items) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, cloneSnapshot(items[i]))
		}
	})
	return out, nil
}

func (r *StandingRepository) Append(_ context.Context, seasonID string, teamIDs []string) (standing.Snapshot, error) {
	var out standing.Snapshot
	r.db.write(func(st *state) {
		st.nextSnapshotID++
		out = standing.Snapshot{
			ID:        st.nextSnapshotID,
			SeasonID:  seasonID,
			TeamIDs:   append([]string{}, teamIDs...),
			CreatedAt: r.db.now(),
		}
		st.snapshots[seasonID] = append(st.snapshots[seasonID], out)
	})
	return cloneSnapshot(out), nil
}

func (r *StandingRepository) Count(_ context.Context, seasonID string) (int, error) {
	var n int
	r.db.read(func(st *state) {
		n = len(st.snapshots[seasonID])
	})
	return n, nil
}

func (r *StandingRepository) fromEnd(seasonID string, offset int) (standing.Snapshot, bool, error) {
	var (
		out standing.Snapshot
		ok  bool
	)
	r.db.read(func(st *state) {
		items := st.snapshots[seasonID]
		if len(items) < offset {
			return
		}
		out, ok = cloneSnapshot(items[len(items)-offset]), true
	})
	return out, ok, nil
}

func cloneSnapshot(item standing.Snapshot) standing.Snapshot {
	copied := item
	copied.TeamIDs = append([]string{}, item.TeamIDs...)
	return copied
}
