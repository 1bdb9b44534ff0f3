package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
)

// state is the full dataset. Transactions work on a clone and swap it in on
// commit.
type state struct {
	seasons        map[string]season.Season
	teams          map[string]team.Team
	snapshots      map[string][]standing.Snapshot
	matches        map[string]match.Match
	periods        []unavailability.Period
	events         []event.Event
	nextSnapshotID int64
}

func newState() *state {
	return &state{
		seasons:   make(map[string]season.Season),
		teams:     make(map[string]team.Team),
		snapshots: make(map[string][]standing.Snapshot),
		matches:   make(map[string]match.Match),
	}
}

func (s *state) clone() *state {
	out := &state{
		seasons:        make(map[string]season.Season, len(s.seasons)),
		teams:          make(map[string]team.Team, len(s.teams)),
		snapshots:      make(map[string][]standing.Snapshot, len(s.snapshots)),
		matches:        make(map[string]match.Match, len(s.matches)),
		periods:        append([]unavailability.Period(nil), s.periods...),
		events:         append([]event.Event(nil), s.events...),
		nextSnapshotID: s.nextSnapshotID,
	}
	for id, item := range s.seasons {
		out.seasons[id] = item
	}
	for id, item := range s.teams {
		out.teams[id] = cloneTeam(item)
	}
	// Snapshots are immutable once appended, so the rows can be shared.
	for id, items := range s.snapshots {
		out.snapshots[id] = append([]standing.Snapshot(nil), items...)
	}
	for id, item := range s.matches {
		out.matches[id] = cloneMatch(item)
	}
	return out
}

// access abstracts whether a repository reads the live dataset under the
// store lock or a transaction's private copy.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state))
	now() time.Time
}

// Store is an in-process uow.Store. A single mutex serializes transactions,
// which also makes the team and season locks no-ops.
type Store struct {
	txMu   sync.Mutex
	dataMu sync.RWMutex
	data   *state
	clock  func() time.Time
}

var _ uow.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{data: newState(), clock: time.Now}
}

// WithClock overrides the timestamp source for appended rows.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.dataMu.RLock()
	work := s.data.clone()
	s.dataMu.RUnlock()

	tx := &txAccess{st: work, clock: s.clock}
	repos := repositoriesFor(tx)
	repos.Locks = txLocker{}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	s.dataMu.Lock()
	s.data = work
	s.dataMu.Unlock()
	return nil
}

// Repositories returns autocommit repositories over the live dataset.
func (s *Store) Repositories() uow.Repositories {
	return repositoriesFor(&liveAccess{store: s})
}

func repositoriesFor(a access) uow.Repositories {
	return uow.Repositories{
		Seasons:        &SeasonRepository{db: a},
		Teams:          &TeamRepository{db: a},
		Standings:      &StandingRepository{db: a},
		Matches:        &MatchRepository{db: a},
		Unavailability: &UnavailabilityRepository{db: a},
		Events:         &EventRepository{db: a},
	}
}

type txAccess struct {
	st    *state
	clock func() time.Time
}

func (a *txAccess) read(fn func(st *state))  { fn(a.st) }
func (a *txAccess) write(fn func(st *state)) { fn(a.st) }
func (a *txAccess) now() time.Time           { return a.clock().UTC() }

type liveAccess struct {
	store *Store
}

func (a *liveAccess) read(fn func(st *state)) {
	a.store.dataMu.RLock()
	defer a.store.dataMu.RUnlock()
	fn(a.store.data)
}

// write waits for running transactions so their commit cannot overwrite it.
func (a *liveAccess) write(fn func(st *state)) {
	a.store.txMu.Lock()
	defer a.store.txMu.Unlock()
	a.store.dataMu.Lock()
	defer a.store.dataMu.Unlock()
	fn(a.store.data)
}

func (a *liveAccess) now() time.Time { return a.store.clock().UTC() }

type txLocker struct{}

func (txLocker) LockTeams(ctx context.Context, _ ...string) error { return ctx.Err() }
func (txLocker) LockSeason(ctx context.Context, _ string) error   { return ctx.Err() }
