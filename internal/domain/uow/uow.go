package uow

import (
	"context"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
)

// Locker serializes work touching the same teams for the rest of the
// current transaction. Callers taking both locks take the season lock
// first.
type Locker interface {
	// LockTeams blocks until every team id is held by the caller. Ids are
	// acquired in ascending order.
	LockTeams(ctx context.Context, teamIDs ...string) error
	// LockSeason serializes read-latest-then-append on a season's standings.
	LockSeason(ctx context.Context, seasonID string) error
}

// Repositories are the stores bound to a single transaction.
type Repositories struct {
	Seasons        season.Repository
	Teams          team.Repository
	Standings      standing.Repository
	Matches        match.Repository
	Unavailability unavailability.Repository
	Events         event.Repository
	Locks          Locker
}

// Transactor runs fn inside one transaction. Any error returned by fn rolls
// back every write made through repos.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Store hands out transactional units of work and autocommit repositories
// for read paths. The autocommit set carries no Locker.
type Store interface {
	Transactor
	Repositories() Repositories
}
