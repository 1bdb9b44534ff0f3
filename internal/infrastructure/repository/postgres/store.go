package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
)

// Store is the postgres uow.Store.
type Store struct {
	db *sqlx.DB
}

var _ uow.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repos := repositoriesFor(tx)
	repos.Locks = &Locker{db: tx}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Repositories() uow.Repositories {
	return repositoriesFor(s.db)
}

func repositoriesFor(db sqlx.ExtContext) uow.Repositories {
	return uow.Repositories{
		Seasons:        NewSeasonRepository(db),
		Teams:          NewTeamRepository(db),
		Standings:      NewStandingRepository(db),
		Matches:        NewMatchRepository(db),
		Unavailability: NewUnavailabilityRepository(db),
		Events:         NewEventRepository(db),
	}
}

// Locker takes transaction-scoped locks. Team locks are advisory locks keyed
// by a 64-bit hash of the team id; the season lock is a row lock.
type Locker struct {
	db sqlx.ExecerContext
}

func (l *Locker) LockTeams(ctx context.Context, teamIDs ...string) error {
	for _, teamID := range lockOrder(teamIDs) {
		if _, err := l.db.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", teamID); err != nil {
			return fmt.Errorf("lock team %s: %w", teamID, err)
		}
	}
	return nil
}

func (l *Locker) LockSeason(ctx context.Context, seasonID string) error {
	if _, err := l.db.ExecContext(ctx, "SELECT 1 FROM seasons WHERE public_id = $1 FOR UPDATE", seasonID); err != nil {
		return fmt.Errorf("lock season %s: %w", seasonID, err)
	}
	return nil
}

// lockOrder dedupes and sorts ids so concurrent callers acquire locks in the
// same order.
func lockOrder(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
