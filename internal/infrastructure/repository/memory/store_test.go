package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
)

func seededStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore()
	if err := SeedLadder(context.Background(), store, DemoLadder(time.Now())); err != nil {
		t.Fatalf("seed ladder: %v", err)
	}
	return store
}

func TestStoreWithinTx_RollsBackOnError(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if _, err := repos.Standings.Append(ctx, DemoSeasonID, []string{"demo-team-2", "demo-team-1"}); err != nil {
			return err
		}
		if err := repos.Teams.SetOptedOut(ctx, "demo-team-3", true); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}

	repos := store.Repositories()
	count, err := repos.Standings.Count(ctx, DemoSeasonID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rolled back snapshot count 1, got %d", count)
	}
	item, _, _ := repos.Teams.GetByID(ctx, "demo-team-3")
	if item.OptedOut {
		t.Fatalf("opt out should have been rolled back")
	}
}

func TestStandingRepository_LatestAndPrevious(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()
	repos := store.Repositories()

	if _, ok, _ := repos.Standings.Previous(ctx, DemoSeasonID); ok {
		t.Fatalf("expected no previous snapshot after seeding")
	}

	next := []string{"demo-team-2", "demo-team-1", "demo-team-3", "demo-team-4", "demo-team-5", "demo-team-6"}
	appended, err := repos.Standings.Append(ctx, DemoSeasonID, next)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	latest, ok, err := repos.Standings.Latest(ctx, DemoSeasonID)
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if latest.ID != appended.ID || latest.TeamIDs[0] != "demo-team-2" {
		t.Fatalf("unexpected latest snapshot: %+v", latest)
	}
	previous, ok, _ := repos.Standings.Previous(ctx, DemoSeasonID)
	if !ok || previous.TeamIDs[0] != "demo-team-1" {
		t.Fatalf("unexpected previous snapshot: %+v", previous)
	}
	if previous.ID >= latest.ID {
		t.Fatalf("snapshot ids must increase, previous=%d latest=%d", previous.ID, latest.ID)
	}

	latest.TeamIDs[0] = "mutated"
	again, _, _ := repos.Standings.Latest(ctx, DemoSeasonID)
	if again.TeamIDs[0] != "demo-team-2" {
		t.Fatalf("stored snapshot must not alias caller slices")
	}
}

func TestStandingRepository_RecentNewestFirst(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()
	repos := store.Repositories()

	seeded, err := repos.Standings.Recent(ctx, DemoSeasonID, 2)
	if err != nil || len(seeded) != 1 {
		t.Fatalf("expected only the seed snapshot, got %d err=%v", len(seeded), err)
	}

	next := []string{"demo-team-2", "demo-team-1", "demo-team-3", "demo-team-4", "demo-team-5", "demo-team-6"}
	appended, err := repos.Standings.Append(ctx, DemoSeasonID, next)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	recent, err := repos.Standings.Recent(ctx, DemoSeasonID, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != appended.ID || recent[1].ID != seeded[0].ID {
		t.Fatalf("unexpected recent snapshots: %+v", recent)
	}
	if none, _ := repos.Standings.Recent(ctx, DemoSeasonID, 0); len(none) != 0 {
		t.Fatalf("expected no snapshots for a zero limit, got %d", len(none))
	}
}

func TestMatchRepository_HasOpenMatch(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()
	repos := store.Repositories()

	item := match.Match{
		ID:       "m-1",
		SeasonID: DemoSeasonID,
		Team1ID:  "demo-team-4",
		Team2ID:  "demo-team-2",
		Status:   match.StatusChallenged,
	}
	if err := repos.Matches.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	open, _ := repos.Matches.HasOpenMatch(ctx, DemoSeasonID, "demo-team-2")
	if !open {
		t.Fatalf("expected open match for challengee")
	}
	open, _ = repos.Matches.HasOpenMatch(ctx, DemoSeasonID, "demo-team-1")
	if open {
		t.Fatalf("unexpected open match for uninvolved team")
	}

	item.Status = match.StatusWithdrawn
	if err := repos.Matches.Update(ctx, item); err != nil {
		t.Fatalf("update: %v", err)
	}
	open, _ = repos.Matches.HasOpenMatch(ctx, DemoSeasonID, "demo-team-4")
	if open {
		t.Fatalf("withdrawn match must not block")
	}
}

func TestUnavailabilityRepository_UnavailableTeamIDs(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()
	repos := store.Repositories()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := repos.Unavailability.Create(ctx, unavailability.Period{
		ID:       "u-1",
		PlayerID: "demo-player-5",
		From:     now.Add(-time.Hour),
		Until:    now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("create period: %v", err)
	}

	got, err := repos.Unavailability.UnavailableTeamIDs(ctx, DemoSeasonID, now)
	if err != nil {
		t.Fatalf("unavailable teams: %v", err)
	}
	if _, ok := got["demo-team-5"]; !ok || len(got) != 1 {
		t.Fatalf("expected only demo-team-5, got %v", got)
	}

	got, _ = repos.Unavailability.UnavailableTeamIDs(ctx, DemoSeasonID, now.Add(time.Hour))
	if len(got) != 0 {
		t.Fatalf("period end is exclusive, got %v", got)
	}
}
