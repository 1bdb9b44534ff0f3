package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

const (
	testClubID   = "club-1"
	testSeasonID = "season-1"
)

var testNow = time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC)

type sequenceIDs struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type ladderFixture struct {
	store      *memory.Store
	challenges *ChallengeService
	matches    *MatchService
	seasons    *SeasonService
	standings  *StandingsService
	activity   *ActivityService
}

type ladderOption func(*season.Season)

func withoutConfirmation() ladderOption {
	return func(s *season.Season) { s.RequiresConfirmation = false }
}

func withTeamSize(min, max int) ladderOption {
	return func(s *season.Season) {
		s.MinTeamSize = min
		s.MaxTeamSize = max
	}
}

// newLadderFixture seeds an active best-of-3 season ranked T1..T6, where
// team Tn is played by Pn.
func newLadderFixture(t *testing.T, opts ...ladderOption) *ladderFixture {
	t.Helper()

	item := season.Season{
		ID:                   testSeasonID,
		ClubID:               testClubID,
		Name:                 "Spring Singles",
		Status:               season.StatusActive,
		MinTeamSize:          1,
		MaxTeamSize:          1,
		BestOf:               3,
		OpenEnrollment:       true,
		RequiresConfirmation: true,
		MatchDeadlineDays:    14,
		ReminderDays:         7,
		CreatedAt:            testNow,
		UpdatedAt:            testNow,
	}
	for _, opt := range opts {
		opt(&item)
	}

	teams := make([]team.Team, 0, 6)
	for i := 1; i <= 6; i++ {
		teams = append(teams, team.Team{
			ID:        fmt.Sprintf("T%d", i),
			PlayerIDs: []string{fmt.Sprintf("P%d", i)},
			CreatedAt: testNow,
		})
	}

	clock := func() time.Time { return testNow }
	store := memory.NewStore().WithClock(clock)
	require.NoError(t, memory.SeedLadder(context.Background(), store, memory.Ladder{Season: item, Teams: teams}))

	logger := logging.NewNop()
	ids := &sequenceIDs{prefix: "id"}

	challenges := NewChallengeService(store, ids, logger)
	challenges.now = clock
	matches := NewMatchService(store, NewStandingsUpdater(logger), ids, logger)
	matches.now = clock
	seasons := NewSeasonService(store, ids, logger)
	seasons.now = clock
	standings := NewStandingsService(store, logger)
	standings.now = clock

	return &ladderFixture{
		store:      store,
		challenges: challenges,
		matches:    matches,
		seasons:    seasons,
		standings:  standings,
		activity:   NewActivityService(store, ids, logger),
	}
}

func (f *ladderFixture) challenge(t *testing.T, challenger, challengee int) string {
	t.Helper()

	matchID, err := f.challenges.Challenge(context.Background(), challengeInput(challenger, challengee))
	require.NoError(t, err)
	return matchID
}

func (f *ladderFixture) latestOrder(t *testing.T) []string {
	t.Helper()

	latest, ok, err := f.store.Repositories().Standings.Latest(context.Background(), testSeasonID)
	require.NoError(t, err)
	require.True(t, ok)
	return latest.TeamIDs
}

func (f *ladderFixture) snapshotCount(t *testing.T) int {
	t.Helper()

	count, err := f.store.Repositories().Standings.Count(context.Background(), testSeasonID)
	require.NoError(t, err)
	return count
}

func (f *ladderFixture) eventTypes(t *testing.T) []event.Type {
	t.Helper()

	items, err := f.store.Repositories().Events.ListByClub(context.Background(), testClubID, 0)
	require.NoError(t, err)
	out := make([]event.Type, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i].Type)
	}
	return out
}

func challengeInput(challenger, challengee int) ChallengeInput {
	return ChallengeInput{
		SeasonID:           testSeasonID,
		ClubID:             testClubID,
		ChallengerTeamID:   fmt.Sprintf("T%d", challenger),
		ChallengeeTeamID:   fmt.Sprintf("T%d", challengee),
		ChallengerPlayerID: fmt.Sprintf("P%d", challenger),
		ChallengeePlayerID: fmt.Sprintf("P%d", challengee),
		Text:               "see you on court 2",
	}
}
