package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/pyramid"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	eventmock "github.com/riskibarqy/pyramid-ladder/internal/mocks/domain/event"
	matchmock "github.com/riskibarqy/pyramid-ladder/internal/mocks/domain/match"
	seasonmock "github.com/riskibarqy/pyramid-ladder/internal/mocks/domain/season"
	standingmock "github.com/riskibarqy/pyramid-ladder/internal/mocks/domain/standing"
	teammock "github.com/riskibarqy/pyramid-ladder/internal/mocks/domain/team"
	unavailabilitymock "github.com/riskibarqy/pyramid-ladder/internal/mocks/domain/unavailability"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type stubTransactor struct {
	repos uow.Repositories
}

func (s stubTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	return fn(ctx, s.repos)
}

type recordingLocker struct {
	teams   [][]string
	seasons []string
}

func (l *recordingLocker) LockTeams(_ context.Context, teamIDs ...string) error {
	l.teams = append(l.teams, teamIDs)
	return nil
}

func (l *recordingLocker) LockSeason(_ context.Context, seasonID string) error {
	l.seasons = append(l.seasons, seasonID)
	return nil
}

func activeSeason() season.Season {
	return season.Season{ID: testSeasonID, ClubID: testClubID, Name: "Spring", Status: season.StatusActive, MinTeamSize: 1, MaxTeamSize: 1, BestOf: 3}
}

func TestChallengeService_Challenge_NoStandingsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	standingRepo := standingmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	seasonRepo.On("GetByID", mock.Anything, testSeasonID).Return(activeSeason(), true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "T4").Return(team.Team{ID: "T4", SeasonID: testSeasonID, PlayerIDs: []string{"P4"}}, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "T2").Return(team.Team{ID: "T2", SeasonID: testSeasonID, PlayerIDs: []string{"P2"}}, true, nil).Once()
	standingRepo.On("Latest", mock.Anything, testSeasonID).Return(standing.Snapshot{}, false, nil).Once()

	service := NewChallengeService(stubTransactor{repos: uow.Repositories{
		Seasons:   seasonRepo,
		Teams:     teamRepo,
		Standings: standingRepo,
		Matches:   matchRepo,
		Locks:     &recordingLocker{},
	}}, &sequenceIDs{prefix: "m"}, logging.NewNop())

	_, err := service.Challenge(ctx, challengeInput(4, 2))
	if !errors.Is(err, ErrIllegalChallenge) {
		t.Fatalf("expected ErrIllegalChallenge, got %v", err)
	}
	matchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChallengeService_Challenge_LocksBeforeConflictCheckUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	standingRepo := standingmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	unavailableRepo := unavailabilitymock.NewRepository(t)
	locker := &recordingLocker{}

	seasonRepo.On("GetByID", mock.Anything, testSeasonID).Return(activeSeason(), true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "T4").Return(team.Team{ID: "T4", SeasonID: testSeasonID, PlayerIDs: []string{"P4"}}, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "T2").Return(team.Team{ID: "T2", SeasonID: testSeasonID, PlayerIDs: []string{"P2"}}, true, nil).Once()
	standingRepo.On("Latest", mock.Anything, testSeasonID).
		Run(func(mock.Arguments) {
			if len(locker.seasons) != 1 || locker.seasons[0] != testSeasonID {
				t.Errorf("ranks read before the season lock, seasons locked: %v", locker.seasons)
			}
		}).
		Return(standing.Snapshot{ID: 1, SeasonID: testSeasonID, TeamIDs: []string{"T1", "T2", "T3", "T4"}}, true, nil).
		Once()
	unavailableRepo.On("UnavailableTeamIDs", mock.Anything, testSeasonID, mock.AnythingOfType("time.Time")).
		Return(map[string]struct{}{}, nil).
		Once()
	matchRepo.On("HasOpenMatch", mock.Anything, testSeasonID, "T4").
		Run(func(mock.Arguments) {
			if len(locker.teams) != 1 {
				t.Errorf("conflict check ran before the team lock")
			}
		}).
		Return(false, nil).
		Once()
	matchRepo.On("HasOpenMatch", mock.Anything, testSeasonID, "T2").Return(true, nil).Once()

	service := NewChallengeService(stubTransactor{repos: uow.Repositories{
		Seasons:        seasonRepo,
		Teams:          teamRepo,
		Standings:      standingRepo,
		Matches:        matchRepo,
		Unavailability: unavailableRepo,
		Locks:          locker,
	}}, &sequenceIDs{prefix: "m"}, logging.NewNop())
	service.now = func() time.Time { return testNow }

	_, err := service.Challenge(ctx, challengeInput(4, 2))
	if !errors.Is(err, ErrChallengeConflict) {
		t.Fatalf("expected ErrChallengeConflict, got %v", err)
	}
	if len(locker.teams) != 1 || len(locker.teams[0]) != 2 {
		t.Fatalf("expected one lock over both teams, got %v", locker.teams)
	}
	matchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChallengeService_Challenge_EmitsEventAfterInsertUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	standingRepo := standingmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	unavailableRepo := unavailabilitymock.NewRepository(t)
	eventRepo := eventmock.NewRepository(t)
	locker := &recordingLocker{}
	var calls []string

	seasonRepo.On("GetByID", mock.Anything, testSeasonID).Return(activeSeason(), true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "T4").Return(team.Team{ID: "T4", SeasonID: testSeasonID, PlayerIDs: []string{"P4"}}, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "T2").Return(team.Team{ID: "T2", SeasonID: testSeasonID, PlayerIDs: []string{"P2"}}, true, nil).Once()
	standingRepo.On("Latest", mock.Anything, testSeasonID).
		Return(standing.Snapshot{ID: 1, SeasonID: testSeasonID, TeamIDs: []string{"T1", "T2", "T3", "T4"}}, true, nil).
		Once()
	unavailableRepo.On("UnavailableTeamIDs", mock.Anything, testSeasonID, mock.AnythingOfType("time.Time")).
		Return(map[string]struct{}{}, nil).
		Once()
	matchRepo.On("HasOpenMatch", mock.Anything, testSeasonID, mock.AnythingOfType("string")).Return(false, nil).Twice()
	matchRepo.On("Create", mock.Anything, mock.MatchedBy(func(m match.Match) bool {
		return m.Team1ID == "T4" && m.Team2ID == "T2" && m.Status == match.StatusChallenged
	})).
		Run(func(mock.Arguments) { calls = append(calls, "create") }).
		Return(nil).
		Once()
	eventRepo.On("Emit", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.TypeChallengeCreated && e.ClubID == testClubID && e.PlayerID == "P4"
	})).
		Run(func(mock.Arguments) { calls = append(calls, "emit") }).
		Return(nil).
		Once()

	service := NewChallengeService(stubTransactor{repos: uow.Repositories{
		Seasons:        seasonRepo,
		Teams:          teamRepo,
		Standings:      standingRepo,
		Matches:        matchRepo,
		Unavailability: unavailableRepo,
		Events:         eventRepo,
		Locks:          locker,
	}}, &sequenceIDs{prefix: "m"}, logging.NewNop())
	service.now = func() time.Time { return testNow }

	matchID, err := service.Challenge(ctx, challengeInput(4, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matchID == "" {
		t.Fatalf("expected a match id")
	}
	if len(calls) != 2 || calls[0] != "create" || calls[1] != "emit" {
		t.Fatalf("expected create then emit, got %v", calls)
	}
}

func TestStandingsUpdater_MissingTeamAbortsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	standingRepo := standingmock.NewRepository(t)
	locker := &recordingLocker{}

	standingRepo.On("Latest", mock.Anything, testSeasonID).
		Return(standing.Snapshot{ID: 3, SeasonID: testSeasonID, TeamIDs: []string{"T1", "T2"}}, true, nil).
		Once()

	updater := NewStandingsUpdater(logging.NewNop())
	_, err := updater.UpdateStandings(ctx, uow.Repositories{Standings: standingRepo, Locks: locker}, StandingsUpdate{
		SeasonID:         testSeasonID,
		MatchID:          "m-1",
		WinnerTeamID:     "T9",
		LoserTeamID:      "T1",
		ChallengerTeamID: "T9",
	})
	if !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
	if len(locker.seasons) != 1 || locker.seasons[0] != testSeasonID {
		t.Fatalf("expected season lock, got %v", locker.seasons)
	}
	standingRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

type stubStore struct {
	stubTransactor
}

func (s stubStore) Repositories() uow.Repositories {
	return s.repos
}

func TestStandingsService_Ladder_ReadsSnapshotPairOnceUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	standingRepo := standingmock.NewRepository(t)

	seasonRepo.On("GetByID", mock.Anything, testSeasonID).Return(activeSeason(), true, nil).Once()
	teamRepo.On("ListBySeason", mock.Anything, testSeasonID).Return([]team.Team{
		{ID: "T1", SeasonID: testSeasonID, PlayerIDs: []string{"P1"}},
		{ID: "T2", SeasonID: testSeasonID, PlayerIDs: []string{"P2"}},
		{ID: "T3", SeasonID: testSeasonID, PlayerIDs: []string{"P3"}},
	}, nil).Once()
	standingRepo.On("Recent", mock.Anything, testSeasonID, 2).Return([]standing.Snapshot{
		{ID: 2, SeasonID: testSeasonID, TeamIDs: []string{"T1", "T3", "T2"}},
		{ID: 1, SeasonID: testSeasonID, TeamIDs: []string{"T1", "T2", "T3"}},
	}, nil).Once()

	service := NewStandingsService(stubStore{stubTransactor{repos: uow.Repositories{
		Seasons:   seasonRepo,
		Teams:     teamRepo,
		Standings: standingRepo,
	}}}, logging.NewNop())

	ladder, err := service.Ladder(ctx, testSeasonID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ladder.SnapshotID != 2 || len(ladder.Rows) != 3 {
		t.Fatalf("unexpected ladder: %+v", ladder)
	}
	if ladder.Rows[1].TeamID != "T3" || ladder.Rows[1].Movement != pyramid.MovementUp {
		t.Fatalf("expected T3 up at rank 2, got %+v", ladder.Rows[1])
	}
	if ladder.Rows[2].Movement != pyramid.MovementDown {
		t.Fatalf("expected T2 down at rank 3, got %+v", ladder.Rows[2])
	}
	standingRepo.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything)
	standingRepo.AssertNotCalled(t, "Previous", mock.Anything, mock.Anything)
}
