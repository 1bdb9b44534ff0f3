package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/pyramid"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type LadderRow struct {
	Rank      int
	Row       int
	TeamID    string
	PlayerIDs []string
	OptedOut  bool
	Movement  pyramid.Movement
}

type Ladder struct {
	SeasonID   string
	SnapshotID int64
	UpdatedAt  time.Time
	Rows       []LadderRow
}

// StandingsService serves read-only ladder views from autocommit
// repositories.
type StandingsService struct {
	store  uow.Store
	logger *logging.Logger
	now    func() time.Time
}

func NewStandingsService(store uow.Store, logger *logging.Logger) *StandingsService {
	return &StandingsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *StandingsService) Ladder(ctx context.Context, seasonID string) (Ladder, error) {
	seasonID = strings.TrimSpace(seasonID)
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Ladder", attribute.String("season_id", seasonID))
	defer span.End()

	if err := requireIDs("season id", seasonID); err != nil {
		return Ladder{}, err
	}
	repos := s.store.Repositories()
	if _, err := loadSeason(ctx, repos.Seasons, seasonID); err != nil {
		return Ladder{}, err
	}

	// Latest and previous come from one read so movement is never computed
	// across an append.
	var (
		recent    []standing.Snapshot
		teamsByID map[string]team.Team
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		recent, err = repos.Standings.Recent(ctx, seasonID, 2)
		if err != nil {
			return fmt.Errorf("get recent standings: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		teamsByID, err = s.teamsByID(ctx, repos.Teams, seasonID)
		return err
	})
	if err := p.Wait(); err != nil {
		recordSpanError(span, err)
		return Ladder{}, err
	}

	out := Ladder{SeasonID: seasonID, Rows: []LadderRow{}}
	if len(recent) == 0 {
		return out, nil
	}
	latest := recent[0]
	var previous standing.Snapshot
	if len(recent) > 1 {
		previous = recent[1]
	}
	out.SnapshotID = latest.ID
	out.UpdatedAt = latest.CreatedAt
	out.Rows = make([]LadderRow, 0, len(latest.TeamIDs))
	for i, teamID := range latest.TeamIDs {
		rank := i + 1
		row := LadderRow{
			Rank:     rank,
			Row:      pyramid.Row(rank),
			TeamID:   teamID,
			Movement: pyramid.ComputeMovement(teamID, latest.TeamIDs, previous.TeamIDs),
		}
		if item, ok := teamsByID[teamID]; ok {
			row.PlayerIDs = item.PlayerIDs
			row.OptedOut = item.OptedOut
		} else {
			s.logger.WarnContext(ctx, "ranked team missing", "season_id", seasonID, "team_id", teamID)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// ChallengeTargets lists the ladder rows teamID may challenge right now:
// reachable by pyramid rules, available and without an open match.
func (s *StandingsService) ChallengeTargets(ctx context.Context, seasonID, teamID string) ([]LadderRow, error) {
	seasonID = strings.TrimSpace(seasonID)
	teamID = strings.TrimSpace(teamID)
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ChallengeTargets",
		attribute.String("season_id", seasonID),
		attribute.String("team_id", teamID),
	)
	defer span.End()

	if err := requireIDs("season id", seasonID, "team id", teamID); err != nil {
		return nil, err
	}
	repos := s.store.Repositories()
	if _, err := loadSeasonTeam(ctx, repos.Teams, seasonID, teamID); err != nil {
		return nil, err
	}

	ladder, err := s.Ladder(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	var rank int
	for _, row := range ladder.Rows {
		if row.TeamID == teamID {
			rank = row.Rank
			break
		}
	}
	if rank == 0 {
		return []LadderRow{}, nil
	}

	unavailable, err := repos.Unavailability.UnavailableTeamIDs(ctx, seasonID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list unavailable teams: %w", err)
	}

	out := make([]LadderRow, 0, 3)
	for _, target := range pyramid.Targets(rank) {
		row := ladder.Rows[target-1]
		if _, blocked := unavailable[row.TeamID]; blocked || row.OptedOut {
			continue
		}
		open, err := repos.Matches.HasOpenMatch(ctx, seasonID, row.TeamID)
		if err != nil {
			return nil, fmt.Errorf("check open matches: %w", err)
		}
		if open {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *StandingsService) teamsByID(ctx context.Context, repo team.Repository, seasonID string) (map[string]team.Team, error) {
	items, err := repo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season teams: %w", err)
	}
	out := make(map[string]team.Team, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}
