package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
)

// StandingsUpdate describes a decided match whose outcome must be applied
// to the season ladder.
type StandingsUpdate struct {
	SeasonID         string
	MatchID          string
	WinnerTeamID     string
	LoserTeamID      string
	ChallengerTeamID string
}

// StandingsUpdater appends the post-match snapshot. It never opens its own
// transaction: callers pass the repositories of the unit of work that also
// records the match outcome.
type StandingsUpdater struct {
	logger *logging.Logger
}

func NewStandingsUpdater(logger *logging.Logger) *StandingsUpdater {
	return &StandingsUpdater{logger: logger}
}

func (u *StandingsUpdater) UpdateStandings(ctx context.Context, repos uow.Repositories, in StandingsUpdate) (standing.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsUpdater.UpdateStandings")
	defer span.End()

	if err := repos.Locks.LockSeason(ctx, in.SeasonID); err != nil {
		return standing.Snapshot{}, fmt.Errorf("lock season standings: %w", err)
	}

	latest, exists, err := repos.Standings.Latest(ctx, in.SeasonID)
	if err != nil {
		return standing.Snapshot{}, fmt.Errorf("get latest standings: %w", err)
	}
	if !exists {
		err := integrityErrorf(ErrDataIntegrity, "season=%s has no standings to update for match=%s", in.SeasonID, in.MatchID)
		recordSpanError(span, err)
		return standing.Snapshot{}, err
	}

	next, err := standing.ApplyResult(latest.TeamIDs, in.WinnerTeamID, in.LoserTeamID, in.ChallengerTeamID)
	if err != nil {
		if errors.Is(err, standing.ErrTeamNotRanked) {
			err = integrityErrorf(ErrDataIntegrity, "apply match=%s to season=%s: %v", in.MatchID, in.SeasonID, err)
		}
		recordSpanError(span, err)
		return standing.Snapshot{}, err
	}

	snapshot, err := repos.Standings.Append(ctx, in.SeasonID, next)
	if err != nil {
		return standing.Snapshot{}, fmt.Errorf("append standings snapshot: %w", err)
	}

	u.logger.InfoContext(ctx, "standings updated",
		"season_id", in.SeasonID,
		"match_id", in.MatchID,
		"winner_team_id", in.WinnerTeamID,
		"loser_team_id", in.LoserTeamID,
		"snapshot_id", snapshot.ID,
	)
	return snapshot, nil
}
