package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/pyramid"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	idgen "github.com/riskibarqy/pyramid-ladder/internal/platform/id"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type ChallengeInput struct {
	SeasonID           string
	ClubID             string
	ChallengerTeamID   string
	ChallengeeTeamID   string
	ChallengerPlayerID string
	ChallengeePlayerID string
	Text               string
}

func (in *ChallengeInput) normalize() {
	in.SeasonID = strings.TrimSpace(in.SeasonID)
	in.ClubID = strings.TrimSpace(in.ClubID)
	in.ChallengerTeamID = strings.TrimSpace(in.ChallengerTeamID)
	in.ChallengeeTeamID = strings.TrimSpace(in.ChallengeeTeamID)
	in.ChallengerPlayerID = strings.TrimSpace(in.ChallengerPlayerID)
	in.ChallengeePlayerID = strings.TrimSpace(in.ChallengeePlayerID)
	in.Text = strings.TrimSpace(in.Text)
}

type ChallengeService struct {
	tx     uow.Transactor
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewChallengeService(tx uow.Transactor, idGen idgen.Generator, logger *logging.Logger) *ChallengeService {
	return &ChallengeService{
		tx:     tx,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// Challenge creates a match in the challenged state after checking, in
// order: standings exist, pyramid reachability, availability of both teams
// and, under the team locks, that neither team already has an open match.
func (s *ChallengeService) Challenge(ctx context.Context, input ChallengeInput) (string, error) {
	input.normalize()
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.Challenge",
		attribute.String("season_id", input.SeasonID),
		attribute.String("challenger_team_id", input.ChallengerTeamID),
		attribute.String("challengee_team_id", input.ChallengeeTeamID),
	)
	defer span.End()

	if err := requireIDs(
		"season id", input.SeasonID,
		"challenger team id", input.ChallengerTeamID,
		"challengee team id", input.ChallengeeTeamID,
		"challenger player id", input.ChallengerPlayerID,
		"challengee player id", input.ChallengeePlayerID,
	); err != nil {
		return "", err
	}
	if input.ChallengerTeamID == input.ChallengeeTeamID {
		return "", fmt.Errorf("%w: a team cannot challenge itself", ErrIllegalChallenge)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate match id: %w", err)
	}
	eventID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate event id: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return s.challenge(ctx, repos, input, matchID, eventID)
	})
	if err != nil {
		recordSpanError(span, err)
		return "", err
	}

	s.logger.InfoContext(ctx, "challenge created",
		"match_id", matchID,
		"season_id", input.SeasonID,
		"challenger_team_id", input.ChallengerTeamID,
		"challengee_team_id", input.ChallengeeTeamID,
	)
	return matchID, nil
}

func (s *ChallengeService) challenge(ctx context.Context, repos uow.Repositories, input ChallengeInput, matchID, eventID string) error {
	// Ranks are judged on the latest snapshot, so hold the season lock that
	// standings appends take until the match is inserted.
	if err := repos.Locks.LockSeason(ctx, input.SeasonID); err != nil {
		return fmt.Errorf("lock season: %w", err)
	}
	item, err := loadSeason(ctx, repos.Seasons, input.SeasonID)
	if err != nil {
		return err
	}
	if input.ClubID != "" && input.ClubID != item.ClubID {
		return fmt.Errorf("%w: season=%s does not belong to club=%s", ErrInvalidInput, item.ID, input.ClubID)
	}
	if item.Status != season.StatusActive {
		return fmt.Errorf("%w: season=%s is %s", ErrIllegalChallenge, item.ID, item.Status)
	}

	challenger, err := loadSeasonTeam(ctx, repos.Teams, item.ID, input.ChallengerTeamID)
	if err != nil {
		return err
	}
	challengee, err := loadSeasonTeam(ctx, repos.Teams, item.ID, input.ChallengeeTeamID)
	if err != nil {
		return err
	}
	if !challenger.HasPlayer(input.ChallengerPlayerID) {
		return fmt.Errorf("%w: player=%s is not on team=%s", ErrUnauthorized, input.ChallengerPlayerID, challenger.ID)
	}
	if !challengee.HasPlayer(input.ChallengeePlayerID) {
		return fmt.Errorf("%w: player=%s is not on team=%s", ErrUnauthorized, input.ChallengeePlayerID, challengee.ID)
	}

	latest, exists, err := repos.Standings.Latest(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("get latest standings: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%s has no standings", ErrIllegalChallenge, item.ID)
	}
	challengerRank, ok := latest.RankOf(challenger.ID)
	if !ok {
		return fmt.Errorf("%w: team=%s is not ranked", ErrIllegalChallenge, challenger.ID)
	}
	challengeeRank, ok := latest.RankOf(challengee.ID)
	if !ok {
		return fmt.Errorf("%w: team=%s is not ranked", ErrIllegalChallenge, challengee.ID)
	}
	if !pyramid.CanChallenge(challengerRank, challengeeRank) {
		return fmt.Errorf("%w: rank %d cannot challenge rank %d", ErrIllegalChallenge, challengerRank, challengeeRank)
	}

	now := s.now().UTC()
	unavailable, err := repos.Unavailability.UnavailableTeamIDs(ctx, item.ID, now)
	if err != nil {
		return fmt.Errorf("list unavailable teams: %w", err)
	}
	if isUnavailable(challenger, unavailable) {
		return &UnavailableTeamError{TeamID: challenger.ID, Challenger: true}
	}
	if isUnavailable(challengee, unavailable) {
		return &UnavailableTeamError{TeamID: challengee.ID}
	}

	if err := repos.Locks.LockTeams(ctx, challenger.ID, challengee.ID); err != nil {
		return fmt.Errorf("lock challenge teams: %w", err)
	}
	for _, teamID := range []string{challenger.ID, challengee.ID} {
		open, err := repos.Matches.HasOpenMatch(ctx, item.ID, teamID)
		if err != nil {
			return fmt.Errorf("check open matches: %w", err)
		}
		if open {
			return fmt.Errorf("%w: team=%s already has an open challenge", ErrChallengeConflict, teamID)
		}
	}

	created := match.Match{
		ID:            matchID,
		SeasonID:      item.ID,
		Team1ID:       challenger.ID,
		Team2ID:       challengee.ID,
		Status:        match.StatusChallenged,
		ChallengeText: input.Text,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := repos.Matches.Create(ctx, created); err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	if err := repos.Events.Emit(ctx, event.Event{
		ID:       eventID,
		ClubID:   item.ClubID,
		PlayerID: input.ChallengerPlayerID,
		Type:     event.TypeChallengeCreated,
		Metadata: map[string]any{
			"match_id":           created.ID,
			"season_id":          item.ID,
			"challenger_team_id": challenger.ID,
			"challengee_team_id": challengee.ID,
			"target_player_id":   input.ChallengeePlayerID,
			"challenger_rank":    challengerRank,
			"challengee_rank":    challengeeRank,
			"text":               input.Text,
		},
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("emit challenge event: %w", err)
	}

	return nil
}

func isUnavailable(t team.Team, unavailable map[string]struct{}) bool {
	if t.OptedOut {
		return true
	}
	_, blocked := unavailable[t.ID]
	return blocked
}
