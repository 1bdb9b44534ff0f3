package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	idgen "github.com/riskibarqy/pyramid-ladder/internal/platform/id"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type SetDateInput struct {
	MatchID  string
	PlayerID string
	At       time.Time
}

type SubmitResultInput struct {
	MatchID     string
	EnteredBy   string
	Team1Scores []int
	Team2Scores []int
}

type ConfirmResultInput struct {
	MatchID     string
	ConfirmedBy string
	Admin       bool
}

type ForfeitInput struct {
	MatchID     string
	ForfeitedBy string
	// ForfeitingTeamID is required for admins; players forfeit for their own team.
	ForfeitingTeamID string
	Admin            bool
}

type MatchService struct {
	tx        uow.Transactor
	standings *StandingsUpdater
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(tx uow.Transactor, standings *StandingsUpdater, idGen idgen.Generator, logger *logging.Logger) *MatchService {
	return &MatchService{
		tx:        tx,
		standings: standings,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

// matchScope is a match loaded for update together with its season and
// both teams.
type matchScope struct {
	repos  uow.Repositories
	match  match.Match
	season season.Season
	team1  team.Team
	team2  team.Team
	now    time.Time
}

// teamOf returns the side playerID plays for, or "" when it plays for neither.
func (m *matchScope) teamOf(playerID string) string {
	switch {
	case playerID == "":
		return ""
	case m.team1.HasPlayer(playerID):
		return m.team1.ID
	case m.team2.HasPlayer(playerID):
		return m.team2.ID
	default:
		return ""
	}
}

func (m *matchScope) team(teamID string) team.Team {
	if teamID == m.team1.ID {
		return m.team1
	}
	return m.team2
}

func (m *matchScope) requireParticipant(playerID string) (string, error) {
	teamID := m.teamOf(playerID)
	if teamID == "" {
		return "", fmt.Errorf("%w: player=%s is not playing match=%s", ErrUnauthorized, playerID, m.match.ID)
	}
	return teamID, nil
}

func (m *matchScope) requireStatus(allowed ...match.Status) error {
	for _, status := range allowed {
		if m.match.Status == status {
			return nil
		}
	}
	return fmt.Errorf("%w: match=%s is %s", ErrInvalidState, m.match.ID, m.match.Status)
}

func (m *matchScope) transition(to match.Status) error {
	if err := m.match.Transition(to); err != nil {
		return integrityErrorf(ErrInvalidState, "%v", err)
	}
	m.match.UpdatedAt = m.now
	return nil
}

func (s *MatchService) SetDate(ctx context.Context, input SetDateInput) (match.Match, error) {
	if err := requireIDs("match id", input.MatchID, "player id", input.PlayerID); err != nil {
		return match.Match{}, err
	}
	if input.At.IsZero() {
		return match.Match{}, fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}

	return s.mutate(ctx, "usecase.MatchService.SetDate", input.MatchID, func(ctx context.Context, m *matchScope) error {
		teamID, err := m.requireParticipant(input.PlayerID)
		if err != nil {
			return err
		}
		if err := m.requireStatus(match.StatusChallenged, match.StatusDateSet); err != nil {
			return err
		}
		if err := m.transition(match.StatusDateSet); err != nil {
			return err
		}
		at := input.At.UTC()
		m.match.ScheduledAt = &at
		if err := m.repos.Matches.Update(ctx, m.match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return s.emit(ctx, m, input.PlayerID, event.TypeMatchDateSet, map[string]any{
			"target_player_id": m.team(m.match.Opponent(teamID)).PrimaryPlayerID(),
			"scheduled_at":     at.Format(time.RFC3339),
		})
	})
}

// SubmitResult records set scores. Seasons that require confirmation park
// the match in pending_confirmation; otherwise it completes and the ladder
// is updated in the same unit of work.
func (s *MatchService) SubmitResult(ctx context.Context, input SubmitResultInput) (match.Match, error) {
	if err := requireIDs("match id", input.MatchID, "entered by", input.EnteredBy); err != nil {
		return match.Match{}, err
	}

	return s.mutate(ctx, "usecase.MatchService.SubmitResult", input.MatchID, func(ctx context.Context, m *matchScope) error {
		teamID, err := m.requireParticipant(input.EnteredBy)
		if err != nil {
			return err
		}
		if err := m.requireStatus(match.StatusChallenged, match.StatusDateSet); err != nil {
			return err
		}

		var winnerID string
		switch match.DecideWinner(input.Team1Scores, input.Team2Scores, m.season.BestOf) {
		case match.SideTeam1:
			winnerID = m.match.Team1ID
		case match.SideTeam2:
			winnerID = m.match.Team2ID
		default:
			return fmt.Errorf("%w: scores %v / %v do not decide a best of %d", ErrInvalidScores, input.Team1Scores, input.Team2Scores, m.season.BestOf)
		}

		next := match.StatusCompleted
		if m.season.RequiresConfirmation {
			next = match.StatusPendingConfirmation
		}
		if err := m.transition(next); err != nil {
			return err
		}
		enteredBy := input.EnteredBy
		m.match.Team1Scores = append([]int(nil), input.Team1Scores...)
		m.match.Team2Scores = append([]int(nil), input.Team2Scores...)
		m.match.WinnerTeamID = &winnerID
		m.match.EnteredBy = &enteredBy
		if err := m.repos.Matches.Update(ctx, m.match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		targetPlayerID := m.team(m.match.Opponent(teamID)).PrimaryPlayerID()
		if err := s.emit(ctx, m, input.EnteredBy, event.TypeResultEntered, map[string]any{
			"target_player_id": targetPlayerID,
			"winner_team_id":   winnerID,
			"team1_scores":     m.match.Team1Scores,
			"team2_scores":     m.match.Team2Scores,
		}); err != nil {
			return err
		}
		if next == match.StatusPendingConfirmation {
			return nil
		}
		return s.complete(ctx, m, input.EnteredBy, targetPlayerID)
	})
}

// ConfirmResult accepts a pending result on behalf of the team that did not
// enter it. Admins may also settle disputed results.
func (s *MatchService) ConfirmResult(ctx context.Context, input ConfirmResultInput) (match.Match, error) {
	if err := requireIDs("match id", input.MatchID); err != nil {
		return match.Match{}, err
	}
	if !input.Admin && strings.TrimSpace(input.ConfirmedBy) == "" {
		return match.Match{}, fmt.Errorf("%w: confirmed by is required", ErrInvalidInput)
	}

	return s.mutate(ctx, "usecase.MatchService.ConfirmResult", input.MatchID, func(ctx context.Context, m *matchScope) error {
		if input.Admin {
			if err := m.requireStatus(match.StatusPendingConfirmation, match.StatusDisputed); err != nil {
				return err
			}
		} else {
			if err := m.requireStatus(match.StatusPendingConfirmation); err != nil {
				return err
			}
		}
		if m.match.WinnerTeamID == nil || m.match.EnteredBy == nil {
			return integrityErrorf(ErrDataIntegrity, "match=%s awaits confirmation without a result", m.match.ID)
		}

		submittingTeamID := m.teamOf(*m.match.EnteredBy)
		if !input.Admin {
			confirmingTeamID, err := m.requireParticipant(input.ConfirmedBy)
			if err != nil {
				return err
			}
			if confirmingTeamID == submittingTeamID {
				return fmt.Errorf("%w: the team that entered the result cannot confirm it", ErrUnauthorized)
			}
		}

		if err := m.transition(match.StatusCompleted); err != nil {
			return err
		}
		if err := m.repos.Matches.Update(ctx, m.match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return s.complete(ctx, m, input.ConfirmedBy, *m.match.EnteredBy)
	})
}

func (s *MatchService) DisputeResult(ctx context.Context, matchID, playerID string) (match.Match, error) {
	if err := requireIDs("match id", matchID, "player id", playerID); err != nil {
		return match.Match{}, err
	}

	return s.mutate(ctx, "usecase.MatchService.DisputeResult", matchID, func(ctx context.Context, m *matchScope) error {
		teamID, err := m.requireParticipant(playerID)
		if err != nil {
			return err
		}
		if err := m.requireStatus(match.StatusPendingConfirmation); err != nil {
			return err
		}
		if err := m.transition(match.StatusDisputed); err != nil {
			return err
		}
		if err := m.repos.Matches.Update(ctx, m.match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return s.emit(ctx, m, playerID, event.TypeResultDisputed, map[string]any{
			"target_player_id": m.team(m.match.Opponent(teamID)).PrimaryPlayerID(),
		})
	})
}

// Forfeit ends an open match with the forfeiting team as loser. Deadline
// sweeps call it as admin with an explicit team.
func (s *MatchService) Forfeit(ctx context.Context, input ForfeitInput) (match.Match, error) {
	if err := requireIDs("match id", input.MatchID); err != nil {
		return match.Match{}, err
	}
	if input.Admin && strings.TrimSpace(input.ForfeitingTeamID) == "" {
		return match.Match{}, fmt.Errorf("%w: forfeiting team id is required", ErrInvalidInput)
	}
	if !input.Admin && strings.TrimSpace(input.ForfeitedBy) == "" {
		return match.Match{}, fmt.Errorf("%w: forfeited by is required", ErrInvalidInput)
	}

	return s.mutate(ctx, "usecase.MatchService.Forfeit", input.MatchID, func(ctx context.Context, m *matchScope) error {
		loserID := input.ForfeitingTeamID
		if !input.Admin {
			teamID, err := m.requireParticipant(input.ForfeitedBy)
			if err != nil {
				return err
			}
			if loserID != "" && loserID != teamID {
				return fmt.Errorf("%w: player=%s cannot forfeit for team=%s", ErrUnauthorized, input.ForfeitedBy, loserID)
			}
			loserID = teamID
		}
		if !m.match.Involves(loserID) {
			return fmt.Errorf("%w: team=%s is not playing match=%s", ErrInvalidInput, loserID, m.match.ID)
		}
		if !m.match.Status.IsOpen() {
			return fmt.Errorf("%w: match=%s is %s", ErrInvalidState, m.match.ID, m.match.Status)
		}

		winnerID := m.match.Opponent(loserID)
		if err := m.transition(match.StatusForfeited); err != nil {
			return err
		}
		m.match.WinnerTeamID = &winnerID
		if err := m.repos.Matches.Update(ctx, m.match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		if _, err := s.standings.UpdateStandings(ctx, m.repos, StandingsUpdate{
			SeasonID:         m.match.SeasonID,
			MatchID:          m.match.ID,
			WinnerTeamID:     winnerID,
			LoserTeamID:      loserID,
			ChallengerTeamID: m.match.ChallengerTeamID(),
		}); err != nil {
			return err
		}
		return s.emit(ctx, m, input.ForfeitedBy, event.TypeMatchForfeited, map[string]any{
			"target_player_id":   m.team(winnerID).PrimaryPlayerID(),
			"winner_team_id":     winnerID,
			"forfeiting_team_id": loserID,
		})
	})
}

func (s *MatchService) Withdraw(ctx context.Context, matchID, playerID string) (match.Match, error) {
	if err := requireIDs("match id", matchID, "player id", playerID); err != nil {
		return match.Match{}, err
	}

	return s.mutate(ctx, "usecase.MatchService.Withdraw", matchID, func(ctx context.Context, m *matchScope) error {
		teamID, err := m.requireParticipant(playerID)
		if err != nil {
			return err
		}
		if err := m.requireStatus(match.StatusChallenged, match.StatusDateSet); err != nil {
			return err
		}
		if err := m.transition(match.StatusWithdrawn); err != nil {
			return err
		}
		if err := m.repos.Matches.Update(ctx, m.match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return s.emit(ctx, m, playerID, event.TypeMatchWithdrawn, map[string]any{
			"target_player_id": m.team(m.match.Opponent(teamID)).PrimaryPlayerID(),
		})
	})
}

// complete applies a decided result to the ladder and emits the
// confirmation event. The match row must already be completed.
func (s *MatchService) complete(ctx context.Context, m *matchScope, actorID, targetPlayerID string) error {
	winnerID := *m.match.WinnerTeamID
	if !m.match.Involves(winnerID) {
		return integrityErrorf(ErrDataIntegrity, "match=%s winner=%s is not a side", m.match.ID, winnerID)
	}
	if _, err := s.standings.UpdateStandings(ctx, m.repos, StandingsUpdate{
		SeasonID:         m.match.SeasonID,
		MatchID:          m.match.ID,
		WinnerTeamID:     winnerID,
		LoserTeamID:      m.match.Opponent(winnerID),
		ChallengerTeamID: m.match.ChallengerTeamID(),
	}); err != nil {
		return err
	}
	return s.emit(ctx, m, actorID, event.TypeResultConfirmed, map[string]any{
		"target_player_id": targetPlayerID,
		"winner_team_id":   winnerID,
	})
}

func (s *MatchService) emit(ctx context.Context, m *matchScope, actorID string, typ event.Type, metadata map[string]any) error {
	eventID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate event id: %w", err)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["match_id"] = m.match.ID
	metadata["season_id"] = m.match.SeasonID
	if err := m.repos.Events.Emit(ctx, event.Event{
		ID:        eventID,
		ClubID:    m.season.ClubID,
		PlayerID:  actorID,
		Type:      typ,
		Metadata:  metadata,
		CreatedAt: m.now,
	}); err != nil {
		return fmt.Errorf("emit %s event: %w", typ, err)
	}
	return nil
}

// mutate loads the match for update inside one unit of work and runs fn.
// Integrity failures are logged before they propagate.
func (s *MatchService) mutate(ctx context.Context, spanName, matchID string, fn func(ctx context.Context, m *matchScope) error) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	ctx, span := startUsecaseSpan(ctx, spanName, attribute.String("match_id", matchID))
	defer span.End()

	var result match.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		scope, err := s.loadScope(ctx, repos, matchID)
		if err != nil {
			return err
		}
		if err := fn(ctx, scope); err != nil {
			return err
		}
		result = scope.match
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, ErrDataIntegrity) {
			s.logger.ErrorContext(ctx, "match operation aborted", "operation", spanName, "match_id", matchID, "error", fmt.Sprintf("%+v", err))
		}
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match updated", "operation", spanName, "match_id", result.ID, "status", result.Status)
	return result, nil
}

func (s *MatchService) loadScope(ctx context.Context, repos uow.Repositories, matchID string) (*matchScope, error) {
	item, exists, err := repos.Matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, integrityErrorf(ErrMatchNotFound, "match=%s", matchID)
	}

	seasonItem, exists, err := repos.Seasons.GetByID(ctx, item.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, integrityErrorf(ErrDataIntegrity, "match=%s references missing season=%s", item.ID, item.SeasonID)
	}
	team1, err := loadMatchTeam(ctx, repos.Teams, item, item.Team1ID)
	if err != nil {
		return nil, err
	}
	team2, err := loadMatchTeam(ctx, repos.Teams, item, item.Team2ID)
	if err != nil {
		return nil, err
	}

	return &matchScope{
		repos:  repos,
		match:  item,
		season: seasonItem,
		team1:  team1,
		team2:  team2,
		now:    s.now().UTC(),
	}, nil
}

func loadMatchTeam(ctx context.Context, repo team.Repository, m match.Match, teamID string) (team.Team, error) {
	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, integrityErrorf(ErrDataIntegrity, "match=%s references missing team=%s", m.ID, teamID)
	}
	return item, nil
}
