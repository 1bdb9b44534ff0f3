package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/standing"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	idgen "github.com/riskibarqy/pyramid-ladder/internal/platform/id"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type CreateSeasonInput struct {
	ClubID               string
	Name                 string
	MinTeamSize          int
	MaxTeamSize          int
	BestOf               int
	OpenEnrollment       bool
	RequiresConfirmation bool
	MatchDeadlineDays    int
	ReminderDays         int
	// SeedFromSeasonID copies the latest ladder of another season of the
	// same club. Teams with an excluded player are left out.
	SeedFromSeasonID  string
	ExcludedPlayerIDs []string
	CreatedBy         string
}

type EnrollInput struct {
	SeasonID  string
	PlayerIDs []string
	Admin     bool
}

type SetOptOutInput struct {
	SeasonID string
	TeamID   string
	PlayerID string
	OptedOut bool
	Admin    bool
}

type SeasonService struct {
	tx     uow.Transactor
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewSeasonService(tx uow.Transactor, idGen idgen.Generator, logger *logging.Logger) *SeasonService {
	return &SeasonService{
		tx:     tx,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason",
		attribute.String("club_id", input.ClubID),
		attribute.String("seed_from_season_id", input.SeedFromSeasonID),
	)
	defer span.End()

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}
	now := s.now().UTC()
	item := season.Season{
		ID:                   seasonID,
		ClubID:               strings.TrimSpace(input.ClubID),
		Name:                 strings.TrimSpace(input.Name),
		Status:               season.StatusDraft,
		MinTeamSize:          input.MinTeamSize,
		MaxTeamSize:          input.MaxTeamSize,
		BestOf:               input.BestOf,
		OpenEnrollment:       input.OpenEnrollment,
		RequiresConfirmation: input.RequiresConfirmation,
		MatchDeadlineDays:    input.MatchDeadlineDays,
		ReminderDays:         input.ReminderDays,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	excluded := make(map[string]struct{}, len(input.ExcludedPlayerIDs))
	for _, playerID := range input.ExcludedPlayerIDs {
		excluded[strings.TrimSpace(playerID)] = struct{}{}
	}

	var seeded int
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Seasons.Create(ctx, item); err != nil {
			return fmt.Errorf("create season: %w", err)
		}

		order := []string{}
		if seedID := strings.TrimSpace(input.SeedFromSeasonID); seedID != "" {
			seedOrder, err := s.seedTeams(ctx, repos, item, seedID, excluded)
			if err != nil {
				return err
			}
			order = seedOrder
		}
		seeded = len(order)
		if _, err := repos.Standings.Append(ctx, item.ID, order); err != nil {
			return fmt.Errorf("append seed standings: %w", err)
		}

		eventID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}
		return repos.Events.Emit(ctx, event.Event{
			ID:       eventID,
			ClubID:   item.ClubID,
			PlayerID: input.CreatedBy,
			Type:     event.TypeSeasonCreated,
			Metadata: map[string]any{
				"season_id":    item.ID,
				"name":         item.Name,
				"seeded_teams": seeded,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		recordSpanError(span, err)
		return season.Season{}, err
	}

	s.logger.InfoContext(ctx, "season created", "season_id", item.ID, "club_id", item.ClubID, "seeded_teams", seeded)
	return item, nil
}

// seedTeams recreates the teams of source in its latest ladder order and
// returns the new team ids.
func (s *SeasonService) seedTeams(ctx context.Context, repos uow.Repositories, target season.Season, sourceID string, excluded map[string]struct{}) ([]string, error) {
	source, err := loadSeason(ctx, repos.Seasons, sourceID)
	if err != nil {
		return nil, err
	}
	if source.ClubID != target.ClubID {
		return nil, fmt.Errorf("%w: seed season=%s belongs to another club", ErrInvalidInput, source.ID)
	}

	latest, exists, err := repos.Standings.Latest(ctx, source.ID)
	if err != nil {
		return nil, fmt.Errorf("get seed standings: %w", err)
	}
	if !exists {
		return []string{}, nil
	}

	order := make([]string, 0, len(latest.TeamIDs))
	for _, oldTeamID := range latest.TeamIDs {
		old, exists, err := repos.Teams.GetByID(ctx, oldTeamID)
		if err != nil {
			return nil, fmt.Errorf("get seed team: %w", err)
		}
		if !exists {
			return nil, integrityErrorf(ErrDataIntegrity, "seed season=%s ranks missing team=%s", source.ID, oldTeamID)
		}
		if old.OptedOut || hasAnyPlayer(old, excluded) || !target.AcceptsTeamSize(len(old.PlayerIDs)) {
			continue
		}

		teamID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate team id: %w", err)
		}
		seededTeam := team.Team{
			ID:        teamID,
			SeasonID:  target.ID,
			PlayerIDs: append([]string(nil), old.PlayerIDs...),
			CreatedAt: target.CreatedAt,
		}
		if err := repos.Teams.Create(ctx, seededTeam); err != nil {
			return nil, fmt.Errorf("create seed team: %w", err)
		}
		order = append(order, teamID)
	}
	return order, nil
}

func (s *SeasonService) StartSeason(ctx context.Context, seasonID string) (season.Season, error) {
	return s.moveTo(ctx, seasonID, season.StatusActive)
}

func (s *SeasonService) EndSeason(ctx context.Context, seasonID string) (season.Season, error) {
	return s.moveTo(ctx, seasonID, season.StatusEnded)
}

func (s *SeasonService) moveTo(ctx context.Context, seasonID string, to season.Status) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.moveTo",
		attribute.String("season_id", seasonID),
		attribute.String("status", string(to)),
	)
	defer span.End()

	if err := requireIDs("season id", seasonID); err != nil {
		return season.Season{}, err
	}

	var item season.Season
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Locks.LockSeason(ctx, seasonID); err != nil {
			return fmt.Errorf("lock season: %w", err)
		}
		var err error
		item, err = loadSeason(ctx, repos.Seasons, seasonID)
		if err != nil {
			return err
		}
		if !season.CanMoveTo(item.Status, to) {
			return integrityErrorf(ErrInvalidState, "season=%s %s -> %s", item.ID, item.Status, to)
		}
		if err := repos.Seasons.UpdateStatus(ctx, item.ID, to); err != nil {
			return fmt.Errorf("update season status: %w", err)
		}
		item.Status = to
		item.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		if errors.Is(err, ErrDataIntegrity) {
			s.logger.ErrorContext(ctx, "season status change aborted", "season_id", seasonID, "error", fmt.Sprintf("%+v", err))
		}
		return season.Season{}, err
	}

	s.logger.InfoContext(ctx, "season status changed", "season_id", item.ID, "status", item.Status)
	return item, nil
}

// Enroll registers a new team and places it at the bottom of the ladder.
func (s *SeasonService) Enroll(ctx context.Context, input EnrollInput) (team.Team, error) {
	input.SeasonID = strings.TrimSpace(input.SeasonID)
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Enroll", attribute.String("season_id", input.SeasonID))
	defer span.End()

	if err := requireIDs("season id", input.SeasonID); err != nil {
		return team.Team{}, err
	}
	playerIDs := make([]string, 0, len(input.PlayerIDs))
	for _, playerID := range input.PlayerIDs {
		playerIDs = append(playerIDs, strings.TrimSpace(playerID))
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	eventID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate event id: %w", err)
	}

	created := team.Team{
		ID:        teamID,
		SeasonID:  input.SeasonID,
		PlayerIDs: playerIDs,
		CreatedAt: s.now().UTC(),
	}
	if err := created.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var rank int
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Locks.LockSeason(ctx, input.SeasonID); err != nil {
			return fmt.Errorf("lock season: %w", err)
		}
		item, err := loadSeason(ctx, repos.Seasons, input.SeasonID)
		if err != nil {
			return err
		}
		if item.Status == season.StatusEnded {
			return fmt.Errorf("%w: season=%s has ended", ErrInvalidInput, item.ID)
		}
		if !item.OpenEnrollment && !input.Admin {
			return fmt.Errorf("%w: season=%s is closed for self enrollment", ErrUnauthorized, item.ID)
		}
		if !item.AcceptsTeamSize(len(created.PlayerIDs)) {
			return fmt.Errorf("%w: team of %d players, season accepts %d..%d", ErrInvalidInput, len(created.PlayerIDs), item.MinTeamSize, item.MaxTeamSize)
		}

		existing, err := repos.Teams.ListBySeason(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list season teams: %w", err)
		}
		for _, other := range existing {
			for _, playerID := range created.PlayerIDs {
				if other.HasPlayer(playerID) {
					return fmt.Errorf("%w: player=%s already plays for team=%s", ErrInvalidInput, playerID, other.ID)
				}
			}
		}

		if err := repos.Teams.Create(ctx, created); err != nil {
			return fmt.Errorf("create team: %w", err)
		}

		latest, _, err := repos.Standings.Latest(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("get latest standings: %w", err)
		}
		next := standing.AppendTeam(latest.TeamIDs, created.ID)
		if _, err := repos.Standings.Append(ctx, item.ID, next); err != nil {
			return fmt.Errorf("append standings snapshot: %w", err)
		}
		rank = len(next)

		return repos.Events.Emit(ctx, event.Event{
			ID:       eventID,
			ClubID:   item.ClubID,
			PlayerID: created.PrimaryPlayerID(),
			Type:     event.TypeNewPlayer,
			Metadata: map[string]any{
				"season_id":  item.ID,
				"team_id":    created.ID,
				"player_ids": created.PlayerIDs,
				"rank":       rank,
			},
			CreatedAt: created.CreatedAt,
		})
	})
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team enrolled", "season_id", created.SeasonID, "team_id", created.ID, "rank", rank)
	return created, nil
}

// SetOptOut toggles whether a team can be challenged. Players may only
// change their own team, and ended seasons are frozen.
func (s *SeasonService) SetOptOut(ctx context.Context, input SetOptOutInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SetOptOut", attribute.String("team_id", input.TeamID))
	defer span.End()

	if err := requireIDs("season id", input.SeasonID, "team id", input.TeamID); err != nil {
		return team.Team{}, err
	}

	var item team.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		owner, err := loadSeason(ctx, repos.Seasons, input.SeasonID)
		if err != nil {
			return err
		}
		if owner.Status == season.StatusEnded {
			return fmt.Errorf("%w: season=%s has ended", ErrInvalidInput, owner.ID)
		}
		item, err = loadSeasonTeam(ctx, repos.Teams, input.SeasonID, input.TeamID)
		if err != nil {
			return err
		}
		if !input.Admin && !item.HasPlayer(input.PlayerID) {
			return fmt.Errorf("%w: player=%s is not on team=%s", ErrUnauthorized, input.PlayerID, item.ID)
		}
		if err := repos.Teams.SetOptedOut(ctx, item.ID, input.OptedOut); err != nil {
			return fmt.Errorf("set opted out: %w", err)
		}
		item.OptedOut = input.OptedOut
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team opt out changed", "team_id", item.ID, "opted_out", item.OptedOut)
	return item, nil
}

func hasAnyPlayer(t team.Team, players map[string]struct{}) bool {
	for _, playerID := range t.PlayerIDs {
		if _, ok := players[playerID]; ok {
			return true
		}
	}
	return false
}
