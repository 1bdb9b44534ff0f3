package httpapi

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
)

type createSeasonRequest struct {
	ClubID               string   `json:"club_id" validate:"required,max=64"`
	Name                 string   `json:"name" validate:"required,max=100"`
	MinTeamSize          int      `json:"min_team_size" validate:"required,min=1"`
	MaxTeamSize          int      `json:"max_team_size" validate:"required,gtefield=MinTeamSize"`
	BestOf               int      `json:"best_of" validate:"required,min=1"`
	OpenEnrollment       bool     `json:"open_enrollment"`
	RequiresConfirmation bool     `json:"requires_confirmation"`
	MatchDeadlineDays    int      `json:"match_deadline_days" validate:"min=0"`
	ReminderDays         int      `json:"reminder_days" validate:"min=0"`
	SeedFromSeasonID     string   `json:"seed_from_season_id" validate:"omitempty,max=64"`
	ExcludedPlayerIDs    []string `json:"excluded_player_ids" validate:"omitempty,dive,required"`
}

type enrollRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

type optOutRequest struct {
	OptedOut bool `json:"opted_out"`
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.CreateSeason(ctx, usecase.CreateSeasonInput{
		ClubID:               req.ClubID,
		Name:                 req.Name,
		MinTeamSize:          req.MinTeamSize,
		MaxTeamSize:          req.MaxTeamSize,
		BestOf:               req.BestOf,
		OpenEnrollment:       req.OpenEnrollment,
		RequiresConfirmation: req.RequiresConfirmation,
		MatchDeadlineDays:    req.MatchDeadlineDays,
		ReminderDays:         req.ReminderDays,
		SeedFromSeasonID:     req.SeedFromSeasonID,
		ExcludedPlayerIDs:    req.ExcludedPlayerIDs,
		CreatedBy:            currentActor(ctx).PlayerID,
	})
	if err != nil {
		h.fail(ctx, w, "create season", err, "club_id", req.ClubID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) StartSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.StartSeason(ctx, seasonID)
	if err != nil {
		h.fail(ctx, w, "start season", err, "season_id", seasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) EndSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.EndSeason(ctx, seasonID)
	if err != nil {
		h.fail(ctx, w, "end season", err, "season_id", seasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Enroll")
	defer span.End()

	a := currentActor(ctx)
	var req enrollRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	// players enroll themselves, optionally with partners
	if !a.Admin && !slices.Contains(req.PlayerIDs, a.PlayerID) {
		writeError(ctx, w, fmt.Errorf("%w: player=%s must be part of the enrolled team", usecase.ErrUnauthorized, a.PlayerID))
		return
	}

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.Enroll(ctx, usecase.EnrollInput{
		SeasonID:  seasonID,
		PlayerIDs: req.PlayerIDs,
		Admin:     a.Admin,
	})
	if err != nil {
		h.fail(ctx, w, "enroll", err, "season_id", seasonID, "player_id", a.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) SetOptOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetOptOut")
	defer span.End()

	a := currentActor(ctx)
	var req optOutRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	item, err := h.seasonService.SetOptOut(ctx, usecase.SetOptOutInput{
		SeasonID: r.PathValue("seasonID"),
		TeamID:   teamID,
		PlayerID: a.PlayerID,
		OptedOut: req.OptedOut,
		Admin:    a.Admin,
	})
	if err != nil {
		h.fail(ctx, w, "set opt out", err, "team_id", teamID, "player_id", a.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Standings")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	ladder, err := h.standingsService.Ladder(ctx, seasonID)
	if err != nil {
		h.fail(ctx, w, "standings", err, "season_id", seasonID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ladderToDTO(ladder))
}

func (h *Handler) ChallengeTargets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChallengeTargets")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teamID := r.PathValue("teamID")
	rows, err := h.standingsService.ChallengeTargets(ctx, seasonID, teamID)
	if err != nil {
		h.fail(ctx, w, "challenge targets", err, "season_id", seasonID, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ladderRowsToDTO(rows))
}
