package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
)

type challengeRequest struct {
	ClubID             string `json:"club_id" validate:"omitempty,max=64"`
	ChallengerTeamID   string `json:"challenger_team_id" validate:"required"`
	ChallengeeTeamID   string `json:"challengee_team_id" validate:"required,nefield=ChallengerTeamID"`
	ChallengeePlayerID string `json:"challengee_player_id" validate:"required"`
	Text               string `json:"text" validate:"max=1000"`
}

type setDateRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type submitResultRequest struct {
	Team1Scores []int `json:"team1_scores" validate:"required,min=1,dive,min=0"`
	Team2Scores []int `json:"team2_scores" validate:"required,min=1,dive,min=0"`
}

type forfeitRequest struct {
	TeamID string `json:"team_id" validate:"omitempty,max=64"`
}

func (h *Handler) Challenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Challenge")
	defer span.End()

	a := currentActor(ctx)
	var req challengeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	matchID, err := h.challengeService.Challenge(ctx, usecase.ChallengeInput{
		SeasonID:           seasonID,
		ClubID:             req.ClubID,
		ChallengerTeamID:   req.ChallengerTeamID,
		ChallengeeTeamID:   req.ChallengeeTeamID,
		ChallengerPlayerID: a.PlayerID,
		ChallengeePlayerID: req.ChallengeePlayerID,
		Text:               req.Text,
	})
	if err != nil {
		h.fail(ctx, w, "challenge", err,
			"season_id", seasonID,
			"challenger_team_id", req.ChallengerTeamID,
			"challengee_team_id", req.ChallengeeTeamID,
		)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]string{"match_id": matchID})
}

func (h *Handler) SetMatchDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchDate")
	defer span.End()

	var req setDateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.respondMatch(w, r.WithContext(ctx), "set match date", func() (match.Match, error) {
		return h.matchService.SetDate(ctx, usecase.SetDateInput{
			MatchID:  r.PathValue("matchID"),
			PlayerID: currentActor(ctx).PlayerID,
			At:       req.ScheduledAt,
		})
	})
}

func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitResult")
	defer span.End()

	var req submitResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.respondMatch(w, r.WithContext(ctx), "submit result", func() (match.Match, error) {
		return h.matchService.SubmitResult(ctx, usecase.SubmitResultInput{
			MatchID:     r.PathValue("matchID"),
			EnteredBy:   currentActor(ctx).PlayerID,
			Team1Scores: req.Team1Scores,
			Team2Scores: req.Team2Scores,
		})
	})
}

func (h *Handler) ConfirmResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmResult")
	defer span.End()

	a := currentActor(ctx)
	h.respondMatch(w, r.WithContext(ctx), "confirm result", func() (match.Match, error) {
		return h.matchService.ConfirmResult(ctx, usecase.ConfirmResultInput{
			MatchID:     r.PathValue("matchID"),
			ConfirmedBy: a.PlayerID,
			Admin:       a.Admin,
		})
	})
}

func (h *Handler) DisputeResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DisputeResult")
	defer span.End()

	h.respondMatch(w, r.WithContext(ctx), "dispute result", func() (match.Match, error) {
		return h.matchService.DisputeResult(ctx, r.PathValue("matchID"), currentActor(ctx).PlayerID)
	})
}

func (h *Handler) Forfeit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Forfeit")
	defer span.End()

	a := currentActor(ctx)
	var req forfeitRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.respondMatch(w, r.WithContext(ctx), "forfeit", func() (match.Match, error) {
		return h.matchService.Forfeit(ctx, usecase.ForfeitInput{
			MatchID:          r.PathValue("matchID"),
			ForfeitedBy:      a.PlayerID,
			ForfeitingTeamID: req.TeamID,
			Admin:            a.Admin,
		})
	})
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Withdraw")
	defer span.End()

	h.respondMatch(w, r.WithContext(ctx), "withdraw", func() (match.Match, error) {
		return h.matchService.Withdraw(ctx, r.PathValue("matchID"), currentActor(ctx).PlayerID)
	})
}

func (h *Handler) respondMatch(w http.ResponseWriter, r *http.Request, op string, call func() (match.Match, error)) {
	ctx := r.Context()
	item, err := call()
	if err != nil {
		h.fail(ctx, w, op, err, "match_id", r.PathValue("matchID"), "player_id", currentActor(ctx).PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}
