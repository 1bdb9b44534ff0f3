package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/pyramid"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
)

type validateScoresRequest struct {
	Team1Scores []int `json:"team1_scores" validate:"required,min=1,dive,min=0"`
	Team2Scores []int `json:"team2_scores" validate:"required,min=1,dive,min=0"`
	BestOf      int   `json:"best_of" validate:"required,min=1"`
}

func (h *Handler) CanChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CanChallenge")
	defer span.End()

	challengerRank, err := parseRank(r, "challenger_rank")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	challengeeRank, err := parseRank(r, "challengee_rank")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"can_challenge":   pyramid.CanChallenge(challengerRank, challengeeRank),
		"challenger_row":  pyramid.Row(challengerRank),
		"challengee_row":  pyramid.Row(challengeeRank),
		"reachable_ranks": pyramid.Targets(challengerRank),
	})
}

func (h *Handler) ValidateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateScores")
	defer span.End()

	var req validateScoresRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	winner := ""
	valid := match.ValidateScores(req.Team1Scores, req.Team2Scores, req.BestOf)
	if valid {
		switch match.DecideWinner(req.Team1Scores, req.Team2Scores, req.BestOf) {
		case match.SideTeam1:
			winner = "team1"
		case match.SideTeam2:
			winner = "team2"
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"valid":  valid,
		"winner": winner,
	})
}

func parseRank(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, key)
	}
	rank, err := strconv.Atoi(raw)
	if err != nil || rank < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, key)
	}
	return rank, nil
}
