package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
)

type unavailabilityRequest struct {
	From  time.Time `json:"from" validate:"required"`
	Until time.Time `json:"until" validate:"required"`
}

func (h *Handler) MarkUnavailable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkUnavailable")
	defer span.End()

	a := currentActor(ctx)
	var req unavailabilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	period, err := h.activityService.MarkUnavailable(ctx, usecase.MarkUnavailableInput{
		PlayerID: a.PlayerID,
		From:     req.From,
		Until:    req.Until,
	})
	if err != nil {
		h.fail(ctx, w, "mark unavailable", err, "player_id", a.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, unavailabilityToDTO(period))
}

func (h *Handler) ClubEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClubEvents")
	defer span.End()

	// malformed limits fall back to the default page
	limit, _ := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("limit")))

	clubID := r.PathValue("clubID")
	items, err := h.activityService.Feed(ctx, clubID, limit)
	if err != nil {
		h.fail(ctx, w, "club events", err, "club_id", clubID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsToDTO(items))
}
