package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pyramid-ladder/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/pyramid-ladder/internal/platform/id"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "admin-secret"

type envelope struct {
	Data  map[string]any   `json:"data"`
	Error *googleErrorBody `json:"error"`
}

type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, memory.SeedLadder(context.Background(), store, memory.DemoLadder(time.Now())))

	logger := logging.NewNop()
	ids := idgen.NewUUIDGenerator()
	handler := NewHandler(
		usecase.NewChallengeService(store, ids, logger),
		usecase.NewMatchService(store, usecase.NewStandingsUpdater(logger), ids, logger),
		usecase.NewSeasonService(store, ids, logger),
		usecase.NewStandingsService(store, logger),
		usecase.NewActivityService(store, ids, logger),
		logger,
	)
	return NewRouter(handler, logger, testAdminToken, nil)
}

type call struct {
	method string
	path   string
	body   string
	player string
	admin  bool
}

func do(t *testing.T, router http.Handler, c call) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.player != "" {
		req.Header.Set(playerIDHeader, c.player)
	}
	if c.admin {
		req.Header.Set(adminTokenHeader, testAdminToken)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var out envelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func teamPath(n int) string {
	return fmt.Sprintf("demo-team-%d", n)
}

func playerID(n int) string {
	return fmt.Sprintf("demo-player-%d", n)
}

func challengeBody(challenger, challengee int) string {
	return `{"challenger_team_id":"` + teamPath(challenger) +
		`","challengee_team_id":"` + teamPath(challengee) +
		`","challengee_player_id":"` + playerID(challengee) + `","text":"Saturday?"}`
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, call{method: http.MethodGet, path: "/healthz"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode(t, rec).Data["status"])
}

func TestCanChallengeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, call{method: http.MethodGet, path: "/v1/pyramid/can-challenge?challenger_rank=4&challengee_rank=2"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body.Data["can_challenge"])
	require.EqualValues(t, 3, body.Data["challenger_row"])

	rec = do(t, router, call{method: http.MethodGet, path: "/v1/pyramid/can-challenge?challenger_rank=2&challengee_rank=4"})
	require.Equal(t, false, decode(t, rec).Data["can_challenge"])

	rec = do(t, router, call{method: http.MethodGet, path: "/v1/pyramid/can-challenge?challenger_rank=0&challengee_rank=1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateScoresEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, call{method: http.MethodPost, path: "/v1/scores/validate", body: `{"team1_scores":[6,3,6],"team2_scores":[4,6,2],"best_of":3}`})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body.Data["valid"])
	require.Equal(t, "team1", body.Data["winner"])

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/scores/validate", body: `{"team1_scores":[6,6,6],"team2_scores":[4,4,4],"best_of":3}`})
	require.Equal(t, false, decode(t, rec).Data["valid"])

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/scores/validate", body: `{"team1_scores":[6],"unknown":1}`})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChallengeToConfirmedUpset(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, call{method: http.MethodPost, path: "/v1/seasons/" + memory.DemoSeasonID + "/challenges", body: challengeBody(4, 2), player: playerID(4)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	matchID, _ := decode(t, rec).Data["match_id"].(string)
	require.NotEmpty(t, matchID)

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/matches/" + matchID + "/result", body: `{"team1_scores":[6,6],"team2_scores":[3,4]}`, player: playerID(4)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "pending_confirmation", decode(t, rec).Data["status"])

	// the submitting side cannot confirm its own result
	rec = do(t, router, call{method: http.MethodPost, path: "/v1/matches/" + matchID + "/confirm", player: playerID(4)})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/matches/" + matchID + "/confirm", player: playerID(2)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.Equal(t, "completed", body.Data["status"])
	require.Equal(t, teamPath(4), body.Data["winner_team_id"])

	rec = do(t, router, call{method: http.MethodGet, path: "/v1/seasons/" + memory.DemoSeasonID + "/standings"})
	require.Equal(t, http.StatusOK, rec.Code)
	rows, _ := decode(t, rec).Data["rows"].([]any)
	require.Len(t, rows, 6)
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		order = append(order, row.(map[string]any)["team_id"].(string))
	}
	require.Equal(t, []string{teamPath(1), teamPath(4), teamPath(2), teamPath(3), teamPath(5), teamPath(6)}, order)

	rec = do(t, router, call{method: http.MethodGet, path: "/v1/clubs/" + memory.DemoClubID + "/events?limit=1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var feed listEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed.Data, 1)
	require.Equal(t, "result_confirmed", feed.Data[0]["type"])
}

func TestChallengeErrorsMapToStatus(t *testing.T) {
	router := newTestRouter(t)
	path := "/v1/seasons/" + memory.DemoSeasonID + "/challenges"

	rec := do(t, router, call{method: http.MethodPost, path: path, body: challengeBody(4, 2)})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, call{method: http.MethodPost, path: path, body: challengeBody(2, 4), player: playerID(2)})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "illegalChallenge", decode(t, rec).Error.Errors[0].Reason)

	rec = do(t, router, call{method: http.MethodPost, path: path, body: challengeBody(4, 2), player: playerID(4)})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, call{method: http.MethodPost, path: path, body: challengeBody(5, 4), player: playerID(5)})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/players/me/unavailability", body: `{"from":"2000-01-01T00:00:00Z","until":"2999-01-01T00:00:00Z"}`, player: playerID(3)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, router, call{method: http.MethodPost, path: path, body: challengeBody(5, 3), player: playerID(5)})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "challengeeUnavailable", decode(t, rec).Error.Errors[0].Reason)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)
	body := `{"club_id":"club-2","name":"Doubles","min_team_size":2,"max_team_size":2,"best_of":3,"open_enrollment":true}`

	rec := do(t, router, call{method: http.MethodPost, path: "/v1/seasons", body: body, player: playerID(1)})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/seasons", body: body, admin: true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec).Data
	require.Equal(t, "draft", created["status"])
	seasonID := created["id"].(string)

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/seasons/" + seasonID + "/teams", body: `{"player_ids":["a","b"]}`, player: "c"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/seasons/" + seasonID + "/teams", body: `{"player_ids":["a","b"]}`, player: "a"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, call{method: http.MethodPost, path: "/v1/seasons/" + seasonID + "/start", admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "active", decode(t, rec).Data["status"])

	// starting twice is an illegal season move, reported as a server-side integrity failure
	rec = do(t, router, call{method: http.MethodPost, path: "/v1/seasons/" + seasonID + "/start", admin: true})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOptOutHidesTeamFromTargets(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, call{method: http.MethodPut, path: "/v1/seasons/" + memory.DemoSeasonID + "/teams/" + teamPath(2) + "/opt-out", body: `{"opted_out":true}`, player: playerID(3)})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, call{method: http.MethodPut, path: "/v1/seasons/" + memory.DemoSeasonID + "/teams/" + teamPath(2) + "/opt-out", body: `{"opted_out":true}`, player: playerID(2)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, call{method: http.MethodGet, path: "/v1/seasons/" + memory.DemoSeasonID + "/teams/" + teamPath(4) + "/targets"})
	require.Equal(t, http.StatusOK, rec.Code)
	var targets listEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &targets))
	for _, row := range targets.Data {
		require.NotEqual(t, teamPath(2), row["team_id"])
	}
}
