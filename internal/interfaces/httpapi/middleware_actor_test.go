package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdentifyActor(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		player     string
		token      string
		want       actor
	}{
		{name: "player only", configured: "s3cret", player: " p-1 ", want: actor{PlayerID: "p-1"}},
		{name: "admin token", configured: "s3cret", token: "s3cret", want: actor{Admin: true}},
		{name: "wrong token", configured: "s3cret", player: "p-1", token: "nope", want: actor{PlayerID: "p-1"}},
		{name: "admin disabled when unconfigured", configured: "", token: "", want: actor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got actor
			handler := IdentifyActor(tt.configured, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got, _ = actorFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.player != "" {
				req.Header.Set(playerIDHeader, tt.player)
			}
			if tt.token != "" {
				req.Header.Set(adminTokenHeader, tt.token)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Fatalf("actor=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestRouteGuards(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name  string
		guard func(http.Handler) http.Handler
		a     actor
		want  int
	}{
		{name: "player guard rejects anonymous", guard: RequirePlayer, want: http.StatusForbidden},
		{name: "player guard accepts player", guard: RequirePlayer, a: actor{PlayerID: "p"}, want: http.StatusNoContent},
		{name: "admin guard rejects player", guard: RequireAdmin, a: actor{PlayerID: "p"}, want: http.StatusForbidden},
		{name: "admin guard accepts admin", guard: RequireAdmin, a: actor{Admin: true}, want: http.StatusNoContent},
		{name: "either guard accepts admin", guard: RequirePlayerOrAdmin, a: actor{Admin: true}, want: http.StatusNoContent},
		{name: "either guard rejects anonymous", guard: RequirePlayerOrAdmin, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req = req.WithContext(withActor(req.Context(), tt.a))
			rec := httptest.NewRecorder()
			tt.guard(ok).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}
