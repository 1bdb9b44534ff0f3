package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

const (
	playerIDHeader   = "X-Player-ID"
	adminTokenHeader = "X-Admin-Token"
)

// IdentifyActor reads the acting player and the admin token from the
// gateway headers. It never rejects a request; the route guards do.
func IdentifyActor(adminToken string, next http.Handler) http.Handler {
	expected := strings.TrimSpace(adminToken)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.IdentifyActor")
		defer span.End()

		a := actor{PlayerID: strings.TrimSpace(r.Header.Get(playerIDHeader))}
		provided := strings.TrimSpace(r.Header.Get(adminTokenHeader))
		if expected != "" && provided != "" &&
			subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1 {
			a.Admin = true
		}

		next.ServeHTTP(w, r.WithContext(withActor(ctx, a)))
	})
}

func RequirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequirePlayer")
		defer span.End()

		a, ok := actorFromContext(ctx)
		if !ok || a.PlayerID == "" {
			writeError(ctx, w, fmt.Errorf("%w: missing %s header", usecase.ErrUnauthorized, playerIDHeader))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireAdmin")
		defer span.End()

		a, ok := actorFromContext(ctx)
		if !ok || !a.Admin {
			writeError(ctx, w, fmt.Errorf("%w: admin token required", usecase.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequirePlayerOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequirePlayerOrAdmin")
		defer span.End()

		a, ok := actorFromContext(ctx)
		if !ok || (a.PlayerID == "" && !a.Admin) {
			writeError(ctx, w, fmt.Errorf("%w: missing %s header", usecase.ErrUnauthorized, playerIDHeader))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		spanContext := trace.SpanContextFromContext(ctx)
		traceID := ""
		if spanContext.IsValid() {
			traceID = spanContext.TraceID().String()
		}

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"player_id", strings.TrimSpace(r.Header.Get(playerIDHeader)),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
			"trace_id", traceID,
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "pyramid-ladder-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + routeTemplate(r.URL.Path)
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.Method, r.URL.Path)
		}),
	)
}

// shouldTraceRequest skips probes and CORS preflights.
func shouldTraceRequest(method, path string) bool {
	if method == http.MethodOptions {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

var routeParams = map[string]string{
	"seasons": "{seasonID}",
	"teams":   "{teamID}",
	"matches": "{matchID}",
	"clubs":   "{clubID}",
}

// routeTemplate replaces the id after each collection segment so span names
// stay low cardinality: /v1/matches/m-1/result -> /v1/matches/{matchID}/result.
func routeTemplate(path string) string {
	segments := strings.Split(strings.Trim(strings.TrimSpace(path), "/"), "/")
	for i := 1; i < len(segments); i++ {
		if param, ok := routeParams[segments[i-1]]; ok && segments[i] != "" {
			segments[i] = param
		}
	}
	return "/" + strings.Join(segments, "/")
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed := allowAll
		if !allowed {
			_, allowed = allowMap[origin]
		}
		if allowed {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Accept,"+playerIDHeader+","+adminTokenHeader)
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
