package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	challengeService *usecase.ChallengeService
	matchService     *usecase.MatchService
	seasonService    *usecase.SeasonService
	standingsService *usecase.StandingsService
	activityService  *usecase.ActivityService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	challengeService *usecase.ChallengeService,
	matchService *usecase.MatchService,
	seasonService *usecase.SeasonService,
	standingsService *usecase.StandingsService,
	activityService *usecase.ActivityService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		challengeService: challengeService,
		matchService:     matchService,
		seasonService:    seasonService,
		standingsService: standingsService,
		activityService:  activityService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body into dst and validates it. An empty body
// is accepted for payloads without required fields.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// fail logs and writes err. Legality failures are expected traffic and go
// out at warn; integrity failures were already logged with their stack.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error, args ...any) {
	if mapError(err).HTTPStatus != http.StatusInternalServerError {
		h.logger.WarnContext(ctx, op+" rejected", append(args, "error", err)...)
	}
	writeError(ctx, w, err)
}

func currentActor(ctx context.Context) actor {
	a, _ := actorFromContext(ctx)
	return a
}
