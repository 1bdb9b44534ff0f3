package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
	idgen "github.com/riskibarqy/pyramid-ladder/internal/platform/id"
	"github.com/riskibarqy/pyramid-ladder/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

type MarkUnavailableInput struct {
	PlayerID string
	From     time.Time
	Until    time.Time
}

// ActivityService records player absences and serves the club event feed.
type ActivityService struct {
	store  uow.Store
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewActivityService(store uow.Store, idGen idgen.Generator, logger *logging.Logger) *ActivityService {
	return &ActivityService{store: store, idGen: idGen, logger: logger}
}

func (s *ActivityService) MarkUnavailable(ctx context.Context, input MarkUnavailableInput) (unavailability.Period, error) {
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.MarkUnavailable", attribute.String("player_id", input.PlayerID))
	defer span.End()

	if err := requireIDs("player id", input.PlayerID); err != nil {
		return unavailability.Period{}, err
	}
	if input.From.IsZero() || input.Until.IsZero() || !input.Until.After(input.From) {
		return unavailability.Period{}, fmt.Errorf("%w: unavailability needs from < until", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return unavailability.Period{}, fmt.Errorf("generate unavailability id: %w", err)
	}
	period := unavailability.Period{
		ID:       id,
		PlayerID: input.PlayerID,
		From:     input.From.UTC(),
		Until:    input.Until.UTC(),
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return repos.Unavailability.Create(ctx, period)
	})
	if err != nil {
		recordSpanError(span, err)
		return unavailability.Period{}, fmt.Errorf("create unavailability: %w", err)
	}

	s.logger.InfoContext(ctx, "player marked unavailable",
		"player_id", period.PlayerID,
		"from", period.From,
		"until", period.Until,
	)
	return period, nil
}

// Feed returns the newest club events first. A limit outside 1..200 falls
// back to the default page.
func (s *ActivityService) Feed(ctx context.Context, clubID string, limit int) ([]event.Event, error) {
	clubID = strings.TrimSpace(clubID)
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.Feed", attribute.String("club_id", clubID))
	defer span.End()

	if err := requireIDs("club id", clubID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}

	items, err := s.store.Repositories().Events.ListByClub(ctx, clubID, limit)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list club events: %w", err)
	}
	return items, nil
}
