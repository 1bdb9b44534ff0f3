package unavailability

import (
	"context"
	"time"
)

type Repository interface {
	// UnavailableTeamIDs returns the teams of seasonID with at least one
	// player unavailable at the given instant.
	UnavailableTeamIDs(ctx context.Context, seasonID string, at time.Time) (map[string]struct{}, error)
	Create(ctx context.Context, p Period) error
}
