package match

import "context"

type Repository interface {
	Create(ctx context.Context, m Match) error
	// GetByID loads a match for update within the current unit of work.
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Update(ctx context.Context, m Match) error
	HasOpenMatch(ctx context.Context, seasonID, teamID string) (bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
}
