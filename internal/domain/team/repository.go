package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Team, error)
	SetOptedOut(ctx context.Context, teamID string, optedOut bool) error
}
