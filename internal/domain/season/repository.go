package season

import "context"

type Repository interface {
	Create(ctx context.Context, s Season) error
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	UpdateStatus(ctx context.Context, seasonID string, status Status) error
}
