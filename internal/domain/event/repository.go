package event

import "context"

type Repository interface {
	Emit(ctx context.Context, e Event) error
	ListByClub(ctx context.Context, clubID string, limit int) ([]Event, error)
}
