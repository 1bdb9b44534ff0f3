package standing

import "context"

// Repository is the append-only snapshot log of a season's standings.
type Repository interface {
	Latest(ctx context.Context, seasonID string) (Snapshot, bool, error)
	Previous(ctx context.Context, seasonID string) (Snapshot, bool, error)
	// Recent returns up to limit snapshots, newest first, from one read.
	Recent(ctx context.Context, seasonID string, limit int) ([]Snapshot, error)
	Append(ctx context.Context, seasonID string, teamIDs []string) (Snapshot, error)
	Count(ctx context.Context, seasonID string) (int, error)
}
