package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo ladder once. It is a no-op when the demo
// season already exists.
func BootstrapSeed(ctx context.Context, store *Store) error {
	var count int
	if err := store.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons WHERE public_id = $1`, memory.DemoSeasonID); err != nil {
		return fmt.Errorf("count demo seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := memory.SeedLadder(ctx, store, memory.DemoLadder(time.Now())); err != nil {
		return fmt.Errorf("bootstrap seed: %w", err)
	}
	return nil
}
