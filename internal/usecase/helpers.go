package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
)

// integrityErrorf wraps cause with a stack trace so the failure can be
// traced after the transaction has rolled back.
func integrityErrorf(cause error, format string, args ...any) error {
	return crerr.Wrapf(cause, format, args...)
}

func loadSeason(ctx context.Context, repo season.Repository, seasonID string) (season.Season, error) {
	item, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

func loadSeasonTeam(ctx context.Context, repo team.Repository, seasonID, teamID string) (team.Team, error) {
	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || item.SeasonID != seasonID {
		return team.Team{}, fmt.Errorf("%w: team=%s season=%s", ErrNotFound, teamID, seasonID)
	}
	return item, nil
}

func requireIDs(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, fields[i])
		}
	}
	return nil
}
