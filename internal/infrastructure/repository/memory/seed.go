package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/uow"
)

const (
	DemoClubID   = "club-demo"
	DemoSeasonID = "season-demo-2026"
)

// Ladder is a season with its teams listed in initial rank order.
type Ladder struct {
	Season season.Season
	Teams  []team.Team
}

// SeedLadder stores the season, its teams and the initial snapshot in one
// transaction.
func SeedLadder(ctx context.Context, store uow.Transactor, ladder Ladder) error {
	return store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Seasons.Create(ctx, ladder.Season); err != nil {
			return fmt.Errorf("seed season: %w", err)
		}
		order := make([]string, 0, len(ladder.Teams))
		for _, item := range ladder.Teams {
			item.SeasonID = ladder.Season.ID
			if err := repos.Teams.Create(ctx, item); err != nil {
				return fmt.Errorf("seed team: %w", err)
			}
			order = append(order, item.ID)
		}
		if _, err := repos.Standings.Append(ctx, ladder.Season.ID, order); err != nil {
			return fmt.Errorf("seed standings: %w", err)
		}
		return nil
	})
}

// DemoLadder is an active singles season with six ranked players, used when
// the service runs without a database.
func DemoLadder(now time.Time) Ladder {
	now = now.UTC()
	item := season.Season{
		ID:                   DemoSeasonID,
		ClubID:               DemoClubID,
		Name:                 "Demo Singles 2026",
		Status:               season.StatusActive,
		MinTeamSize:          1,
		MaxTeamSize:          1,
		BestOf:               3,
		OpenEnrollment:       true,
		RequiresConfirmation: true,
		MatchDeadlineDays:    14,
		ReminderDays:         7,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	teams := make([]team.Team, 0, 6)
	for i := 1; i <= 6; i++ {
		teams = append(teams, team.Team{
			ID:        fmt.Sprintf("demo-team-%d", i),
			SeasonID:  item.ID,
			PlayerIDs: []string{fmt.Sprintf("demo-player-%d", i)},
			CreatedAt: now,
		})
	}
	return Ladder{Season: item, Teams: teams}
}
