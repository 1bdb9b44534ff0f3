package team

import (
	"fmt"
	"time"
)

// Team is one ladder participant of a season: a single player in an
// individual season or a group of players in a team season.
type Team struct {
	ID        string
	SeasonID  string
	PlayerIDs []string
	OptedOut  bool
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team season id is required")
	}
	if len(t.PlayerIDs) == 0 {
		return fmt.Errorf("team needs at least one player")
	}

	seen := make(map[string]struct{}, len(t.PlayerIDs))
	for _, playerID := range t.PlayerIDs {
		if playerID == "" {
			return fmt.Errorf("team player id is required")
		}
		if _, dup := seen[playerID]; dup {
			return fmt.Errorf("duplicate player %s in team", playerID)
		}
		seen[playerID] = struct{}{}
	}

	return nil
}

func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// PrimaryPlayerID is the player notified on behalf of the team.
func (t Team) PrimaryPlayerID() string {
	if len(t.PlayerIDs) == 0 {
		return ""
	}
	return t.PlayerIDs[0]
}
