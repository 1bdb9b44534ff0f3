package httpapi

import (
	"time"

	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/match"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/season"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/team"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/unavailability"
	"github.com/riskibarqy/pyramid-ladder/internal/usecase"
)

type seasonDTO struct {
	ID                   string    `json:"id"`
	ClubID               string    `json:"club_id"`
	Name                 string    `json:"name"`
	Status               string    `json:"status"`
	MinTeamSize          int       `json:"min_team_size"`
	MaxTeamSize          int       `json:"max_team_size"`
	BestOf               int       `json:"best_of"`
	OpenEnrollment       bool      `json:"open_enrollment"`
	RequiresConfirmation bool      `json:"requires_confirmation"`
	MatchDeadlineDays    int       `json:"match_deadline_days"`
	ReminderDays         int       `json:"reminder_days"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func seasonToDTO(s season.Season) seasonDTO {
	return seasonDTO{
		ID:                   s.ID,
		ClubID:               s.ClubID,
		Name:                 s.Name,
		Status:               string(s.Status),
		MinTeamSize:          s.MinTeamSize,
		MaxTeamSize:          s.MaxTeamSize,
		BestOf:               s.BestOf,
		OpenEnrollment:       s.OpenEnrollment,
		RequiresConfirmation: s.RequiresConfirmation,
		MatchDeadlineDays:    s.MatchDeadlineDays,
		ReminderDays:         s.ReminderDays,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

type teamDTO struct {
	ID        string    `json:"id"`
	SeasonID  string    `json:"season_id"`
	PlayerIDs []string  `json:"player_ids"`
	OptedOut  bool      `json:"opted_out"`
	CreatedAt time.Time `json:"created_at"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:        t.ID,
		SeasonID:  t.SeasonID,
		PlayerIDs: t.PlayerIDs,
		OptedOut:  t.OptedOut,
		CreatedAt: t.CreatedAt,
	}
}

type matchDTO struct {
	ID            string     `json:"id"`
	SeasonID      string     `json:"season_id"`
	Team1ID       string     `json:"team1_id"`
	Team2ID       string     `json:"team2_id"`
	Status        string     `json:"status"`
	Team1Scores   []int      `json:"team1_scores,omitempty"`
	Team2Scores   []int      `json:"team2_scores,omitempty"`
	WinnerTeamID  *string    `json:"winner_team_id,omitempty"`
	EnteredBy     *string    `json:"entered_by,omitempty"`
	ChallengeText string     `json:"challenge_text,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:            m.ID,
		SeasonID:      m.SeasonID,
		Team1ID:       m.Team1ID,
		Team2ID:       m.Team2ID,
		Status:        string(m.Status),
		Team1Scores:   m.Team1Scores,
		Team2Scores:   m.Team2Scores,
		WinnerTeamID:  m.WinnerTeamID,
		EnteredBy:     m.EnteredBy,
		ChallengeText: m.ChallengeText,
		ScheduledAt:   m.ScheduledAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type ladderRowDTO struct {
	Rank      int      `json:"rank"`
	Row       int      `json:"row"`
	TeamID    string   `json:"team_id"`
	PlayerIDs []string `json:"player_ids"`
	OptedOut  bool     `json:"opted_out"`
	Movement  string   `json:"movement,omitempty"`
}

type ladderDTO struct {
	SeasonID   string         `json:"season_id"`
	SnapshotID int64          `json:"snapshot_id"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Rows       []ladderRowDTO `json:"rows"`
}

func ladderRowsToDTO(rows []usecase.LadderRow) []ladderRowDTO {
	out := make([]ladderRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ladderRowDTO{
			Rank:      row.Rank,
			Row:       row.Row,
			TeamID:    row.TeamID,
			PlayerIDs: row.PlayerIDs,
			OptedOut:  row.OptedOut,
			Movement:  string(row.Movement),
		})
	}
	return out
}

func ladderToDTO(l usecase.Ladder) ladderDTO {
	return ladderDTO{
		SeasonID:   l.SeasonID,
		SnapshotID: l.SnapshotID,
		UpdatedAt:  l.UpdatedAt,
		Rows:       ladderRowsToDTO(l.Rows),
	}
}

type unavailabilityDTO struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	From     time.Time `json:"from"`
	Until    time.Time `json:"until"`
}

func unavailabilityToDTO(p unavailability.Period) unavailabilityDTO {
	return unavailabilityDTO{ID: p.ID, PlayerID: p.PlayerID, From: p.From, Until: p.Until}
}

type eventDTO struct {
	ID        string         `json:"id"`
	ClubID    string         `json:"club_id"`
	PlayerID  string         `json:"player_id,omitempty"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func eventsToDTO(items []event.Event) []eventDTO {
	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventDTO{
			ID:        item.ID,
			ClubID:    item.ClubID,
			PlayerID:  item.PlayerID,
			Type:      string(item.Type),
			Metadata:  item.Metadata,
			CreatedAt: item.CreatedAt,
		})
	}
	return out
}
