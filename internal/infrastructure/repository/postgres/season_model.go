package postgres

import "time"

type seasonTableModel struct {
	ID                   int64     `db:"id"`
	PublicID             string    `db:"public_id"`
	ClubID               string    `db:"club_public_id"`
	Name                 string    `db:"name"`
	Status               string    `db:"status"`
	MinTeamSize          int       `db:"min_team_size"`
	MaxTeamSize          int       `db:"max_team_size"`
	BestOf               int       `db:"best_of"`
	OpenEnrollment       bool      `db:"open_enrollment"`
	RequiresConfirmation bool      `db:"requires_confirmation"`
	MatchDeadlineDays    int       `db:"match_deadline_days"`
	ReminderDays         int       `db:"reminder_days"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

type seasonInsertModel struct {
	PublicID             string    `db:"public_id"`
	ClubID               string    `db:"club_public_id"`
	Name                 string    `db:"name"`
	Status               string    `db:"status"`
	MinTeamSize          int       `db:"min_team_size"`
	MaxTeamSize          int       `db:"max_team_size"`
	BestOf               int       `db:"best_of"`
	OpenEnrollment       bool      `db:"open_enrollment"`
	RequiresConfirmation bool      `db:"requires_confirmation"`
	MatchDeadlineDays    int       `db:"match_deadline_days"`
	ReminderDays         int       `db:"reminder_days"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}
