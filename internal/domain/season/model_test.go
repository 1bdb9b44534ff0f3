package season

import "testing"

func TestSeasonValidate(t *testing.T) {
	t.Parallel()

	base := Season{ID: "s1", ClubID: "c1", Name: "Summer", MinTeamSize: 1, MaxTeamSize: 1, BestOf: 3}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid season: %v", err)
	}

	even := base
	even.BestOf = 4
	if err := even.Validate(); err == nil {
		t.Fatalf("expected error for even best-of")
	}

	bounds := base
	bounds.MinTeamSize = 3
	bounds.MaxTeamSize = 2
	if err := bounds.Validate(); err == nil {
		t.Fatalf("expected error for inverted team size bounds")
	}

	negative := base
	negative.ReminderDays = -1
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected error for negative reminder days")
	}
}

func TestCanMoveTo(t *testing.T) {
	t.Parallel()

	if !CanMoveTo(StatusDraft, StatusActive) || !CanMoveTo(StatusActive, StatusEnded) {
		t.Fatalf("expected forward lifecycle to be allowed")
	}
	if CanMoveTo(StatusEnded, StatusActive) || CanMoveTo(StatusDraft, StatusEnded) || CanMoveTo(StatusActive, StatusDraft) {
		t.Fatalf("unexpected lifecycle transition allowed")
	}
}

func TestAcceptsTeamSize(t *testing.T) {
	t.Parallel()

	doubles := Season{MinTeamSize: 2, MaxTeamSize: 2}
	if !doubles.IsTeamSeason() || !doubles.AcceptsTeamSize(2) || doubles.AcceptsTeamSize(1) {
		t.Fatalf("unexpected doubles bounds")
	}
}
