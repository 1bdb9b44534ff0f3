package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "team_ids").
		From("standing_snapshots").
		Where(Eq("season_id", "s1"), Expr("created_at < ?", "2026-01-01")).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		Offset(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT id, team_ids FROM standing_snapshots WHERE season_id = $1 AND created_at < $2 ORDER BY created_at DESC, id DESC LIMIT 1 OFFSET 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdateAndIn(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(In("status", []any{"challenged", "date_set"}), IsNull("winner_team_id")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT id FROM matches WHERE status IN ($1, $2) AND winner_team_id IS NULL FOR UPDATE"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	empty, _, err := Select("id").From("matches").Where(In("status", nil)).ToSQL()
	if err != nil || empty != "SELECT id FROM matches WHERE 1=0" {
		t.Fatalf("unexpected empty IN query %q err=%v", empty, err)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		SeasonID string `db:"season_id,omitempty"`
		Skip     string `db:"-"`
		hidden   string
	}

	query, args, err := InsertModel("teams", row{ID: "t1", SeasonID: "s1", hidden: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO teams (id, season_id) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("teams", (*row)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("status", "completed").
		SetExpr("updated_at", "GREATEST(updated_at, ?)", "now").
		Where(Eq("id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	want := "UPDATE matches SET status = $1, updated_at = GREATEST(updated_at, $2) WHERE id = $3"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[2] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Update("matches").Set("status", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
}
