package postgres

import (
	"database/sql"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation", func(t *testing.T) {
		err := fmt.Errorf("create team: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "40001"}) {
			t.Fatalf("expected false for serialization failure")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("boom")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected plain error not to be not found")
	}
}

func TestScoreArrays(t *testing.T) {
	t.Run("nil stays null", func(t *testing.T) {
		if intsToArray(nil) != nil {
			t.Fatalf("expected nil array")
		}
		if arrayToInts(nil) != nil {
			t.Fatalf("expected nil scores")
		}
	})

	t.Run("round trips values", func(t *testing.T) {
		got := arrayToInts(intsToArray([]int{6, 3, 7}))
		if !reflect.DeepEqual(got, []int{6, 3, 7}) {
			t.Fatalf("unexpected scores: %v", got)
		}
	})
}

func TestNullableConversions(t *testing.T) {
	if nullTimeToTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil time")
	}
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	got := nullTimeToTimePtr(timePtrToNullTime(&at))
	if got == nil || !got.Equal(at) || got.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got)
	}

	player := "P1"
	if s := nullStringToStringPtr(stringPtrToNullString(&player)); s == nil || *s != player {
		t.Fatalf("unexpected string: %v", s)
	}
	if stringPtrToNullString(nil).Valid {
		t.Fatalf("expected null string")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
