package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func nullTimeToTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func nullStringToStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func stringPtrToNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func timePtrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

// intsToArray keeps nil as SQL NULL so "no scores yet" survives a round trip.
func intsToArray(v []int) pq.Int64Array {
	if v == nil {
		return nil
	}
	out := make(pq.Int64Array, 0, len(v))
	for _, n := range v {
		out = append(out, int64(n))
	}
	return out
}

func arrayToInts(v pq.Int64Array) []int {
	if v == nil {
		return nil
	}
	out := make([]int, 0, len(v))
	for _, n := range v {
		out = append(out, int(n))
	}
	return out
}

func stringsOrEmpty(v pq.StringArray) []string {
	if v == nil {
		return []string{}
	}
	return append([]string{}, v...)
}
