package pgconv

import (
	"errors"
	"time"

	"github.com/deanb221/caravan/internal/pkg/civil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// DateToPgtype maps the zero date to NULL.
func DateToPgtype(d civil.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) civil.Date {
	if !pd.Valid {
		return civil.Date{}
	}
	return civil.DateOf(pd.Time)
}

// DatesToTimes prepares a date[] argument.
func DatesToTimes(dates []civil.Date) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = d.Time()
	}
	return out
}

func DatesFromTimes(times []time.Time) []civil.Date {
	out := make([]civil.Date, len(times))
	for i, t := range times {
		out[i] = civil.DateOf(t)
	}
	return out
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
