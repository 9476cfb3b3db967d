package core

import (
	"errors"
	"time"
)

const (
	RUB Currency = "RUB"
)

type (
	// Currency is an enumerated currency code. A single value is supported
	// today; entries still carry the code so new values can be added without
	// a schema change.
	Currency string

	// User maps an opaque transport identifier to an internal identity.
	User struct {
		ID         int64
		ExternalID string
		CreatedAt  time.Time
	}

	// Entry is one recorded monetary transaction.
	Entry struct {
		ID        int64
		UserID    int64
		Value     float64
		Currency  Currency
		Tags      []string
		Comment   string
		CreatedAt time.Time
	}

	// DayTotal is the per-date sum a weekly report is made of. Date carries
	// only the UTC calendar date, truncated to midnight.
	DayTotal struct {
		Date time.Time
		Sum  float64
	}
)

var (
	ErrMalformedEntry = errors.New("no amount at start of text")
	ErrNoEntries      = errors.New("no entries")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrUserNotFound   = errors.New("user not found")
)

func (c Currency) String() string {
	return string(c)
}

// IsValid returns true if the currency code is a known value.
func (c Currency) IsValid() bool {
	switch c {
	case RUB:
		return true
	default:
		return false
	}
}

// Day truncates t to its UTC calendar date. Report bucketing is defined in
// UTC regardless of the server's local zone.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
