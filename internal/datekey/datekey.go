// Package datekey provides the canonical YYYY-MM-DD key that joins tasks,
// journal entries and calendar days. Every component that matches a record to
// a calendar day must build the key through this package; ad-hoc formatting
// elsewhere will drift.
package datekey

import (
	"fmt"
	"time"
)

// Key is a calendar date rendered as "YYYY-MM-DD" using the date's own local
// fields, independent of time-of-day and timezone offset. The zero value ""
// means "no date" and matches nothing downstream.
type Key string

const layout = "2006-01-02"

// FromTime builds the key for t's local calendar date. A zero time yields the
// zero Key.
func FromTime(t time.Time) Key {
	if t.IsZero() {
		return ""
	}
	return Key(t.Format(layout))
}

// FromUnixMilli builds the key for a legacy millisecond timestamp.
func FromUnixMilli(ms int64) Key {
	return FromTime(time.UnixMilli(ms))
}

// Today returns the key for the current local date.
func Today() Key {
	return FromTime(time.Now())
}

// Parse validates s as a well-formed key.
func Parse(s string) (Key, error) {
	if _, err := time.ParseInLocation(layout, s, time.Local); err != nil {
		return "", fmt.Errorf("invalid date key %q: %w", s, err)
	}
	return Key(s), nil
}

// Time reconstructs the calendar date (midnight local) the key was built from.
func (k Key) Time() (time.Time, error) {
	t, err := time.ParseInLocation(layout, string(k), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", string(k), err)
	}
	return t, nil
}

// IsZero reports whether k carries no date.
func (k Key) IsZero() bool {
	return k == ""
}

func (k Key) String() string {
	return string(k)
}
