// Package dates formats calendar dates as YYYY-MM-DD.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the date-only form used throughout the console.
const Layout = time.DateOnly

var ErrInvalidDate = errors.New("invalid date")

// Clock returns the current time.
type Clock func() time.Time

// layouts are tried in order by Parse. Layouts without a zone are read in
// the local time zone.
var layouts = []string{
	time.RFC3339Nano,
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
	"2006.01.02",
}

// Format renders the calendar date of t in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads s using the first layout that accepts it.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatString parses s and formats its calendar date.
// Unparseable input is an error rather than a placeholder string.
func FormatString(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}

	return Format(t), nil
}

// Today formats the current local date.
func Today() string {
	return TodayFrom(time.Now)
}

// TodayFrom formats the date reported by clock, time.Now when clock is nil.
func TodayFrom(clock Clock) string {
	if clock == nil {
		clock = time.Now
	}

	return Format(clock())
}
