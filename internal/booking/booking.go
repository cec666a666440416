// Package booking implements the in-memory ledger of reservations against
// facility time slots.
package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/example/stadium-booking/internal/internaltypes"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"

	// DefaultTotalUnits is the ledger-wide unit pool used by AvailableUnits.
	DefaultTotalUnits = 100
)

var (
	ErrInvalidDateFormat = fmt.Errorf("%w: invalid date format, use yyyy-MM-dd", internaltypes.ErrInvalidInput)
	ErrInvalidTimeFormat = fmt.Errorf("%w: invalid time format, use HH:mm", internaltypes.ErrInvalidInput)
	ErrPastDate          = fmt.Errorf("%w: cannot book for a past date", internaltypes.ErrInvalidInput)
	ErrInvalidUnits      = fmt.Errorf("%w: number of booked units must be positive", internaltypes.ErrInvalidInput)
	ErrSlotTaken         = fmt.Errorf("%w: a booking already exists for this facility at the specified date and time", internaltypes.ErrInvalidInput)
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

type Booking struct {
	ID       string
	Facility string
	Date     time.Time
	Time     string // HH:mm
	Units    int

	CreatedAt time.Time
}

func (b Booking) DateString() string { return b.Date.Format(DateFormat) }

func (b Booking) String() string {
	return fmt.Sprintf("%s - %s - %s (%d units)", b.Facility, b.DateString(), b.Time, b.Units)
}

func (b Booking) matches(facility string, date time.Time, hhmm string) bool {
	return strings.EqualFold(b.Facility, facility) && b.Date.Equal(date) && b.Time == hhmm
}

// ParseDate accepts only yyyy-MM-dd and rejects dates that do not exist on
// the calendar (e.g. 2027-02-30).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dateRe.MatchString(s) {
		return time.Time{}, ErrInvalidDateFormat
	}
	d, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return d, nil
}

// ParseTime accepts H:mm or HH:mm on a 24-hour clock and returns HH:mm.
func ParseTime(s string) (string, error) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", ErrInvalidTimeFormat
	}
	h := m[1]
	if len(h) == 1 {
		h = "0" + h
	}
	return h + ":" + m[2], nil
}

// Today truncates now to local midnight.
func Today(now time.Time) time.Time {
	now = now.In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
