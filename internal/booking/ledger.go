package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ledger holds active bookings in insertion order. All lookups are linear
// scans. It does not know about facilities: existence and capacity checks
// belong to the caller.
type Ledger struct {
	bookings   []Booking
	totalUnits int
	now        func() time.Time
}

func New(totalUnits int, now func() time.Time) *Ledger {
	if totalUnits <= 0 {
		totalUnits = DefaultTotalUnits
	}
	if now == nil {
		now = time.Now
	}
	return &Ledger{totalUnits: totalUnits, now: now}
}

// IsAvailable reports whether no booking occupies the exact slot. A slot that
// cannot be parsed is never occupied.
func (l *Ledger) IsAvailable(facility, date, hhmm string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return true
	}
	t, err := ParseTime(hhmm)
	if err != nil {
		return true
	}
	return l.indexOf(strings.TrimSpace(facility), d, t) < 0
}

func (l *Ledger) Make(facility, date, hhmm string, units int) (Booking, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Booking{}, err
	}
	if d.Before(Today(l.now())) {
		return Booking{}, ErrPastDate
	}
	t, err := ParseTime(hhmm)
	if err != nil {
		return Booking{}, err
	}
	if units < 1 {
		return Booking{}, ErrInvalidUnits
	}
	facility = strings.TrimSpace(facility)
	if l.indexOf(facility, d, t) >= 0 {
		return Booking{}, ErrSlotTaken
	}

	b := Booking{
		ID:        uuid.NewString(),
		Facility:  facility,
		Date:      d,
		Time:      t,
		Units:     units,
		CreatedAt: l.now().UTC(),
	}
	l.bookings = append(l.bookings, b)
	return b, nil
}

// Find returns the booking occupying the exact slot.
func (l *Ledger) Find(facility, date, hhmm string) (Booking, bool) {
	d, err := ParseDate(date)
	if err != nil {
		return Booking{}, false
	}
	t, err := ParseTime(hhmm)
	if err != nil {
		return Booking{}, false
	}
	i := l.indexOf(strings.TrimSpace(facility), d, t)
	if i < 0 {
		return Booking{}, false
	}
	return l.bookings[i], true
}

// Cancel removes the booking occupying the exact slot, if any.
func (l *Ledger) Cancel(facility, date, hhmm string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	t, err := ParseTime(hhmm)
	if err != nil {
		return false
	}
	i := l.indexOf(strings.TrimSpace(facility), d, t)
	if i < 0 {
		return false
	}
	l.removeAt(i)
	return true
}

func (l *Ledger) CancelByID(id string) bool {
	for i, b := range l.bookings {
		if b.ID == id {
			l.removeAt(i)
			return true
		}
	}
	return false
}

// BookedUnits sums units for a facility across every date and time.
func (l *Ledger) BookedUnits(facility string) int {
	facility = strings.TrimSpace(facility)
	n := 0
	for _, b := range l.bookings {
		if strings.EqualFold(b.Facility, facility) {
			n += b.Units
		}
	}
	return n
}

// AvailableUnits is the ledger-wide unit pool minus BookedUnits. It ignores
// the facility's registered capacity.
func (l *Ledger) AvailableUnits(facility string) int {
	return l.totalUnits - l.BookedUnits(facility)
}

func (l *Ledger) TotalUnits() int { return l.totalUnits }

func (l *Ledger) List() []Booking {
	out := make([]Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

func (l *Ledger) ListFor(facility string) []Booking {
	facility = strings.TrimSpace(facility)
	var out []Booking
	for _, b := range l.bookings {
		if strings.EqualFold(b.Facility, facility) {
			out = append(out, b)
		}
	}
	return out
}

func (l *Ledger) Len() int { return len(l.bookings) }

func (l *Ledger) indexOf(facility string, date time.Time, hhmm string) int {
	for i, b := range l.bookings {
		if b.matches(facility, date, hhmm) {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(i int) {
	l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
}
