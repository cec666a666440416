// Package manager is the facade the front ends call. It validates raw input
// step by step, delegates to the facility registry and the booking ledger,
// and reports outcomes to a Recorder.
package manager

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/example/stadium-booking/internal/booking"
	"github.com/example/stadium-booking/internal/facility"
)

// Recorder observes manager outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	FacilityRegistered(kind string)
	BookingMade(facility string, units int)
	BookingRejected(step string)
	BookingCancelled(units int, found bool)
}

type nopRecorder struct{}

func (nopRecorder) FacilityRegistered(string) {}
func (nopRecorder) BookingMade(string, int) {}
func (nopRecorder) BookingRejected(string) {}
func (nopRecorder) BookingCancelled(int, bool) {}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.rec = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// Manager serialises every operation; the web front end calls it from many
// goroutines.
type Manager struct {
	mu       sync.Mutex
	registry *facility.Registry
	ledger   *booking.Ledger

	now func() time.Time
	rec Recorder
	log *slog.Logger
}

func New(reg *facility.Registry, led *booking.Ledger, opts ...Option) *Manager {
	m := &Manager{
		registry: reg,
		ledger:   led,
		now:      time.Now,
		rec:      nopRecorder{},
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) AddFacility(req AddFacilityRequest) (facility.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, err := m.registry.Register(req.Name, req.Capacity, req.variant())
	if err != nil {
		m.log.Warn("add facility rejected", "name", req.Name, "capacity", req.Capacity, "err", err)
		return facility.Facility{}, err
	}
	m.rec.FacilityRegistered(f.Kind.String())
	m.log.Info("facility added", "id", f.ID, "name", f.Name, "kind", f.Kind.String(), "capacity", f.Capacity)
	return f, nil
}

func (m *Manager) Facilities() []FacilityView {
	m.mu.Lock()
	defer m.mu.Unlock()

	fs := m.registry.List()
	out := make([]FacilityView, 0, len(fs))
	for _, f := range fs {
		booked := m.ledger.BookedUnits(f.Name)
		out = append(out, FacilityView{
			Facility:  f,
			Booked:    booked,
			Available: f.Capacity - booked,
			Pool:      m.ledger.AvailableUnits(f.Name),
		})
	}
	return out
}

// MakeBooking runs the checks in order and commits only when all pass.
func (m *Manager) MakeBooking(req BookingRequest) (booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.makeBooking(req)
	if err != nil {
		step := StepOf(err)
		m.rec.BookingRejected(string(step))
		m.log.Warn("booking rejected", "facility", req.Facility, "date", req.Date, "time", req.Time,
			"units", req.Units, "step", step, "err", err)
		return booking.Booking{}, err
	}
	m.rec.BookingMade(b.Facility, b.Units)
	m.log.Info("booking made", "id", b.ID, "facility", b.Facility, "date", b.DateString(), "time", b.Time, "units", b.Units)
	return b, nil
}

func (m *Manager) makeBooking(req BookingRequest) (booking.Booking, error) {
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return booking.Booking{}, stepErr(StepDateFormat, err)
	}
	if date.Before(m.Today()) {
		return booking.Booking{}, stepErr(StepDate, booking.ErrPastDate)
	}
	hhmm, err := booking.ParseTime(req.Time)
	if err != nil {
		return booking.Booking{}, stepErr(StepTimeFormat, err)
	}
	f, ok := m.registry.Find(req.Facility)
	if !ok {
		return booking.Booking{}, stepErr(StepFacility, ErrFacilityNotFound)
	}
	if req.Units <= 0 {
		return booking.Booking{}, stepErr(StepUnits, booking.ErrInvalidUnits)
	}
	booked := m.ledger.BookedUnits(f.Name)
	// compared against the remainder so huge requests cannot overflow
	if req.Units > f.Capacity-booked {
		return booking.Booking{}, stepErr(StepUnits, &CapacityError{Capacity: f.Capacity, Booked: booked, Requested: req.Units})
	}
	dateStr := date.Format(booking.DateFormat)
	if !m.ledger.IsAvailable(f.Name, dateStr, hhmm) {
		return booking.Booking{}, stepErr(StepAvailability, booking.ErrSlotTaken)
	}
	b, err := m.ledger.Make(f.Name, dateStr, hhmm, req.Units)
	if err != nil {
		return booking.Booking{}, stepErr(StepCommit, err)
	}
	return b, nil
}

func (m *Manager) Bookings() []booking.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.List()
}

// BookingsFor lists the bookings of one facility, matched case-insensitively.
func (m *Manager) BookingsFor(name string) []booking.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.ListFor(name)
}

// UnitPool is the ledger-wide number of units each facility draws from.
func (m *Manager) UnitPool() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.TotalUnits()
}

// CancelBooking removes the booking on the exact slot and returns it. It
// reports false with a nil error when nothing matched.
func (m *Manager) CancelBooking(req CancelRequest) (booking.Booking, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(req.Facility) == "" {
		return booking.Booking{}, false, stepErr(StepFacilityName, facility.ErrInvalidName)
	}
	if _, err := booking.ParseDate(req.Date); err != nil {
		return booking.Booking{}, false, stepErr(StepDateFormat, err)
	}
	if _, err := booking.ParseTime(req.Time); err != nil {
		return booking.Booking{}, false, stepErr(StepTimeFormat, err)
	}

	b, found := m.ledger.Find(req.Facility, req.Date, req.Time)
	if found {
		found = m.ledger.Cancel(req.Facility, req.Date, req.Time)
	}
	m.rec.BookingCancelled(b.Units, found)
	if !found {
		m.log.Warn("cancel: booking not found", "facility", req.Facility, "date", req.Date, "time", req.Time)
		return booking.Booking{}, false, nil
	}
	m.log.Info("booking cancelled", "id", b.ID, "facility", b.Facility, "date", b.DateString(), "time", b.Time)
	return b, true, nil
}

// Today is the manager clock's calendar day; earlier dates are rejected.
func (m *Manager) Today() time.Time {
	return booking.Today(m.now())
}

func (m *Manager) CancelBookingByID(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	var units int
	for _, b := range m.ledger.List() {
		if b.ID == id {
			units = b.Units
			break
		}
	}
	found := m.ledger.CancelByID(id)
	m.rec.BookingCancelled(units, found)
	m.log.Info("cancel by id", "id", id, "found", found)
	return found
}

// AvailableUnits is the facility's capacity minus its booked units.
func (m *Manager) AvailableUnits(name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.registry.Find(name)
	if !ok {
		return 0, ErrFacilityNotFound
	}
	return f.Capacity - m.ledger.BookedUnits(f.Name), nil
}
