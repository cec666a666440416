package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stadium-booking/internal/booking"
	"github.com/example/stadium-booking/internal/facility"
	"github.com/example/stadium-booking/internal/logging"
	"github.com/example/stadium-booking/internal/manager"
)

func fixedNow() time.Time { return time.Date(2026, 10, 19, 10, 0, 0, 0, time.Local) }

func newManager() *manager.Manager {
	return manager.New(facility.NewRegistry(), booking.New(booking.DefaultTotalUnits, fixedNow),
		manager.WithClock(fixedNow), manager.WithLogger(logging.Discard()))
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func run(t *testing.T, mgr *manager.Manager, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, New(mgr, script(lines...), &out).Run(context.Background()))
	return out.String()
}

func TestMenu_ExampleSession(t *testing.T) {
	mgr := newManager()
	out := run(t, mgr,
		"1", "1", "Main Hall", "50", "VIP",
		"3", "Main Hall", "2027-01-10", "14:00", "10",
		"3", "Main Hall", "2027-01-10", "14:00", "10",
		"3", "Main Hall", "2027-01-10", "15:00", "10",
		"5", "Main Hall", "2027-01-10", "14:00",
		"4",
		"2",
		"6",
	)

	assert.Contains(t, out, "Welcome to Stadium Booking System!")
	assert.Contains(t, out, `Facility "Main Hall" added successfully!`)
	assert.Contains(t, out, "Booking made successfully for Main Hall on 2027-01-10 at 14:00!")
	assert.Contains(t, out, "A booking already exists for this facility at the specified date and time.")
	assert.Contains(t, out, "Booking made successfully for Main Hall on 2027-01-10 at 15:00!")
	assert.Contains(t, out, "Booking canceled successfully for Main Hall on 2027-01-10 at 14:00!")
	assert.Contains(t, out, "Main Hall - 2027-01-10 - 15:00 (10 units)")
	assert.NotContains(t, out, "Main Hall - 2027-01-10 - 14:00")
	assert.Contains(t, out, "Seating Section - Facility Name: Main Hall, Capacity: 50, Current Bookings: 10, Seat Type: VIP, Available: Yes")
	assert.True(t, strings.HasSuffix(out, "Exiting Stadium Booking System. Goodbye\n"))

	require.Len(t, mgr.Bookings(), 1)
}

func TestMenu_EmptyListings(t *testing.T) {
	out := run(t, newManager(), "2", "4", "6")
	assert.Contains(t, out, "No facilities available.")
	assert.Contains(t, out, "Bookings for all facilities:\nNo bookings found.")
}

func TestMenu_ConferenceRoomAndDefaultUnits(t *testing.T) {
	mgr := newManager()
	out := run(t, mgr,
		"1", "2", "Board Room", "12", "yes",
		"3", "board room", "2026-10-19", "9:00", "",
		"2",
		"6",
	)
	assert.Contains(t, out, "Projector: Yes")
	assert.Contains(t, out, "Booking made successfully for Board Room on 2026-10-19 at 09:00!")

	bs := mgr.Bookings()
	require.Len(t, bs, 1)
	assert.Equal(t, 1, bs[0].Units)
}

func TestMenu_ValidationMessages(t *testing.T) {
	mgr := newManager()
	out := run(t, mgr,
		"9",
		"1", "7",
		"1", "1", "",
		"1", "1", "East", "zero",
		"1", "2", "Room", "4", "maybe",
		"1", "1", "Main Hall", "5", "Regular",
		"3", "Main Hall", "2026-10-18", "14:00", "1",
		"3", "Main Hall", "2027-01-10", "25:00", "1",
		"3", "Nowhere", "2027-01-10", "14:00", "1",
		"3", "Main Hall", "2027-01-10", "14:00", "abc",
		"3", "Main Hall", "2027-01-10", "14:00", "0",
		"3", "Main Hall", "2027-01-10", "14:00", "6",
		"5", "Main Hall", "2027-01-10", "14:00",
		"5", "Main Hall", "2027/01/10", "14:00",
		"6",
	)

	for _, want := range []string{
		"Invalid choice. Please try again.",
		"Invalid choice.",
		"Invalid name. Please enter a valid name.",
		"Invalid capacity. Please enter a valid capacity.",
		"Invalid answer. Please enter yes or no.",
		"Cannot book for a past date. Please select a valid date.",
		"Invalid time format. Please use HH:mm.",
		"Facility not found.",
		"Invalid number of booked units.",
		"Insufficient capacity. Available units: 5",
		"Booking not found.",
		"Invalid date format. Please use yyyy-MM-dd.",
	} {
		assert.Contains(t, out, want)
	}
	assert.Len(t, mgr.Facilities(), 1)
	assert.Empty(t, mgr.Bookings())
}

func TestMenu_EndOfInputExits(t *testing.T) {
	out := run(t, newManager(), "2")
	assert.Contains(t, out, "No facilities available.")
}

func TestMenu_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(newManager(), script("6"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMenu_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err := New(newManager(), pr, &out).Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, out.String(), "Enter your choice: ")
}
