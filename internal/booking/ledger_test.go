package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2026, 10, 19, 15, 30, 0, 0, time.Local) }

func newLedger() *Ledger { return New(DefaultTotalUnits, fixedNow) }

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2027-01-10"},
		{in: " 2027-01-10 "},
		{in: "2028-02-29"},
		{in: "2027-02-29", wantErr: true},
		{in: "2027-02-30", wantErr: true},
		{in: "2027-13-01", wantErr: true},
		{in: "2027-1-10", wantErr: true},
		{in: "10/01/2027", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "14:00", want: "14:00"},
		{in: "9:05", want: "09:05"},
		{in: "00:00", want: "00:00"},
		{in: "23:59", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "1200", wantErr: true},
		{in: "12:5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedger_MakeThenUnavailable(t *testing.T) {
	l := newLedger()
	require.True(t, l.IsAvailable("Main Hall", "2027-01-10", "14:00"))

	b, err := l.Make("Main Hall", "2027-01-10", "14:00", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "2027-01-10", b.DateString())
	assert.Equal(t, 10, b.Units)

	assert.False(t, l.IsAvailable("Main Hall", "2027-01-10", "14:00"))
	assert.False(t, l.IsAvailable("main hall", "2027-01-10", "14:00"))
	assert.True(t, l.IsAvailable("Main Hall", "2027-01-10", "15:00"))
	assert.True(t, l.IsAvailable("Main Hall", "2027-01-11", "14:00"))
}

func TestLedger_MakeValidation(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		units   int
		wantErr error
	}{
		{name: "bad date format", date: "10-01-2027", time: "14:00", units: 1, wantErr: ErrInvalidDateFormat},
		{name: "impossible date", date: "2027-02-30", time: "14:00", units: 1, wantErr: ErrInvalidDateFormat},
		{name: "yesterday", date: "2026-10-18", time: "14:00", units: 1, wantErr: ErrPastDate},
		{name: "past date with bad time", date: "2020-01-01", time: "99:99", units: 1, wantErr: ErrPastDate},
		{name: "bad time", date: "2027-01-10", time: "25:00", units: 1, wantErr: ErrInvalidTimeFormat},
		{name: "zero units", date: "2027-01-10", time: "14:00", units: 0, wantErr: ErrInvalidUnits},
		{name: "today is allowed", date: "2026-10-19", time: "08:00", units: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			_, err := l.Make("Main Hall", tt.date, tt.time, tt.units)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, l.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, l.Len())
		})
	}
}

func TestLedger_DuplicateSlotRejectedRegardlessOfUnits(t *testing.T) {
	l := newLedger()
	_, err := l.Make("Main Hall", "2027-01-10", "14:00", 10)
	require.NoError(t, err)

	_, err = l.Make("MAIN HALL", "2027-01-10", "14:00", 1)
	require.ErrorIs(t, err, ErrSlotTaken)

	// 9:05 and 09:05 are the same slot
	_, err = l.Make("Main Hall", "2027-01-10", "9:05", 1)
	require.NoError(t, err)
	_, err = l.Make("Main Hall", "2027-01-10", "09:05", 1)
	require.ErrorIs(t, err, ErrSlotTaken)

	assert.Equal(t, 2, l.Len())
}

func TestLedger_CancelRoundTrip(t *testing.T) {
	l := newLedger()
	_, err := l.Make("Main Hall", "2027-01-10", "14:00", 10)
	require.NoError(t, err)

	require.True(t, l.Cancel("main hall", "2027-01-10", "14:00"))
	assert.True(t, l.IsAvailable("Main Hall", "2027-01-10", "14:00"))
	assert.Equal(t, 0, l.Len())
}

func TestLedger_CancelMissingLeavesLedgerUnchanged(t *testing.T) {
	l := newLedger()
	_, err := l.Make("Main Hall", "2027-01-10", "14:00", 10)
	require.NoError(t, err)
	before := l.List()

	assert.False(t, l.Cancel("Main Hall", "2027-01-10", "15:00"))
	assert.False(t, l.Cancel("Side Hall", "2027-01-10", "14:00"))
	assert.False(t, l.Cancel("Main Hall", "not-a-date", "14:00"))
	assert.Equal(t, before, l.List())
}

func TestLedger_CancelByID(t *testing.T) {
	l := newLedger()
	a, err := l.Make("Main Hall", "2027-01-10", "14:00", 1)
	require.NoError(t, err)
	b, err := l.Make("Main Hall", "2027-01-10", "15:00", 1)
	require.NoError(t, err)

	assert.True(t, l.CancelByID(a.ID))
	assert.False(t, l.CancelByID(a.ID))
	require.Len(t, l.List(), 1)
	assert.Equal(t, b.ID, l.List()[0].ID)
}

func TestLedger_Units(t *testing.T) {
	l := New(100, fixedNow)
	_, err := l.Make("Main Hall", "2027-01-10", "14:00", 10)
	require.NoError(t, err)
	_, err = l.Make("main hall", "2027-02-01", "09:00", 15)
	require.NoError(t, err)
	_, err = l.Make("Board Room", "2027-01-10", "14:00", 3)
	require.NoError(t, err)

	assert.Equal(t, 25, l.BookedUnits("MAIN HALL"))
	assert.Equal(t, 75, l.AvailableUnits("Main Hall"))
	assert.Equal(t, 3, l.BookedUnits("Board Room"))
	assert.Equal(t, 0, l.BookedUnits("Nowhere"))
	assert.Equal(t, 100, l.AvailableUnits("Nowhere"))
	assert.Len(t, l.ListFor("main hall"), 2)
}

func TestLedger_ListKeepsInsertionOrder(t *testing.T) {
	l := newLedger()
	for _, tm := range []string{"18:00", "09:00", "12:00"} {
		_, err := l.Make("Main Hall", "2027-01-10", tm, 1)
		require.NoError(t, err)
	}
	var got []string
	for _, b := range l.List() {
		got = append(got, b.Time)
	}
	assert.Equal(t, []string{"18:00", "09:00", "12:00"}, got)
}

func TestNewDefaultsTotalUnits(t *testing.T) {
	assert.Equal(t, DefaultTotalUnits, New(0, nil).TotalUnits())
}
