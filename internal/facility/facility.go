// Package facility holds the bookable facilities: seating sections and
// conference rooms, and the registry they are registered in.
package facility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/stadium-booking/internal/internaltypes"
)

var (
	ErrInvalidName     = fmt.Errorf("%w: facility name required", internaltypes.ErrInvalidInput)
	ErrInvalidCapacity = fmt.Errorf("%w: capacity must be a positive number", internaltypes.ErrInvalidInput)
	ErrUnknownKind     = errors.New("unknown facility type")
)

type Kind int

const (
	KindSeatingSection Kind = iota + 1
	KindConferenceRoom
)

func (k Kind) String() string {
	switch k {
	case KindSeatingSection:
		return "Seating Section"
	case KindConferenceRoom:
		return "Conference Room"
	default:
		return "Unknown"
	}
}

// ParseKind accepts the menu number or a name such as "seating" or "conference-room".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "seating", "seating-section", "seating section", "section":
		return KindSeatingSection, nil
	case "2", "conference", "conference-room", "conference room", "room":
		return KindConferenceRoom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

const (
	SeatVIP     = "VIP"
	SeatRegular = "Regular"
)

// Variant carries the type-specific attribute of a facility. Only one of
// SeatType and HasProjector is meaningful, depending on Kind.
type Variant struct {
	Kind         Kind
	SeatType     string
	HasProjector bool
}

func SeatingSection(seatType string) Variant {
	seatType = strings.TrimSpace(seatType)
	switch {
	case seatType == "":
		seatType = SeatRegular
	case strings.EqualFold(seatType, SeatVIP):
		seatType = SeatVIP
	case strings.EqualFold(seatType, SeatRegular):
		seatType = SeatRegular
	}
	return Variant{Kind: KindSeatingSection, SeatType: seatType}
}

func ConferenceRoom(hasProjector bool) Variant {
	return Variant{Kind: KindConferenceRoom, HasProjector: hasProjector}
}

type Facility struct {
	ID       string
	Name     string
	Capacity int
	Variant

	CreatedAt time.Time
}

// Info is the variant-specific detail shown next to a facility.
func (f Facility) Info() string {
	if f.Kind == KindConferenceRoom {
		return "Projector: " + yesNo(f.HasProjector)
	}
	return "Seat Type: " + f.SeatType
}

// Describe renders the facility with the given number of booked units.
func (f Facility) Describe(booked int) string {
	return fmt.Sprintf("%s - Facility Name: %s, Capacity: %d, Current Bookings: %d, %s, Available: %s",
		f.Kind, f.Name, f.Capacity, booked, f.Info(), yesNo(booked < f.Capacity))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
