package manager

import (
	"errors"
	"fmt"

	"github.com/example/stadium-booking/internal/booking"
	"github.com/example/stadium-booking/internal/facility"
)

// Message turns a manager error into the text shown to the operator.
func Message(err error) string {
	var ce *CapacityError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ce):
		return fmt.Sprintf("Insufficient capacity. Available units: %d", ce.Available())
	case errors.Is(err, booking.ErrInvalidDateFormat):
		return "Invalid date format. Please use yyyy-MM-dd."
	case errors.Is(err, booking.ErrPastDate):
		return "Cannot book for a past date. Please select a valid date."
	case errors.Is(err, booking.ErrInvalidTimeFormat):
		return "Invalid time format. Please use HH:mm."
	case errors.Is(err, ErrFacilityNotFound):
		return "Facility not found."
	case errors.Is(err, booking.ErrInvalidUnits):
		return "Invalid number of booked units."
	case errors.Is(err, booking.ErrSlotTaken):
		return "A booking already exists for this facility at the specified date and time."
	case errors.Is(err, facility.ErrInvalidName):
		return "Invalid name. Please enter a valid name."
	case errors.Is(err, facility.ErrInvalidCapacity):
		return "Invalid capacity. Please enter a valid capacity."
	case errors.Is(err, facility.ErrUnknownKind):
		return "Invalid facility type."
	}
	return err.Error()
}

func FacilityAddedMessage(f facility.Facility) string {
	return fmt.Sprintf("Facility %q added successfully!", f.Name)
}

func BookedMessage(b booking.Booking) string {
	return fmt.Sprintf("Booking made successfully for %s on %s at %s!", b.Facility, b.DateString(), b.Time)
}

func CancelledMessage(b booking.Booking, found bool) string {
	if !found {
		return "Booking not found."
	}
	return fmt.Sprintf("Booking canceled successfully for %s on %s at %s!", b.Facility, b.DateString(), b.Time)
}
