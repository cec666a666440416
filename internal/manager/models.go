package manager

import "github.com/example/stadium-booking/internal/facility"

type AddFacilityRequest struct {
	Name         string
	Capacity     int
	Kind         facility.Kind
	SeatType     string
	HasProjector bool
}

func (r AddFacilityRequest) variant() facility.Variant {
	switch r.Kind {
	case facility.KindSeatingSection:
		return facility.SeatingSection(r.SeatType)
	case facility.KindConferenceRoom:
		return facility.ConferenceRoom(r.HasProjector)
	}
	return facility.Variant{Kind: r.Kind}
}

type BookingRequest struct {
	Facility string
	Date     string
	Time     string
	Units    int
}

type CancelRequest struct {
	Facility string
	Date     string
	Time     string
}

// FacilityView is a facility with its current bookings against its own
// capacity. Pool is what remains of the ledger-wide unit pool.
type FacilityView struct {
	facility.Facility
	Booked    int
	Available int
	Pool      int
}

func (v FacilityView) Describe() string { return v.Facility.Describe(v.Booked) }
