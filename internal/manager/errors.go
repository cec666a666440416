package manager

import (
	"errors"
	"fmt"

	"github.com/example/stadium-booking/internal/internaltypes"
)

var (
	ErrFacilityNotFound     = fmt.Errorf("facility %w", internaltypes.ErrNotFound)
	ErrInsufficientCapacity = fmt.Errorf("%w: insufficient capacity", internaltypes.ErrInvalidInput)
)

// Step names the booking check that failed.
type Step string

const (
	StepFacilityName Step = "facility name"
	StepDateFormat   Step = "date format"
	StepDate         Step = "date"
	StepTimeFormat   Step = "time format"
	StepFacility     Step = "facility"
	StepUnits        Step = "units"
	StepAvailability Step = "availability"
	StepCommit       Step = "commit"
)

type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

func stepErr(s Step, err error) error { return &StepError{Step: s, Err: err} }

// StepOf returns the failed step of err, or "" if err is not a step failure.
func StepOf(err error) Step {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}

type CapacityError struct {
	Capacity  int
	Booked    int
	Requested int
}

func (e *CapacityError) Available() int { return e.Capacity - e.Booked }

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: requested %d, available %d", ErrInsufficientCapacity, e.Requested, e.Available())
}

func (e *CapacityError) Unwrap() error { return ErrInsufficientCapacity }
