package facility

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Registry keeps facilities in registration order. Names are not required to
// be unique; Find returns the earliest registration.
type Registry struct {
	facilities []Facility
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Register(name string, capacity int, v Variant) (Facility, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Facility{}, ErrInvalidName
	}
	if capacity <= 0 {
		return Facility{}, ErrInvalidCapacity
	}
	if v.Kind != KindSeatingSection && v.Kind != KindConferenceRoom {
		return Facility{}, ErrUnknownKind
	}
	f := Facility{
		ID:        uuid.NewString(),
		Name:      name,
		Capacity:  capacity,
		Variant:   v,
		CreatedAt: time.Now().UTC(),
	}
	r.facilities = append(r.facilities, f)
	return f, nil
}

func (r *Registry) Find(name string) (Facility, bool) {
	name = strings.TrimSpace(name)
	for _, f := range r.facilities {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Facility{}, false
}

func (r *Registry) List() []Facility {
	out := make([]Facility, len(r.facilities))
	copy(out, r.facilities)
	return out
}

func (r *Registry) Len() int { return len(r.facilities) }
