package domain

import (
	"fmt"
	"time"
)

// Vessel holds a boat's identity, crew and speed. It is not safe for
// concurrent use; the service layer serializes writers through Version.
type Vessel struct {
	ID        string
	Version   int // optimistic locking
	CreatedAt time.Time
	UpdatedAt time.Time

	name         string
	crew         []string
	maxSpeed     float64
	currentSpeed float64
}

// Snapshot is the flat form of a Vessel used by storage adapters.
type Snapshot struct {
	ID           string
	Name         string
	Crew         []string
	MaxSpeed     float64
	CurrentSpeed float64
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewVessel returns a stopped vessel. The crew slice is copied.
func NewVessel(name string, crew []string, maxSpeed float64) (*Vessel, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidVessel)
	}
	if maxSpeed < 0 {
		return nil, fmt.Errorf("%w: max speed %g is negative", ErrInvalidVessel, maxSpeed)
	}
	for i, member := range crew {
		if member == "" {
			return nil, fmt.Errorf("%w: crew member %d has no name", ErrInvalidVessel, i)
		}
	}

	return &Vessel{
		name:     name,
		crew:     append([]string(nil), crew...),
		maxSpeed: maxSpeed,
	}, nil
}

// RestoreVessel rebuilds a vessel from a stored snapshot without validation.
func RestoreVessel(s Snapshot) *Vessel {
	return &Vessel{
		ID:           s.ID,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		name:         s.Name,
		crew:         append([]string(nil), s.Crew...),
		maxSpeed:     s.MaxSpeed,
		currentSpeed: s.CurrentSpeed,
	}
}

func (v *Vessel) Snapshot() Snapshot {
	return Snapshot{
		ID:           v.ID,
		Name:         v.name,
		Crew:         v.Crew(),
		MaxSpeed:     v.maxSpeed,
		CurrentSpeed: v.currentSpeed,
		Version:      v.Version,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func (v *Vessel) Name() string { return v.name }

func (v *Vessel) MaxSpeed() float64 { return v.maxSpeed }

func (v *Vessel) CurrentSpeed() float64 { return v.currentSpeed }

// Crew returns a copy of the roster in boarding order.
func (v *Vessel) Crew() []string {
	return append([]string(nil), v.crew...)
}

func (v *Vessel) FullSpeed() string {
	v.currentSpeed = v.maxSpeed
	return "Full speed ahead! " + v.reportSpeed()
}

func (v *Vessel) FullStop() string {
	v.currentSpeed = 0
	return "All stop! " + v.reportSpeed()
}

func (v *Vessel) HalfSpeed() string {
	v.currentSpeed = v.maxSpeed / 2
	return "Half speed ahead! " + v.reportSpeed()
}

// Apply executes a speed order and returns the bridge report.
func (v *Vessel) Apply(order SpeedOrder) (string, error) {
	switch order {
	case OrderFullSpeed:
		return v.FullSpeed(), nil
	case OrderHalfSpeed:
		return v.HalfSpeed(), nil
	case OrderFullStop:
		return v.FullStop(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, order)
}

// reportSpeed is only reachable from inside the domain package.
func (v *Vessel) reportSpeed() string {
	return fmt.Sprintf("%s is moving at %g knots.", v.name, v.currentSpeed)
}

// RollCall returns one status line per crew member. It never mutates the vessel.
func (v *Vessel) RollCall() []string {
	lines := make([]string, 0, len(v.crew))
	for _, member := range v.crew {
		lines = append(lines, member+" is present!")
	}
	return lines
}

// RemoveCrewAt removes the member at a zero-based position and returns their
// name. An out-of-range position leaves the roster untouched.
func (v *Vessel) RemoveCrewAt(pos int) (string, error) {
	if pos < 0 || pos >= len(v.crew) {
		return "", fmt.Errorf("%w: position %d, roster size %d", ErrCrewPositionOutOfRange, pos, len(v.crew))
	}

	removed := v.crew[pos]
	v.crew = append(v.crew[:pos:pos], v.crew[pos+1:]...)
	return removed, nil
}

func (v *Vessel) AddCrew(name string) error {
	if name == "" {
		return fmt.Errorf("%w: crew member has no name", ErrInvalidVessel)
	}
	v.crew = append(v.crew, name)
	return nil
}
