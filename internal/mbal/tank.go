package mbal

// Tank owns the two snapshots of a material balance analysis: the initial
// state, fixed at construction, and the current state, re-derived from it
// whenever new operating conditions are supplied.
type Tank struct {
	initial *Model
	current *Model
}

// NewTank builds the initial model from fields. The current model starts as
// an independent copy of it.
func NewTank(fields Fields, opts ...Option) *Tank {
	initial := NewModel(fields, opts...)
	return &Tank{
		initial: initial,
		current: initial.Derive(nil),
	}
}

// Initial returns the initial snapshot.
func (t *Tank) Initial() *Model { return t.initial }

// Current returns the current snapshot.
func (t *Tank) Current() *Model { return t.current }

// Transition sets the current state to the initial state with overrides
// applied. M is reset to unknown first: new pressure or PVT data invalidates
// the initial gas-cap ratio, so N and G stay pinned and M is re-derived
// unless the overrides say otherwise.
func (t *Tank) Transition(overrides Fields) *Tank {
	c := t.initial.withoutRatio()
	c.apply(overrides)
	t.current = c
	return t
}

// ReplaceCurrent applies overrides on top of the current state, for example
// to write back a water influx found by Minimize. It is the only way Tank
// state changes after a Transition.
func (t *Tank) ReplaceCurrent(overrides Fields) *Tank {
	c := t.current.clone()
	c.apply(overrides)
	t.current = c
	return t
}

// DriveIndex returns one drive index of the current state.
func (t *Tank) DriveIndex(which DriveIndex, safe bool) Value {
	return ComputeDriveIndex(t.initial, t.current, which, safe)
}

// TotalDriveIndex returns the sum of the drive indices of the current state.
func (t *Tank) TotalDriveIndex() float64 {
	return TotalDriveIndex(t.initial, t.current)
}

// Crunch returns the full drive-index breakdown of the current state.
func (t *Tank) Crunch() Breakdown {
	return Crunch(t.initial, t.current)
}
