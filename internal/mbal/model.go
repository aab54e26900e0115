package mbal

import (
	"log/slog"
	"math/bits"
)

// VolumeBasis records which two of {N, G, M} are pinned; the third is derived
// from them every time the model changes.
type VolumeBasis int

const (
	// BasisUnknown: fewer than two of N, G and M are known, nothing is derived.
	BasisUnknown VolumeBasis = iota
	// BasisOilAndRatio: N and M are pinned, G = N·Bo·M/Bg.
	BasisOilAndRatio
	// BasisGasAndRatio: G and M are pinned, N = G·Bg/(M·Bo).
	BasisGasAndRatio
	// BasisOilAndGas: N and G are pinned, M = G·Bg/(N·Bo).
	BasisOilAndGas
)

func (b VolumeBasis) String() string {
	switch b {
	case BasisOilAndRatio:
		return "N+M"
	case BasisGasAndRatio:
		return "G+M"
	case BasisOilAndGas:
		return "N+G"
	}
	return "unknown"
}

func (b VolumeBasis) pins() quantity {
	switch b {
	case BasisOilAndRatio:
		return qtyN | qtyM
	case BasisGasAndRatio:
		return qtyG | qtyM
	case BasisOilAndGas:
		return qtyN | qtyG
	}
	return 0
}

func basisOf(pinned quantity) VolumeBasis {
	switch pinned {
	case qtyN | qtyM:
		return BasisOilAndRatio
	case qtyG | qtyM:
		return BasisGasAndRatio
	case qtyN | qtyG:
		return BasisOilAndGas
	}
	return BasisUnknown
}

// Model is one consistent snapshot of a material balance tank: reservoir,
// phase and operation records plus the gas-cap ratio M.
//
// A Model is not mutated through its exported API. New states are branched
// with Derive.
type Model struct {
	reservoir Reservoir
	phase     Phase
	operation Operation

	ratio Value // M, gas-cap to oil-zone reservoir volume (bbl/bbl)
	basis VolumeBasis

	logger *slog.Logger
}

// Option configures a Model or a Tank.
type Option func(*Model)

// WithLogger sets the logger used for unrecognized field warnings and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel builds a model from named fields. Unrecognized names are logged
// and ignored.
func NewModel(fields Fields, opts ...Option) *Model {
	m := &Model{
		phase:  DefaultPhase(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.apply(fields)
	return m
}

// Derive returns an independent copy of m with overrides applied and the
// fluid volumes brought back in line. m itself is left untouched.
func (m *Model) Derive(overrides Fields) *Model {
	d := m.clone()
	d.apply(overrides)
	return d
}

// clone copies m. Every record is a plain value, so the copy shares no
// mutable state with m.
func (m *Model) clone() *Model {
	c := *m
	return &c
}

// withoutRatio returns a copy of m with M cleared and the basis forgotten, so
// the next apply pins whatever N and G are known.
func (m *Model) withoutRatio() *Model {
	c := m.clone()
	c.ratio = Indeterminate
	c.basis = BasisUnknown
	return c
}

// apply writes fields into m in place and restores the volume invariant.
func (m *Model) apply(fields Fields) {
	var touched quantity
	for _, key := range fields.Keys() {
		f, ok := lookupField(key)
		if !ok {
			m.logger.Warn("field not found in any record, ignored", "key", key)
			continue
		}
		f.set(m, fields[key])
		touched |= f.volume
	}
	m.rebase(touched)
	m.updateFluidVolumes()
}

// pairPriority orders the pinned pairs for ties: N+M, then G+M, then N+G.
var pairPriority = []quantity{qtyN | qtyM, qtyG | qtyM, qtyN | qtyG}

// rebase picks the pinned pair after the quantities in touched were set.
// Explicitly set quantities stay pinned; a free slot is filled from the
// previously pinned pair first and from any other known quantity after that.
func (m *Model) rebase(touched quantity) {
	if touched == 0 && m.basis != BasisUnknown {
		return
	}

	known := m.knownVolumes()
	touched &= known
	required := touched
	if bits.OnesCount8(uint8(required)) > 2 {
		required = 0
	}

	var pinned quantity
	for _, available := range []quantity{touched, touched | m.basis.pins()&known, known} {
		if pinned = pickPair(required, available); pinned != 0 {
			break
		}
	}

	basis := basisOf(pinned)
	if basis != m.basis {
		m.logger.Debug("volume basis changed", "from", m.basis, "to", basis)
	}
	m.basis = basis
}

func pickPair(required, available quantity) quantity {
	for _, p := range pairPriority {
		if p&required == required && p&available == p {
			return p
		}
	}
	return 0
}

func (m *Model) volume(q quantity) Value {
	switch q {
	case qtyN:
		return m.reservoir.N
	case qtyG:
		return m.reservoir.G
	case qtyM:
		return m.ratio
	}
	return Indeterminate
}

func (m *Model) knownVolumes() quantity {
	var q quantity
	for _, c := range []quantity{qtyN, qtyG, qtyM} {
		if m.volume(c).IsKnown() {
			q |= c
		}
	}
	return q
}

// updateFluidVolumes derives the free quantity of the basis. It does nothing
// while Bg is unset; a zero divisor leaves the derived quantity indeterminate.
func (m *Model) updateFluidVolumes() {
	bg, ok := m.phase.Bg.Float64()
	if !ok {
		return
	}
	bo := m.phase.Bo

	n, _ := m.reservoir.N.Float64()
	g, _ := m.reservoir.G.Float64()
	ratio, _ := m.ratio.Float64()

	switch m.basis {
	case BasisOilAndRatio:
		m.reservoir.G = divide(n*bo*ratio, bg)
	case BasisGasAndRatio:
		m.reservoir.N = divide(g*bg, ratio*bo)
	case BasisOilAndGas:
		m.ratio = divide(g*bg, n*bo)
	}
}

func divide(num, den float64) Value {
	if den == 0 {
		return Indeterminate
	}
	return Known(num / den)
}

// Reservoir returns a copy of the reservoir record.
func (m *Model) Reservoir() Reservoir { return m.reservoir }

// Phase returns a copy of the phase record.
func (m *Model) Phase() Phase { return m.phase }

// Operation returns a copy of the operation record.
func (m *Model) Operation() Operation { return m.operation }

// N returns the oil in place (STB).
func (m *Model) N() Value { return m.reservoir.N }

// G returns the gas-cap gas (scf).
func (m *Model) G() Value { return m.reservoir.G }

// M returns the gas-cap ratio (bbl/bbl).
func (m *Model) M() Value { return m.ratio }

// Basis returns which pair of N, G and M is pinned.
func (m *Model) Basis() VolumeBasis { return m.basis }

// PoreVolume returns the hydrocarbon pore volume (bbl).
func (m *Model) PoreVolume() Value { return PoreVolume(m) }

// Field returns the value of a named field.
func (m *Model) Field(name string) (Value, bool) {
	f, ok := lookupField(name)
	if !ok {
		return Indeterminate, false
	}
	return f.get(m), true
}

// Fields returns every known field as a flat map, suitable for Derive or for
// reporting.
func (m *Model) Fields() Fields {
	out := make(Fields, len(fieldTable))
	for _, f := range fieldTable {
		if x, ok := f.get(m).Float64(); ok {
			out[f.name] = x
		}
	}
	return out
}
