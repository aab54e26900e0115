package mbal

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// The functions in this file are the drive-index engine. They read the two
// snapshots they are given and nothing else, so any number of (initial,
// current) pairs may be evaluated concurrently.

// DriveIndex names one of the four drive mechanisms.
type DriveIndex int

const (
	DDI DriveIndex = iota // depletion drive
	SDI                   // segregation (gas-cap) drive
	WDI                   // water drive
	EDI                   // rock and liquid expansion drive
)

// DriveIndices lists every drive index in report order.
var DriveIndices = []DriveIndex{DDI, SDI, WDI, EDI}

func (d DriveIndex) String() string {
	switch d {
	case DDI:
		return "DDI"
	case SDI:
		return "SDI"
	case WDI:
		return "WDI"
	case EDI:
		return "EDI"
	}
	return fmt.Sprintf("DriveIndex(%d)", int(d))
}

// Description returns the long name of the drive mechanism.
func (d DriveIndex) Description() string {
	switch d {
	case DDI:
		return "Depletion drive"
	case SDI:
		return "Segregation (gas-cap) drive"
	case WDI:
		return "Water drive"
	case EDI:
		return "Rock and liquid expansion drive"
	}
	return d.String()
}

// ParseDriveIndex resolves "DDI", "SDI", "WDI" or "EDI" (any case).
func ParseDriveIndex(s string) (DriveIndex, error) {
	for _, d := range DriveIndices {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown drive index %q: want one of DDI, SDI, WDI, EDI", s)
}

// PoreVolume returns the hydrocarbon pore volume N·Bo·(1+M)/(1−Sw) in bbl.
func PoreVolume(m *Model) Value {
	n, sw, ratio := m.reservoir.N, m.reservoir.Sw, m.ratio
	if !known(n, sw, ratio) {
		return Indeterminate
	}
	return Known(n.x * m.phase.Bo * (1 + ratio.x) / (1 - sw.x))
}

// TotalProduction returns the two-phase underground withdrawal
// Np·(Bo + (Rp−Rs)·Bg) expressed in stock-tank barrels. With Np = 0 the
// result is a known NaN.
func TotalProduction(m *Model) Value {
	rs, bg := m.phase.Rs, m.phase.Bg
	if !known(rs, bg) {
		return Indeterminate
	}
	op := m.operation
	return Known(op.Np * (m.phase.Bo + (op.Rp()-rs.x)*bg.x))
}

// TwoPhaseFVF returns Bt = Bo + (Rsi − Rs)·Bg for m relative to initial.
func TwoPhaseFVF(initial, m *Model) Value {
	rsi, rs, bg := initial.phase.Rs, m.phase.Rs, m.phase.Bg
	if !known(rsi, rs, bg) {
		return Indeterminate
	}
	return Known(m.phase.Bo + (rsi.x-rs.x)*bg.x)
}

// depletion computes DDI = N·(Bt − Boi)/TP.
func depletion(initial, m *Model) Value {
	n, bt, tp := initial.reservoir.N, TwoPhaseFVF(initial, m), TotalProduction(m)
	if !known(n, bt, tp) {
		return Indeterminate
	}
	return Known(n.x * (bt.x - initial.phase.Bo) / tp.x)
}

// segregation computes SDI = M·N/TP · Boi·(Bg − Bgi)/Bgi. It needs a gas cap.
func segregation(initial, m *Model) Value {
	ratio, n, tp := initial.ratio, initial.reservoir.N, TotalProduction(m)
	bgi, bg := initial.phase.Bg, m.phase.Bg
	if !known(ratio, n, tp, bgi, bg) || ratio.x <= 0 || bgi.x == 0 {
		return Indeterminate
	}
	relative := initial.phase.Bo * (bg.x - bgi.x) / bgi.x
	return Known(ratio.x * n.x / tp.x * relative)
}

// water computes WDI = (We − Wp·Bw)/TP.
func water(_, m *Model) Value {
	tp := TotalProduction(m)
	if !tp.known {
		return Indeterminate
	}
	return Known((m.reservoir.We - m.operation.Wp*m.phase.Bw) / tp.x)
}

// expansion computes EDI = PVi·(cf + cw·Swi)·(Pi − P)/TP.
func expansion(initial, m *Model) Value {
	pv, swi, tp := PoreVolume(initial), initial.reservoir.Sw, TotalProduction(m)
	pi, p := initial.reservoir.P, m.reservoir.P
	if !known(pv, swi, tp, pi, p) {
		return Indeterminate
	}
	ct := m.phase.Cf + m.phase.Cw*swi.x
	return Known(pv.x * ct * (pi.x - p.x) / tp.x)
}

var driveIndexFuncs = map[DriveIndex]func(initial, m *Model) Value{
	DDI: depletion,
	SDI: segregation,
	WDI: water,
	EDI: expansion,
}

// ComputeDriveIndex returns the drive index of m with respect to initial.
//
// When an input of the index is missing the result is Indeterminate, or a
// known zero if safe is set. A NaN result (no oil produced yet) is returned
// as is in both modes.
func ComputeDriveIndex(initial, m *Model, which DriveIndex, safe bool) Value {
	fn, ok := driveIndexFuncs[which]
	if !ok {
		return Indeterminate
	}
	v := fn(initial, m)
	if !v.known && safe {
		return Known(0)
	}
	return v
}

// TotalDriveIndex sums the four drive indices in safe mode. For an energy
// balanced model it equals 1.
func TotalDriveIndex(initial, m *Model) float64 {
	parts := make([]float64, len(DriveIndices))
	for i, d := range DriveIndices {
		parts[i] = ComputeDriveIndex(initial, m, d, true).x
	}
	return floats.Sum(parts)
}

// Breakdown is a full drive-index report for one (initial, current) pair.
type Breakdown struct {
	DDI   Value `json:"DDI"`
	SDI   Value `json:"SDI"`
	WDI   Value `json:"WDI"`
	EDI   Value `json:"EDI"`
	Total Value `json:"total"`

	TotalProduction Value `json:"total_production"`
	TwoPhaseFVF     Value `json:"two_phase_fvf"`
}

// Index returns the value of one drive index from the breakdown.
func (b Breakdown) Index(d DriveIndex) Value {
	switch d {
	case DDI:
		return b.DDI
	case SDI:
		return b.SDI
	case WDI:
		return b.WDI
	case EDI:
		return b.EDI
	}
	return Indeterminate
}

// Crunch computes every drive index of m with respect to initial. Missing
// indices stay Indeterminate and do not block the others.
func Crunch(initial, m *Model) Breakdown {
	return Breakdown{
		DDI:             ComputeDriveIndex(initial, m, DDI, false),
		SDI:             ComputeDriveIndex(initial, m, SDI, false),
		WDI:             ComputeDriveIndex(initial, m, WDI, false),
		EDI:             ComputeDriveIndex(initial, m, EDI, false),
		Total:           Known(TotalDriveIndex(initial, m)),
		TotalProduction: TotalProduction(m),
		TwoPhaseFVF:     TwoPhaseFVF(initial, m),
	}
}
