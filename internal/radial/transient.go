package radial

import (
	"log/slog"
	"math"

	"github.com/alexiusacademia/gopetro/internal/units"
)

// Transient is the line source solution of the radial diffusivity equation
// for an infinite-acting reservoir:
//
//	p(r, t) = pi − q·B·μ/(2πkh)·(−½·Ei(−r²/(4ηt)) + s)
type Transient struct {
	Reservoir Reservoir
	Fluid     Fluid
	Well      Well

	Logger *slog.Logger // nil means slog.Default
}

// TimeLimits returns the validity window in days. Before tmin = 100·rw²/η
// the finite wellbore matters; after tmax = 0.25·re²/η the outer boundary does.
func (s *Transient) TimeLimits() (tmin, tmax float64) {
	sys := newSystem(s.Reservoir, s.Fluid, s.Well)
	eta := sys.diffusivity()
	return 100 * sys.rw * sys.rw / eta / units.Day, 0.25 * sys.radius * sys.radius / eta / units.Day
}

// Solve evaluates pressures at times (days) and nodes (ft from the well).
func (s *Transient) Solve(times, nodes []float64) (*Result, error) {
	if err := Validate(s.Reservoir, s.Fluid, s.Well); err != nil {
		return nil, err
	}
	res, err := newResult(times, nodes)
	if err != nil {
		return nil, err
	}

	sys := newSystem(s.Reservoir, s.Fluid, s.Well)
	eta := sys.diffusivity()
	pterm := sys.pressureTerm()
	tmin, tmax := s.TimeLimits()

	var early, late bool
	for i, t := range times {
		row := res.Pressure[i]
		if t < tmin || t > tmax {
			early = early || t < tmin
			late = late || t > tmax
			for j := range row {
				row[j] = math.NaN()
			}
			continue
		}
		ts := units.Days(t)
		for j, r := range nodes {
			rm := r * units.Foot
			dp := pterm * (-0.5*Ei(-rm*rm/(4*eta*ts)) + sys.skin)
			row[j] = units.ToPsi(sys.pi - dp)
		}
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if early {
		logger.Warn("not all times satisfy the early time limit", "tmin_days", tmin)
	}
	if late {
		logger.Warn("not all times satisfy the late time limit", "tmax_days", tmax)
	}

	return res, nil
}
