package radial

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/gopetro/internal/units"
)

// Boundary describes a closed drainage shape by its Dietz shape factor and
// the dimensionless times tDA = ηt/A that bound the pseudo-steady regime.
type Boundary struct {
	Factor float64 // C_A

	ExactAfter    float64 // pseudo-steady state is exact for larger tDA
	AccurateAfter float64 // less than 1% error for larger tDA
	InfiniteUntil float64 // infinite-acting solution within 1% for smaller tDA
}

// Shapes holds the supported drainage shapes with a centred well.
var Shapes = map[string]Boundary{
	"circle":   {Factor: 31.62, ExactAfter: 0.1, AccurateAfter: 0.06, InfiniteUntil: 0.1},
	"triangle": {Factor: 27.6, ExactAfter: 0.2, AccurateAfter: 0.07, InfiniteUntil: 0.09},
	"square":   {Factor: 30.8828, ExactAfter: 0.1, AccurateAfter: 0.05, InfiniteUntil: 0.09},
	"hexagon":  {Factor: 31.6, ExactAfter: 0.1, AccurateAfter: 0.06, InfiniteUntil: 0.1},
}

// ShapeNames returns the keys of Shapes in sorted order.
func ShapeNames() []string {
	names := make([]string, 0, len(Shapes))
	for name := range Shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exponential of Euler's constant, as used by the shape factor tables.
var gammaExp = math.Exp(0.5772)

// PseudoSteady is the bounded-reservoir solution once the pressure
// disturbance has reached every boundary:
//
//	pwf = pi − q·B·μ/(2πkh)·(½·ln(4A/(γ·C_A·rw²)) + s) − q·B·t/(Vp·ct)
//
// The solution is the flowing wellbore pressure; every node carries it.
type PseudoSteady struct {
	Reservoir Reservoir
	Fluid     Fluid
	Well      Well
	Shape     string // a key of Shapes; empty means "circle"

	Logger *slog.Logger // nil means slog.Default
}

// Boundary returns the boundary of the configured shape.
func (s *PseudoSteady) Boundary() (Boundary, error) {
	name := strings.ToLower(s.Shape)
	if name == "" {
		name = "circle"
	}
	b, ok := Shapes[name]
	if !ok {
		return Boundary{}, &ValidationError{fmt.Sprintf("unknown shape %q: want one of %s", s.Shape, strings.Join(ShapeNames(), ", "))}
	}
	return b, nil
}

// StartTime returns the time (days) after which the solution is exact.
func (s *PseudoSteady) StartTime() (float64, error) {
	b, err := s.Boundary()
	if err != nil {
		return 0, err
	}
	sys := newSystem(s.Reservoir, s.Fluid, s.Well)
	return b.ExactAfter * sys.area / sys.diffusivity() / units.Day, nil
}

// Solve evaluates the wellbore pressure at times (days). Times before the
// start of pseudo-steady state have NaN rows.
func (s *PseudoSteady) Solve(times, nodes []float64) (*Result, error) {
	if err := Validate(s.Reservoir, s.Fluid, s.Well); err != nil {
		return nil, err
	}
	b, err := s.Boundary()
	if err != nil {
		return nil, err
	}
	res, err := newResult(times, nodes)
	if err != nil {
		return nil, err
	}

	sys := newSystem(s.Reservoir, s.Fluid, s.Well)
	tmin, _ := s.StartTime()

	inner := 4 * sys.area / (gammaExp * b.Factor * sys.rw * sys.rw)
	steady := sys.pressureTerm() * (0.5*math.Log(inner) + sys.skin)
	decline := sys.rate * sys.fvf / (sys.poreVolume() * sys.ct)

	var early bool
	for i, t := range times {
		p := math.NaN()
		if t >= tmin {
			p = units.ToPsi(sys.pi - steady - decline*units.Days(t))
		} else {
			early = true
		}
		for j := range res.Pressure[i] {
			res.Pressure[i][j] = p
		}
	}

	if early {
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("not all times satisfy the early time limit", "tmin_days", tmin)
	}

	return res, nil
}
