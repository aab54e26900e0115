package radial

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopetro/internal/units"
)

// Reservoir represents a homogeneous, isotropic drainage area in field units.
type Reservoir struct {
	Area                 float64 // Drainage area (acre)
	Height               float64 // Net pay thickness (ft)
	Porosity             float64 // Fraction
	Permeability         float64 // md
	TotalCompressibility float64 // 1/psi
	InitialPressure      float64 // psi
}

// Fluid holds the slightly compressible flowing phase.
type Fluid struct {
	Viscosity float64 // cp
	FVF       float64 // Formation volume factor (bbl/STB)
}

// Well is a vertical producer at the centre of the drainage area.
type Well struct {
	Radius float64 // Wellbore radius (ft)
	Skin   float64 // Dimensionless skin factor
	Rate   float64 // Surface rate (STB/d)
}

// Validate checks the reservoir, fluid and well description
func Validate(res Reservoir, fl Fluid, w Well) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"area", res.Area},
		{"height", res.Height},
		{"porosity", res.Porosity},
		{"permeability", res.Permeability},
		{"total compressibility", res.TotalCompressibility},
		{"viscosity", fl.Viscosity},
		{"formation volume factor", fl.FVF},
		{"well radius", w.Radius},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return &ValidationError{fmt.Sprintf("%s must be positive, got %g", p.name, p.value)}
		}
	}
	if res.Porosity >= 1 {
		return &ValidationError{fmt.Sprintf("porosity must be below 1, got %g", res.Porosity)}
	}
	if w.Radius >= res.radius()/units.Foot {
		return &ValidationError{"well radius must be smaller than the drainage radius"}
	}
	return nil
}

// ValidationError represents an input validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// system is the problem in SI units, shared by the solvers.
type system struct {
	area   float64 // m²
	radius float64 // drainage radius (m)
	height float64 // m
	poro   float64
	perm   float64 // m²
	ct     float64 // 1/Pa
	pi     float64 // Pa

	visc float64 // Pa·s
	fvf  float64

	rw   float64 // m
	skin float64
	rate float64 // surface rate (m³/s)
}

func (r Reservoir) area() float64 {
	return r.Area * units.Acre
}

// radius returns the radius (m) of the circle with the drainage area.
func (r Reservoir) radius() float64 {
	return math.Sqrt(r.area() / math.Pi)
}

func newSystem(res Reservoir, fl Fluid, w Well) system {
	return system{
		area:   res.area(),
		radius: res.radius(),
		height: res.Height * units.Foot,
		poro:   res.Porosity,
		perm:   res.Permeability * units.Millidarcy,
		ct:     units.PerPsi(res.TotalCompressibility),
		pi:     res.InitialPressure * units.Psi,
		visc:   fl.Viscosity * units.Centipoise,
		fvf:    fl.FVF,
		rw:     w.Radius * units.Foot,
		skin:   w.Skin,
		rate:   units.BarrelsPerDay(w.Rate),
	}
}

// diffusivity returns the hydraulic diffusivity k/(φμct) in m²/s.
func (s system) diffusivity() float64 {
	return s.perm / (s.poro * s.visc * s.ct)
}

// poreVolume returns A·h·φ in m³.
func (s system) poreVolume() float64 {
	return s.area * s.height * s.poro
}

// pressureTerm returns q·B·μ/(2πkh) in Pa.
func (s system) pressureTerm() float64 {
	return s.rate * s.fvf * s.visc / (2 * math.Pi * s.perm * s.height)
}

// Result holds a pressure solution on a time by radius grid in field units.
// Pressure[i][j] is the pressure at Times[i] and Nodes[j]; times outside the
// validity window of the solver have NaN rows.
type Result struct {
	Times    []float64 // days
	Nodes    []float64 // ft from the well
	Pressure [][]float64
}

// At returns the pressure history at node j.
func (r *Result) At(j int) []float64 {
	col := make([]float64, len(r.Times))
	for i := range r.Times {
		col[i] = r.Pressure[i][j]
	}
	return col
}

// Solver computes reservoir pressures on a time by radius grid.
type Solver interface {
	Solve(times, nodes []float64) (*Result, error)
}

func newResult(times, nodes []float64) (*Result, error) {
	if len(times) == 0 {
		return nil, &ValidationError{"at least one time is required"}
	}
	if len(nodes) == 0 {
		return nil, &ValidationError{"at least one node is required"}
	}
	r := &Result{
		Times:    append([]float64(nil), times...),
		Nodes:    append([]float64(nil), nodes...),
		Pressure: make([][]float64, len(times)),
	}
	for i := range r.Pressure {
		r.Pressure[i] = make([]float64, len(nodes))
	}
	return r, nil
}
