package pipe

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopetro/internal/units"
)

// Pipe represents a straight cylindrical conduit. All dimensions are SI.
type Pipe struct {
	Diameter  float64 // Inner diameter (m)
	Length    float64 // Length (m)
	Roughness float64 // Absolute wall roughness (m)
}

// NewPipeField builds a pipe from field units: diameter in inches, length in
// feet and a relative roughness ε/D.
func NewPipeField(diameterIn, lengthFt, relRoughness float64) Pipe {
	d := diameterIn * units.Inch
	return Pipe{
		Diameter:  d,
		Length:    lengthFt * units.Foot,
		Roughness: relRoughness * d,
	}
}

// Radius returns the inner radius (m).
func (p Pipe) Radius() float64 {
	return p.Diameter / 2
}

// Circumference returns the inner circumference (m).
func (p Pipe) Circumference() float64 {
	return math.Pi * p.Diameter
}

// Surface returns the inner wall area, ends excluded (m²).
func (p Pipe) Surface() float64 {
	return p.Circumference() * p.Length
}

// CrossSection returns the flow area (m²).
func (p Pipe) CrossSection() float64 {
	return math.Pi * p.Diameter * p.Diameter / 4
}

// Volume returns the inner volume (m³).
func (p Pipe) Volume() float64 {
	return p.CrossSection() * p.Length
}

// RelativeRoughness returns ε/D.
func (p Pipe) RelativeRoughness() float64 {
	return p.Roughness / p.Diameter
}

// Validate checks the pipe geometry
func (p Pipe) Validate() error {
	if p.Diameter <= 0 {
		return &ValidationError{"pipe diameter must be positive"}
	}
	if p.Length <= 0 {
		return &ValidationError{"pipe length must be positive"}
	}
	if p.Roughness < 0 {
		return &ValidationError{"pipe roughness must not be negative"}
	}
	return nil
}

// Fluid holds the single-phase properties used by the pressure drop models.
type Fluid struct {
	Density   float64 // kg/m³
	Viscosity float64 // Pa·s
}

// Validate checks the fluid properties
func (f Fluid) Validate() error {
	if f.Density <= 0 {
		return &ValidationError{fmt.Sprintf("fluid density must be positive, got %g", f.Density)}
	}
	if f.Viscosity <= 0 {
		return &ValidationError{fmt.Sprintf("fluid viscosity must be positive, got %g", f.Viscosity)}
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
