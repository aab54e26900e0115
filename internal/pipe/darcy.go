package pipe

import (
	"math"

	"github.com/alexiusacademia/gopetro/internal/units"
)

// DarcyWeisbach computes frictional losses for single-phase flow.
type DarcyWeisbach struct {
	Pipe   Pipe
	Fluid  Fluid
	Limits RegimeLimits
	Method FrictionMethod
}

// NewDarcyWeisbach returns a model with the default regime limits and the
// Colebrook correlation.
func NewDarcyWeisbach(p Pipe, f Fluid) *DarcyWeisbach {
	return &DarcyWeisbach{
		Pipe:   p,
		Fluid:  f,
		Limits: DefaultLimits(),
		Method: MethodColebrook,
	}
}

// Reynolds returns the Reynolds number at rate q (m³/s).
func (d *DarcyWeisbach) Reynolds(q float64) float64 {
	return Reynolds(d.Pipe, d.Fluid, q)
}

// Regime returns the flow regime at rate q.
func (d *DarcyWeisbach) Regime(q float64) FlowRegime {
	return d.Limits.Regime(d.Reynolds(q))
}

// Friction returns the Darcy friction factor at rate q. It is NaN in the
// transition zone.
func (d *DarcyWeisbach) Friction(q float64) float64 {
	return FrictionFactor(d.Reynolds(q), d.Pipe.RelativeRoughness(), d.Limits, d.Method)
}

// Velocity returns the mean velocity (m/s) at rate q.
func (d *DarcyWeisbach) Velocity(q float64) float64 {
	return q / d.Pipe.CrossSection()
}

// HeadLoss returns the friction head loss f·L·v²/(2gD) in metres of fluid.
func (d *DarcyWeisbach) HeadLoss(q float64) float64 {
	v := d.Velocity(q)
	return d.Friction(q) * d.Pipe.Length * v * v / (2 * units.Gravity * d.Pipe.Diameter)
}

// PressureDrop returns the friction pressure drop ρ·g·h (Pa).
func (d *DarcyWeisbach) PressureDrop(q float64) float64 {
	return d.Fluid.Density * units.Gravity * d.HeadLoss(q)
}

// DefaultHazenWilliamsC is the roughness coefficient of new steel pipe.
const DefaultHazenWilliamsC = 120.0

// HazenWilliams is the empirical head loss formula for water.
type HazenWilliams struct {
	Pipe Pipe
	C    float64 // roughness coefficient; 0 means DefaultHazenWilliamsC
}

// HeadLoss returns 10.67·L·q^1.852/(C^1.852·D^4.87) in metres, q in m³/s.
func (h *HazenWilliams) HeadLoss(q float64) float64 {
	c := h.C
	if c == 0 {
		c = DefaultHazenWilliamsC
	}
	return 10.67 * h.Pipe.Length * math.Pow(q, 1.852) / (math.Pow(c, 1.852) * math.Pow(h.Pipe.Diameter, 4.87))
}
