package pipe

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrTransitionRegime is returned when a superficial phase falls between the
// laminar and turbulent limits, where the separated-flow correlations have
// no coefficient.
var ErrTransitionRegime = errors.New("superficial phase in transition regime")

// Mixture is the homogeneous two-phase model: gas and liquid are lumped into
// one pseudo-fluid that flows through a Darcy-Weisbach pipe.
type Mixture struct {
	Pipe   Pipe
	Gas    Fluid
	Liquid Fluid
	Slip   float64 // gas-to-liquid velocity ratio; 0 means no slip (1)

	Limits RegimeLimits
	Method FrictionMethod
}

// MixtureFluid is the pseudo-fluid built by Mixture.Fluid.
type MixtureFluid struct {
	Fluid
	Quality float64 // gas mass fraction
	Voidage float64 // gas volume fraction
	Rate    float64 // mixture volumetric rate (m³/s)
}

// Quality returns the gas mass fraction for gas rate qg and liquid rate ql.
func (m *Mixture) Quality(qg, ql float64) float64 {
	mg, ml := qg*m.Gas.Density, ql*m.Liquid.Density
	return mg / (mg + ml)
}

// Voidage returns the gas volume fraction qg/(qg + S·ql).
func (m *Mixture) Voidage(qg, ql float64) float64 {
	return qg / (qg + m.slip()*ql)
}

func (m *Mixture) slip() float64 {
	if m.Slip == 0 {
		return 1
	}
	return m.Slip
}

// Fluid returns the pseudo-fluid: density weighted by voidage, viscosity
// weighted by quality, and the rate that conserves the total mass flow.
func (m *Mixture) Fluid(qg, ql float64) MixtureFluid {
	x := m.Quality(qg, ql)
	a := m.Voidage(qg, ql)

	f := Fluid{
		Density:   m.Gas.Density*a + m.Liquid.Density*(1-a),
		Viscosity: m.Gas.Viscosity*x + m.Liquid.Viscosity*(1-x),
	}
	mass := qg*m.Gas.Density + ql*m.Liquid.Density

	return MixtureFluid{
		Fluid:   f,
		Quality: x,
		Voidage: a,
		Rate:    mass / f.Density,
	}
}

// PressureDrop returns the homogeneous-model friction pressure drop (Pa).
func (m *Mixture) PressureDrop(qg, ql float64) float64 {
	mf := m.Fluid(qg, ql)
	dw := &DarcyWeisbach{Pipe: m.Pipe, Fluid: mf.Fluid, Limits: m.limits(), Method: m.Method}
	return dw.PressureDrop(mf.Rate)
}

func (m *Mixture) limits() RegimeLimits {
	if m.Limits == (RegimeLimits{}) {
		return DefaultLimits()
	}
	return m.Limits
}

// FlowPattern names the flow-pattern correlations for the Lockhart-Martinelli
// coefficient.
type FlowPattern int

const (
	DispersedBubbly FlowPattern = iota
	ElongatedBubbly
	SmoothStratified
	StratifiedWavy
	SlugFlow
	AnnularMist
)

func (p FlowPattern) String() string {
	switch p {
	case DispersedBubbly:
		return "dispersed bubbly"
	case ElongatedBubbly:
		return "elongated bubbly"
	case SmoothStratified:
		return "smooth stratified"
	case StratifiedWavy:
		return "stratified wavy"
	case SlugFlow:
		return "slug flow"
	case AnnularMist:
		return "annular mist"
	}
	return fmt.Sprintf("FlowPattern(%d)", int(p))
}

// Coefficient returns the pattern's C as a function of the Martinelli
// parameter x.
func (p FlowPattern) Coefficient(x float64) float64 {
	l := math.Log(x)
	switch p {
	case DispersedBubbly:
		return 4 - 12*l + 28*l*l
	case ElongatedBubbly:
		return 4 - 15*l + 26*l*l
	case SmoothStratified:
		return 2 + 4.5*l + 3.6*l*l
	case StratifiedWavy:
		return 3 + 1.65*l + 0.45*l*l
	case SlugFlow:
		return 2.2 + 6.5*l
	case AnnularMist:
		return 4 + 2.5*l + 0.5*l*l
	}
	return math.NaN()
}

// LockhartMartinelli is the separated-flow model. Each phase is evaluated as
// if it flowed alone in the pipe (its superficial flow).
type LockhartMartinelli struct {
	Pipe   Pipe
	Gas    Fluid
	Liquid Fluid

	Limits RegimeLimits // 0 means TwoPhaseLimits
	Method FrictionMethod

	Logger *slog.Logger // nil means slog.Default
}

// superficial returns the single-phase models of gas and liquid.
func (lm *LockhartMartinelli) superficial() (gas, liquid *DarcyWeisbach) {
	limits := lm.Limits
	if limits == (RegimeLimits{}) {
		limits = TwoPhaseLimits()
	}
	gas = &DarcyWeisbach{Pipe: lm.Pipe, Fluid: lm.Gas, Limits: limits, Method: lm.Method}
	liquid = &DarcyWeisbach{Pipe: lm.Pipe, Fluid: lm.Liquid, Limits: limits, Method: lm.Method}
	return gas, liquid
}

// Regimes returns the superficial regimes of gas and liquid. Either phase in
// the transition zone is an ErrTransitionRegime.
func (lm *LockhartMartinelli) Regimes(qg, ql float64) (gas, liquid FlowRegime, err error) {
	g, l := lm.superficial()
	gas, liquid = g.Regime(qg), l.Regime(ql)
	if gas == Transition || liquid == Transition {
		return gas, liquid, fmt.Errorf("%w: gas %s (Re=%.0f), liquid %s (Re=%.0f)",
			ErrTransitionRegime, gas, g.Reynolds(qg), liquid, l.Reynolds(ql))
	}
	return gas, liquid, nil
}

// Martinelli returns X = √(ΔpL/ΔpG) from the superficial pressure drops.
func Martinelli(dropGas, dropLiquid float64) float64 {
	return math.Sqrt(dropLiquid / dropGas)
}

// ChisholmC returns Chisholm's constant for the pair of superficial regimes.
func ChisholmC(gas, liquid FlowRegime) (float64, error) {
	switch {
	case liquid == Laminar && gas == Laminar:
		return 5, nil
	case liquid == Turbulent && gas == Laminar:
		return 10, nil
	case liquid == Laminar && gas == Turbulent:
		return 12, nil
	case liquid == Turbulent && gas == Turbulent:
		return 20, nil
	}
	return 0, fmt.Errorf("%w: gas %s, liquid %s", ErrTransitionRegime, gas, liquid)
}

// ChisholmResult is the breakdown of a Chisholm pressure drop.
type ChisholmResult struct {
	GasRegime    FlowRegime
	LiquidRegime FlowRegime

	DropGas    float64 // superficial gas pressure drop (Pa)
	DropLiquid float64 // superficial liquid pressure drop (Pa)

	X    float64 // Martinelli parameter
	C    float64
	PhiG float64 // gas two-phase multiplier
	PhiL float64 // liquid two-phase multiplier

	PressureDrop float64 // two-phase pressure drop φG²·ΔpG (Pa)
}

// Chisholm evaluates the Lockhart-Martinelli multipliers with Chisholm's
// constant: φG² = 1 + C·X + X², φL² = 1 + C/X + 1/X².
func (lm *LockhartMartinelli) Chisholm(qg, ql float64) (*ChisholmResult, error) {
	gasRegime, liquidRegime, err := lm.Regimes(qg, ql)
	if err != nil {
		return nil, err
	}
	c, err := ChisholmC(gasRegime, liquidRegime)
	if err != nil {
		return nil, err
	}

	g, l := lm.superficial()
	dropG, dropL := g.PressureDrop(qg), l.PressureDrop(ql)

	x := Martinelli(dropG, dropL)
	phiG := math.Sqrt(1 + c*x + x*x)
	phiL := math.Sqrt(1 + c/x + 1/(x*x))

	fromGas := phiG * phiG * dropG
	fromLiquid := phiL * phiL * dropL
	if math.Abs(fromGas-fromLiquid)/math.Abs(fromLiquid) > 1e-5 {
		lm.logger().Warn("two-phase pressure drops from gas and liquid phases differ",
			"gas", fromGas, "liquid", fromLiquid)
	}

	return &ChisholmResult{
		GasRegime:    gasRegime,
		LiquidRegime: liquidRegime,
		DropGas:      dropG,
		DropLiquid:   dropL,
		X:            x,
		C:            c,
		PhiG:         phiG,
		PhiL:         phiL,
		PressureDrop: fromGas,
	}, nil
}

func (lm *LockhartMartinelli) logger() *slog.Logger {
	if lm.Logger == nil {
		return slog.Default()
	}
	return lm.Logger
}
