package pipe

import (
	"fmt"
	"math"
	"strings"
)

// FlowRegime classifies a Reynolds number against RegimeLimits.
type FlowRegime int

const (
	Laminar FlowRegime = iota
	Transition
	Turbulent
)

func (r FlowRegime) String() string {
	switch r {
	case Laminar:
		return "laminar"
	case Transition:
		return "transition"
	case Turbulent:
		return "turbulent"
	}
	return fmt.Sprintf("FlowRegime(%d)", int(r))
}

// RegimeLimits are the Reynolds numbers that bound the transition zone.
// Flow is laminar below Laminar and turbulent above Turbulent.
type RegimeLimits struct {
	Laminar   float64
	Turbulent float64
}

// DefaultLimits returns the single-phase pipe flow limits, 2000 and 4000.
func DefaultLimits() RegimeLimits {
	return RegimeLimits{Laminar: 2000, Turbulent: 4000}
}

// TwoPhaseLimits returns the limits used for the superficial phases of the
// separated-flow models, 1000 and 2000.
func TwoPhaseLimits() RegimeLimits {
	return RegimeLimits{Laminar: 1000, Turbulent: 2000}
}

// Regime classifies re.
func (l RegimeLimits) Regime(re float64) FlowRegime {
	switch {
	case re < l.Laminar:
		return Laminar
	case re > l.Turbulent:
		return Turbulent
	}
	return Transition
}

// Reynolds returns the Reynolds number 4ρq/(πμD) for a volumetric rate q (m³/s).
func Reynolds(p Pipe, f Fluid, q float64) float64 {
	return 4 * f.Density * q / (math.Pi * f.Viscosity * p.Diameter)
}

// RateForReynolds returns the rate (m³/s) that produces Reynolds number re.
func RateForReynolds(p Pipe, f Fluid, re float64) float64 {
	return re * math.Pi * f.Viscosity * p.Diameter / (4 * f.Density)
}

// FrictionMethod selects the turbulent Darcy friction factor correlation.
type FrictionMethod int

const (
	MethodColebrook FrictionMethod = iota
	MethodHaaland
	MethodChen
	MethodBlasius
)

// FrictionMethods lists every correlation.
var FrictionMethods = []FrictionMethod{MethodColebrook, MethodHaaland, MethodChen, MethodBlasius}

func (m FrictionMethod) String() string {
	switch m {
	case MethodColebrook:
		return "colebrook"
	case MethodHaaland:
		return "haaland"
	case MethodChen:
		return "chen"
	case MethodBlasius:
		return "blasius"
	}
	return fmt.Sprintf("FrictionMethod(%d)", int(m))
}

// ParseFrictionMethod resolves a correlation name, case-insensitively.
func ParseFrictionMethod(s string) (FrictionMethod, error) {
	for _, m := range FrictionMethods {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown friction method %q: want colebrook, haaland, chen or blasius", s)
}

// Turbulent evaluates the correlation.
func (m FrictionMethod) Turbulent(re, epd float64) float64 {
	switch m {
	case MethodHaaland:
		return Haaland(re, epd)
	case MethodChen:
		return Chen(re, epd)
	case MethodBlasius:
		return Blasius(re)
	}
	return Colebrook(re, epd)
}

// FrictionFactor returns the Darcy friction factor: 64/Re when laminar, the
// chosen correlation when turbulent and NaN in the transition zone.
func FrictionFactor(re, epd float64, limits RegimeLimits, method FrictionMethod) float64 {
	switch limits.Regime(re) {
	case Laminar:
		return 64 / re
	case Turbulent:
		return method.Turbulent(re, epd)
	}
	return math.NaN()
}

const (
	colebrookTolerance  = 1e-12
	colebrookIterations = 50
)

// Colebrook solves 1/√f = −2·log10(ε/3.7D + 2.51/(Re·√f)) by Newton
// iteration on x = 1/√f, starting from the Haaland estimate.
func Colebrook(re, epd float64) float64 {
	a := epd / 3.7
	b := 2.51 / re

	x := 1 / math.Sqrt(Haaland(re, epd))
	for i := 0; i < colebrookIterations; i++ {
		inner := a + b*x
		g := x + 2*math.Log10(inner)
		dg := 1 + 2*b/(math.Ln10*inner)
		step := g / dg
		x -= step
		if math.Abs(step) <= colebrookTolerance*math.Abs(x) {
			break
		}
	}
	return 1 / (x * x)
}

// Haaland returns the explicit Haaland approximation of Colebrook.
func Haaland(re, epd float64) float64 {
	t := -1.8 * math.Log10(math.Pow(epd/3.7, 1.11)+6.9/re)
	return 1 / (t * t)
}

// Chen returns the explicit Chen approximation of Colebrook.
func Chen(re, epd float64) float64 {
	inner := math.Pow(epd, 1.1098)/2.8257 + 5.8506/math.Pow(re, 0.8981)
	t := -2 * math.Log10(epd/3.7065-5.0452/re*math.Log10(inner))
	return 1 / (t * t)
}

// Blasius returns the smooth-pipe correlation 0.3164/Re^0.25.
func Blasius(re float64) float64 {
	return 0.3164 / math.Pow(re, 0.25)
}
