package pipe

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

var water = Fluid{Density: 1000, Viscosity: 1e-3}

func TestReynolds(t *testing.T) {
	p := Pipe{Diameter: 0.1, Length: 1}

	re := Reynolds(p, water, 0.01)
	if want := 4e5 / math.Pi; !scalar.EqualWithinAbsOrRel(re, want, 1e-9, 1e-12) {
		t.Errorf("Reynolds() = %v, want %v", re, want)
	}
	if q := RateForReynolds(p, water, re); !scalar.EqualWithinAbsOrRel(q, 0.01, 1e-15, 1e-12) {
		t.Errorf("RateForReynolds() = %v, want 0.01", q)
	}
}

func TestRegime(t *testing.T) {
	tests := []struct {
		re     float64
		limits RegimeLimits
		want   FlowRegime
	}{
		{1500, DefaultLimits(), Laminar},
		{2000, DefaultLimits(), Transition},
		{3000, DefaultLimits(), Transition},
		{4000, DefaultLimits(), Transition},
		{4001, DefaultLimits(), Turbulent},
		{999, TwoPhaseLimits(), Laminar},
		{1500, TwoPhaseLimits(), Transition},
		{3000, TwoPhaseLimits(), Turbulent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v in %v", tt.re, tt.limits), func(t *testing.T) {
			if got := tt.limits.Regime(tt.re); got != tt.want {
				t.Errorf("Regime(%v) = %v, want %v", tt.re, got, tt.want)
			}
		})
	}
}

func TestFrictionFactorByRegime(t *testing.T) {
	limits := DefaultLimits()

	if got := FrictionFactor(1000, 1e-4, limits, MethodColebrook); got != 0.064 {
		t.Errorf("laminar friction = %v, want 0.064", got)
	}
	if got := FrictionFactor(3000, 1e-4, limits, MethodColebrook); !math.IsNaN(got) {
		t.Errorf("transition friction = %v, want NaN", got)
	}
	if got := FrictionFactor(1e5, 0, limits, MethodBlasius); !scalar.EqualWithinAbsOrRel(got, 0.3164/math.Pow(1e5, 0.25), 1e-15, 1e-12) {
		t.Errorf("turbulent Blasius friction = %v", got)
	}
}

func TestColebrookSatisfiesEquation(t *testing.T) {
	for _, re := range []float64{5e3, 1e5, 1e7} {
		for _, epd := range []float64{0, 1e-4, 1e-2} {
			t.Run(fmt.Sprintf("Re=%g e/D=%g", re, epd), func(t *testing.T) {
				f := Colebrook(re, epd)
				x := 1 / math.Sqrt(f)
				residual := x + 2*math.Log10(epd/3.7+2.51/(re*math.Sqrt(f)))
				if math.Abs(residual) > 1e-9 {
					t.Errorf("Colebrook residual = %v for f = %v", residual, f)
				}
				if h := Haaland(re, epd); !scalar.EqualWithinAbsOrRel(h, f, 0, 0.03) {
					t.Errorf("Haaland = %v, more than 3%% away from Colebrook %v", h, f)
				}
				if c := Chen(re, epd); !scalar.EqualWithinAbsOrRel(c, f, 0, 0.01) {
					t.Errorf("Chen = %v, more than 1%% away from Colebrook %v", c, f)
				}
			})
		}
	}
}

func TestColebrookSmoothPipe(t *testing.T) {
	// Prandtl's smooth-pipe value at Re = 1e5 is about 0.0180.
	if got := Colebrook(1e5, 0); !scalar.EqualWithinAbsOrRel(got, 0.0180, 0, 0.01) {
		t.Errorf("Colebrook(1e5, 0) = %v, want ~0.0180", got)
	}
}

func TestParseFrictionMethod(t *testing.T) {
	for _, m := range FrictionMethods {
		got, err := ParseFrictionMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseFrictionMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseFrictionMethod("HAALAND"); err != nil || got != MethodHaaland {
		t.Errorf("ParseFrictionMethod(HAALAND) = %v, %v", got, err)
	}
	if _, err := ParseFrictionMethod("moody"); err == nil {
		t.Error("ParseFrictionMethod(moody) should fail")
	}
}

func TestDarcyWeisbachLaminarMatchesPoiseuille(t *testing.T) {
	p := Pipe{Diameter: 0.1, Length: 100}
	dw := NewDarcyWeisbach(p, water)
	q := 1e-4

	if dw.Regime(q) != Laminar {
		t.Fatalf("Regime() = %v at Re %v, want laminar", dw.Regime(q), dw.Reynolds(q))
	}

	want := 128 * water.Viscosity * p.Length * q / (math.Pi * math.Pow(p.Diameter, 4))
	if got := dw.PressureDrop(q); !scalar.EqualWithinAbsOrRel(got, want, 1e-12, 1e-10) {
		t.Errorf("PressureDrop() = %v, want Hagen-Poiseuille %v", got, want)
	}
}

func TestDarcyWeisbachTurbulent(t *testing.T) {
	p := NewPipeField(4, 1000, 1e-4)
	dw := NewDarcyWeisbach(p, water)
	q := 0.02

	if dw.Regime(q) != Turbulent {
		t.Fatalf("Regime() = %v, want turbulent", dw.Regime(q))
	}

	f := Colebrook(dw.Reynolds(q), 1e-4)
	v := q / p.CrossSection()
	want := f * p.Length / p.Diameter * water.Density * v * v / 2
	if got := dw.PressureDrop(q); !scalar.EqualWithinAbsOrRel(got, want, 1e-9, 1e-10) {
		t.Errorf("PressureDrop() = %v, want %v", got, want)
	}

	if !math.IsNaN(dw.HeadLoss(RateForReynolds(p, water, 3000))) {
		t.Error("HeadLoss() in the transition zone should be NaN")
	}
}
