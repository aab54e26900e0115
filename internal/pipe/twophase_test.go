package pipe

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

var (
	gas    = Fluid{Density: 50, Viscosity: 1.5e-5}
	liquid = Fluid{Density: 800, Viscosity: 2e-3}
	line   = Pipe{Diameter: 0.05, Length: 100}
)

func TestMixtureFluid(t *testing.T) {
	qg, ql := 0.01, 0.005

	tests := []struct {
		name    string
		slip    float64
		voidage float64
	}{
		{"no slip", 0, 0.01 / 0.015},
		{"unit slip", 1, 0.01 / 0.015},
		{"gas slips past liquid", 2, 0.01 / 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mixture{Pipe: line, Gas: gas, Liquid: liquid, Slip: tt.slip}
			mf := m.Fluid(qg, ql)

			if !scalar.EqualWithinAbsOrRel(mf.Voidage, tt.voidage, 1e-15, 1e-12) {
				t.Errorf("Voidage = %v, want %v", mf.Voidage, tt.voidage)
			}
			wantQuality := 0.5 / (0.5 + 4)
			if !scalar.EqualWithinAbsOrRel(mf.Quality, wantQuality, 1e-15, 1e-12) {
				t.Errorf("Quality = %v, want %v", mf.Quality, wantQuality)
			}
			wantDensity := 50*tt.voidage + 800*(1-tt.voidage)
			if !scalar.EqualWithinAbsOrRel(mf.Density, wantDensity, 1e-12, 1e-12) {
				t.Errorf("Density = %v, want %v", mf.Density, wantDensity)
			}
			if mass := mf.Rate * mf.Density; !scalar.EqualWithinAbsOrRel(mass, 4.5, 1e-12, 1e-12) {
				t.Errorf("mixture mass rate = %v, want 4.5 kg/s", mass)
			}
			if dp := m.PressureDrop(qg, ql); !(dp > 0) {
				t.Errorf("PressureDrop() = %v, want a positive drop", dp)
			}
		})
	}
}

func TestFlowPatternCoefficientAtUnity(t *testing.T) {
	tests := []struct {
		pattern FlowPattern
		want    float64
	}{
		{DispersedBubbly, 4},
		{ElongatedBubbly, 4},
		{SmoothStratified, 2},
		{StratifiedWavy, 3},
		{SlugFlow, 2.2},
		{AnnularMist, 4},
	}

	for _, tt := range tests {
		t.Run(tt.pattern.String(), func(t *testing.T) {
			if got := tt.pattern.Coefficient(1); got != tt.want {
				t.Errorf("Coefficient(1) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChisholmC(t *testing.T) {
	tests := []struct {
		gas, liquid FlowRegime
		want        float64
		wantErr     bool
	}{
		{Laminar, Laminar, 5, false},
		{Laminar, Turbulent, 10, false},
		{Turbulent, Laminar, 12, false},
		{Turbulent, Turbulent, 20, false},
		{Transition, Turbulent, 0, true},
		{Laminar, Transition, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.gas.String()+"/"+tt.liquid.String(), func(t *testing.T) {
			got, err := ChisholmC(tt.gas, tt.liquid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChisholmC() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrTransitionRegime) {
				t.Errorf("error %v is not ErrTransitionRegime", err)
			}
			if got != tt.want {
				t.Errorf("ChisholmC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChisholmPressureDrop(t *testing.T) {
	var buf bytes.Buffer
	lm := &LockhartMartinelli{
		Pipe:   line,
		Gas:    gas,
		Liquid: liquid,
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	}

	tests := []struct {
		name   string
		qg, ql float64
		c      float64
	}{
		{"both turbulent", 0.01, 0.005, 20},
		{"laminar liquid", 0.01, 5e-5, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := lm.Chisholm(tt.qg, tt.ql)
			if err != nil {
				t.Fatalf("Chisholm() error = %v", err)
			}
			if res.C != tt.c {
				t.Errorf("C = %v, want %v", res.C, tt.c)
			}
			fromLiquid := res.PhiL * res.PhiL * res.DropLiquid
			if !scalar.EqualWithinAbsOrRel(res.PressureDrop, fromLiquid, 1e-9, 1e-9) {
				t.Errorf("PressureDrop = %v, liquid-side drop %v", res.PressureDrop, fromLiquid)
			}
			if res.PressureDrop <= res.DropGas || res.PressureDrop <= res.DropLiquid {
				t.Errorf("two-phase drop %v should exceed both superficial drops %v and %v",
					res.PressureDrop, res.DropGas, res.DropLiquid)
			}
		})
	}

	if buf.Len() != 0 {
		t.Errorf("unexpected warning: %s", buf.String())
	}
}

func TestChisholmTransitionRegime(t *testing.T) {
	lm := &LockhartMartinelli{Pipe: line, Gas: gas, Liquid: liquid}

	// Superficial liquid Reynolds number of about 1000 to 2000.
	_, err := lm.Chisholm(0.01, 1.5e-4)
	if !errors.Is(err, ErrTransitionRegime) {
		t.Errorf("Chisholm() error = %v, want ErrTransitionRegime", err)
	}
}
