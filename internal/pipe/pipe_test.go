package pipe

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestNewPipeField(t *testing.T) {
	p := NewPipeField(4, 1000, 1e-4)

	if !scalar.EqualWithinAbsOrRel(p.Diameter, 0.1016, 1e-15, 1e-12) {
		t.Errorf("Diameter = %v, want 0.1016", p.Diameter)
	}
	if !scalar.EqualWithinAbsOrRel(p.Length, 304.8, 1e-12, 1e-12) {
		t.Errorf("Length = %v, want 304.8", p.Length)
	}
	if !scalar.EqualWithinAbsOrRel(p.RelativeRoughness(), 1e-4, 1e-15, 1e-12) {
		t.Errorf("RelativeRoughness() = %v, want 1e-4", p.RelativeRoughness())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestPipeGeometry(t *testing.T) {
	p := Pipe{Diameter: 0.2, Length: 10}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"radius", p.Radius(), 0.1},
		{"circumference", p.Circumference(), math.Pi * 0.2},
		{"surface", p.Surface(), math.Pi * 0.2 * 10},
		{"cross section", p.CrossSection(), math.Pi * 0.01},
		{"volume", p.Volume(), math.Pi * 0.01 * 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !scalar.EqualWithinAbsOrRel(tt.got, tt.want, 1e-15, 1e-12) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"valid pipe", Pipe{Diameter: 0.1, Length: 1}.Validate(), false},
		{"zero diameter", Pipe{Length: 1}.Validate(), true},
		{"negative length", Pipe{Diameter: 0.1, Length: -1}.Validate(), true},
		{"negative roughness", Pipe{Diameter: 0.1, Length: 1, Roughness: -1e-5}.Validate(), true},
		{"valid fluid", Fluid{Density: 1000, Viscosity: 1e-3}.Validate(), false},
		{"zero density", Fluid{Viscosity: 1e-3}.Validate(), true},
		{"zero viscosity", Fluid{Density: 1000}.Validate(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", tt.err, tt.wantErr)
			}
			var verr *ValidationError
			if tt.err != nil && !errors.As(tt.err, &verr) {
				t.Errorf("error %v is not a *ValidationError", tt.err)
			}
		})
	}
}

func TestHazenWilliams(t *testing.T) {
	p := Pipe{Diameter: 0.3, Length: 1000}
	q := 0.1

	want := 10.67 * 1000 * math.Pow(q, 1.852) / (math.Pow(120, 1.852) * math.Pow(0.3, 4.87))

	hw := &HazenWilliams{Pipe: p}
	if got := hw.HeadLoss(q); !scalar.EqualWithinAbsOrRel(got, want, 1e-12, 1e-12) {
		t.Errorf("HeadLoss() with default C = %v, want %v", got, want)
	}

	smooth := &HazenWilliams{Pipe: p, C: 150}
	if smooth.HeadLoss(q) >= hw.HeadLoss(q) {
		t.Errorf("a smoother pipe (C=150) should lose less head than C=120")
	}
}
