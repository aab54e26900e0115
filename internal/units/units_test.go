package units

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"acre", Acre, 4046.8564224},
		{"cubic foot", CubicFoot, 0.028316846592},
		{"1000 bbl/d", BarrelsPerDay(1000), 0.158987294928 * 1000 / 86400},
		{"round trip rate", ToBarrelsPerDay(BarrelsPerDay(750)), 750},
		{"1e-5 1/psi", PerPsi(1e-5), 1e-5 / 6894.76},
		{"3000 psi", ToPsi(3000 * Psi), 3000},
		{"2 days", Days(2), 172800},
		{"water 62.4 lb/ft3", PoundsPerCubicFoot(62.4), 999.5521145351128},
		{"1 Mcf/d", CubicFeetPerDay(1000), 28.316846592 / 86400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !scalar.EqualWithinAbsOrRel(tt.got, tt.want, 1e-15, 1e-12) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
