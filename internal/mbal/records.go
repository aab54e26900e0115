package mbal

import "math"

// Phase holds the rock and fluid properties at the pressure the model is defined at.
type Phase struct {
	Bo float64 // Oil formation volume factor (bbl/STB)
	Bw float64 // Water formation volume factor (bbl/STB)
	Bg Value   // Gas formation volume factor (bbl/scf)

	Cw float64 // Water compressibility (1/psi)
	Cf float64 // Formation (rock) compressibility (1/psi)

	Rs Value // Gas solubility (scf/STB)
}

// DefaultPhase returns the phase defaults: Bo=Bw=1, cw=cf=1e-6, Bg and Rs unset.
func DefaultPhase() Phase {
	return Phase{
		Bo: 1,
		Bw: 1,
		Cw: 1e-6,
		Cf: 1e-6,
	}
}

// Reservoir holds the volumetric average parameters of the tank.
type Reservoir struct {
	P  Value // Volumetric average pressure (psi)
	Sw Value // Water saturation (fraction)

	N Value // Oil in place (STB)
	G Value // Gas-cap gas (scf)

	We float64 // Cumulative water influx (bbl)
}

// Operation holds the cumulative production and injection volumes.
type Operation struct {
	Np float64 // Cumulative oil produced (STB)
	Gp float64 // Cumulative gas produced (scf)
	Wp float64 // Cumulative water produced (bbl)

	Ginj float64 // Cumulative gas injected (scf)
	Winj float64 // Cumulative water injected (STB)

	GOR Value // Instantaneous gas-oil ratio (scf/STB)
}

// Rp returns the cumulative gas-oil ratio Gp/Np (scf/STB). It is NaN when no
// oil has been produced.
func (o Operation) Rp() float64 {
	if o.Np == 0 {
		return math.NaN()
	}
	return o.Gp / o.Np
}
