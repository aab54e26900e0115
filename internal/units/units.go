package units

// Oilfield to SI conversion factors

const (
	// Length
	Inch = 0.0254 // m
	Foot = 0.3048 // m

	// Area
	Acre = 43560 * Foot * Foot // m²

	// Volume
	Barrel    = 0.158987294928     // m³ (US oil barrel)
	CubicFoot = Foot * Foot * Foot // m³

	// Mass
	Pound = 0.45359237 // kg

	// Time
	Day = 24 * 60 * 60 // s

	// Pressure
	Psi = 6894.76 // Pa

	// Viscosity
	Centipoise = 1e-3 // Pa·s

	// Permeability
	Millidarcy = 9.869233e-16 // m²

	// Standard gravity (m/s²)
	Gravity = 9.80665
)

// BarrelsPerDay converts a liquid rate in bbl/d to m³/s.
func BarrelsPerDay(q float64) float64 {
	return q * Barrel / Day
}

// ToBarrelsPerDay converts a rate in m³/s to bbl/d.
func ToBarrelsPerDay(q float64) float64 {
	return q * Day / Barrel
}

// PerPsi converts a compressibility in 1/psi to 1/Pa.
func PerPsi(c float64) float64 {
	return c / Psi
}

// ToPsi converts a pressure in Pa to psi.
func ToPsi(p float64) float64 {
	return p / Psi
}

// Days converts a duration in days to seconds.
func Days(t float64) float64 {
	return t * Day
}

// PoundsPerCubicFoot converts a density in lb/ft³ to kg/m³.
func PoundsPerCubicFoot(rho float64) float64 {
	return rho * Pound / CubicFoot
}

// CubicFeetPerDay converts a gas rate in ft³/d to m³/s.
func CubicFeetPerDay(q float64) float64 {
	return q * CubicFoot / Day
}
