package radial

import "math"

// EulerGamma is the Euler-Mascheroni constant.
const EulerGamma = 0.57721566490153286061

const (
	expintEps   = 1e-16
	expintTerms = 500
)

// E1 returns the exponential integral E1(u) = ∫u^∞ e^(−t)/t dt for u > 0,
// by power series for u ≤ 1 and by continued fraction above.
func E1(u float64) float64 {
	switch {
	case math.IsNaN(u) || u < 0:
		return math.NaN()
	case u == 0:
		return math.Inf(1)
	case math.IsInf(u, 1):
		return 0
	}

	if u <= 1 {
		sum, term := 0.0, 1.0
		for k := 1; k <= expintTerms; k++ {
			term *= -u / float64(k)
			sum += term / float64(k)
			if math.Abs(term/float64(k)) < expintEps*math.Abs(sum) {
				break
			}
		}
		return -EulerGamma - math.Log(u) - sum
	}

	// Modified Lentz evaluation of the continued fraction.
	const tiny = 1e-300
	b := u + 1
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i <= expintTerms; i++ {
		a := -float64(i * i)
		b += 2
		d = 1 / (a*d + b)
		c = b + a/c
		del := c * d
		h *= del
		if math.Abs(del-1) < expintEps {
			break
		}
	}
	return h * math.Exp(-u)
}

// Ei returns the exponential integral Ei(x) = −PV∫−x^∞ e^(−t)/t dt. For
// negative arguments, the case of the line source solution, Ei(x) = −E1(−x).
func Ei(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x == 0:
		return math.Inf(-1)
	case x < 0:
		return -E1(-x)
	}

	sum, term := 0.0, 1.0
	for k := 1; k <= expintTerms; k++ {
		term *= x / float64(k)
		sum += term / float64(k)
		if term/float64(k) < expintEps*sum {
			break
		}
	}
	return EulerGamma + math.Log(x) + sum
}
