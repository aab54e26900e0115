package mbal

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is a scalar that is either known or indeterminate.
//
// Indeterminate marks a quantity that could not be derived because one of its
// inputs is unset. A known value may still hold NaN (for example Rp when no
// oil has been produced); NaN is a number and propagates through arithmetic.
type Value struct {
	x     float64
	known bool
}

// Indeterminate is the value of a quantity with missing inputs.
var Indeterminate = Value{}

// Known wraps x as a known value.
func Known(x float64) Value {
	return Value{x: x, known: true}
}

// Float64 returns the wrapped number and whether it is known.
func (v Value) Float64() (float64, bool) {
	return v.x, v.known
}

// IsKnown reports whether v holds a number.
func (v Value) IsKnown() bool {
	return v.known
}

// Or returns the wrapped number, or def when v is indeterminate.
func (v Value) Or(def float64) float64 {
	if !v.known {
		return def
	}
	return v.x
}

func (v Value) String() string {
	if !v.known {
		return "unknown"
	}
	return strconv.FormatFloat(v.x, 'g', -1, 64)
}

// MarshalJSON encodes indeterminate values as null. NaN and infinities, which
// JSON cannot carry, are encoded as null too.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.known || math.IsNaN(v.x) || math.IsInf(v.x, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.x)
}

// known reports whether every value is known.
func known(vs ...Value) bool {
	for _, v := range vs {
		if !v.known {
			return false
		}
	}
	return true
}
