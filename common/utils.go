package common

import "math"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// WrapAngle maps an angle in radians into [0, 2π).
//
// Parameters:
//   - a: the angle in radians
//
// Returns:
//   - float32: the equivalent angle in [0, 2π)
func WrapAngle(a float32) float32 {
	w := math.Mod(float64(a), 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	if w >= 2*math.Pi {
		w = 0
	}
	return float32(w)
}
