// Package mathutil provides the small numeric helpers shared by the sweep.
package mathutil

import "math"

// GCD returns the greatest common divisor of a and b, always non-negative.
// GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReduceFraction divides x and y by their greatest common divisor, so that
// proportionally identical pairs reduce to the same result.
// (0, 0) is returned unchanged.
func ReduceFraction(x, y int) (int, int) {
	d := GCD(x, y)
	if d == 0 {
		return x, y
	}
	return x / d, y / d
}

// RelativeError returns |actual - expected| / expected.
func RelativeError(actual, expected float64) float64 {
	return math.Abs(actual-expected) / expected
}
