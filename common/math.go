package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Approx reports whether a and b differ by at most eps.
func Approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
