package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Infinity is used as the open upper bound of ray intervals
var Infinity = math.Inf(1)

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Clamp limits x to [min, max]
func Clamp[T constraints.Ordered](x, min, max T) T {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// MinNumber returns the smaller of a and b, preferring the operand that is not NaN
func MinNumber(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case a < b:
		return a
	}
	return b
}

// MaxNumber returns the larger of a and b, preferring the operand that is not NaN
func MaxNumber(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case a > b:
		return a
	}
	return b
}
