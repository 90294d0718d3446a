package utils

import (
	"math"
)

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// RoundInt rounds to the nearest integer, halves away from zero
func RoundInt(value float64) int {
	return int(math.Round(value))
}

// Lerp performs linear interpolation between two values
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Frac returns the fractional part of x in [0, 1), also for negative x
func Frac(x float64) float64 {
	return x - math.Floor(x)
}
