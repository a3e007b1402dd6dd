package core

import "math"

// -----------------------------------------------------------------------------

// RoundCents rounds a dollar amount to whole cents.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change as a fraction.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}

// -----------------------------------------------------------------------------

// SharePercent computes part/total as a percentage, rounded to one decimal.
func SharePercent(part, total float64) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(part/total*1000) / 10
}
