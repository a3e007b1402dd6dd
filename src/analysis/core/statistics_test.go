package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, std, 1e-9)

	mean, std = CalculateMeanStd(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)

	mean, std = CalculateMeanStd([]float64{3.5})
	assert.InDelta(t, 3.5, mean, 1e-9)
	assert.Equal(t, 0.0, std)
}

func TestCalculateCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 1.0, CalculateCorrelation(x, []float64{2, 4, 6, 8, 10}), 1e-9)
	assert.InDelta(t, -1.0, CalculateCorrelation(x, []float64{10, 8, 6, 4, 2}), 1e-9)

	// Zero variance and length mismatch degrade to 0
	assert.Equal(t, 0.0, CalculateCorrelation(x, []float64{3, 3, 3, 3, 3}))
	assert.Equal(t, 0.0, CalculateCorrelation(x, []float64{1, 2}))
}

func TestCalculateZScore(t *testing.T) {
	assert.InDelta(t, 2.0, CalculateZScore(9, 5, 2), 1e-9)
	assert.Equal(t, 0.0, CalculateZScore(9, 5, 0))
}

// -----------------------------------------------------------------------------

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 6.0, RoundCents(2*2.9999), 1e-9)
	assert.InDelta(t, 1.01, RoundCents(1.006), 1e-9)
	assert.InDelta(t, 1.00, RoundCents(1.0049), 1e-9)
}

func TestCalculateChangePercent(t *testing.T) {
	assert.InDelta(t, 1.0, CalculateChangePercent(10, 5), 1e-9)
	assert.InDelta(t, -0.5, CalculateChangePercent(5, 10), 1e-9)
	assert.Equal(t, 0.0, CalculateChangePercent(5, 0))
}

func TestSharePercent(t *testing.T) {
	assert.InDelta(t, 33.3, SharePercent(1, 3), 1e-9)
	assert.InDelta(t, 50.0, SharePercent(5, 10), 1e-9)
	assert.Equal(t, 0.0, SharePercent(1, 0))
}
