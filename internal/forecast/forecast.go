// Package forecast is the soil-moisture drydown predictor. It is a pure
// function over a single moisture scalar; the core pipeline may call it but
// owns none of its state.
package forecast

import "math"

// Defaults for the hourly drydown horizon.
const (
	DefaultSteps = 24
	DefaultRate  = 0.05
)

// Drydown predicts how the current soil-moisture fraction decays over the
// next steps ticks with no irrigation: an exponential fall at the given
// rate. A negative current is treated as 0, so the output is never negative.
// The returned slice always has exactly steps values; a non-positive steps
// yields an empty slice.
func Drydown(current float64, steps int, rate float64) []float64 {
	if steps <= 0 {
		return []float64{}
	}
	if current < 0 {
		current = 0
	}
	out := make([]float64, steps)
	for i := range out {
		out[i] = current * math.Exp(-rate*float64(i+1))
	}
	return out
}
