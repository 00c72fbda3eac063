// Package scoring implements the numeric core of the engine: scale
// normalization, window aggregation, trend-aware risk scoring and
// baseline-comparison anomaly detection. Everything here is pure;
// persistence and orchestration live in the usecase layer.
package scoring

// CanonicalScaleMax is the upper bound of the canonical stress index.
// All raw answer scales are rescaled onto [0, CanonicalScaleMax] so the
// scorer's tier boundaries and penalties operate on a single scale.
const CanonicalScaleMax = 100.0

// Normalize maps a raw answer value from its declared scale onto the
// canonical [0, CanonicalScaleMax] range. The value is clamped into
// [scaleMin, scaleMax] first, so the result is exactly 0 at scaleMin
// and exactly CanonicalScaleMax at scaleMax, and monotonic in between.
// A degenerate scale (min >= max) yields 0 rather than NaN.
func Normalize(value, scaleMin, scaleMax float64) float64 {
	if scaleMin >= scaleMax {
		return 0
	}
	v := clamp(value, scaleMin, scaleMax)
	return (v - scaleMin) / (scaleMax - scaleMin) * CanonicalScaleMax
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
