package model

// StressMetrics is the window-level reduction of raw responses:
// the mean stress index on the canonical 0-100 scale and the
// participation rate as a percentage. Derived, never persisted.
type StressMetrics struct {
	StressIndex   float64
	Participation float64
}
