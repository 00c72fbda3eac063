package scoring

import (
	"math"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// Anomaly is the detector result for one (scope, metric) comparison.
// Detect returns nil when no threshold is crossed.
type Anomaly struct {
	Metric    types.AnomalyMetric
	Direction types.ChangeDirection
	Relative  float64
	Severity  types.AnomalySeverity
	Details   model.AnomalyDetails
}

// Detect compares a metric between the current window and its
// immediately preceding baseline window. The stress index is compared
// on its absolute difference; participation uses a fractional
// threshold against the relative change. Severity escalates to high
// when either the relative change or twice the threshold is exceeded.
func Detect(metric types.AnomalyMetric, current, baseline float64, policy *Policy) *Anomaly {
	if current == 0 && baseline == 0 {
		// Genuinely empty scope, no signal to measure
		return nil
	}

	diff := current - baseline
	var relative float64
	switch {
	case baseline != 0:
		relative = diff / baseline
	case current > 0:
		relative = 1
	}

	p := policy.Detector
	threshold := p.StressIndexThreshold
	measured := math.Abs(diff)
	if metric == types.AnomalyMetricParticipation {
		threshold = p.ParticipationThreshold
		measured = math.Abs(relative)
	}

	if measured < threshold && math.Abs(relative) < p.RelativeFloor {
		return nil
	}

	severity := types.AnomalySeverityLow
	switch {
	case math.Abs(relative) > p.HighRelative || measured > 2*threshold:
		severity = types.AnomalySeverityHigh
	case math.Abs(relative) > p.MediumRelative:
		severity = types.AnomalySeverityMedium
	}

	direction := types.ChangeDirectionUp
	if diff < 0 {
		direction = types.ChangeDirectionDown
	}

	return &Anomaly{
		Metric:    metric,
		Direction: direction,
		Relative:  relative,
		Severity:  severity,
		Details: model.AnomalyDetails{
			CurrentValue:   current,
			BaselineValue:  baseline,
			AbsoluteChange: diff,
		},
	}
}

// MetricValue extracts the compared metric from window metrics
func MetricValue(metric types.AnomalyMetric, m model.StressMetrics) float64 {
	if metric == types.AnomalyMetricParticipation {
		return m.Participation
	}
	return m.StressIndex
}
