package types

import "fmt"

// AnomalyMetric identifies which window metric an anomaly check compares
type AnomalyMetric string

const (
	AnomalyMetricStressIndex   AnomalyMetric = "stress_index"
	AnomalyMetricParticipation AnomalyMetric = "participation"
)

// AllAnomalyMetrics returns all valid anomaly metrics
func AllAnomalyMetrics() []AnomalyMetric {
	return []AnomalyMetric{
		AnomalyMetricStressIndex,
		AnomalyMetricParticipation,
	}
}

// IsValid checks if the anomaly metric is valid
func (m AnomalyMetric) IsValid() bool {
	switch m {
	case AnomalyMetricStressIndex, AnomalyMetricParticipation:
		return true
	default:
		return false
	}
}

// String returns the string representation of the anomaly metric
func (m AnomalyMetric) String() string {
	return string(m)
}

// ParseAnomalyMetric parses a string into an AnomalyMetric
func ParseAnomalyMetric(s string) (AnomalyMetric, error) {
	metric := AnomalyMetric(s)
	if !metric.IsValid() {
		return "", fmt.Errorf("invalid anomaly metric: %s", s)
	}
	return metric, nil
}

// AnomalySeverity represents the three-tier severity of an anomaly event
type AnomalySeverity string

const (
	AnomalySeverityLow    AnomalySeverity = "low"
	AnomalySeverityMedium AnomalySeverity = "medium"
	AnomalySeverityHigh   AnomalySeverity = "high"
)

// IsValid checks if the anomaly severity is valid
func (s AnomalySeverity) IsValid() bool {
	switch s {
	case AnomalySeverityLow, AnomalySeverityMedium, AnomalySeverityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the anomaly severity
func (s AnomalySeverity) String() string {
	return string(s)
}

// ChangeDirection indicates whether a metric moved up or down against its baseline
type ChangeDirection string

const (
	ChangeDirectionUp   ChangeDirection = "up"
	ChangeDirectionDown ChangeDirection = "down"
)

// IsValid checks if the change direction is valid
func (d ChangeDirection) IsValid() bool {
	switch d {
	case ChangeDirectionUp, ChangeDirectionDown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the change direction
func (d ChangeDirection) String() string {
	return string(d)
}
