package types

import "fmt"

// StressLevel represents the four-tier severity classification of a risk score
type StressLevel string

const (
	StressLevelLow      StressLevel = "low"
	StressLevelMedium   StressLevel = "medium"
	StressLevelHigh     StressLevel = "high"
	StressLevelCritical StressLevel = "critical"
)

// AllStressLevels returns all valid stress levels
func AllStressLevels() []StressLevel {
	return []StressLevel{
		StressLevelLow,
		StressLevelMedium,
		StressLevelHigh,
		StressLevelCritical,
	}
}

// IsValid checks if the stress level is valid
func (s StressLevel) IsValid() bool {
	switch s {
	case StressLevelLow,
		StressLevelMedium,
		StressLevelHigh,
		StressLevelCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stress level
func (s StressLevel) String() string {
	return string(s)
}

// ParseStressLevel parses a string into a StressLevel
func ParseStressLevel(s string) (StressLevel, error) {
	level := StressLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid stress level: %s", s)
	}
	return level, nil
}
