package scoring_test

import (
	"testing"

	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/service/scoring"
)

func TestDetect(t *testing.T) {
	policy := scoring.DefaultPolicy()

	t.Run("stress jump emits a high severity event", func(t *testing.T) {
		got := scoring.Detect(types.AnomalyMetricStressIndex, 70, 50, policy)
		if got == nil {
			t.Fatal("expected an anomaly")
		}
		if got.Direction != types.ChangeDirectionUp {
			t.Errorf("direction = %s, want up", got.Direction)
		}
		if got.Relative != 0.4 {
			t.Errorf("relative = %v, want 0.4", got.Relative)
		}
		if got.Severity != types.AnomalySeverityHigh {
			t.Errorf("severity = %s, want high", got.Severity)
		}
		if got.Details.AbsoluteChange != 20 {
			t.Errorf("absolute change = %v, want 20", got.Details.AbsoluteChange)
		}
	})

	t.Run("small stress move emits nothing", func(t *testing.T) {
		if got := scoring.Detect(types.AnomalyMetricStressIndex, 52, 50, policy); got != nil {
			t.Errorf("expected no anomaly, got %+v", got)
		}
	})

	t.Run("empty scope emits nothing", func(t *testing.T) {
		if got := scoring.Detect(types.AnomalyMetricStressIndex, 0, 0, policy); got != nil {
			t.Errorf("expected no anomaly, got %+v", got)
		}
		if got := scoring.Detect(types.AnomalyMetricParticipation, 0, 0, policy); got != nil {
			t.Errorf("expected no anomaly, got %+v", got)
		}
	})

	t.Run("zero baseline with signal counts as full relative change", func(t *testing.T) {
		got := scoring.Detect(types.AnomalyMetricStressIndex, 30, 0, policy)
		if got == nil {
			t.Fatal("expected an anomaly")
		}
		if got.Relative != 1 {
			t.Errorf("relative = %v, want 1", got.Relative)
		}
		if got.Severity != types.AnomalySeverityHigh {
			t.Errorf("severity = %s, want high", got.Severity)
		}
	})

	t.Run("drop is reported as down", func(t *testing.T) {
		got := scoring.Detect(types.AnomalyMetricStressIndex, 40, 60, policy)
		if got == nil {
			t.Fatal("expected an anomaly")
		}
		if got.Direction != types.ChangeDirectionDown {
			t.Errorf("direction = %s, want down", got.Direction)
		}
	})

	t.Run("medium severity between the relative boundaries", func(t *testing.T) {
		// relative = 0.2, diff = 10: above threshold, below 2x and below 0.25
		got := scoring.Detect(types.AnomalyMetricStressIndex, 60, 50, policy)
		if got == nil {
			t.Fatal("expected an anomaly")
		}
		if got.Severity != types.AnomalySeverityMedium {
			t.Errorf("severity = %s, want medium", got.Severity)
		}
	})

	t.Run("large absolute move with modest relative change is high", func(t *testing.T) {
		// diff = 17 > 2*8, relative = 0.17 < 0.25: the OR keeps it high
		got := scoring.Detect(types.AnomalyMetricStressIndex, 117, 100, policy)
		if got == nil {
			t.Fatal("expected an anomaly")
		}
		if got.Severity != types.AnomalySeverityHigh {
			t.Errorf("severity = %s, want high", got.Severity)
		}
	})

	t.Run("participation uses the fractional threshold", func(t *testing.T) {
		// 55 -> 60: relative ~= 0.09 below 0.12, no event
		if got := scoring.Detect(types.AnomalyMetricParticipation, 60, 55, policy); got != nil {
			t.Errorf("expected no anomaly, got %+v", got)
		}

		// 50 -> 40: relative = -0.2, medium severity drop
		got := scoring.Detect(types.AnomalyMetricParticipation, 40, 50, policy)
		if got == nil {
			t.Fatal("expected an anomaly")
		}
		if got.Direction != types.ChangeDirectionDown {
			t.Errorf("direction = %s, want down", got.Direction)
		}
		if got.Severity != types.AnomalySeverityMedium {
			t.Errorf("severity = %s, want medium", got.Severity)
		}
	})
}
