package scoring_test

import (
	"testing"

	"github.com/inverness4444/stresssense/pkg/service/scoring"
)

func TestNormalize(t *testing.T) {
	t.Run("endpoints map exactly", func(t *testing.T) {
		if got := scoring.Normalize(1, 1, 5); got != 0 {
			t.Errorf("Normalize(min) = %v, want 0", got)
		}
		if got := scoring.Normalize(5, 1, 5); got != scoring.CanonicalScaleMax {
			t.Errorf("Normalize(max) = %v, want %v", got, scoring.CanonicalScaleMax)
		}
	})

	t.Run("linear midpoint", func(t *testing.T) {
		if got := scoring.Normalize(3, 1, 5); got != 50 {
			t.Errorf("Normalize(3, 1, 5) = %v, want 50", got)
		}
	})

	t.Run("out-of-range values are clamped", func(t *testing.T) {
		if got := scoring.Normalize(-10, 1, 5); got != 0 {
			t.Errorf("Normalize below min = %v, want 0", got)
		}
		if got := scoring.Normalize(42, 1, 5); got != scoring.CanonicalScaleMax {
			t.Errorf("Normalize above max = %v, want %v", got, scoring.CanonicalScaleMax)
		}
	})

	t.Run("monotonic and in range across the scale", func(t *testing.T) {
		prev := -1.0
		for v := 0.0; v <= 10.0; v += 0.25 {
			got := scoring.Normalize(v, 0, 10)
			if got < 0 || got > scoring.CanonicalScaleMax {
				t.Fatalf("Normalize(%v) = %v out of [0, %v]", v, got, scoring.CanonicalScaleMax)
			}
			if got < prev {
				t.Fatalf("Normalize not monotonic at %v: %v < %v", v, got, prev)
			}
			prev = got
		}
	})

	t.Run("degenerate scale yields zero", func(t *testing.T) {
		if got := scoring.Normalize(3, 5, 5); got != 0 {
			t.Errorf("Normalize with min==max = %v, want 0", got)
		}
		if got := scoring.Normalize(3, 5, 1); got != 0 {
			t.Errorf("Normalize with inverted scale = %v, want 0", got)
		}
	})
}
