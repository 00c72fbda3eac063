package model_test

import (
	"testing"
	"time"

	"github.com/inverness4444/stresssense/pkg/domain/model"
)

func TestWindow(t *testing.T) {
	start := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	window := model.NewWindow(start, end)

	if err := window.Validate(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if window.Duration() != 7*24*time.Hour {
		t.Errorf("duration = %v, want 168h", window.Duration())
	}

	t.Run("contains is half-open", func(t *testing.T) {
		if !window.Contains(start) {
			t.Error("start must be included")
		}
		if window.Contains(end) {
			t.Error("end must be excluded")
		}
		if !window.Contains(end.Add(-time.Nanosecond)) {
			t.Error("instant before end must be included")
		}
		if window.Contains(start.Add(-time.Nanosecond)) {
			t.Error("instant before start must be excluded")
		}
	})

	t.Run("prev is the adjacent equal-length window", func(t *testing.T) {
		prev := window.Prev()
		if !prev.End.Equal(start) {
			t.Errorf("prev end = %v, want %v", prev.End, start)
		}
		if prev.Duration() != window.Duration() {
			t.Errorf("prev duration = %v, want %v", prev.Duration(), window.Duration())
		}
		if prev.Contains(start) {
			t.Error("prev must not overlap the current window")
		}
	})

	t.Run("degenerate windows are rejected", func(t *testing.T) {
		if err := model.NewWindow(start, start).Validate(); err == nil {
			t.Error("empty window must be invalid")
		}
		if err := model.NewWindow(end, start).Validate(); err == nil {
			t.Error("inverted window must be invalid")
		}
	})
}
