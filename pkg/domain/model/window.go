package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Window is a half-open time interval [Start, End). Pure value, no identity.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow creates a window from its boundaries
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// Validate checks that the window boundaries are ordered
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return goerr.New("window start must be before end",
			goerr.V("start", w.Start), goerr.V("end", w.End))
	}
	return nil
}

// Duration returns the length of the window
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Prev returns the baseline window: the interval of equal length
// immediately preceding this one.
func (w Window) Prev() Window {
	return Window{
		Start: w.Start.Add(-w.Duration()),
		End:   w.Start,
	}
}

// Contains reports whether t falls inside the half-open interval
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
