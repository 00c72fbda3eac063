package scoring

import (
	"math"

	"github.com/inverness4444/stresssense/pkg/domain/model"
)

// answerAccumulator folds normalized answer values into a running sum.
// It is a value type: add returns a new accumulator, keeping the
// aggregation free of external mutation.
type answerAccumulator struct {
	sum   float64
	count int
}

func (a answerAccumulator) add(value float64) answerAccumulator {
	return answerAccumulator{sum: a.sum + value, count: a.count + 1}
}

func (a answerAccumulator) mean() (float64, bool) {
	if a.count == 0 {
		return 0, false
	}
	return a.sum / float64(a.count), true
}

// Aggregate reduces the responses of one window to StressMetrics.
// responses must already be restricted to the window and scope;
// invites is the eligible-respondent count for the same window.
// Each answer is normalized on its own declared scale, falling back
// to the organization scale when the answer carries none. Zero
// answers and zero invites are valid inputs and yield zeroes, never
// a division error.
func Aggregate(responses []*model.SurveyResponse, invites int, scaleMin, scaleMax float64) model.StressMetrics {
	var participation float64
	if invites > 0 {
		participation = math.Round(float64(len(responses)) / float64(invites) * 100)
	}

	var acc answerAccumulator
	for _, response := range responses {
		for _, answer := range response.Answers {
			if answer.Value == nil {
				continue
			}
			lo, hi := answer.ScaleMin, answer.ScaleMax
			if lo >= hi {
				lo, hi = scaleMin, scaleMax
			}
			acc = acc.add(Normalize(*answer.Value, lo, hi))
		}
	}

	var stressIndex float64
	if mean, ok := acc.mean(); ok {
		stressIndex = mean
	}

	return model.StressMetrics{
		StressIndex:   stressIndex,
		Participation: participation,
	}
}
