package scoring

import (
	"math"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// ScoreInput is everything the composite scorer needs: the current
// window's metrics, the mean stress index of the equal-length
// preceding baseline window, and the current response count.
type ScoreInput struct {
	Current             model.StressMetrics
	BaselineStressIndex float64
	ResponseCount       int
}

// Assessment is the scorer output that flows into a RiskSnapshot
type Assessment struct {
	RiskScore   int
	StressLevel types.StressLevel
	Confidence  float64
	Trend       float64
	Drivers     []model.Driver
}

// Score composes the 0-100 risk score from the current stress level,
// its trend against the baseline window, and participation. The rules
// are deterministic: identical inputs always yield identical output.
func Score(in ScoreInput, policy *Policy) Assessment {
	p := policy.Scorer

	trend := relativeChange(in.Current.StressIndex, in.BaselineStressIndex)

	score := in.Current.StressIndex
	switch {
	case trend > 0:
		score += math.Min(p.TrendRiseCap, trend*p.TrendRiseGain)
	case trend < 0:
		score += trend * p.TrendDropGain
	}

	switch {
	case in.Current.Participation < p.LowParticipation:
		score += p.LowParticipationPenalty
	case in.Current.Participation < p.ModestParticipation:
		score += p.ModestParticipationPenalty
	}

	riskScore := int(math.Round(clamp(score, 0, 100)))

	return Assessment{
		RiskScore:   riskScore,
		StressLevel: Level(riskScore, policy),
		Confidence:  confidence(in.ResponseCount, p.FullConfidenceResponses),
		Trend:       trend,
		Drivers:     drivers(in, trend, p),
	}
}

// Level classifies a risk score into its severity tier. Boundaries are
// inclusive on the lower edge of each tier.
func Level(score int, policy *Policy) types.StressLevel {
	p := policy.Scorer
	switch {
	case score >= p.CriticalScore:
		return types.StressLevelCritical
	case score >= p.HighScore:
		return types.StressLevelHigh
	case score >= p.MediumScore:
		return types.StressLevelMedium
	default:
		return types.StressLevelLow
	}
}

// confidence grows linearly with sample size and caps at 1
func confidence(responseCount, fullAt int) float64 {
	if responseCount <= 0 {
		return 0
	}
	return math.Min(1, float64(responseCount)/float64(fullAt))
}

// drivers evaluates the fixed rule set in order. Each rule is
// independent and the first-match order is preserved; at most
// model.MaxDrivers are kept.
func drivers(in ScoreInput, trend float64, p ScorerPolicy) []model.Driver {
	var out []model.Driver

	if in.Current.StressIndex >= p.WorkloadDriverMin {
		out = append(out, model.Driver{Key: "workload", Label: "Workload pressure", Contribution: 0.35})
	}
	if trend > p.RisingTrendDriverMin {
		out = append(out, model.Driver{Key: "rising_trend", Label: "Rising stress trend", Contribution: 0.25})
	}
	if in.Current.Participation < p.LowParticipationDriverMax {
		out = append(out, model.Driver{Key: "low_participation", Label: "Low participation", Contribution: 0.2})
	}

	if len(out) > model.MaxDrivers {
		out = out[:model.MaxDrivers]
	}
	return out
}

// relativeChange returns (current-baseline)/baseline with a guarded
// zero baseline, so it never produces NaN or Inf.
func relativeChange(current, baseline float64) float64 {
	if baseline > 0 {
		return (current - baseline) / baseline
	}
	return 0
}
