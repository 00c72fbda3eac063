package scoring

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Policy collects every tunable threshold of the risk scorer and the
// anomaly detector so tuning does not require code edits. Zero values
// are invalid; construct via DefaultPolicy or LoadPolicy.
type Policy struct {
	Scorer   ScorerPolicy   `toml:"scorer"`
	Detector DetectorPolicy `toml:"detector"`
}

// ScorerPolicy holds the composite-score parameters
type ScorerPolicy struct {
	// Trend contribution: rising trends add min(TrendRiseCap, trend*TrendRiseGain),
	// falling trends add trend*TrendDropGain (a negative credit).
	TrendRiseGain float64 `toml:"trend_rise_gain"`
	TrendRiseCap  float64 `toml:"trend_rise_cap"`
	TrendDropGain float64 `toml:"trend_drop_gain"`

	// Participation penalties, applied on the 0-100 percentage
	LowParticipation           float64 `toml:"low_participation"`
	LowParticipationPenalty    float64 `toml:"low_participation_penalty"`
	ModestParticipation        float64 `toml:"modest_participation"`
	ModestParticipationPenalty float64 `toml:"modest_participation_penalty"`

	// Tier boundaries on the composite score, inclusive on the lower edge
	MediumScore   int `toml:"medium_score"`
	HighScore     int `toml:"high_score"`
	CriticalScore int `toml:"critical_score"`

	// Responses needed in the current window for full confidence
	FullConfidenceResponses int `toml:"full_confidence_responses"`

	// Driver trigger thresholds
	WorkloadDriverMin         float64 `toml:"workload_driver_min"`
	RisingTrendDriverMin      float64 `toml:"rising_trend_driver_min"`
	LowParticipationDriverMax float64 `toml:"low_participation_driver_max"`
}

// DetectorPolicy holds the anomaly-detection thresholds
type DetectorPolicy struct {
	// Absolute threshold on the stress-index difference
	StressIndexThreshold float64 `toml:"stress_index_threshold"`
	// Fractional threshold for the participation metric, compared
	// against the relative change rather than the raw difference
	ParticipationThreshold float64 `toml:"participation_threshold"`
	// Minimum relative change for any metric to count as an anomaly
	RelativeFloor float64 `toml:"relative_floor"`

	// Severity boundaries on the relative change
	HighRelative   float64 `toml:"high_relative"`
	MediumRelative float64 `toml:"medium_relative"`
}

// DefaultPolicy returns the production thresholds
func DefaultPolicy() *Policy {
	return &Policy{
		Scorer: ScorerPolicy{
			TrendRiseGain:              120,
			TrendRiseCap:               20,
			TrendDropGain:              40,
			LowParticipation:           40,
			LowParticipationPenalty:    12,
			ModestParticipation:        60,
			ModestParticipationPenalty: 6,
			MediumScore:                30,
			HighScore:                  55,
			CriticalScore:              80,
			FullConfidenceResponses:    20,
			WorkloadDriverMin:          70,
			RisingTrendDriverMin:       0.08,
			LowParticipationDriverMax:  50,
		},
		Detector: DetectorPolicy{
			StressIndexThreshold:   8,
			ParticipationThreshold: 0.12,
			RelativeFloor:          0.12,
			HighRelative:           0.25,
			MediumRelative:         0.18,
		},
	}
}

// LoadPolicy reads a TOML policy file layered over the defaults, so a
// file only needs to name the thresholds it overrides.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", path))
	}

	policy := DefaultPolicy()
	if err := toml.Unmarshal(data, policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse policy file", goerr.V("path", path))
	}

	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid policy file", goerr.V("path", path))
	}
	return policy, nil
}

// Validate checks the policy for values that would break the scoring
// invariants (negative gains, unordered tier boundaries).
func (p *Policy) Validate() error {
	s := p.Scorer
	if s.TrendRiseGain < 0 || s.TrendRiseCap < 0 || s.TrendDropGain < 0 {
		return goerr.New("trend gains must be non-negative")
	}
	if s.LowParticipation > s.ModestParticipation {
		return goerr.New("low participation boundary must not exceed the modest one",
			goerr.V("low", s.LowParticipation), goerr.V("modest", s.ModestParticipation))
	}
	if !(s.MediumScore < s.HighScore && s.HighScore < s.CriticalScore) {
		return goerr.New("tier boundaries must be strictly increasing",
			goerr.V("medium", s.MediumScore), goerr.V("high", s.HighScore), goerr.V("critical", s.CriticalScore))
	}
	if s.FullConfidenceResponses <= 0 {
		return goerr.New("full confidence response count must be positive",
			goerr.V("count", s.FullConfidenceResponses))
	}

	d := p.Detector
	if d.StressIndexThreshold <= 0 || d.ParticipationThreshold <= 0 {
		return goerr.New("detector thresholds must be positive")
	}
	if d.MediumRelative > d.HighRelative {
		return goerr.New("medium relative boundary must not exceed the high one",
			goerr.V("medium", d.MediumRelative), goerr.V("high", d.HighRelative))
	}
	return nil
}
