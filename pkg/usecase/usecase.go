package usecase

import (
	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
	"github.com/inverness4444/stresssense/pkg/service/metrics"
	"github.com/inverness4444/stresssense/pkg/service/scoring"
)

type UseCases struct {
	repo    interfaces.Repository
	policy  *scoring.Policy
	metrics *metrics.Metrics

	Score   *ScoreUseCase
	Anomaly *AnomalyUseCase
	Batch   *BatchUseCase
}

type Option func(*UseCases)

// WithPolicy overrides the default scoring policy
func WithPolicy(policy *scoring.Policy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

// WithMetrics attaches Prometheus instrumentation
func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		policy: scoring.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Score = NewScoreUseCase(repo, uc.policy, uc.metrics)
	uc.Anomaly = NewAnomalyUseCase(repo, uc.policy, uc.metrics)
	uc.Batch = NewBatchUseCase(repo, uc.Score, uc.Anomaly, uc.metrics)

	return uc
}
