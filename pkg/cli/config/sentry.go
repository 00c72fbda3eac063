package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const flushTimeout = 2 * time.Second

// Sentry holds error-reporting configuration. Reporting stays
// disabled when no DSN is set.
type Sentry struct {
	DSN         string `masq:"secret"`
	Environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (empty disables reporting)",
			Category:    "Observability",
			Sources:     cli.EnvVars("STRESSSENSE_SENTRY_DSN"),
			Destination: &s.DSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Category:    "Observability",
			Value:       "production",
			Sources:     cli.EnvVars("STRESSSENSE_SENTRY_ENV"),
			Destination: &s.Environment,
		},
	}
}

// Configure initializes the global sentry hub when a DSN is set.
// The returned closer flushes pending events.
func (s *Sentry) Configure(version string) (func(), error) {
	if s.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.DSN,
		Environment: s.Environment,
		Release:     version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(flushTimeout)
	}, nil
}

// LogValue returns structured log value; the DSN is redacted by masq
func (s Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", s.DSN != ""),
		slog.String("environment", s.Environment),
	)
}
