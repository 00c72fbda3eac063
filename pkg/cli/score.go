package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/inverness4444/stresssense/pkg/cli/config"
	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/usecase"
	"github.com/inverness4444/stresssense/pkg/utils/safe"
)

// cmdScore runs one batch scoring pass for an organization and prints
// the resulting snapshots and anomaly events. This is the manual
// counterpart of the scheduler-triggered run.
func cmdScore() *cli.Command {
	var orgID string
	var windowEnd string
	var windowDays int
	var repoCfg config.Repository
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "org",
			Usage:       "Organization ID to score (required)",
			Required:    true,
			Sources:     cli.EnvVars("STRESSSENSE_ORG"),
			Destination: &orgID,
		},
		&cli.StringFlag{
			Name:        "window-end",
			Usage:       "End of the evaluation window, RFC3339 (defaults to now)",
			Destination: &windowEnd,
		},
		&cli.IntFlag{
			Name:        "window-days",
			Usage:       "Length of the evaluation window in days",
			Value:       7,
			Destination: &windowDays,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Run one scoring and anomaly-detection pass for an organization",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			end := time.Now().UTC()
			if windowEnd != "" {
				parsed, err := time.Parse(time.RFC3339, windowEnd)
				if err != nil {
					return goerr.Wrap(err, "invalid window-end", goerr.V("value", windowEnd))
				}
				end = parsed
			}
			if windowDays <= 0 {
				return goerr.New("window-days must be positive", goerr.V("value", windowDays))
			}
			window := model.NewWindow(end.AddDate(0, 0, -windowDays), end)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			policy, err := policyCfg.Configure()
			if err != nil {
				return err
			}

			uc := usecase.New(repo, usecase.WithPolicy(policy))
			result, err := uc.Batch.Run(ctx, types.OrgID(orgID), window)
			if err != nil {
				return err
			}

			printRunResult(result)
			return nil
		},
	}
}

func printRunResult(result *usecase.RunResult) {
	levelColors := map[types.StressLevel]*color.Color{
		types.StressLevelLow:      color.New(color.FgGreen),
		types.StressLevelMedium:   color.New(color.FgYellow),
		types.StressLevelHigh:     color.New(color.FgRed),
		types.StressLevelCritical: color.New(color.FgRed, color.Bold),
	}

	for _, snapshot := range result.Snapshots {
		c, ok := levelColors[snapshot.StressLevel]
		if !ok {
			c = color.New()
		}
		fmt.Printf("%s/%s: score=%d level=%s confidence=%.2f participation=%.0f%%\n",
			snapshot.ScopeType, snapshot.ScopeID,
			snapshot.RiskScore, c.Sprint(snapshot.StressLevel),
			snapshot.Confidence, snapshot.Participation)
		for _, driver := range snapshot.Drivers {
			fmt.Printf("  driver: %s (%.2f)\n", driver.Label, driver.Contribution)
		}
	}

	for _, event := range result.Events {
		fmt.Printf("anomaly %s/%s: metric=%s direction=%s severity=%s change=%.2f\n",
			event.ScopeType, event.ScopeID,
			event.Metric, event.ChangeDirection, event.Severity, event.ChangeMagnitude)
	}

	if len(result.FailedScopes) > 0 {
		warn := color.New(color.FgYellow)
		for _, scope := range result.FailedScopes {
			warn.Fprintf(os.Stderr, "skipped scope: %s/%s\n", scope.Type(), scope.ID())
		}
	}
}
