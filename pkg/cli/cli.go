package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/inverness4444/stresssense/pkg/cli/config"
	"github.com/inverness4444/stresssense/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closer func()

	flags := loggerCfg.Flags()
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "stresssense",
		Usage:   "Workplace stress risk scoring and anomaly detection engine",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if _, err := loggerCfg.Configure(); err != nil {
				return ctx, err
			}

			f, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting stresssense",
				"logger", loggerCfg,
				"sentry", sentryCfg,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdScore(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
