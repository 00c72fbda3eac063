package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/inverness4444/stresssense/pkg/utils/logging"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("STRESSSENSE_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("STRESSSENSE_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			indexConfig := getIndexConfig()

			client, err := fireconf.NewClient(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				plan, err := client.GetMigrationPlan(ctx, indexConfig)
				if err != nil {
					return goerr.Wrap(err, "failed to create migration plan")
				}

				if len(plan.Steps) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, step := range plan.Steps {
					logger.Info("Migration step",
						"collection", step.Collection,
						"operation", step.Operation,
						"description", step.Description,
						"destructive", step.Destructive)
				}
			} else {
				logger.Info("Applying migrations")
				if err := client.Migrate(ctx, indexConfig); err != nil {
					return goerr.Wrap(err, "failed to apply migrations")
				}
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the Firestore index configuration backing the
// engine's query paths.
func getIndexConfig() *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: "responses",
				Indexes: []fireconf.Index{
					// ListByScope: org_id ASC, submitted_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "org_id", Order: fireconf.OrderAscending},
							{Path: "submitted_at", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "invites",
				Indexes: []fireconf.Index{
					// CountByScope: org_id ASC, invited_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "org_id", Order: fireconf.OrderAscending},
							{Path: "invited_at", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "risk_snapshots",
				Indexes: []fireconf.Index{
					// ListByOrg: org_id ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "org_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
					// Latest: org_id ASC, scope_type ASC, scope_id ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "org_id", Order: fireconf.OrderAscending},
							{Path: "scope_type", Order: fireconf.OrderAscending},
							{Path: "scope_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
				},
			},
			{
				Name: "anomaly_events",
				Indexes: []fireconf.Index{
					// ListByOrg: org_id ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "org_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
