package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/inverness4444/stresssense/pkg/service/scoring"
	"github.com/inverness4444/stresssense/pkg/utils/logging"
)

// Policy holds the CLI flag for the scoring policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy-file",
			Usage:       "TOML file overriding scoring and detection thresholds",
			Category:    "Scoring",
			Sources:     cli.EnvVars("STRESSSENSE_POLICY_FILE"),
			Destination: &p.path,
		},
	}
}

// Configure loads the policy file, falling back to defaults when no
// file is given.
func (p *Policy) Configure() (*scoring.Policy, error) {
	if p.path == "" {
		return scoring.DefaultPolicy(), nil
	}

	policy, err := scoring.LoadPolicy(p.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load scoring policy")
	}
	logging.Default().Info("Loaded scoring policy", "path", p.path)
	return policy, nil
}
