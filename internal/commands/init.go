package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&InitCmd{})
}

// InitCmd implements the init command.
// It writes the effective settings, flag overrides included, to config.yaml.
type InitCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *InitCmd) SetForce(force bool) {
	c.force = force
}

func (c *InitCmd) Name() string       { return "init" }
func (c *InitCmd) Aliases() []string  { return nil }
func (c *InitCmd) Synopsis() string   { return "Write a config file" }
func (c *InitCmd) Usage() string      { return "taskboard init [--force]" }
func (c *InitCmd) NeedsService() bool { return false }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *InitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.HasConfigFile() && !c.force {
		fmt.Fprintf(errOut, "error: config already exists: %s (use --force to overwrite)\n", cfg.ConfigPath())
		return exitcode.UserError
	}

	if err := cfg.WriteSettings(cfg.Settings); err != nil {
		fmt.Fprintf(errOut, "error: failed to write config: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", cfg.ConfigPath())
	}
	return exitcode.Success
}
