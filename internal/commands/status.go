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
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct{}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return []string{"ping"} }
func (c *StatusCmd) Synopsis() string   { return "Check that the task service is reachable" }
func (c *StatusCmd) Usage() string      { return "taskboard status" }
func (c *StatusCmd) NeedsService() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.Ping(ctx); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok: %s\n", target(cfg))
	}
	return exitcode.Success
}

// target names the service the config points at.
func target(cfg *config.Config) string {
	if cfg.Backend == config.BackendGoogleTasks {
		return "Google Tasks (default list)"
	}
	return cfg.URL
}
