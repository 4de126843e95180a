// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsService returns true if the command talks to the task service.
	// Commands like help, version, init, login, logout return false.
	NeedsService() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// svc is nil if NeedsService() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// newBoard builds the board a one-shot command works on. Failures are
// inspected by the caller, so the policy only drops them.
func newBoard(cfg *config.Config, svc service.Service, policy board.Policy) *board.Board {
	return board.New(svc,
		board.WithLogger(zap.L()),
		board.WithPolicy(policy),
		board.WithPriorities(cfg.Priorities),
	)
}

func renderOptions(cfg *config.Config) output.Options {
	return output.Options{
		Color:      cfg.Color,
		Priorities: cfg.Priorities,
		Quiet:      cfg.Quiet,
	}
}

// reportFailure prints a failed outcome and returns its exit code.
// A failed refetch after a successful mutation is only logged.
func reportFailure(errOut io.Writer, o board.Outcome) int {
	if o.Err == nil {
		if o.RefreshErr != nil {
			zap.L().Warn("refresh after change failed",
				zap.String("op", string(o.Op)), zap.Error(o.RefreshErr))
		}
		return exitcode.Success
	}
	return reportError(errOut, o.Err)
}

// reportError prints err and maps it to an exit code.
func reportError(errOut io.Writer, err error) int {
	code := exitcode.FromError(err)
	switch {
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: task not found: %v\n", err)
	case code == exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}
