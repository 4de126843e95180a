package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string      { return "taskboard done <ref...>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMutation(ctx, cfg, svc, args, out, errOut, (*board.Board).CompleteTask)
}

// runMutation resolves every reference against one loaded snapshot, then
// applies op to each target in order. It stops at the first failure.
func runMutation(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer,
	op func(*board.Board, context.Context, service.TaskID) board.Outcome) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	b := newBoard(cfg, svc, board.IgnorePolicy)
	defer b.Close()

	if loaded := b.LoadTasks(ctx); loaded.Err != nil {
		return reportError(errOut, loaded.Err)
	}

	ids, err := resolveRefs(b.View(), refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	for _, id := range ids {
		if code := reportFailure(errOut, op(b, ctx, id)); code != exitcode.Success {
			return code
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
