package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	writeCommandTable(out, DefaultRegistry)
	return exitcode.Success
}

// writeCommandTable lists every registered command with its aliases.
func writeCommandTable(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Commands:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, cmd.Synopsis())
	}
	tw.Flush()
}

const helpText = `Usage:
  taskboard                                        List tasks by priority
  taskboard list [common flags]                    List tasks by priority
  taskboard add [common flags] [--priority <p>] <description...>
  taskboard done [common flags] <ref...>           Mark tasks completed
  taskboard rm [common flags] <ref...>             Delete tasks
  taskboard shell [common flags]                   Interactive board
  taskboard status [common flags]                  Check the task service
  taskboard init [common flags] [--force]          Write config.yaml
  taskboard login [common flags]                   Authenticate with Google
  taskboard logout [common flags]
  taskboard help
  taskboard version

A <ref> is a task number as shown by list, or @<id> for a service id.
Priorities: high, medium (default), low.

Common flags:
  --config <dir>     Override config directory
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
  --backend <name>   Task service: rest (default) or googletasks
  --url <url>        REST service base URL (default http://localhost:8000)
`
