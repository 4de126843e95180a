package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

const shellPrompt = "taskboard> "

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the interactive board. The list is loaded once on
// start and refetched after every change; service failures are logged and
// the board keeps its last state.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the line source (for testing). Defaults to stdin.
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return []string{"board"} }
func (c *ShellCmd) Synopsis() string   { return "Interactive task board" }
func (c *ShellCmd) Usage() string      { return "taskboard shell [common flags]" }
func (c *ShellCmd) NeedsService() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	b := newBoard(cfg, svc, board.LogPolicy(zap.L()))
	defer b.Close()

	s := &shell{board: b, opts: renderOptions(cfg), out: out, errOut: errOut}
	b.LoadTasks(ctx)
	s.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		if ctx.Err() != nil {
			break
		}
		if !s.exec(ctx, scanner.Text()) {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

type shell struct {
	board  *board.Board
	opts   output.Options
	out    io.Writer
	errOut io.Writer
}

// exec runs one input line. It returns false when the session should end.
func (s *shell) exec(ctx context.Context, line string) bool {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "":
		return true
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
		return true
	case "list", "ls":
		s.board.LoadTasks(ctx)
	case "draft":
		if rest != "" {
			s.board.SetDraftDescription(rest)
		}
		output.FormatDraft(s.out, s.board.Draft(), s.opts)
		return true
	case "priority", "p":
		p, err := service.ParsePriority(rest)
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			return true
		}
		s.board.SetDraftPriority(p)
		output.FormatDraft(s.out, s.board.Draft(), s.opts)
		return true
	case "add", "a":
		if rest != "" {
			s.board.SetDraftDescription(rest)
		}
		s.board.SubmitTask(ctx)
	case "done", "d":
		s.mutate(ctx, rest, s.board.CompleteTask)
	case "rm", "delete":
		s.mutate(ctx, rest, s.board.DeleteTask)
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s (try help)\n", verb)
		return true
	}

	s.render()
	return true
}

// mutate resolves refs against the board as currently shown.
func (s *shell) mutate(ctx context.Context, args string, op func(context.Context, service.TaskID) board.Outcome) {
	refs, err := ParseTaskRefs(strings.Fields(args))
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	ids, err := resolveRefs(s.board.View(), refs)
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	for _, id := range ids {
		op(ctx, id)
	}
}

func (s *shell) render() {
	output.FormatBoard(s.out, s.board.View(), output.Options{
		Color:      s.opts.Color,
		Priorities: s.opts.Priorities,
	})
}

const shellHelp = `Commands:
  add <description>   Create a task from the draft (text replaces the draft)
  priority <p>        Set the draft priority: high, medium, low
  draft [text]        Show or set the draft
  done <ref...>       Mark tasks completed
  rm <ref...>         Delete tasks
  list                Reload the board
  help                Show this help
  quit                Leave the shell
`
