// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

const (
	// EmptyBoard is printed in place of an empty task list.
	EmptyBoard = "No tasks yet. Add one with: taskboard add <description>"

	strikeOn  = "\x1b[9m"
	strikeOff = "\x1b[0m"
)

// Options controls task rendering.
type Options struct {
	// Color strikes through completed descriptions with ANSI SGR 9.
	Color bool

	// Priorities appends the priority to each line.
	Priorities bool

	// Quiet suppresses the empty-board placeholder.
	Quiet bool
}

// FormatTask formats one task line.
// Format: "{N:>4}  [ ] {DESC}  ({PRIORITY})\n"; completed tasks show [x].
func FormatTask(w io.Writer, num int, task service.Task, opts Options) {
	mark := "[ ]"
	desc := normalizeTitle(task.Description)
	if task.Completed {
		mark = "[x]"
		if opts.Color {
			desc = strikeOn + desc + strikeOff
		}
	}

	if opts.Priorities {
		fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, mark, desc, task.Priority)
		return
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, mark, desc)
}

// FormatBoard numbers tasks 1..n in the order given.
func FormatBoard(w io.Writer, tasks []service.Task, opts Options) {
	if len(tasks) == 0 {
		if !opts.Quiet {
			fmt.Fprintln(w, EmptyBoard)
		}
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task, opts)
	}
}

// FormatDraft shows the pending input of the interactive board.
func FormatDraft(w io.Writer, d board.Draft, opts Options) {
	desc := d.Description
	if d.Empty() {
		desc = "(empty)"
	}
	if opts.Priorities {
		fmt.Fprintf(w, "draft: %s  (%s)\n", desc, d.Priority)
		return
	}
	fmt.Fprintf(w, "draft: %s\n", desc)
}

// normalizeTitle normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
