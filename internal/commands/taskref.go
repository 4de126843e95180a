package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskboard/internal/service"
)

// TaskRef represents a parsed task reference: either a 1-based position in
// the displayed list or a raw service id.
type TaskRef struct {
	Pos int            // 1-based position; 0 when ID is set
	ID  service.TaskID // raw id given as @<id>
}

// String returns the reference as the user typed it.
func (r TaskRef) String() string {
	if r.ID != "" {
		return "@" + r.ID.String()
	}
	return strconv.Itoa(r.Pos)
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrOutOfRange indicates a position beyond the displayed list.
	ErrOutOfRange = errors.New("task number out of range")
)

// ParseTaskRef parses a single reference.
//
// Parsing rules:
// 1. All digits → position in the displayed list (must be ≥ 1)
// 2. @<id> → raw service id, passed through unchanged
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(arg string) (TaskRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		if num < 1 {
			return TaskRef{}, fmt.Errorf("%w: %d", ErrOutOfRange, num)
		}
		return TaskRef{Pos: num}, nil
	}

	if id, ok := strings.CutPrefix(arg, "@"); ok && id != "" && !strings.ContainsAny(id, "/ ") {
		return TaskRef{ID: service.TaskID(id)}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// ParseTaskRefs parses every argument as a reference.
func ParseTaskRefs(args []string) ([]TaskRef, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]TaskRef, 0, len(args))
	for _, arg := range args {
		ref, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
