package commands

import (
	"fmt"

	"taskboard/internal/service"
)

// resolveRefs maps references to ids against one snapshot of the displayed
// list, so positions do not shift while the tasks are changed one by one.
// Duplicate targets are dropped, keeping the first occurrence.
func resolveRefs(view []service.Task, refs []TaskRef) ([]service.TaskID, error) {
	seen := make(map[service.TaskID]bool, len(refs))
	ids := make([]service.TaskID, 0, len(refs))

	for _, ref := range refs {
		id := ref.ID
		if id == "" {
			if ref.Pos < 1 || ref.Pos > len(view) {
				return nil, fmt.Errorf("%w: %d", ErrOutOfRange, ref.Pos)
			}
			id = view[ref.Pos-1].ID
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
