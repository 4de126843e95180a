// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TaskID is an opaque task identifier assigned by the backend.
type TaskID string

// UnmarshalJSON accepts both JSON strings and JSON numbers.
// Numbers keep their canonical text form (1 -> "1").
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("task id is null")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}
		*id = TaskID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id: %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*id = TaskID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = TaskID(n.String())
	return nil
}

// String returns the id text.
func (id TaskID) String() string { return string(id) }

// Task represents a single task item as returned by the backend.
type Task struct {
	ID          TaskID   `json:"id"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// UnmarshalJSON decodes a task, defaulting a missing priority to medium.
func (t *Task) UnmarshalJSON(data []byte) error {
	type wireTask Task
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Priority == "" {
		w.Priority = PriorityMedium
	}
	*t = Task(w)
	return nil
}
