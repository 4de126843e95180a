// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the backend has no task with the given id.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service defines the interface for task backend operations.
// The board and the commands never import a backend package directly.
type Service interface {
	// ListTasks returns every task, completed ones included, in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task. The backend assigns the id.
	// An empty priority means the request carries no priority at all.
	CreateTask(ctx context.Context, description string, priority Priority) error

	// CompleteTask marks a task completed. Completing twice is not an error.
	CompleteTask(ctx context.Context, id TaskID) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id TaskID) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
