// Package board holds the task board state container.
//
// A Board caches the task list last fetched from a service.Service and the
// draft of the next task. All state changes go through LoadTasks, SubmitTask,
// CompleteTask and DeleteTask. Every successful mutation is followed by a
// full refetch; the client never patches its cached copy.
package board

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"taskboard/internal/service"
)

// Draft is the unsubmitted input for the next task.
type Draft struct {
	Description string
	Priority    service.Priority
}

// Empty reports whether the draft has nothing worth submitting.
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Description) == ""
}

func newDraft() Draft {
	return Draft{Priority: service.DefaultPriority}
}

// Board is the task board state container. It is safe for concurrent use.
// Network calls run without the lock held, so operations may overlap; the
// last load to resolve wins.
type Board struct {
	svc        service.Service
	logger     *zap.Logger
	policy     Policy
	priorities bool

	mu     sync.Mutex
	tasks  []service.Task
	loaded bool
	draft  Draft
	closed bool
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for diagnostics and by the default policy.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithPolicy sets the failure policy. Defaults to LogPolicy.
func WithPolicy(p Policy) Option {
	return func(b *Board) {
		b.policy = p
	}
}

// WithPriorities toggles priority support. When off, create requests carry
// no priority and View keeps the service order.
func WithPriorities(enabled bool) Option {
	return func(b *Board) {
		b.priorities = enabled
	}
}

// New creates a board backed by svc. The board starts unloaded; call
// LoadTasks to fetch the initial list.
func New(svc service.Service, opts ...Option) *Board {
	b := &Board{
		svc:        svc,
		logger:     zap.NewNop(),
		priorities: true,
		draft:      newDraft(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.policy == nil {
		b.policy = LogPolicy(b.logger)
	}
	return b
}

// LoadTasks fetches the full list and replaces the cached one.
// On failure the cached list is left as it was.
func (b *Board) LoadTasks(ctx context.Context) Outcome {
	return b.report(b.load(ctx))
}

func (b *Board) load(ctx context.Context) Outcome {
	out := Outcome{Op: OpLoad}
	if b.isClosed() {
		out.Err = ErrClosed
		return out
	}

	tasks, err := b.svc.ListTasks(ctx)
	if err != nil {
		out.Err = fmt.Errorf("fetch tasks: %w", err)
		return out
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		out.Err = ErrClosed
		return out
	}
	b.tasks = append([]service.Task(nil), tasks...)
	b.loaded = true
	b.logger.Debug("task list loaded", zap.Int("count", len(tasks)))
	return out
}

// SubmitTask sends the current draft to the service.
// A draft whose trimmed description is empty is skipped without a request.
// On success the draft is reset and the list refetched; on failure the
// draft is kept.
func (b *Board) SubmitTask(ctx context.Context) Outcome {
	out := Outcome{Op: OpSubmit}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		out.Err = ErrClosed
		return b.report(out)
	}
	draft := b.draft
	b.mu.Unlock()

	description := strings.TrimSpace(draft.Description)
	if description == "" {
		out.Skipped = true
		return out
	}

	var priority service.Priority
	if b.priorities {
		priority = draft.Priority
		if priority == "" {
			priority = service.DefaultPriority
		}
	}

	if err := b.svc.CreateTask(ctx, description, priority); err != nil {
		out.Err = fmt.Errorf("create task: %w", err)
		return b.report(out)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		out.Err = ErrClosed
		return b.report(out)
	}
	b.draft = newDraft()
	b.mu.Unlock()

	return b.refresh(ctx, out)
}

// SubmitTaskWith replaces the draft with description and priority, then
// submits it.
func (b *Board) SubmitTaskWith(ctx context.Context, description string, priority service.Priority) Outcome {
	b.mu.Lock()
	b.draft = Draft{Description: description, Priority: priority}
	b.mu.Unlock()
	return b.SubmitTask(ctx)
}

// CompleteTask asks the service to mark id completed, then refetches.
func (b *Board) CompleteTask(ctx context.Context, id service.TaskID) Outcome {
	return b.mutate(ctx, Outcome{Op: OpComplete, TaskID: id}, b.svc.CompleteTask)
}

// DeleteTask asks the service to delete id, then refetches.
func (b *Board) DeleteTask(ctx context.Context, id service.TaskID) Outcome {
	return b.mutate(ctx, Outcome{Op: OpDelete, TaskID: id}, b.svc.DeleteTask)
}

func (b *Board) mutate(ctx context.Context, out Outcome, call func(context.Context, service.TaskID) error) Outcome {
	if b.isClosed() {
		out.Err = ErrClosed
		return b.report(out)
	}

	if err := call(ctx, out.TaskID); err != nil {
		out.Err = fmt.Errorf("%s task %s: %w", out.Op, out.TaskID, err)
		return b.report(out)
	}

	return b.refresh(ctx, out)
}

// refresh runs the refetch that follows a successful mutation.
func (b *Board) refresh(ctx context.Context, out Outcome) Outcome {
	loaded := b.load(ctx)
	out.RefreshErr = loaded.Err
	return b.report(out)
}

func (b *Board) report(out Outcome) Outcome {
	if out.Err != nil || out.RefreshErr != nil {
		b.policy(out)
	}
	return out
}

// SetDraftDescription updates the draft description. No request is sent.
func (b *Board) SetDraftDescription(description string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Description = description
}

// SetDraftPriority updates the draft priority. No request is sent.
func (b *Board) SetDraftPriority(priority service.Priority) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Priority = priority
}

// Draft returns the current draft.
func (b *Board) Draft() Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

// Tasks returns a copy of the cached list in service order.
func (b *Board) Tasks() []service.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]service.Task(nil), b.tasks...)
}

// View returns the list as it should be displayed: sorted by priority when
// priorities are enabled. The cached order is not touched.
func (b *Board) View() []service.Task {
	tasks := b.Tasks()
	if !b.priorities {
		return tasks
	}
	return service.SortByPriority(tasks)
}

// Len returns the number of cached tasks.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tasks)
}

// Loaded reports whether a load has succeeded at least once.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Priorities reports whether priority support is enabled.
func (b *Board) Priorities() bool {
	return b.priorities
}

// Close tears the board down. Responses that resolve afterwards are dropped.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Board) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
