// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"taskboard/internal/service"
)

// Call records one request made against a FakeService.
type Call struct {
	Method      string
	ID          service.TaskID
	Description string
	Priority    service.Priority
}

// FakeService is an in-memory implementation of service.Service for testing.
// It behaves like the HTTP task service: sequential numeric ids, completion
// sets the flag to true, unknown ids are ErrNotFound.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  []Call

	// Error injection for testing
	ListTasksErr    error
	CreateTaskErr   error
	CompleteTaskErr error
	DeleteTaskErr   error
	PingErr         error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddTask seeds a task and returns its id.
func (f *FakeService) AddTask(description string, priority service.Priority) service.TaskID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(description, priority)
}

// AddCompletedTask seeds a completed task and returns its id.
func (f *FakeService) AddCompletedTask(description string, priority service.Priority) service.TaskID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.insert(description, priority)
	f.tasks[len(f.tasks)-1].Completed = true
	return id
}

func (f *FakeService) insert(description string, priority service.Priority) service.TaskID {
	if priority == "" {
		priority = service.DefaultPriority
	}
	id := service.TaskID(strconv.Itoa(f.nextID))
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Description: description,
		Priority:    priority,
	})
	return id
}

// Calls returns the requests made so far, in order. Seeding is not recorded.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many requests used the given method.
func (f *FakeService) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Snapshot returns the stored tasks without recording a call.
func (f *FakeService) Snapshot() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record(Call{Method: "ListTasks"})
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Snapshot(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, description string, priority service.Priority) error {
	f.record(Call{Method: "CreateTask", Description: description, Priority: priority})
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(description, priority)
	return nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id service.TaskID) error {
	f.record(Call{Method: "CompleteTask", ID: id})
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = true
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.TaskID) error {
	f.record(Call{Method: "DeleteTask", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// Ping implements service.Service.
func (f *FakeService) Ping(ctx context.Context) error {
	f.record(Call{Method: "Ping"})
	return f.PingErr
}
