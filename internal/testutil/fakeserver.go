package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// RecordedRequest is one request received by a FakeServer.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        string
}

type serverTask struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Completed   bool   `json:"completed"`
}

type createBody struct {
	Desc     string `json:"desc"`
	Priority string `json:"priority"`
}

// FakeServer is an HTTP task service for tests. It speaks the /tasks wire
// protocol: sequential integer ids, 404 on unknown ids, PUT sets completed.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []serverTask
	nextID   int
	requests []RecordedRequest
	failWith int // non-zero: answer every request with this status
}

// NewFakeServer starts a FakeServer and closes it when the test ends.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()

	s := &FakeServer{nextID: 1}

	r := chi.NewRouter()
	r.Use(s.recordMiddleware)
	r.Get("/", s.health)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Put("/{id}", s.completeTask)
		r.Delete("/{id}", s.deleteTask)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	return s
}

// FailWith makes every subsequent request answer with status. Zero restores
// normal handling.
func (s *FakeServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Requests returns the requests received so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Seed stores a task directly and returns its id.
func (s *FakeServer) Seed(description, priority string, completed bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, serverTask{ID: id, Description: description, Priority: priority, Completed: completed})
	return id
}

func (s *FakeServer) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Body:        string(body),
		})
		failWith := s.failWith
		s.mu.Unlock()

		if failWith != 0 {
			http.Error(w, http.StatusText(failWith), failWith)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *FakeServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task Manager API is running"})
}

func (s *FakeServer) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks := append([]serverTask{}, s.tasks...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, tasks)
}

func (s *FakeServer) createTask(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	task := serverTask{ID: s.nextID, Description: body.Desc, Priority: body.Priority}
	s.nextID++
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, task)
}

func (s *FakeServer) completeTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}

func (s *FakeServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusUnprocessableEntity)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
