// Package googletasks implements the service.Service interface using Google Tasks API.
//
// The board maps onto the user's default task list. Google Tasks has no
// priority field, so the priority is kept as a "priority: <value>" line in
// the task notes.
package googletasks

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	// StatusCompleted is the Google Tasks status of a completed task.
	StatusCompleted = "completed"

	priorityPrefix = "priority:"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc    *tasks.Service
	listID string
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes on its own; the HTTP client carries it.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient)
}

// OAuthConfig reads oauth_client.json into an OAuth config for Scope.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored token.json.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes token to token.json with mode 0600.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, listID: DefaultListID}, nil
}

// ListTasks returns every task in the default list, completed and hidden
// ones included, in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.Task
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				result = append(result, toTask(item))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	if result == nil {
		result = []service.Task{}
	}
	return result, nil
}

// CreateTask creates a task in the default list.
func (c *Client) CreateTask(ctx context.Context, description string, priority service.Priority) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	item := &tasks.Task{Title: description}
	if priority != "" {
		item.Notes = PriorityNote(priority)
	}

	if _, err := c.svc.Tasks.Insert(c.listID, item).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// CompleteTask marks a task as completed. Patching an already completed
// task is harmless.
func (c *Client) CompleteTask(ctx context.Context, id service.TaskID) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Patch(c.listID, id.String(), &tasks.Task{
		Status: StatusCompleted,
	}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(c.listID, id.String()).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Ping fetches the default list.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.svc.Tasklists.Get(c.listID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

func toTask(item *tasks.Task) service.Task {
	return service.Task{
		ID:          service.TaskID(item.Id),
		Description: item.Title,
		Priority:    ParsePriorityNote(item.Notes),
		Completed:   item.Status == StatusCompleted,
	}
}

// PriorityNote renders the notes line that stores a priority.
func PriorityNote(p service.Priority) string {
	return priorityPrefix + " " + string(p)
}

// ParsePriorityNote extracts the priority from task notes.
// Notes without a valid priority line yield the default priority.
func ParsePriorityNote(notes string) service.Priority {
	scanner := bufio.NewScanner(strings.NewReader(notes))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), priorityPrefix) {
			continue
		}
		p, err := service.ParsePriority(line[len(priorityPrefix):])
		if err == nil {
			return p
		}
	}
	return service.DefaultPriority
}

// tokenError reports a rejected OAuth token.
type tokenError struct{}

func (tokenError) Error() string { return "token expired or revoked (run: taskboard login)" }
func (tokenError) Unwrap() error { return service.ErrUnauthorized }

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return tokenError{}
		case http.StatusNotFound:
			return service.ErrNotFound
		}
	}

	return err
}
