package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"taskboard/internal/service"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"not found", fmt.Errorf("delete task 9: %w", service.ErrNotFound), UserError},
		{"unauthorized", fmt.Errorf("list: %w", service.ErrUnauthorized), AuthError},
		{"unavailable", fmt.Errorf("GET /tasks: %w", service.ErrUnavailable), BackendError},
		{"other", errors.New("unexpected status 500"), BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromError(tt.err); got != tt.want {
				t.Errorf("FromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
