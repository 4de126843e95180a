package board

import (
	"errors"

	"go.uber.org/zap"

	"taskboard/internal/service"
)

// ErrClosed is reported when an operation resolves after Close, or starts after it.
var ErrClosed = errors.New("board closed")

// Op names a board operation.
type Op string

const (
	OpLoad     Op = "load"
	OpSubmit   Op = "submit"
	OpComplete Op = "complete"
	OpDelete   Op = "delete"
)

// Outcome is the result of one board operation.
type Outcome struct {
	Op     Op
	TaskID service.TaskID // empty for load and submit

	// Err is the failure of the operation itself. Nil on success.
	Err error

	// Skipped is set when the operation issued no request (empty draft).
	Skipped bool

	// RefreshErr is the failure of the refetch that follows a successful
	// mutation. The mutation itself went through.
	RefreshErr error
}

// OK reports whether the operation ran and succeeded, refetch included.
func (o Outcome) OK() bool {
	return o.Err == nil && o.RefreshErr == nil && !o.Skipped
}

// Policy decides what happens to failed outcomes.
// It runs once per failed operation, after state has been settled.
type Policy func(Outcome)

// IgnorePolicy drops failures silently.
func IgnorePolicy(Outcome) {}

// LogPolicy logs failures and swallows them.
// Results dropped because the board was closed are logged at debug level.
func LogPolicy(logger *zap.Logger) Policy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(o Outcome) {
		err := o.Err
		if err == nil {
			err = o.RefreshErr
		}
		if err == nil {
			return
		}

		fields := []zap.Field{zap.String("op", string(o.Op)), zap.Error(err)}
		if o.TaskID != "" {
			fields = append(fields, zap.String("task_id", o.TaskID.String()))
		}

		if errors.Is(err, ErrClosed) {
			logger.Debug("dropped result for closed board", fields...)
			return
		}
		logger.Error("task board operation failed", fields...)
	}
}
