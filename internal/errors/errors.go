package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the run exceeded its timeout.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an invalid flag
// or environment value.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SimulationError wraps a failure that stopped a simulation run before all
// trials completed.
type SimulationError struct {
	// Completed is the number of trial pairs finished before the failure.
	Completed uint64
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause's message with the completed trial count.
func (e SimulationError) Error() string {
	return fmt.Sprintf("simulation stopped after %d trials: %v", e.Completed, e.Cause)
}

// Unwrap returns the underlying cause.
func (e SimulationError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its configured time limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap makes a TimeoutError match context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies the escape sequences used when printing errors.
// A nil ColorProvider prints without color.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError writes a user-facing description of a failed run to out and
// returns the matching exit code. A nil error yields ExitSuccess.
func HandleRunError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The run exceeded its %s limit after %s.%s\n", red, timeoutErr.Limit, elapsed, reset)
		return ExitErrorTimeout
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The run exceeded its time limit after %s.%s\n", red, elapsed, reset)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled after %s.%s\n", yellow, elapsed, reset)
		return ExitErrorCanceled
	}

	var cfgErr ConfigError
	var valErr ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", red, err, reset)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "%sStatus: Failure. Unexpected error: %v%s\n", red, err, reset)
	return ExitErrorGeneric
}
