package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders a run duration at a precision suited to
// its magnitude: whole microseconds below 1ms, whole milliseconds below 1s,
// milliseconds in Go notation below a minute, and whole seconds above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
