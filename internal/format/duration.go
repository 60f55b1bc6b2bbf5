package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders a calculation time at a precision that
// suits its magnitude: nanoseconds and microseconds for the small indices the
// memoized calculator handles instantly, milliseconds below a second, and a
// millisecond-rounded time.Duration string above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
