package run

import "fmt"

// UsageError is returned when a command is invoked with the wrong arguments.
type UsageError struct {
	Usage string
	Msg   string
}

func newUsageError(usage, format string, args ...interface{}) *UsageError {
	return &UsageError{
		Usage: usage,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (e *UsageError) Error() string {
	return e.Msg
}
