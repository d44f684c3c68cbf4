package validation

import "fmt"

// Error marks input the caller can fix. Handlers turn any *Error into a
// 400 response with the message as-is.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func fail(msg string) error {
	return &Error{msg: msg}
}

func failf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}
