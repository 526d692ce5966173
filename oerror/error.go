package oerror

import "fmt"

// Error is the error type returned by pathrecall packages for precondition
// failures such as invalid settings or unknown actors.
type Error struct {
	Err string
}

// New formats an Error from the format string and arguments passed.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
