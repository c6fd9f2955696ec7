package runtime

import "fmt"

// ErrorKind distinguishes the runtime failure categories. All failures
// are still a single error type; the kind exists so callers and tests
// can match on the category instead of message text.
type ErrorKind string

const (
	NameUnbound      ErrorKind = "NameUnbound"
	NotAnInstance    ErrorKind = "NotAnInstance"
	NoSuchMethod     ErrorKind = "NoSuchMethod"
	Uncomparable     ErrorKind = "Uncomparable"
	BadOperands      ErrorKind = "BadOperands"
	DivByZero        ErrorKind = "DivByZero"
	NullOperand      ErrorKind = "NullOperand"
	ReturnAtTopLevel ErrorKind = "ReturnAtTopLevel"
	RecursionLimit   ErrorKind = "RecursionLimit"
)

// StackFrame records one method call for error stack traces.
type StackFrame struct {
	Name   string
	File   string
	Line   int
	Column int
}

// Error is the single runtime-error representation. Nothing in the
// interpreter catches it; it propagates to the driver, which reports it
// and terminates with a non-zero exit.
type Error struct {
	Kind       ErrorKind
	Message    string
	Line       int
	Column     int
	StackTrace []StackFrame
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a runtime *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	rerr, ok := err.(*Error)
	return ok && rerr.Kind == kind
}
