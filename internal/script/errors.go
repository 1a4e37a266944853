package script

import (
	"errors"
	"fmt"
)

// ErrorKind classifies step failures so callers can tell a fixable script
// mistake from a runtime failure.
type ErrorKind string

const (
	// KindNotFound: session/slot/window/element absent. Recoverable by the
	// caller (capture again, use a different id).
	KindNotFound ErrorKind = "notFound"
	// KindInvalidInput: malformed script, unknown command, missing or
	// mis-typed parameter. Caller-fixable, never retried automatically.
	KindInvalidInput ErrorKind = "invalidInput"
	// KindExecution: a delegated action service reported an error.
	KindExecution ErrorKind = "execution"
	// KindStorage: disk I/O failed. Fatal for the operation in progress.
	KindStorage ErrorKind = "storage"
)

// Error carries an ErrorKind alongside the underlying error.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the ErrorKind from err, defaulting to execution for plain
// errors bubbled up from action services.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExecution
}
