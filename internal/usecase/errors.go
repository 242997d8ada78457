package usecase

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a route failure for logs and the interaction record.
// Callers of the HTTP surface never see it; every failure is a generic 500.
type ErrorCode string

const (
	ErrorInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrorUpstream       ErrorCode = "UPSTREAM_ERROR"
	ErrorMalformedReply ErrorCode = "MALFORMED_REPLY"
	ErrorSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"
	ErrorInternal       ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Classify returns the code and reason carried by err. Errors that did not
// originate here are reported as internal.
func Classify(err error) (ErrorCode, string) {
	var ucErr *Error
	if errors.As(err, &ucErr) {
		return ucErr.Code, ucErr.Reason
	}
	return ErrorInternal, "unclassified"
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
