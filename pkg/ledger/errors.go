package ledger

import (
	"context"
	"errors"
	"fmt"
)

type Kind string

const (
	// KindTransportUnavailable is transient; retrying is the caller's call.
	KindTransportUnavailable Kind = "TransportUnavailable"
	// KindSubmissionRejected is permanent for this payload and account.
	KindSubmissionRejected Kind = "SubmissionRejected"
	// KindTimeout is ambiguous: the transaction may still land. Query the
	// ledger before resubmitting.
	KindTimeout Kind = "Timeout"
)

var (
	ErrTransportUnavailable = &Error{Kind: KindTransportUnavailable}
	ErrSubmissionRejected   = &Error{Kind: KindSubmissionRejected}
	ErrTimeout              = &Error{Kind: KindTimeout}
)

// Error is a classified submission failure.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "ledger error"
	}
	message := string(e.Kind)
	if e.Op != "" {
		message = fmt.Sprintf("%s: %s", e.Op, message)
	}
	if e.Message != "" {
		message = fmt.Sprintf("%s: %s", message, e.Message)
	}
	if e.Cause != nil {
		message = fmt.Sprintf("%s: %v", message, e.Cause)
	}
	return message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches any Error of the same Kind, so the package sentinels work with
// errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

func Unavailable(op string, cause error, format string, args ...any) *Error {
	return newError(KindTransportUnavailable, op, cause, format, args...)
}

func Rejected(op string, cause error, format string, args ...any) *Error {
	return newError(KindSubmissionRejected, op, cause, format, args...)
}

func TimedOut(op string, cause error, format string, args ...any) *Error {
	return newError(KindTimeout, op, cause, format, args...)
}

func newError(kind Kind, op string, cause error, format string, args ...any) *Error {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// KindOf returns the Kind of the first Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var ledgerErr *Error
	if !errors.As(err, &ledgerErr) || ledgerErr == nil {
		return "", false
	}
	return ledgerErr.Kind, true
}

// Classify returns err as an *Error. Context expiry maps to Timeout and any
// other unclassified failure to TransportUnavailable.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var ledgerErr *Error
	if errors.As(err, &ledgerErr) && ledgerErr != nil {
		return ledgerErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return TimedOut(op, err, "stopped waiting for confirmation")
	}
	return Unavailable(op, err, "")
}
