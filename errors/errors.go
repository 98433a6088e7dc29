// Package errors defines the error values produced by the call wrappers:
// exception-state signals, null-result failures, and the typed application
// errors that catch chains map Java exceptions into.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ExceptionPendingError reports that a checked call was refused because an
// exception was already pending before the call. Nothing was invoked. This
// is a layering mistake in the calling code: either an unchecked call left
// an exception behind, or a previous signal-only call was not handled.
type ExceptionPendingError struct {
	// Op is the entry point that was about to be called.
	Op string
}

func (e *ExceptionPendingError) Error() string {
	if e.Op == "" {
		return "jni: exception pending, call refused"
	}
	return fmt.Sprintf("jni: exception pending, %s call refused", e.Op)
}

// UncaughtExceptionError reports that a call raised an exception which is
// still pending. The caller must catch or clear it before making any call
// that is not on the exception-safe allow-list.
type UncaughtExceptionError struct {
	// Op is the entry point whose invocation raised the exception.
	Op string
}

func (e *UncaughtExceptionError) Error() string {
	if e.Op == "" {
		return "jni: call raised an exception, left pending"
	}
	return fmt.Sprintf("jni: %s raised an exception, left pending", e.Op)
}

// NullResultError reports a null result from an entry point whose calling
// convention treats null as failure.
type NullResultError struct {
	// Op identifies the failed operation, conventionally the entry point
	// name plus " result".
	Op string
}

func (e *NullResultError) Error() string {
	return fmt.Sprintf("jni: unexpected null: %s", e.Op)
}

// FatalInconsistency is the panic payload used when the runtime contract is
// violated in a way that cannot be treated as a recoverable error, such as
// ExceptionCheck reporting a pending exception that ExceptionOccurred then
// fails to produce.
type FatalInconsistency struct {
	Msg string
}

func (f *FatalInconsistency) Error() string {
	return "jni: fatal inconsistency: " + f.Msg
}

// Fatalf panics with a FatalInconsistency.
func Fatalf(format string, args ...any) {
	panic(&FatalInconsistency{Msg: fmt.Sprintf(format, args...)})
}

// IsExceptionPending reports whether err is an ExceptionPendingError.
func IsExceptionPending(err error) bool {
	var target *ExceptionPendingError
	return stderrors.As(err, &target)
}

// IsUncaughtException reports whether err is an UncaughtExceptionError.
func IsUncaughtException(err error) bool {
	var target *UncaughtExceptionError
	return stderrors.As(err, &target)
}

// IsNullResult reports whether err is a NullResultError.
func IsNullResult(err error) bool {
	var target *NullResultError
	return stderrors.As(err, &target)
}

// IsExceptionSignal reports whether err is either exception-state signal
// (pending precheck refusal or uncaught post-call exception).
func IsExceptionSignal(err error) bool {
	return IsExceptionPending(err) || IsUncaughtException(err)
}
