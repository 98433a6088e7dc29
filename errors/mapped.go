package errors

import "fmt"

// Mapped application errors: the caller-meaningful values that catch chains
// convert caught Java exceptions into. By the time one of these is returned
// the exception has already been cleared, so the caller sees an ordinary
// error and no pending state.

// CallErrorCode categorizes low-level interface failures.
type CallErrorCode int32

const (
	CodeUnknown CallErrorCode = iota
	CodeThreadDetached
	CodeWrongVersion
	CodeNoMemory
	CodeAlreadyExists
	CodeInvalidArguments
)

func (c CallErrorCode) String() string {
	switch c {
	case CodeThreadDetached:
		return "thread detached"
	case CodeWrongVersion:
		return "wrong interface version"
	case CodeNoMemory:
		return "out of memory"
	case CodeAlreadyExists:
		return "VM already created"
	case CodeInvalidArguments:
		return "invalid arguments"
	default:
		return "unknown error"
	}
}

// CallError is a low-level interface failure with a status code.
type CallError struct {
	Code CallErrorCode
}

func (e *CallError) Error() string {
	return "jni: call failed: " + e.Code.String()
}

// MethodNotFoundError maps java.lang.NoSuchMethodError for a lookup.
type MethodNotFoundError struct {
	Name string
	Sig  string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("jni: method not found: %s %s", e.Name, e.Sig)
}

// FieldNotFoundError maps java.lang.NoSuchFieldError for a lookup.
type FieldNotFoundError struct {
	Name string
	Sig  string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("jni: field not found: %s %s", e.Name, e.Sig)
}

// ClassNotFoundError maps java.lang.NoClassDefFoundError and
// java.lang.ClassNotFoundException for a class lookup. Cause carries the
// message of the originating throwable when one was available.
type ClassNotFoundError struct {
	Requested string
	Cause     string
}

func (e *ClassNotFoundError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("jni: class not found: %s: %s", e.Requested, e.Cause)
	}
	return "jni: class not found: " + e.Requested
}

// InitializerError maps java.lang.ExceptionInInitializerError. Exception
// carries the message of the exception thrown during static initialization
// when one was available.
type InitializerError struct {
	Exception string
}

func (e *InitializerError) Error() string {
	if e.Exception != "" {
		return "jni: exception in static initializer: " + e.Exception
	}
	return "jni: exception in static initializer"
}

// LinkageError maps java.lang.LinkageError subclasses not covered by a more
// specific mapping.
type LinkageError struct {
	Requested string
	Cause     string
}

func (e *LinkageError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("jni: linkage error: %s: %s", e.Requested, e.Cause)
	}
	return "jni: linkage error: " + e.Requested
}

// ParseFailedError maps java.lang.NumberFormatException.
type ParseFailedError struct {
	Value string
}

func (e *ParseFailedError) Error() string {
	if e.Value == "" {
		return "jni: could not parse value"
	}
	return fmt.Sprintf("jni: could not parse value %q", e.Value)
}

// Sentinel mapped errors for exception types that carry no extra payload.
var (
	ErrClassFormat         = &simpleError{"jni: class format error"}
	ErrClassCircularity    = &simpleError{"jni: class circularity error"}
	ErrWrongObjectType     = &simpleError{"jni: wrong object type"}
	ErrIllegalMonitorState = &simpleError{"jni: illegal monitor state"}
	ErrIndexOutOfBounds    = &simpleError{"jni: index out of bounds"}
	ErrInstantiation       = &simpleError{"jni: instantiation failed"}
	ErrSecurityViolation   = &simpleError{"jni: security violation"}
)

type simpleError struct {
	msg string
}

func (e *simpleError) Error() string { return e.msg }
