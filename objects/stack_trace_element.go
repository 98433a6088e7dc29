package objects

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// StackTraceElement wraps a java.lang.StackTraceElement reference.
type StackTraceElement struct {
	Ref ffi.ObjectRef
}

// GetClassName returns the fully qualified class name of the frame.
func (s StackTraceElement) GetClassName(e *env.Env) (string, error) {
	return s.stringMethod(e, "getClassName")
}

// GetMethodName returns the method name of the frame.
func (s StackTraceElement) GetMethodName(e *env.Env) (string, error) {
	return s.stringMethod(e, "getMethodName")
}

// GetFileName returns the source file name of the frame, or "" when the
// information is unavailable.
func (s StackTraceElement) GetFileName(e *env.Env) (string, error) {
	return s.stringMethod(e, "getFileName")
}

// GetLineNumber returns the source line of the frame. Negative values mean
// the information is unavailable; -2 means a native frame.
func (s StackTraceElement) GetLineNumber(e *env.Env) (int32, error) {
	return callIntMethod(e, s.Ref, "getLineNumber", "()I")
}

func (s StackTraceElement) stringMethod(e *env.Env, name string) (string, error) {
	res, err := CallObjectMethod(e, s.Ref, name, "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	if res.IsNil() {
		return "", nil
	}
	return String{Ref: ffi.StringRef(res)}.GoString(e)
}
