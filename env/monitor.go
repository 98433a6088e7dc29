package env

import (
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// WithMonitor enters the monitor associated with obj, runs fn, and exits
// the monitor on every exit path. Monitor exit is on the exception-safe
// allow-list, so the release happens even when fn leaves an exception
// pending.
func WithMonitor[R any](e *Env, obj ffi.ObjectRef, fn func(*Env) (R, error)) (R, error) {
	var zero R
	rc, err := Call(e, ffi.DescMonitorEnter, func(t *ffi.Table) int32 {
		return t.MonitorEnter(obj)
	})
	if err != nil {
		return zero, err
	}
	if rc != ffi.OK {
		return zero, &errors.CallError{Code: errors.CodeNoMemory}
	}
	defer e.MonitorExit(obj)
	return fn(e)
}
