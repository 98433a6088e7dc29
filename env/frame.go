package env

import (
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// DefaultLocalFrameCapacity is the frame capacity used when catching and
// mapping exceptions.
const DefaultLocalFrameCapacity = 32

// WithLocalFrame pushes a local reference frame, runs fn, and pops the
// frame on every exit path: normal return, error return, and panic. Local
// references created inside fn are released when the frame is popped, so a
// result that carries a reference must promote it to a global reference
// before returning.
//
// Frame push and pop are on the exception-safe allow-list, which is what
// makes this construct sound inside exception handling itself.
func WithLocalFrame[R any](e *Env, capacity int, fn func(*Env) (R, error)) (R, error) {
	var zero R
	rc := ffi.Invoke(e.handle, ffi.DescPushLocalFrame, func(t *ffi.Table) int32 {
		return t.PushLocalFrame(int32(capacity))
	})
	if rc != ffi.OK {
		return zero, &errors.CallError{Code: errors.CodeNoMemory}
	}
	defer ffi.Invoke(e.handle, ffi.DescPopLocalFrame, func(t *ffi.Table) ffi.ObjectRef {
		return t.PopLocalFrame(0)
	})
	return fn(e)
}
