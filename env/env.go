// Package env provides the exception-safe call protocol over a JNI function
// table: an Env per thread attachment, the sanctioned call wrappers, typed
// catch chains, and bounded local reference frames.
//
// Most JNI entry points must not be invoked while an exception is pending;
// doing so is undefined behavior. The wrappers in this package are the only
// supported way to invoke table slots, and they maintain that invariant:
//
//   - CallUnchecked: raw dispatch, allow-listed slots only
//   - Call: refuses to call if an exception is already pending
//   - CallChecked: Call, then reports (without clearing) a raised exception
//   - CallNonNull / CallCheckedNonNull: additionally treat null as failure
//   - CallCatch / CallCatchNonNull: catch, clear and map a raised exception
//     through a typed chain
//   - Try: run a block of calls, then catch/clear/map like CallCatch
package env

import (
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Env is the calling context for one attached native thread. It borrows the
// underlying handle for the duration of the attachment and must not be
// shared across threads.
type Env struct {
	handle   *ffi.Handle
	log      zerolog.Logger
	attachID string
}

// Option configures an Env.
type Option func(*Env)

// WithLogger attaches a logger. Call refusals and caught exceptions are
// logged at debug and trace level with the attachment id.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Env) {
		e.log = log.With().Str("attachment_id", e.attachID).Logger()
	}
}

// New wraps a validated handle in an Env.
func New(h *ffi.Handle, opts ...Option) *Env {
	e := &Env{
		handle:   h,
		log:      zerolog.Nop(),
		attachID: uuid.Must(uuid.NewV4()).String(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Handle returns the underlying attachment handle.
func (e *Env) Handle() *ffi.Handle { return e.handle }

// Version returns the interface version of the attachment.
func (e *Env) Version() ffi.Version { return e.handle.Version() }

// AttachmentID returns the identifier used to correlate log events for this
// attachment.
func (e *Env) AttachmentID() string { return e.attachID }

// ExceptionCheck reports whether an exception is pending. Always safe.
func (e *Env) ExceptionCheck() bool {
	return ffi.Invoke(e.handle, ffi.DescExceptionCheck, func(t *ffi.Table) bool {
		return t.ExceptionCheck()
	})
}

// ExceptionOccurred retrieves a local reference to the pending exception,
// if any. Always safe. The second result is false when nothing is pending;
// a spurious non-nil reference without pending state never occurs.
func (e *Env) ExceptionOccurred() (ffi.ThrowableRef, bool) {
	thrown := ffi.Invoke(e.handle, ffi.DescExceptionOccurred, func(t *ffi.Table) ffi.ThrowableRef {
		return t.ExceptionOccurred()
	})
	return thrown, !thrown.IsNil()
}

// ExceptionClear clears any pending exception. Always safe.
func (e *Env) ExceptionClear() {
	ffi.InvokeVoid(e.handle, ffi.DescExceptionClear, func(t *ffi.Table) {
		t.ExceptionClear()
	})
}

// ExceptionDescribe prints the pending exception and a backtrace to the
// runtime's error channel. Always safe.
func (e *Env) ExceptionDescribe() {
	ffi.InvokeVoid(e.handle, ffi.DescExceptionDescribe, func(t *ffi.Table) {
		t.ExceptionDescribe()
	})
}

// DeleteLocalRef releases a local reference. Always safe, and it leaves any
// pending exception state unchanged, which is what makes deferred cleanup
// of references sound inside catch handlers.
func (e *Env) DeleteLocalRef(obj ffi.ObjectRef) {
	ffi.InvokeVoid(e.handle, ffi.DescDeleteLocalRef, func(t *ffi.Table) {
		t.DeleteLocalRef(obj)
	})
}

// MonitorExit exits the monitor associated with obj. Always safe.
func (e *Env) MonitorExit(obj ffi.ObjectRef) int32 {
	return ffi.Invoke(e.handle, ffi.DescMonitorExit, func(t *ffi.Table) int32 {
		return t.MonitorExit(obj)
	})
}

// Throw raises a pending exception from an existing throwable. The call
// itself is prechecked: throwing while another exception is pending is
// refused.
func (e *Env) Throw(thrown ffi.ThrowableRef) error {
	rc, err := Call(e, ffi.DescThrow, func(t *ffi.Table) int32 {
		return t.Throw(thrown)
	})
	if err != nil {
		return err
	}
	if rc != ffi.OK {
		return &errors.CallError{Code: errors.CodeInvalidArguments}
	}
	return nil
}

// ThrowNew constructs and raises an exception of the given class with a
// message.
func (e *Env) ThrowNew(cls ffi.ClassRef, msg string) error {
	rc, err := Call(e, ffi.DescThrowNew, func(t *ffi.Table) int32 {
		return t.ThrowNew(cls, msg)
	})
	if err != nil {
		return err
	}
	if rc != ffi.OK {
		return &errors.CallError{Code: errors.CodeInvalidArguments}
	}
	return nil
}
