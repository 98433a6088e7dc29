package env

import (
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// CallUnchecked invokes a table slot directly, with no exception or null
// checking. It may only be used with slots on the exception-safe allow-list
// (d.Safe), or when the caller has otherwise established that no exception
// is pending.
func CallUnchecked[R any](e *Env, d ffi.Desc, fn func(*ffi.Table) R) R {
	return ffi.Invoke(e.handle, d, fn)
}

// Call prechecks for a pending exception and then invokes the slot. If an
// exception is already pending the slot is not invoked at all and an
// ExceptionPendingError is returned.
//
// This is the mandatory entry point for any slot not on the allow-list.
func Call[R any](e *Env, d ffi.Desc, fn func(*ffi.Table) R) (R, error) {
	var zero R
	if e.ExceptionCheck() {
		e.log.Debug().Str("op", d.Name).Msg("call refused: exception pending")
		return zero, &errors.ExceptionPendingError{Op: d.Name}
	}
	return ffi.Invoke(e.handle, d, fn), nil
}

// CallChecked invokes the slot via Call and then rechecks exception state.
// If the call raised an exception, an UncaughtExceptionError is returned
// and the exception is deliberately left pending for the caller to handle.
//
// Prefer CallCatch when the possible exceptions should be translated into
// typed errors rather than signaled.
func CallChecked[R any](e *Env, d ffi.Desc, fn func(*ffi.Table) R) (R, error) {
	ret, err := Call(e, d, fn)
	if err != nil {
		return ret, err
	}
	if e.ExceptionCheck() {
		var zero R
		return zero, &errors.UncaughtExceptionError{Op: d.Name}
	}
	return ret, nil
}

// CallNonNull invokes the slot via Call and additionally treats a null
// result as failure, returning a NullResultError naming the slot. Only use
// this for slots where null is never a legitimate result.
func CallNonNull[R ffi.Nullable](e *Env, d ffi.Desc, fn func(*ffi.Table) R) (R, error) {
	ret, err := Call(e, d, fn)
	if err != nil {
		return ret, err
	}
	if ret.IsNil() {
		var zero R
		return zero, &errors.NullResultError{Op: d.Name + " result"}
	}
	return ret, nil
}

// CallCheckedNonNull combines CallChecked and the null-result check: a
// raised exception is signaled (and left pending) before the result is
// inspected, and a null result is failure.
func CallCheckedNonNull[R ffi.Nullable](e *Env, d ffi.Desc, fn func(*ffi.Table) R) (R, error) {
	ret, err := CallChecked(e, d, fn)
	if err != nil {
		return ret, err
	}
	if ret.IsNil() {
		var zero R
		return zero, &errors.NullResultError{Op: d.Name + " result"}
	}
	return ret, nil
}

// CallCatch invokes the slot via Call and, if the call raised an exception,
// catches it: the throwable is retrieved, the pending state is cleared, and
// the chain maps it to a result. The mapping runs inside a bounded local
// frame so references created by handlers cannot leak.
//
// A precheck refusal propagates unchanged: the pending exception was not
// raised by this call and is not this chain's to catch.
//
// The exception is cleared before any handler runs, so handler code may
// freely make further checked calls.
func CallCatch[R any](e *Env, chain Chain[R], d ffi.Desc, fn func(*ffi.Table) R) (R, error) {
	ret, err := Call(e, d, fn)
	if err != nil {
		return ret, err
	}
	if !e.ExceptionCheck() {
		return ret, nil
	}
	return catchPending(e, chain, d.Name)
}

// CallCatchNonNull behaves like CallCatch and additionally treats a null
// result from a successful (non-throwing) call as failure.
func CallCatchNonNull[R ffi.Nullable](e *Env, chain Chain[R], d ffi.Desc, fn func(*ffi.Table) R) (R, error) {
	ret, err := CallCatch(e, chain, d, fn)
	if err != nil {
		return ret, err
	}
	if ret.IsNil() {
		var zero R
		return zero, &errors.NullResultError{Op: d.Name + " result"}
	}
	return ret, nil
}

// Try runs a block of calling code and then applies the same
// check/retrieve/clear/map sequence as CallCatch. The block may perform any
// number of calls and may leave an exception pending as a side effect; if
// it did, the block's own result (value and error alike) is discarded in
// favor of the chain's result.
func Try[R any](e *Env, chain Chain[R], block func(*Env) (R, error)) (R, error) {
	ret, err := block(e)
	if e.ExceptionCheck() {
		return catchPending(e, chain, "try block")
	}
	return ret, err
}

// Void adapts a slot with no result for use with the generic wrappers.
func Void(fn func(*ffi.Table)) func(*ffi.Table) struct{} {
	return func(t *ffi.Table) struct{} {
		fn(t)
		return struct{}{}
	}
}

// catchPending retrieves and clears the pending exception, then maps it
// through the chain inside a bounded local frame. Pending state that yields
// no retrievable throwable violates the runtime contract and aborts.
func catchPending[R any](e *Env, chain Chain[R], op string) (R, error) {
	return WithLocalFrame(e, DefaultLocalFrameCapacity, func(e *Env) (R, error) {
		thrown, ok := e.ExceptionOccurred()
		if !ok {
			errors.Fatalf("%s: exception pending but ExceptionOccurred returned null", op)
		}
		e.ExceptionClear()
		e.log.Trace().Str("op", op).Msg("caught exception, mapping")
		return chain.run(e, thrown)
	})
}
