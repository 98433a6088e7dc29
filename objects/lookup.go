package objects

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Identities the built-in lookup chains match against. The full set of
// bound exception types lives in the exceptions package; these few are
// needed here to translate lookup and construction failures.
var (
	idNoSuchMethod    = env.NewIdentity("java.lang.NoSuchMethodError")
	idNoSuchField     = env.NewIdentity("java.lang.NoSuchFieldError")
	idNoClassDefFound = env.NewIdentity("java.lang.NoClassDefFoundError")
	idClassNotFound   = env.NewIdentity("java.lang.ClassNotFoundException")
	idExceptionInInit = env.NewIdentity("java.lang.ExceptionInInitializerError")
	idOutOfMemory     = env.NewIdentity("java.lang.OutOfMemoryError")
	idInstantiation   = env.NewIdentity("java.lang.InstantiationException")
	idIllegalArgument = env.NewIdentity("java.lang.IllegalArgumentException")
)

// fallback is the catch-all used by every built-in chain. An exception no
// typed arm claimed maps to a null-result error, matching the lookup
// convention that an unexplained failure and a missing result are reported
// the same way.
func fallback[R any]() env.Handler[R] {
	return func(e *env.Env, thrown ffi.ThrowableRef) (R, error) {
		var zero R
		return zero, &errors.NullResultError{Op: "unexpected exception"}
	}
}

// message best-effort reads the throwable's message for use as a cause
// annotation. Failures are swallowed: the annotation is optional and the
// primary error is already decided.
func message(e *env.Env, thrown ffi.ThrowableRef) string {
	msg, err := AsThrowable(thrown).GetMessage(e)
	if err != nil {
		return ""
	}
	return msg
}

func memberLookupChain[R any](name, sig string) env.Chain[R] {
	return env.Catch[R](
		env.When(idNoSuchMethod, func(e *env.Env, thrown ffi.ThrowableRef) (R, error) {
			var zero R
			return zero, &errors.MethodNotFoundError{Name: name, Sig: sig}
		}),
		env.When(idNoSuchField, func(e *env.Env, thrown ffi.ThrowableRef) (R, error) {
			var zero R
			return zero, &errors.FieldNotFoundError{Name: name, Sig: sig}
		}),
		env.When(idOutOfMemory, func(e *env.Env, thrown ffi.ThrowableRef) (R, error) {
			var zero R
			return zero, &errors.CallError{Code: errors.CodeNoMemory}
		}),
	).Else(fallback[R]())
}

func fieldLookupChain(name, sig string) env.Chain[ffi.FieldID] {
	return env.Catch[ffi.FieldID](
		env.When(idNoSuchField, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.FieldID, error) {
			return 0, &errors.FieldNotFoundError{Name: name, Sig: sig}
		}),
		env.When(idNoSuchMethod, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.FieldID, error) {
			return 0, &errors.MethodNotFoundError{Name: name, Sig: sig}
		}),
		env.When(idOutOfMemory, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.FieldID, error) {
			return 0, &errors.CallError{Code: errors.CodeNoMemory}
		}),
	).Else(fallback[ffi.FieldID]())
}

func classLookupChain(requested string) env.Chain[ffi.ClassRef] {
	return env.Catch[ffi.ClassRef](
		env.When(idOutOfMemory, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ClassRef, error) {
			return 0, &errors.CallError{Code: errors.CodeNoMemory}
		}),
		// ExceptionInInitializerError extends LinkageError, so it must be
		// tested before the broader class-loading failures below.
		env.When(idExceptionInInit, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ClassRef, error) {
			return 0, &errors.InitializerError{Exception: message(e, thrown)}
		}),
		env.When(idClassNotFound, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ClassRef, error) {
			return 0, &errors.ClassNotFoundError{Requested: requested, Cause: message(e, thrown)}
		}),
		env.When(idNoClassDefFound, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ClassRef, error) {
			return 0, &errors.ClassNotFoundError{Requested: requested, Cause: message(e, thrown)}
		}),
	).Else(fallback[ffi.ClassRef]())
}

func constructChain() env.Chain[ffi.ObjectRef] {
	return env.Catch[ffi.ObjectRef](
		env.When(idOutOfMemory, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ObjectRef, error) {
			return 0, &errors.CallError{Code: errors.CodeNoMemory}
		}),
		env.When(idInstantiation, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ObjectRef, error) {
			return 0, errors.ErrInstantiation
		}),
		env.When(idExceptionInInit, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ObjectRef, error) {
			return 0, &errors.InitializerError{Exception: message(e, thrown)}
		}),
		env.When(idIllegalArgument, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.ObjectRef, error) {
			return 0, &errors.CallError{Code: errors.CodeInvalidArguments}
		}),
	).Else(fallback[ffi.ObjectRef]())
}
