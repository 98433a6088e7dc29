// Package exceptions declares bindings for the java.lang exception types
// recognized by the built-in catch chains. Each binding pairs a class
// identity (used for structural matching) with a typed wrapper, so a catch
// arm can receive the caught throwable already narrowed to the matched
// type.
package exceptions

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/ffi"
	"github.com/deepnoodle-ai/jnigo/objects"
)

// wrapper is the common shape of every typed exception wrapper: a struct
// embedding the underlying throwable.
type wrapper = struct {
	objects.Throwable
}

// Binding ties an exception class identity to its typed wrapper X. The
// embedded Identity provides the structural match used by catch chains; the
// binding adds narrowing and constructors.
type Binding[X ~struct{ objects.Throwable }] struct {
	*env.Identity
}

func bind[X ~struct{ objects.Throwable }](name string) *Binding[X] {
	return &Binding[X]{Identity: env.NewIdentity(name)}
}

// Wrap narrows a throwable reference to the bound type. Only meaningful
// after a successful match; When performs it automatically.
func (b *Binding[X]) Wrap(thrown ffi.ThrowableRef) X {
	return X(wrapper{objects.AsThrowable(thrown)})
}

// When builds a catch arm whose handler receives the caught throwable
// narrowed to the bound exception type. The narrowing is sound because the
// handler only runs after the identity's is-instance-of test succeeded.
func When[R any, X ~struct{ objects.Throwable }](b *Binding[X], h func(*env.Env, X) (R, error)) env.Arm[R] {
	return env.When(b.Identity, func(e *env.Env, thrown ffi.ThrowableRef) (R, error) {
		return h(e, b.Wrap(thrown))
	})
}

// Class returns the bound class, wrapped.
func (b *Binding[X]) LookupClass(e *env.Env) (objects.Class, error) {
	ref, err := b.Identity.Class(e)
	if err != nil {
		return objects.Class{}, err
	}
	return objects.Class{Ref: ref}, nil
}

func (b *Binding[X]) construct(e *env.Env, sig string, args ...ffi.Value) (X, error) {
	var zero X
	cls, err := b.LookupClass(e)
	if err != nil {
		return zero, err
	}
	obj, err := cls.NewObject(e, sig, args...)
	if err != nil {
		return zero, err
	}
	return b.Wrap(ffi.ThrowableRef(obj)), nil
}

// New constructs the exception without a message.
func (b *Binding[X]) New(e *env.Env) (X, error) {
	return b.construct(e, "()V")
}

// NewWithMessage constructs the exception with a message.
func (b *Binding[X]) NewWithMessage(e *env.Env, msg string) (X, error) {
	s, err := objects.NewString(e, msg)
	if err != nil {
		var zero X
		return zero, err
	}
	return b.construct(e, "(Ljava/lang/String;)V", ffi.RefValue(s.Ref))
}

// NewWithMessageAndCause constructs the exception with a message and a
// cause. Only valid for bindings whose class declares that constructor.
func NewWithMessageAndCause[X ~struct{ objects.Throwable }](b *Binding[X], e *env.Env, msg string, cause objects.Throwable) (X, error) {
	var zero X
	s, err := objects.NewString(e, msg)
	if err != nil {
		return zero, err
	}
	return b.construct(e, "(Ljava/lang/String;Ljava/lang/Throwable;)V",
		ffi.RefValue(s.Ref), ffi.RefValue(cause.Ref))
}

// NewWithCause constructs the exception with only a cause. Only valid for
// bindings whose class declares that constructor.
func NewWithCause[X ~struct{ objects.Throwable }](b *Binding[X], e *env.Env, cause objects.Throwable) (X, error) {
	return b.construct(e, "(Ljava/lang/Throwable;)V", ffi.RefValue(cause.Ref))
}

// NewForIndex constructs an index-out-of-bounds exception whose message
// names the illegal index. Only valid for the array and string index
// bindings.
func NewForIndex[X ~struct{ objects.Throwable }](b *Binding[X], e *env.Env, index int32) (X, error) {
	return b.construct(e, "(I)V", ffi.IntValue(index))
}
