package exceptions_test

import (
	"errors"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"

	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/exceptions"
	"github.com/deepnoodle-ai/jnigo/ffi"
	"github.com/deepnoodle-ai/jnigo/internal/mockjvm"
	"github.com/deepnoodle-ai/jnigo/objects"
)

func newTestEnv(t *testing.T) (*env.Env, *mockjvm.Runtime) {
	t.Helper()
	rt := mockjvm.New()
	h, err := ffi.NewHandle(rt.Table())
	assert.Nil(t, err)
	return env.New(h), rt
}

func TestBindingMatchesSubclasses(t *testing.T) {
	e, rt := newTestEnv(t)
	thrown := rt.NewThrowableRef("java.lang.NumberFormatException", "12x")

	tests := []struct {
		matcher  env.Matcher
		expected bool
	}{
		{exceptions.NumberFormat, true},
		{exceptions.IllegalArgument, true}, // superclass
		{exceptions.Runtime, true},         // further up
		{exceptions.Security, false},
		{exceptions.Linkage, false},
	}
	for _, tc := range tests {
		ok, err := tc.matcher.Matches(e, thrown)
		assert.Nil(t, err)
		assert.Equal(t, ok, tc.expected)
	}
}

func TestNewWithMessage(t *testing.T) {
	e, rt := newTestEnv(t)
	x, err := exceptions.IllegalArgument.NewWithMessage(e, "size must be positive")
	assert.Nil(t, err)
	assert.False(t, x.IsNil())

	msg, err := x.GetMessage(e)
	assert.Nil(t, err)
	assert.Equal(t, msg, "size must be positive")
	assert.False(t, rt.Pending())
	assert.Equal(t, len(rt.Violations()), 0)
}

func TestNewWithoutMessage(t *testing.T) {
	e, _ := newTestEnv(t)
	x, err := exceptions.OutOfMemory.New(e)
	assert.Nil(t, err)

	msg, err := x.GetMessage(e)
	assert.Nil(t, err)
	assert.Equal(t, msg, "")
}

func TestNewWithMessageAndCause(t *testing.T) {
	e, _ := newTestEnv(t)
	cause, err := exceptions.ClassNotFound.NewWithMessage(e, "com.example.Missing")
	assert.Nil(t, err)

	x, err := exceptions.NewWithMessageAndCause(exceptions.NoClassDefFound, e,
		"initialization failed", cause.Throwable)
	assert.Nil(t, err)

	got, ok, err := x.GetCause(e)
	assert.Nil(t, err)
	assert.True(t, ok)
	causeMsg, err := got.GetMessage(e)
	assert.Nil(t, err)
	assert.Equal(t, causeMsg, "com.example.Missing")
}

func TestNewForIndex(t *testing.T) {
	e, _ := newTestEnv(t)
	x, err := exceptions.NewForIndex(exceptions.ArrayIndexOutOfBounds, e, 5)
	assert.Nil(t, err)

	msg, err := x.GetMessage(e)
	assert.Nil(t, err)
	assert.Equal(t, msg, "Index out of range: 5")
}

func TestExceptionInInitializerGetException(t *testing.T) {
	e, _ := newTestEnv(t)
	nested, err := exceptions.Runtime.NewWithMessage(e, "static block failed")
	assert.Nil(t, err)

	x, err := exceptions.NewWithCause(exceptions.ExceptionInInitializer, e, nested.Throwable)
	assert.Nil(t, err)

	inner, ok, err := x.GetException(e)
	assert.Nil(t, err)
	assert.True(t, ok)
	msg, err := inner.GetMessage(e)
	assert.Nil(t, err)
	assert.Equal(t, msg, "static block failed")
}

// When narrows the caught throwable to the arm's bound type, so the handler
// works with a typed value rather than a raw reference.
func TestTypedCatchArm(t *testing.T) {
	e, rt := newTestEnv(t)

	chain := env.Catch[string](
		exceptions.When(exceptions.NumberFormat,
			func(e *env.Env, x exceptions.NumberFormatException) (string, error) {
				return x.GetMessage(e)
			}),
		exceptions.When(exceptions.IllegalArgument,
			func(e *env.Env, x exceptions.IllegalArgumentException) (string, error) {
				t.Fatal("broader arm must not run when a narrower one is listed first")
				return "", nil
			}),
	).Else(func(e *env.Env, thrown ffi.ThrowableRef) (string, error) {
		t.Fatal("catch-all must not run")
		return "", nil
	})

	got, err := env.Try(e, chain, func(e *env.Env) (string, error) {
		x, err := exceptions.NumberFormat.NewWithMessage(e, `for input string: "12x"`)
		if err != nil {
			return "", err
		}
		return "", e.Throw(x.Ref)
	})
	assert.Nil(t, err)
	assert.Equal(t, got, `for input string: "12x"`)
	assert.False(t, rt.Pending())
	assert.Equal(t, len(rt.Violations()), 0)
}

func TestTypedCatchArmMapsToError(t *testing.T) {
	e, rt := newTestEnv(t)
	errNotFound := errors.New("not found")

	chain := env.Catch[objects.Class](
		exceptions.When(exceptions.NoClassDefFound,
			func(e *env.Env, x exceptions.NoClassDefFoundError) (objects.Class, error) {
				return objects.Class{}, errNotFound
			}),
	).Else(func(e *env.Env, thrown ffi.ThrowableRef) (objects.Class, error) {
		t.Fatal("catch-all must not run")
		return objects.Class{}, nil
	})

	_, err := env.Try(e, chain, func(e *env.Env) (objects.Class, error) {
		cls, err := exceptions.NoClassDefFound.LookupClass(e)
		if err != nil {
			return objects.Class{}, err
		}
		return objects.Class{}, e.ThrowNew(cls.Ref, "com/example/Missing")
	})
	assert.Equal(t, err, errNotFound)
	assert.False(t, rt.Pending())
}

func TestWrap(t *testing.T) {
	_, rt := newTestEnv(t)
	thrown := rt.NewThrowableRef("java.lang.SecurityException", "denied")

	x := exceptions.Security.Wrap(thrown)
	assert.Equal(t, x.Ref, thrown)
	assert.False(t, x.IsNil())
	assert.Equal(t, exceptions.Security.Name(), "java.lang.SecurityException")
}
