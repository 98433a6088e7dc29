package env_test

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"

	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

func findClass(t *testing.T, e *env.Env, name string) ffi.ClassRef {
	t.Helper()
	cls, err := env.Call(e, ffi.DescFindClass, func(tb *ffi.Table) ffi.ClassRef {
		return tb.FindClass(name)
	})
	assert.Nil(t, err)
	assert.False(t, cls.IsNil())
	return cls
}

func TestCallInvokesSlot(t *testing.T) {
	e, rt := newTestEnv(t)
	cls := findClass(t, e, "java/lang/Throwable")
	assert.False(t, cls.IsNil())
	assert.Equal(t, rt.Calls("FindClass"), 1)
	assert.Equal(t, len(rt.Violations()), 0)
}

// With an exception already pending, a checked call must not reach the slot
// at all.
func TestCallRefusedWhilePending(t *testing.T) {
	e, rt := newTestEnv(t)
	rt.ThrowNow("java.lang.RuntimeException", "boom")

	_, err := env.Call(e, ffi.DescFindClass, func(tb *ffi.Table) ffi.ClassRef {
		return tb.FindClass("java/lang/String")
	})
	assert.True(t, errors.IsExceptionPending(err))
	assert.Equal(t, err.Error(), "jni: exception pending, FindClass call refused")

	assert.Equal(t, rt.Calls("FindClass"), 0)
	assert.Equal(t, len(rt.Violations()), 0)
	// The pending exception is untouched; it was not this call's to handle.
	assert.Equal(t, rt.PendingClassName(), "java.lang.RuntimeException")
}

func TestCallCheckedLeavesExceptionPending(t *testing.T) {
	e, rt := newTestEnv(t)
	cls := findClass(t, e, "java/lang/Throwable")

	id, err := env.CallChecked(e, ffi.DescGetFieldID, func(tb *ffi.Table) ffi.FieldID {
		return tb.GetFieldID(cls, "missing", "I")
	})
	assert.True(t, errors.IsUncaughtException(err))
	assert.True(t, id.IsNil())

	// Signal-only: the exception is reported but deliberately left pending.
	assert.True(t, rt.Pending())
	assert.Equal(t, rt.PendingClassName(), "java.lang.NoSuchFieldError")
	assert.Equal(t, len(rt.Violations()), 0)
	e.ExceptionClear()
}

func TestCallCheckedSuccess(t *testing.T) {
	e, rt := newTestEnv(t)
	cls := findClass(t, e, "java/lang/Throwable")

	m, err := env.CallChecked(e, ffi.DescGetMethodID, func(tb *ffi.Table) ffi.MethodID {
		return tb.GetMethodID(cls, "getMessage", "()Ljava/lang/String;")
	})
	assert.Nil(t, err)
	assert.False(t, m.IsNil())
	assert.False(t, rt.Pending())
}

func TestCallNonNull(t *testing.T) {
	e, rt := newTestEnv(t)

	// A null result with no exception raised is its own failure mode.
	ref, err := env.CallNonNull(e, ffi.DescGetObjectClass, func(tb *ffi.Table) ffi.ClassRef {
		return tb.GetObjectClass(0)
	})
	assert.True(t, errors.IsNullResult(err))
	assert.Equal(t, err.Error(), "jni: unexpected null: GetObjectClass result")
	assert.True(t, ref.IsNil())
	assert.False(t, rt.Pending())

	cls := findClass(t, e, "java/lang/String")
	got, err := env.CallNonNull(e, ffi.DescGetObjectClass, func(tb *ffi.Table) ffi.ClassRef {
		return tb.GetObjectClass(cls.Object())
	})
	assert.Nil(t, err)
	assert.False(t, got.IsNil())
}

func TestCallCheckedNonNull(t *testing.T) {
	e, rt := newTestEnv(t)
	cls := findClass(t, e, "java/lang/Throwable")

	// The exception signal takes precedence over the null check.
	_, err := env.CallCheckedNonNull(e, ffi.DescGetFieldID, func(tb *ffi.Table) ffi.FieldID {
		return tb.GetFieldID(cls, "missing", "I")
	})
	assert.True(t, errors.IsUncaughtException(err))
	assert.True(t, rt.Pending())
	e.ExceptionClear()

	_, err = env.CallCheckedNonNull(e, ffi.DescGetObjectClass, func(tb *ffi.Table) ffi.ClassRef {
		return tb.GetObjectClass(0)
	})
	assert.True(t, errors.IsNullResult(err))
}

func TestVoidAdaptor(t *testing.T) {
	e, rt := newTestEnv(t)
	rt.ThrowNow("java.lang.RuntimeException", "boom")

	_, err := env.CallChecked(e, ffi.DescExceptionDescribe, env.Void(func(tb *ffi.Table) {
		tb.ExceptionDescribe()
	}))
	assert.True(t, errors.IsExceptionPending(err))
	e.ExceptionClear()
}
