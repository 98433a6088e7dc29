package env_test

import (
	"io"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
	"github.com/deepnoodle-ai/jnigo/internal/mockjvm"
)

func newTestEnv(t *testing.T) (*env.Env, *mockjvm.Runtime) {
	t.Helper()
	rt := mockjvm.New()
	h, err := ffi.NewHandle(rt.Table())
	assert.Nil(t, err)
	return env.New(h), rt
}

func TestEnvVersion(t *testing.T) {
	e, _ := newTestEnv(t)
	assert.Equal(t, e.Version(), ffi.Version1_8)

	rt := mockjvm.New(mockjvm.WithVersion(ffi.Version9))
	h, err := ffi.NewHandle(rt.Table())
	assert.Nil(t, err)
	assert.Equal(t, env.New(h).Version(), ffi.Version9)
}

func TestEnvAttachmentID(t *testing.T) {
	e, _ := newTestEnv(t)
	assert.True(t, e.AttachmentID() != "")

	rt := mockjvm.New()
	h, err := ffi.NewHandle(rt.Table())
	assert.Nil(t, err)
	log := zerolog.New(io.Discard)
	e2 := env.New(h, env.WithLogger(log))
	assert.NotEqual(t, e2.AttachmentID(), e.AttachmentID())
}

func TestExceptionStateOps(t *testing.T) {
	e, rt := newTestEnv(t)
	assert.False(t, e.ExceptionCheck())

	rt.ThrowNow("java.lang.RuntimeException", "boom")
	assert.True(t, e.ExceptionCheck())

	thrown, ok := e.ExceptionOccurred()
	assert.True(t, ok)
	assert.False(t, thrown.IsNil())
	// Retrieving the throwable does not clear the pending state.
	assert.True(t, e.ExceptionCheck())

	e.ExceptionClear()
	assert.False(t, e.ExceptionCheck())
	_, ok = e.ExceptionOccurred()
	assert.False(t, ok)
	assert.Equal(t, len(rt.Violations()), 0)
}

// The allow-listed operations must work while an exception is pending and
// must leave the pending state untouched.
func TestAllowListedOpsWhilePending(t *testing.T) {
	e, rt := newTestEnv(t)
	rt.ThrowNow("java.lang.SecurityException", "denied")

	assert.True(t, e.ExceptionCheck())
	thrown, ok := e.ExceptionOccurred()
	assert.True(t, ok)
	e.ExceptionDescribe()
	assert.Equal(t, e.MonitorExit(thrown.Object()), ffi.OK)
	e.DeleteLocalRef(thrown.Object())

	assert.True(t, rt.Pending())
	assert.Equal(t, rt.PendingClassName(), "java.lang.SecurityException")
	assert.Equal(t, len(rt.Violations()), 0)
}

func TestThrow(t *testing.T) {
	e, rt := newTestEnv(t)
	thrown := rt.NewThrowableRef("java.lang.IllegalMonitorStateException", "not owner")

	assert.Nil(t, e.Throw(thrown))
	assert.True(t, rt.Pending())
	assert.Equal(t, rt.PendingClassName(), "java.lang.IllegalMonitorStateException")

	// Throwing while another exception is pending is refused before the
	// slot is reached.
	before := rt.Calls("Throw")
	err := e.Throw(thrown)
	assert.True(t, errors.IsExceptionPending(err))
	assert.Equal(t, rt.Calls("Throw"), before)
	assert.Equal(t, len(rt.Violations()), 0)
}

func TestThrowNew(t *testing.T) {
	e, rt := newTestEnv(t)
	cls, err := env.Call(e, ffi.DescFindClass, func(tb *ffi.Table) ffi.ClassRef {
		return tb.FindClass("java/lang/ArrayStoreException")
	})
	assert.Nil(t, err)

	assert.Nil(t, e.ThrowNew(cls, "bad element"))
	assert.Equal(t, rt.PendingClassName(), "java.lang.ArrayStoreException")
	e.ExceptionClear()
	assert.Equal(t, len(rt.Violations()), 0)
}
