package env_test

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"

	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/errors"
)

func TestWithMonitor(t *testing.T) {
	e, rt := newTestEnv(t)
	obj := rt.NewThrowableRef("java.lang.RuntimeException", "lockee").Object()

	got, err := env.WithMonitor(e, obj, func(e *env.Env) (int, error) {
		return 7, nil
	})
	assert.Nil(t, err)
	assert.Equal(t, got, 7)
	assert.Equal(t, rt.Calls("MonitorEnter"), 1)
	assert.Equal(t, rt.Calls("MonitorExit"), 1)
}

// The monitor must be released even when the critical section leaves an
// exception pending; MonitorExit is allow-listed for exactly this.
func TestWithMonitorReleasesWhilePending(t *testing.T) {
	e, rt := newTestEnv(t)
	obj := rt.NewThrowableRef("java.lang.RuntimeException", "lockee").Object()

	_, err := env.WithMonitor(e, obj, func(e *env.Env) (struct{}, error) {
		rt.ThrowNow("java.lang.SecurityException", "denied")
		return struct{}{}, nil
	})
	assert.Nil(t, err)
	assert.Equal(t, rt.Calls("MonitorExit"), 1)
	assert.Equal(t, len(rt.Violations()), 0)
	assert.True(t, rt.Pending())
	e.ExceptionClear()
}

func TestWithMonitorRefusedWhilePending(t *testing.T) {
	e, rt := newTestEnv(t)
	obj := rt.NewThrowableRef("java.lang.RuntimeException", "lockee").Object()
	rt.ThrowNow("java.lang.RuntimeException", "boom")

	_, err := env.WithMonitor(e, obj, func(e *env.Env) (int, error) {
		t.Fatal("critical section must not run")
		return 0, nil
	})
	assert.True(t, errors.IsExceptionPending(err))
	assert.Equal(t, rt.Calls("MonitorEnter"), 0)
	assert.Equal(t, rt.Calls("MonitorExit"), 0)
	e.ExceptionClear()
}
