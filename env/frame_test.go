package env_test

import (
	"errors"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"

	"github.com/deepnoodle-ai/jnigo/env"
)

func TestWithLocalFrame(t *testing.T) {
	e, rt := newTestEnv(t)
	baseline := rt.LiveLocalRefs()

	got, err := env.WithLocalFrame(e, 8, func(e *env.Env) (int, error) {
		assert.Equal(t, rt.FrameDepth(), 2)
		// References created inside the frame die with it.
		rt.NewThrowableRef("java.lang.RuntimeException", "scratch")
		rt.NewThrowableRef("java.lang.RuntimeException", "scratch")
		assert.Equal(t, rt.LiveLocalRefs(), baseline+2)
		return 7, nil
	})
	assert.Nil(t, err)
	assert.Equal(t, got, 7)
	assert.Equal(t, rt.FrameDepth(), 1)
	assert.Equal(t, rt.LiveLocalRefs(), baseline)
}

func TestWithLocalFramePopsOnError(t *testing.T) {
	e, rt := newTestEnv(t)
	failed := errors.New("failed")

	_, err := env.WithLocalFrame(e, 4, func(e *env.Env) (struct{}, error) {
		rt.NewThrowableRef("java.lang.RuntimeException", "scratch")
		return struct{}{}, failed
	})
	assert.Equal(t, err, failed)
	assert.Equal(t, rt.FrameDepth(), 1)
}

func TestWithLocalFramePopsOnPanic(t *testing.T) {
	e, rt := newTestEnv(t)

	func() {
		defer func() {
			assert.Equal(t, recover(), "boom")
		}()
		_, _ = env.WithLocalFrame(e, 4, func(e *env.Env) (int, error) {
			panic("boom")
		})
	}()
	assert.Equal(t, rt.FrameDepth(), 1)
}

func TestNestedLocalFrames(t *testing.T) {
	e, rt := newTestEnv(t)

	_, err := env.WithLocalFrame(e, 4, func(e *env.Env) (int, error) {
		return env.WithLocalFrame(e, 4, func(e *env.Env) (int, error) {
			assert.Equal(t, rt.FrameDepth(), 3)
			return 0, nil
		})
	})
	assert.Nil(t, err)
	assert.Equal(t, rt.FrameDepth(), 1)
	assert.Equal(t, rt.Calls("PushLocalFrame"), 2)
	assert.Equal(t, rt.Calls("PopLocalFrame"), 2)
}

// Frame push and pop are allow-listed, so frame management keeps working
// while an exception is pending. Catching depends on this.
func TestLocalFrameWhilePending(t *testing.T) {
	e, rt := newTestEnv(t)
	rt.ThrowNow("java.lang.RuntimeException", "boom")

	_, err := env.WithLocalFrame(e, 4, func(e *env.Env) (struct{}, error) {
		return struct{}{}, nil
	})
	assert.Nil(t, err)
	assert.Equal(t, len(rt.Violations()), 0)
	assert.True(t, rt.Pending())
	e.ExceptionClear()
}
