package env

import (
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Matcher tests whether a caught throwable structurally matches a known
// exception identity (an is-instance-of test). The exceptions package
// provides a Matcher per bound exception type.
type Matcher interface {
	Matches(e *Env, thrown ffi.ThrowableRef) (bool, error)
}

// Handler maps a caught throwable to a result. By the time a handler runs
// the exception has been cleared, so handlers may make further checked
// calls, and they run inside a local frame: references that must outlive
// the handler have to be promoted to global references.
//
// Handlers must return normally; a non-local exit would bypass the frame
// accounting the caller guarantees.
type Handler[R any] func(e *Env, thrown ffi.ThrowableRef) (R, error)

// Arm is one (identity, handler) entry of a catch chain.
type Arm[R any] struct {
	matches func(e *Env, thrown ffi.ThrowableRef) (bool, error)
	handle  Handler[R]
}

// When builds a chain arm from a matcher and a handler.
func When[R any](m Matcher, h Handler[R]) Arm[R] {
	return Arm[R]{matches: m.Matches, handle: h}
}

// Builder is an unterminated catch chain. It cannot be passed to CallCatch
// or Try; only Else produces a usable Chain, which is how a chain without a
// catch-all is made unrepresentable.
type Builder[R any] struct {
	arms []Arm[R]
}

// Catch starts a chain from ordered arms. Order is significant: arms are
// evaluated top to bottom and the first structural match wins, so more
// specific exception types must be listed before broader ones.
func Catch[R any](arms ...Arm[R]) *Builder[R] {
	return &Builder[R]{arms: arms}
}

// Else terminates the chain with the mandatory catch-all handler, selected
// unconditionally when no typed arm matched.
func (b *Builder[R]) Else(h Handler[R]) Chain[R] {
	return Chain[R]{arms: b.arms, fallback: h}
}

// Else builds a chain consisting only of a catch-all handler.
func Else[R any](h Handler[R]) Chain[R] {
	return Chain[R]{fallback: h}
}

// Chain is a terminated catch chain: zero or more typed arms plus the
// mandatory catch-all.
type Chain[R any] struct {
	arms     []Arm[R]
	fallback Handler[R]
}

// run evaluates the arms in declared order against the caught throwable.
// A matcher error aborts the chain and propagates. The zero Chain (which
// bypassed Else) has no catch-all and is a malformed declaration.
func (c Chain[R]) run(e *Env, thrown ffi.ThrowableRef) (R, error) {
	for _, arm := range c.arms {
		ok, err := arm.matches(e, thrown)
		if err != nil {
			var zero R
			return zero, err
		}
		if ok {
			return arm.handle(e, thrown)
		}
	}
	if c.fallback == nil {
		errors.Fatalf("catch chain has no catch-all handler")
	}
	return c.fallback(e, thrown)
}
