//go:build unix

package main

import (
	"fmt"

	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/exceptions"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// probe throws an IllegalArgumentException and catches it through a typed
// chain, exercising the full protocol against a live VM: construct, throw,
// detect, retrieve, clear, match, narrow, read back the message.
func probe(e *env.Env) error {
	const marker = "jvminfo probe"

	chain := env.Catch[string](
		exceptions.When(exceptions.IllegalArgument,
			func(e *env.Env, x exceptions.IllegalArgumentException) (string, error) {
				return x.GetMessage(e)
			}),
	).Else(func(e *env.Env, thrown ffi.ThrowableRef) (string, error) {
		return "", fmt.Errorf("probe: caught an unexpected exception type")
	})

	msg, err := env.Try(e, chain, func(e *env.Env) (string, error) {
		x, err := exceptions.IllegalArgument.NewWithMessage(e, marker)
		if err != nil {
			return "", err
		}
		return "", e.Throw(x.Ref)
	})
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if msg != marker {
		return fmt.Errorf("probe: message %q did not round trip", msg)
	}
	return nil
}
