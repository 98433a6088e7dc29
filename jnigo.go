// Package jnigo is the top-level entry point for calling into a Java VM
// with exception-safe call semantics. It ties together the lower layers:
// ffi holds the function table and attachment handle, env implements the
// call protocol, objects and exceptions bind the core java.lang types, and
// libjvm loads a real JVM.
//
// Open a VM and obtain an Env for the current thread:
//
//	rt, err := jnigo.Open(jnigo.WithVMArgs("-Xmx256m"))
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//	cls, err := objects.FindClass(rt.Env(), "java/lang/String")
//
// Embedders with their own table (tests, alternative runtimes) can skip
// libjvm and construct an Env directly with NewEnv.
package jnigo

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// NewEnv validates a function table and wraps it in an Env for the calling
// thread. The table must carry the exception-state and local-frame slots
// and report interface version 1.2 or newer.
func NewEnv(t *ffi.Table, opts ...Option) (*env.Env, error) {
	cfg := newConfig(opts)
	h, err := ffi.NewHandle(t)
	if err != nil {
		return nil, err
	}
	return env.New(h, cfg.envOpts()...), nil
}
