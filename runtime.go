//go:build unix

package jnigo

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/libjvm"
)

func (c *config) vmOpts() []libjvm.Option {
	opts := []libjvm.Option{libjvm.WithVersion(c.version)}
	if len(c.vmArgs) > 0 {
		opts = append(opts, libjvm.WithArgs(c.vmArgs...))
	}
	if c.ignoreUnrecognized {
		opts = append(opts, libjvm.WithIgnoreUnrecognized())
	}
	return opts
}

// Runtime couples a running VM with the Env of the thread that opened it.
type Runtime struct {
	vm  *libjvm.VM
	env *env.Env
	cfg *config
}

// Open loads the JVM shared library, starts a VM and attaches the calling
// thread, returning a Runtime whose Env is ready for use. The calling
// goroutine is locked to its OS thread until Close.
func Open(opts ...Option) (*Runtime, error) {
	cfg := newConfig(opts)
	vm, err := libjvm.Create(cfg.resolveLibraryPath(), cfg.vmOpts()...)
	if err != nil {
		return nil, err
	}
	h, err := vm.Attach()
	if err != nil {
		_ = vm.Close()
		return nil, err
	}
	return &Runtime{
		vm:  vm,
		env: env.New(h, cfg.envOpts()...),
		cfg: cfg,
	}, nil
}

// Env returns the calling context for the opening thread.
func (r *Runtime) Env() *env.Env { return r.env }

// VM returns the underlying VM, for attaching additional threads.
func (r *Runtime) VM() *libjvm.VM { return r.vm }

// Attach attaches the calling goroutine's OS thread and returns an Env for
// it, configured like the Runtime's own.
func (r *Runtime) Attach() (*env.Env, error) {
	h, err := r.vm.Attach()
	if err != nil {
		return nil, err
	}
	return env.New(h, r.cfg.envOpts()...), nil
}

// Close detaches and destroys the VM. The Runtime's Env is invalid
// afterwards.
func (r *Runtime) Close() error {
	return r.vm.Close()
}
