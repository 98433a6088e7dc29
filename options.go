package jnigo

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Option configures Open and NewEnv.
type Option func(*config)

type config struct {
	libraryPath        string
	vmArgs             []string
	version            ffi.Version
	ignoreUnrecognized bool
	logger             *zerolog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{version: ffi.Version1_8}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *config) envOpts() []env.Option {
	var opts []env.Option
	if c.logger != nil {
		opts = append(opts, env.WithLogger(*c.logger))
	}
	return opts
}

// resolveLibraryPath returns the configured JVM library path, falling back
// to the conventional location under JAVA_HOME.
func (c *config) resolveLibraryPath() string {
	if c.libraryPath != "" {
		return c.libraryPath
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		return filepath.Join(home, "lib", "server", "libjvm.so")
	}
	return "libjvm.so"
}

// WithLibraryPath sets the path of the JVM shared library to load. The
// default is $JAVA_HOME/lib/server/libjvm.so.
func WithLibraryPath(path string) Option {
	return func(c *config) { c.libraryPath = path }
}

// WithVMArgs appends JVM launch arguments. This option is additive, so
// multiple WithVMArgs options may be supplied.
func WithVMArgs(args ...string) Option {
	return func(c *config) { c.vmArgs = append(c.vmArgs, args...) }
}

// WithVersion requests a specific interface version. The default is 1.8.
func WithVersion(v ffi.Version) Option {
	return func(c *config) { c.version = v }
}

// WithIgnoreUnrecognized makes the JVM ignore launch arguments it does not
// recognize instead of failing to start.
func WithIgnoreUnrecognized() Option {
	return func(c *config) { c.ignoreUnrecognized = true }
}

// WithLogger attaches a logger to every Env created from this
// configuration. Call refusals and caught exceptions are logged at debug
// and trace level with an attachment id.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.logger = &log }
}
