package env

import (
	"strings"
	"sync"

	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Identity names a throwable class and implements the structural match used
// by catch chains: an is-instance-of test against that class. The per-type
// declarations in the exceptions package are all built on Identity.
type Identity struct {
	name string // binary name, e.g. "java.lang.OutOfMemoryError"

	mu      sync.Mutex
	classes map[*ffi.Handle]ffi.ClassRef
}

// NewIdentity declares an identity for the class with the given binary name
// (dot-separated).
func NewIdentity(name string) *Identity {
	return &Identity{
		name:    name,
		classes: make(map[*ffi.Handle]ffi.ClassRef),
	}
}

// Name returns the binary class name.
func (id *Identity) Name() string { return id.name }

// Class resolves the identity's class, caching a global reference per
// attachment so repeated matches do not re-run the lookup. The cached
// reference lives as long as the process.
func (id *Identity) Class(e *Env) (ffi.ClassRef, error) {
	id.mu.Lock()
	cls, ok := id.classes[e.handle]
	id.mu.Unlock()
	if ok {
		return cls, nil
	}

	internal := strings.ReplaceAll(id.name, ".", "/")
	local, err := CallCheckedNonNull(e, ffi.DescFindClass, func(t *ffi.Table) ffi.ClassRef {
		return t.FindClass(internal)
	})
	if err != nil {
		return 0, err
	}
	global, err := Call(e, ffi.DescNewGlobalRef, func(t *ffi.Table) ffi.ObjectRef {
		return t.NewGlobalRef(local.Object())
	})
	if err != nil {
		return 0, err
	}
	cls = ffi.ClassRef(global)

	id.mu.Lock()
	id.classes[e.handle] = cls
	id.mu.Unlock()
	return cls, nil
}

// Matches reports whether the caught throwable is an instance of the
// identity's class. A nil throwable is an error, never a non-match.
func (id *Identity) Matches(e *Env, thrown ffi.ThrowableRef) (bool, error) {
	if thrown.IsNil() {
		return false, &errors.NullResultError{Op: "invalid null throwable"}
	}
	cls, err := id.Class(e)
	if err != nil {
		return false, err
	}
	return Call(e, ffi.DescIsInstanceOf, func(t *ffi.Table) bool {
		return t.IsInstanceOf(thrown.Object(), cls)
	})
}
