package objects

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// String wraps a java.lang.String reference.
type String struct {
	Ref ffi.StringRef
}

// NewString creates a Java string from a Go string. Allocation failure
// (OutOfMemoryError) is caught and mapped.
func NewString(e *env.Env, s string) (String, error) {
	ref, err := env.CallCatchNonNull(e, newStringChain(), ffi.DescNewStringUTF, func(t *ffi.Table) ffi.StringRef {
		return t.NewStringUTF(s)
	})
	if err != nil {
		return String{}, err
	}
	return String{Ref: ref}, nil
}

func newStringChain() env.Chain[ffi.StringRef] {
	return env.Catch[ffi.StringRef](
		env.When(idOutOfMemory, func(e *env.Env, thrown ffi.ThrowableRef) (ffi.StringRef, error) {
			return 0, &errors.CallError{Code: errors.CodeNoMemory}
		}),
	).Else(fallback[ffi.StringRef]())
}

// IsNil reports whether the wrapped reference is null.
func (s String) IsNil() bool { return s.Ref.IsNil() }

// GoString copies the string contents into a Go string.
func (s String) GoString(e *env.Env) (string, error) {
	if s.Ref.IsNil() {
		return "", &errors.NullResultError{Op: "null string reference"}
	}
	return env.CallChecked(e, ffi.DescGetStringUTFChars, func(t *ffi.Table) string {
		return t.GetStringUTFChars(s.Ref)
	})
}
