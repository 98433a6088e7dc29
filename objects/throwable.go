package objects

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Throwable wraps a java.lang.Throwable reference.
type Throwable struct {
	Ref ffi.ThrowableRef
}

// AsThrowable wraps a raw throwable reference.
func AsThrowable(r ffi.ThrowableRef) Throwable {
	return Throwable{Ref: r}
}

// IsNil reports whether the wrapped reference is null.
func (t Throwable) IsNil() bool { return t.Ref.IsNil() }

// GetMessage calls getMessage. A null message is legitimate and returned as
// an empty string.
func (t Throwable) GetMessage(e *env.Env) (string, error) {
	res, err := CallObjectMethod(e, t.Ref.Object(), "getMessage", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	if res.IsNil() {
		return "", nil
	}
	return String{Ref: ffi.StringRef(res)}.GoString(e)
}

// GetCause calls getCause. The second result is false when the throwable
// has no cause.
func (t Throwable) GetCause(e *env.Env) (Throwable, bool, error) {
	res, err := CallObjectMethod(e, t.Ref.Object(), "getCause", "()Ljava/lang/Throwable;")
	if err != nil {
		return Throwable{}, false, err
	}
	if res.IsNil() {
		return Throwable{}, false, nil
	}
	return Throwable{Ref: ffi.ThrowableRef(res)}, true, nil
}

// GetStackTrace calls getStackTrace and wraps each frame.
func (t Throwable) GetStackTrace(e *env.Env) ([]StackTraceElement, error) {
	arr, err := CallObjectMethod(e, t.Ref.Object(), "getStackTrace", "()[Ljava/lang/StackTraceElement;")
	if err != nil {
		return nil, err
	}
	elems, err := objectArray(e, arr)
	if err != nil {
		return nil, err
	}
	frames := make([]StackTraceElement, 0, len(elems))
	for _, elem := range elems {
		frames = append(frames, StackTraceElement{Ref: elem})
	}
	return frames, nil
}

// AddSuppressed associates a suppressed throwable with this one. A
// suppressed exception was thrown but not propagated because another
// exception took precedence; it is distinct from the cause.
func (t Throwable) AddSuppressed(e *env.Env, suppressed Throwable) error {
	return callVoidMethod(e, t.Ref.Object(), "addSuppressed", "(Ljava/lang/Throwable;)V",
		ffi.RefValue(suppressed.Ref))
}

// GetSuppressed returns the throwables suppressed by this one.
func (t Throwable) GetSuppressed(e *env.Env) ([]Throwable, error) {
	arr, err := CallObjectMethod(e, t.Ref.Object(), "getSuppressed", "()[Ljava/lang/Throwable;")
	if err != nil {
		return nil, err
	}
	elems, err := objectArray(e, arr)
	if err != nil {
		return nil, err
	}
	out := make([]Throwable, 0, len(elems))
	for _, elem := range elems {
		out = append(out, Throwable{Ref: ffi.ThrowableRef(elem)})
	}
	return out, nil
}
