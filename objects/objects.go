// Package objects provides typed wrappers for the core Java object types
// the library binds: Class, String, Throwable and StackTraceElement. Every
// wrapper method goes through the call wrappers in the env package; there
// are no direct table invocations here.
package objects

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/errors"
	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Class wraps a java.lang.Class reference.
type Class struct {
	Ref ffi.ClassRef
}

// FindClass looks up a class by internal name (slash-separated, e.g.
// "java/lang/String"). Lookup failures thrown by the runtime are mapped:
// NoClassDefFoundError and ClassNotFoundException become ClassNotFoundError,
// ExceptionInInitializerError becomes InitializerError.
func FindClass(e *env.Env, name string) (Class, error) {
	ref, err := env.CallCatchNonNull(e, classLookupChain(name), ffi.DescFindClass, func(t *ffi.Table) ffi.ClassRef {
		return t.FindClass(name)
	})
	if err != nil {
		return Class{}, err
	}
	return Class{Ref: ref}, nil
}

// ClassOf returns the class of an object.
func ClassOf(e *env.Env, obj ffi.ObjectRef) (Class, error) {
	ref, err := env.CallNonNull(e, ffi.DescGetObjectClass, func(t *ffi.Table) ffi.ClassRef {
		return t.GetObjectClass(obj)
	})
	if err != nil {
		return Class{}, err
	}
	return Class{Ref: ref}, nil
}

// MethodID resolves an instance method. A NoSuchMethodError thrown by the
// lookup is caught and mapped to MethodNotFoundError, leaving no pending
// exception behind.
func (c Class) MethodID(e *env.Env, name, sig string) (ffi.MethodID, error) {
	return env.CallCatchNonNull(e, memberLookupChain[ffi.MethodID](name, sig), ffi.DescGetMethodID,
		func(t *ffi.Table) ffi.MethodID {
			return t.GetMethodID(c.Ref, name, sig)
		})
}

// StaticMethodID resolves a static method, with the same mapping as
// MethodID.
func (c Class) StaticMethodID(e *env.Env, name, sig string) (ffi.MethodID, error) {
	return env.CallCatchNonNull(e, memberLookupChain[ffi.MethodID](name, sig), ffi.DescGetStaticMethodID,
		func(t *ffi.Table) ffi.MethodID {
			return t.GetStaticMethodID(c.Ref, name, sig)
		})
}

// FieldID resolves an instance field. A NoSuchFieldError thrown by the
// lookup is caught and mapped to FieldNotFoundError.
func (c Class) FieldID(e *env.Env, name, sig string) (ffi.FieldID, error) {
	return env.CallCatchNonNull(e, fieldLookupChain(name, sig), ffi.DescGetFieldID,
		func(t *ffi.Table) ffi.FieldID {
			return t.GetFieldID(c.Ref, name, sig)
		})
}

// NewObject constructs an instance via the constructor with the given
// signature. Exceptions thrown during construction are caught and mapped.
func (c Class) NewObject(e *env.Env, ctorSig string, args ...ffi.Value) (ffi.ObjectRef, error) {
	ctor, err := c.MethodID(e, "<init>", ctorSig)
	if err != nil {
		return 0, err
	}
	return env.CallCatchNonNull(e, constructChain(), ffi.DescNewObjectA, func(t *ffi.Table) ffi.ObjectRef {
		return t.NewObjectA(c.Ref, ctor, args)
	})
}

// IsSame reports whether two references refer to the same object. Either
// side may be null; two nulls are the same object.
func IsSame(e *env.Env, a, b ffi.ObjectRef) (bool, error) {
	return env.Call(e, ffi.DescIsSameObject, func(t *ffi.Table) bool {
		return t.IsSameObject(a, b)
	})
}

// CallObjectMethod resolves and invokes an object-returning instance method
// by name. The invocation is signal-only: an exception raised by the method
// is reported as UncaughtExceptionError and left pending.
func CallObjectMethod(e *env.Env, obj ffi.ObjectRef, name, sig string, args ...ffi.Value) (ffi.ObjectRef, error) {
	cls, err := ClassOf(e, obj)
	if err != nil {
		return 0, err
	}
	m, err := cls.MethodID(e, name, sig)
	if err != nil {
		return 0, err
	}
	return env.CallChecked(e, ffi.DescCallObjectMethodA, func(t *ffi.Table) ffi.ObjectRef {
		return t.CallObjectMethodA(obj, m, args)
	})
}

// callIntMethod resolves and invokes an int-returning instance method.
func callIntMethod(e *env.Env, obj ffi.ObjectRef, name, sig string, args ...ffi.Value) (int32, error) {
	cls, err := ClassOf(e, obj)
	if err != nil {
		return 0, err
	}
	m, err := cls.MethodID(e, name, sig)
	if err != nil {
		return 0, err
	}
	return env.CallChecked(e, ffi.DescCallIntMethodA, func(t *ffi.Table) int32 {
		return t.CallIntMethodA(obj, m, args)
	})
}

// callVoidMethod resolves and invokes a void instance method.
func callVoidMethod(e *env.Env, obj ffi.ObjectRef, name, sig string, args ...ffi.Value) error {
	cls, err := ClassOf(e, obj)
	if err != nil {
		return err
	}
	m, err := cls.MethodID(e, name, sig)
	if err != nil {
		return err
	}
	_, err = env.CallChecked(e, ffi.DescCallVoidMethodA, env.Void(func(t *ffi.Table) {
		t.CallVoidMethodA(obj, m, args)
	}))
	return err
}

// objectArray reads out an object array reference element by element.
func objectArray(e *env.Env, arr ffi.ObjectRef) ([]ffi.ObjectRef, error) {
	if arr.IsNil() {
		return nil, nil
	}
	n, err := env.CallChecked(e, ffi.DescGetArrayLength, func(t *ffi.Table) int32 {
		return t.GetArrayLength(arr)
	})
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &errors.NullResultError{Op: "GetArrayLength result"}
	}
	out := make([]ffi.ObjectRef, 0, n)
	for i := int32(0); i < n; i++ {
		i := i
		elem, err := env.CallChecked(e, ffi.DescGetObjectArrayElement, func(t *ffi.Table) ffi.ObjectRef {
			return t.GetObjectArrayElement(arr, i)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}
