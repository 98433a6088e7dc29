package ffi

// Reference types are distinct named handles so that a method ID cannot be
// passed where an object is expected. A zero value is the JNI null reference.
//
// References are only meaningful to the attachment (Handle) they were
// obtained from and remain valid until deleted or until their local frame
// is popped.

// ObjectRef is a reference to any Java object.
type ObjectRef uintptr

// ClassRef is a reference to a java.lang.Class instance.
type ClassRef uintptr

// ThrowableRef is a reference to a java.lang.Throwable instance.
type ThrowableRef uintptr

// StringRef is a reference to a java.lang.String instance.
type StringRef uintptr

// MethodID identifies a resolved method within a class. It is not an object
// reference and is never released.
type MethodID uintptr

// FieldID identifies a resolved field within a class. It is not an object
// reference and is never released.
type FieldID uintptr

func (r ObjectRef) IsNil() bool    { return r == 0 }
func (r ClassRef) IsNil() bool     { return r == 0 }
func (r ThrowableRef) IsNil() bool { return r == 0 }
func (r StringRef) IsNil() bool    { return r == 0 }
func (m MethodID) IsNil() bool     { return m == 0 }
func (f FieldID) IsNil() bool      { return f == 0 }

// Object upcasts a class reference to a plain object reference.
func (r ClassRef) Object() ObjectRef { return ObjectRef(r) }

// Object upcasts a throwable reference to a plain object reference.
func (r ThrowableRef) Object() ObjectRef { return ObjectRef(r) }

// Object upcasts a string reference to a plain object reference.
func (r StringRef) Object() ObjectRef { return ObjectRef(r) }

// Nullable is satisfied by every reference and ID type in this package.
// The null-checking call wrappers are constrained to it.
type Nullable interface {
	IsNil() bool
}

// Value is a single call argument, the moral equivalent of a jvalue union:
// 64 bits of payload whose interpretation is fixed by the method signature.
type Value uint64

// RefValue packs an object reference argument.
func RefValue[R interface{ Nullable; ~uintptr }](r R) Value {
	return Value(r)
}

// BoolValue packs a boolean argument.
func BoolValue(b bool) Value {
	if b {
		return 1
	}
	return 0
}

// IntValue packs a jint argument.
func IntValue(i int32) Value { return Value(uint64(uint32(i))) }

// LongValue packs a jlong argument.
func LongValue(i int64) Value { return Value(uint64(i)) }

// Ref unpacks the value as an object reference.
func (v Value) Ref() ObjectRef { return ObjectRef(v) }

// Int unpacks the value as a jint.
func (v Value) Int() int32 { return int32(uint32(v)) }

// Bool unpacks the value as a jboolean.
func (v Value) Bool() bool { return v != 0 }
