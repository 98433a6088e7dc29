package ffi

import "errors"

// Table holds the bound function slots for one thread attachment. A backend
// (libjvm for a real JVM, a test double otherwise) populates each field with
// a closure over its environment pointer, so slots take no explicit env
// argument here.
//
// String-typed parameters and results are plain Go strings: the backend owns
// the modified-UTF-8 conversion and any Get/Release pairing the underlying
// interface requires.
type Table struct {
	GetVersion        func() Version
	FindClass         func(name string) ClassRef
	Throw             func(t ThrowableRef) int32
	ThrowNew          func(cls ClassRef, msg string) int32
	ExceptionOccurred func() ThrowableRef
	ExceptionDescribe func()
	ExceptionClear    func()
	ExceptionCheck    func() bool
	FatalError        func(msg string)

	PushLocalFrame  func(capacity int32) int32
	PopLocalFrame   func(result ObjectRef) ObjectRef
	NewGlobalRef    func(obj ObjectRef) ObjectRef
	DeleteGlobalRef func(obj ObjectRef)
	DeleteLocalRef  func(obj ObjectRef)
	NewLocalRef     func(obj ObjectRef) ObjectRef

	GetObjectClass func(obj ObjectRef) ClassRef
	IsInstanceOf   func(obj ObjectRef, cls ClassRef) bool
	IsSameObject   func(a, b ObjectRef) bool

	GetMethodID       func(cls ClassRef, name, sig string) MethodID
	GetStaticMethodID func(cls ClassRef, name, sig string) MethodID
	GetFieldID        func(cls ClassRef, name, sig string) FieldID
	NewObjectA        func(cls ClassRef, ctor MethodID, args []Value) ObjectRef

	CallObjectMethodA       func(obj ObjectRef, m MethodID, args []Value) ObjectRef
	CallBooleanMethodA      func(obj ObjectRef, m MethodID, args []Value) bool
	CallIntMethodA          func(obj ObjectRef, m MethodID, args []Value) int32
	CallVoidMethodA         func(obj ObjectRef, m MethodID, args []Value)
	CallStaticObjectMethodA func(cls ClassRef, m MethodID, args []Value) ObjectRef

	NewStringUTF          func(s string) StringRef
	GetStringUTFChars     func(s StringRef) string
	GetArrayLength        func(arr ObjectRef) int32
	GetObjectArrayElement func(arr ObjectRef, index int32) ObjectRef
	MonitorEnter          func(obj ObjectRef) int32
	MonitorExit           func(obj ObjectRef) int32
}

// Handle is the capability to call into one thread attachment. It owns no
// runtime objects. Exactly one Handle exists per attached native thread and
// it must not be shared across threads.
//
// Construction is the single point where the table is validated; call sites
// never re-check it.
type Handle struct {
	table   *Table
	version Version
}

var (
	errNilTable   = errors.New("ffi: nil function table")
	errBadVersion = errors.New("ffi: interface version 1.2 or newer required")
	errMissing    = errors.New("ffi: table is missing required exception-state slots")
)

// NewHandle validates the table once and wraps it in a Handle.
//
// The exception-state slots (ExceptionCheck, ExceptionOccurred,
// ExceptionClear) and the local frame slots must be present: the whole call
// protocol is built on them, and ExceptionCheck requires interface version
// 1.2.
func NewHandle(t *Table) (*Handle, error) {
	if t == nil {
		return nil, errNilTable
	}
	if t.ExceptionCheck == nil || t.ExceptionOccurred == nil || t.ExceptionClear == nil ||
		t.PushLocalFrame == nil || t.PopLocalFrame == nil || t.GetVersion == nil {
		return nil, errMissing
	}
	version := t.GetVersion()
	if !version.AtLeast(Version1_2) {
		return nil, errBadVersion
	}
	return &Handle{table: t, version: version}, nil
}

// Version returns the interface version reported at construction.
func (h *Handle) Version() Version { return h.version }

// Invoke is the raw call primitive: it selects a slot from the handle's
// table and invokes it, returning the raw result unmodified. No exception
// or null checking happens here.
//
// Callers must guarantee that either d.Safe is true or no exception is
// pending, and that d.Since is satisfied by the handle's version. The
// checked wrappers in the env package are the sanctioned way to establish
// the former.
func Invoke[R any](h *Handle, d Desc, fn func(*Table) R) R {
	return fn(h.table)
}

// InvokeVoid is Invoke for slots without a result.
func InvokeVoid(h *Handle, d Desc, fn func(*Table)) {
	fn(h.table)
}
