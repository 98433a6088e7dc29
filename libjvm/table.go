//go:build unix

package libjvm

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/deepnoodle-ai/jnigo/ffi"
)

// JNIEnv vtable slots, per the interface function table layout.
const (
	envGetVersion              = 4
	envFindClass               = 6
	envThrow                   = 13
	envThrowNew                = 14
	envExceptionOccurred       = 15
	envExceptionDescribe       = 16
	envExceptionClear          = 17
	envFatalError              = 18
	envPushLocalFrame          = 19
	envPopLocalFrame           = 20
	envNewGlobalRef            = 21
	envDeleteGlobalRef         = 22
	envDeleteLocalRef          = 23
	envIsSameObject            = 24
	envNewLocalRef             = 25
	envNewObjectA              = 30
	envGetObjectClass          = 31
	envIsInstanceOf            = 32
	envGetMethodID             = 33
	envCallObjectMethodA       = 36
	envCallBooleanMethodA      = 39
	envCallIntMethodA          = 51
	envCallVoidMethodA         = 63
	envGetFieldID              = 94
	envGetStaticMethodID       = 113
	envCallStaticObjectMethodA = 116
	envNewStringUTF            = 167
	envGetStringUTFChars       = 169
	envReleaseStringUTFChars   = 170
	envGetArrayLength          = 171
	envGetObjectArrayElement   = 173
	envMonitorEnter            = 217
	envMonitorExit             = 218
	envExceptionCheck          = 228
)

// vtcall invokes vtable slot index on obj, which is a pointer to a pointer
// to the function table (the JNIEnv/JavaVM double-indirection). obj itself
// is always the first argument.
func vtcall(obj uintptr, index int, args ...uintptr) uintptr {
	table := *(*uintptr)(unsafe.Pointer(obj))
	fn := *(*uintptr)(unsafe.Pointer(table + uintptr(index)*unsafe.Sizeof(uintptr(0))))
	r1, _, _ := purego.SyscallN(fn, append([]uintptr{obj}, args...)...)
	return r1
}

// cstring copies s into a NUL-terminated buffer. The returned pointer is
// valid as long as Go keeps the buffer alive; callers pass it straight into
// a call and do not retain it.
func cstring(s string) *byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0]
}

func cstrArg(s string) uintptr {
	return uintptr(unsafe.Pointer(cstring(s)))
}

// gostring copies a NUL-terminated C string.
func gostring(p uintptr) string {
	if p == 0 {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

func valuesArg(args []ffi.Value) uintptr {
	if len(args) == 0 {
		return 0
	}
	// ffi.Value has jvalue's size and alignment on 64-bit targets.
	return uintptr(unsafe.Pointer(&args[0]))
}

// bindTable builds the function table for one env pointer. Every slot is a
// closure over env, so the table is only valid on the attached thread.
func bindTable(env uintptr) *ffi.Table {
	return &ffi.Table{
		GetVersion: func() ffi.Version {
			return ffi.Version(int32(vtcall(env, envGetVersion)))
		},
		FindClass: func(name string) ffi.ClassRef {
			return ffi.ClassRef(vtcall(env, envFindClass, cstrArg(name)))
		},
		Throw: func(t ffi.ThrowableRef) int32 {
			return int32(vtcall(env, envThrow, uintptr(t)))
		},
		ThrowNew: func(cls ffi.ClassRef, msg string) int32 {
			return int32(vtcall(env, envThrowNew, uintptr(cls), cstrArg(msg)))
		},
		ExceptionOccurred: func() ffi.ThrowableRef {
			return ffi.ThrowableRef(vtcall(env, envExceptionOccurred))
		},
		ExceptionDescribe: func() {
			vtcall(env, envExceptionDescribe)
		},
		ExceptionClear: func() {
			vtcall(env, envExceptionClear)
		},
		ExceptionCheck: func() bool {
			return vtcall(env, envExceptionCheck)&0xff != 0
		},
		FatalError: func(msg string) {
			vtcall(env, envFatalError, cstrArg(msg))
		},
		PushLocalFrame: func(capacity int32) int32 {
			return int32(vtcall(env, envPushLocalFrame, uintptr(uint32(capacity))))
		},
		PopLocalFrame: func(result ffi.ObjectRef) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envPopLocalFrame, uintptr(result)))
		},
		NewGlobalRef: func(obj ffi.ObjectRef) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envNewGlobalRef, uintptr(obj)))
		},
		DeleteGlobalRef: func(obj ffi.ObjectRef) {
			vtcall(env, envDeleteGlobalRef, uintptr(obj))
		},
		DeleteLocalRef: func(obj ffi.ObjectRef) {
			vtcall(env, envDeleteLocalRef, uintptr(obj))
		},
		NewLocalRef: func(obj ffi.ObjectRef) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envNewLocalRef, uintptr(obj)))
		},
		GetObjectClass: func(obj ffi.ObjectRef) ffi.ClassRef {
			return ffi.ClassRef(vtcall(env, envGetObjectClass, uintptr(obj)))
		},
		IsInstanceOf: func(obj ffi.ObjectRef, cls ffi.ClassRef) bool {
			return vtcall(env, envIsInstanceOf, uintptr(obj), uintptr(cls))&0xff != 0
		},
		IsSameObject: func(a, b ffi.ObjectRef) bool {
			return vtcall(env, envIsSameObject, uintptr(a), uintptr(b))&0xff != 0
		},
		GetMethodID: func(cls ffi.ClassRef, name, sig string) ffi.MethodID {
			return ffi.MethodID(vtcall(env, envGetMethodID,
				uintptr(cls), cstrArg(name), cstrArg(sig)))
		},
		GetStaticMethodID: func(cls ffi.ClassRef, name, sig string) ffi.MethodID {
			return ffi.MethodID(vtcall(env, envGetStaticMethodID,
				uintptr(cls), cstrArg(name), cstrArg(sig)))
		},
		GetFieldID: func(cls ffi.ClassRef, name, sig string) ffi.FieldID {
			return ffi.FieldID(vtcall(env, envGetFieldID,
				uintptr(cls), cstrArg(name), cstrArg(sig)))
		},
		NewObjectA: func(cls ffi.ClassRef, ctor ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envNewObjectA,
				uintptr(cls), uintptr(ctor), valuesArg(args)))
		},
		CallObjectMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envCallObjectMethodA,
				uintptr(obj), uintptr(m), valuesArg(args)))
		},
		CallBooleanMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) bool {
			return vtcall(env, envCallBooleanMethodA,
				uintptr(obj), uintptr(m), valuesArg(args))&0xff != 0
		},
		CallIntMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) int32 {
			return int32(vtcall(env, envCallIntMethodA,
				uintptr(obj), uintptr(m), valuesArg(args)))
		},
		CallVoidMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) {
			vtcall(env, envCallVoidMethodA, uintptr(obj), uintptr(m), valuesArg(args))
		},
		CallStaticObjectMethodA: func(cls ffi.ClassRef, m ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envCallStaticObjectMethodA,
				uintptr(cls), uintptr(m), valuesArg(args)))
		},
		NewStringUTF: func(s string) ffi.StringRef {
			return ffi.StringRef(vtcall(env, envNewStringUTF, cstrArg(s)))
		},
		GetStringUTFChars: func(s ffi.StringRef) string {
			chars := vtcall(env, envGetStringUTFChars, uintptr(s), 0)
			if chars == 0 {
				return ""
			}
			out := gostring(chars)
			vtcall(env, envReleaseStringUTFChars, uintptr(s), chars)
			return out
		},
		GetArrayLength: func(arr ffi.ObjectRef) int32 {
			return int32(vtcall(env, envGetArrayLength, uintptr(arr)))
		},
		GetObjectArrayElement: func(arr ffi.ObjectRef, index int32) ffi.ObjectRef {
			return ffi.ObjectRef(vtcall(env, envGetObjectArrayElement,
				uintptr(arr), uintptr(uint32(index))))
		},
		MonitorEnter: func(obj ffi.ObjectRef) int32 {
			return int32(vtcall(env, envMonitorEnter, uintptr(obj)))
		},
		MonitorExit: func(obj ffi.ObjectRef) int32 {
			return int32(vtcall(env, envMonitorExit, uintptr(obj)))
		},
	}
}
