package mockjvm

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/jnigo/ffi"
)

// Table binds every slot to this runtime. The closures record each
// invocation, so tests can assert exactly which slots ran and whether any
// non-safe slot ran with a pending exception.
func (r *Runtime) Table() *ffi.Table {
	return &ffi.Table{
		GetVersion: func() ffi.Version {
			r.record("GetVersion", false)
			return r.version
		},
		FindClass: func(name string) ffi.ClassRef {
			r.record("FindClass", false)
			binary := strings.ReplaceAll(name, "/", ".")
			cls, ok := r.classes[binary]
			if !ok {
				r.throw("java.lang.NoClassDefFoundError", binary)
				return 0
			}
			return r.classRef(cls)
		},
		Throw: func(t ffi.ThrowableRef) int32 {
			r.record("Throw", false)
			o := r.resolveObject(uintptr(t))
			if o == nil {
				return ffi.ErrCode
			}
			r.pending = o
			return ffi.OK
		},
		ThrowNew: func(cls ffi.ClassRef, msg string) int32 {
			r.record("ThrowNew", false)
			c := r.resolveClass(uintptr(cls))
			if c == nil {
				return ffi.ErrCode
			}
			r.pending = r.newThrowable(c, msg, true, nil)
			return ffi.OK
		},
		ExceptionOccurred: func() ffi.ThrowableRef {
			r.record("ExceptionOccurred", true)
			if r.pending == nil || r.dropPending {
				return 0
			}
			return ffi.ThrowableRef(r.newRef(r.pending, false))
		},
		ExceptionDescribe: func() {
			r.record("ExceptionDescribe", true)
		},
		ExceptionClear: func() {
			r.record("ExceptionClear", true)
			r.pending = nil
			r.dropPending = false
		},
		ExceptionCheck: func() bool {
			r.record("ExceptionCheck", true)
			return r.pending != nil
		},
		FatalError: func(msg string) {
			panic("mockjvm: FatalError: " + msg)
		},
		PushLocalFrame: func(capacity int32) int32 {
			r.record("PushLocalFrame", true)
			r.frames = append(r.frames, nil)
			return ffi.OK
		},
		PopLocalFrame: func(result ffi.ObjectRef) ffi.ObjectRef {
			r.record("PopLocalFrame", true)
			if len(r.frames) == 1 {
				panic("mockjvm: PopLocalFrame without matching push")
			}
			var survivor any
			if result != 0 {
				survivor = r.resolve(uintptr(result))
			}
			top := r.frames[len(r.frames)-1]
			r.frames = r.frames[:len(r.frames)-1]
			for _, ref := range top {
				delete(r.refs, ref)
			}
			if survivor == nil {
				return 0
			}
			return ffi.ObjectRef(r.newRef(survivor, false))
		},
		NewGlobalRef: func(obj ffi.ObjectRef) ffi.ObjectRef {
			r.record("NewGlobalRef", false)
			target := r.resolve(uintptr(obj))
			if target == nil {
				return 0
			}
			return ffi.ObjectRef(r.newRef(target, true))
		},
		DeleteGlobalRef: func(obj ffi.ObjectRef) {
			r.record("DeleteGlobalRef", true)
			delete(r.refs, uintptr(obj))
			delete(r.global, uintptr(obj))
		},
		DeleteLocalRef: func(obj ffi.ObjectRef) {
			r.record("DeleteLocalRef", true)
			r.deleteLocal(uintptr(obj))
		},
		NewLocalRef: func(obj ffi.ObjectRef) ffi.ObjectRef {
			r.record("NewLocalRef", false)
			target := r.resolve(uintptr(obj))
			if target == nil {
				return 0
			}
			return ffi.ObjectRef(r.newRef(target, false))
		},
		GetObjectClass: func(obj ffi.ObjectRef) ffi.ClassRef {
			r.record("GetObjectClass", false)
			switch target := r.resolve(uintptr(obj)).(type) {
			case *object:
				return r.classRef(target.class)
			case *class:
				return r.classRef(r.classes["java.lang.Class"])
			default:
				return 0
			}
		},
		IsInstanceOf: func(obj ffi.ObjectRef, cls ffi.ClassRef) bool {
			r.record("IsInstanceOf", false)
			c := r.resolveClass(uintptr(cls))
			switch target := r.resolve(uintptr(obj)).(type) {
			case *object:
				return target.class.isSubclassOf(c)
			case *class:
				return c == r.classes["java.lang.Class"] || c == r.classes["java.lang.Object"]
			default:
				// A null reference is an instance of nothing.
				return false
			}
		},
		IsSameObject: func(a, b ffi.ObjectRef) bool {
			r.record("IsSameObject", false)
			return r.resolve(uintptr(a)) == r.resolve(uintptr(b))
		},
		GetMethodID: func(cls ffi.ClassRef, name, sig string) ffi.MethodID {
			r.record("GetMethodID", false)
			return r.methodID(r.resolveClass(uintptr(cls)), name, sig)
		},
		GetStaticMethodID: func(cls ffi.ClassRef, name, sig string) ffi.MethodID {
			r.record("GetStaticMethodID", false)
			// No static methods are modeled.
			r.throw("java.lang.NoSuchMethodError", name+sig)
			return 0
		},
		GetFieldID: func(cls ffi.ClassRef, name, sig string) ffi.FieldID {
			r.record("GetFieldID", false)
			// No fields are modeled.
			r.throw("java.lang.NoSuchFieldError", name)
			return 0
		},
		NewObjectA: func(cls ffi.ClassRef, ctor ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
			r.record("NewObjectA", false)
			return r.construct(r.resolveClass(uintptr(cls)), ctor, args)
		},
		CallObjectMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
			r.record("CallObjectMethodA", false)
			return r.callObject(r.resolveObject(uintptr(obj)), m, args)
		},
		CallBooleanMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) bool {
			r.record("CallBooleanMethodA", false)
			return false
		},
		CallIntMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) int32 {
			r.record("CallIntMethodA", false)
			o := r.resolveObject(uintptr(obj))
			if mi := r.methods[m]; mi != nil && mi.name == "getLineNumber" {
				return o.line
			}
			return 0
		},
		CallVoidMethodA: func(obj ffi.ObjectRef, m ffi.MethodID, args []ffi.Value) {
			r.record("CallVoidMethodA", false)
			o := r.resolveObject(uintptr(obj))
			if mi := r.methods[m]; mi != nil && mi.name == "addSuppressed" && len(args) == 1 {
				if s := r.resolveObject(uintptr(args[0].Ref())); s != nil {
					o.suppressed = append(o.suppressed, s)
				}
			}
		},
		CallStaticObjectMethodA: func(cls ffi.ClassRef, m ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
			r.record("CallStaticObjectMethodA", false)
			return 0
		},
		NewStringUTF: func(s string) ffi.StringRef {
			r.record("NewStringUTF", false)
			return ffi.StringRef(r.newString(s))
		},
		GetStringUTFChars: func(s ffi.StringRef) string {
			r.record("GetStringUTFChars", false)
			o := r.resolveObject(uintptr(s))
			if o == nil {
				return ""
			}
			return o.str
		},
		GetArrayLength: func(arr ffi.ObjectRef) int32 {
			r.record("GetArrayLength", false)
			o := r.resolveObject(uintptr(arr))
			if o == nil {
				return -1
			}
			return int32(len(o.elems))
		},
		GetObjectArrayElement: func(arr ffi.ObjectRef, index int32) ffi.ObjectRef {
			r.record("GetObjectArrayElement", false)
			o := r.resolveObject(uintptr(arr))
			if o == nil || index < 0 || int(index) >= len(o.elems) {
				r.throw("java.lang.ArrayIndexOutOfBoundsException",
					fmt.Sprintf("Index %d out of bounds", index))
				return 0
			}
			return ffi.ObjectRef(r.newRef(o.elems[index], false))
		},
		MonitorEnter: func(obj ffi.ObjectRef) int32 {
			r.record("MonitorEnter", false)
			return ffi.OK
		},
		MonitorExit: func(obj ffi.ObjectRef) int32 {
			r.record("MonitorExit", true)
			return ffi.OK
		},
	}
}

func (r *Runtime) deleteLocal(ref uintptr) {
	delete(r.refs, ref)
	top := len(r.frames) - 1
	frame := r.frames[top]
	for i, tracked := range frame {
		if tracked == ref {
			r.frames[top] = append(frame[:i], frame[i+1:]...)
			break
		}
	}
}

func (r *Runtime) methodID(cls *class, name, sig string) ffi.MethodID {
	if cls == nil {
		return 0
	}
	known := cls.hasMethod(name, sig)
	if name == "<init>" {
		known = cls.ctorSigs[sig]
	}
	if !known {
		r.throw("java.lang.NoSuchMethodError", name+sig)
		return 0
	}
	key := cls.name + "#" + name + sig
	if id, ok := r.methodIDs[key]; ok {
		return id
	}
	id := ffi.MethodID(r.next)
	r.next++
	r.methods[id] = &method{class: cls, name: name, sig: sig}
	r.methodIDs[key] = id
	return id
}

func (r *Runtime) construct(cls *class, ctor ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
	mi := r.methods[ctor]
	if cls == nil || mi == nil || mi.name != "<init>" {
		return 0
	}
	var o *object
	switch mi.sig {
	case "()V":
		o = r.newThrowable(cls, "", false, nil)
	case "(Ljava/lang/String;)V":
		msg, hasMsg := r.stringArg(args, 0)
		o = r.newThrowable(cls, msg, hasMsg, nil)
	case "(Ljava/lang/String;Ljava/lang/Throwable;)V":
		msg, hasMsg := r.stringArg(args, 0)
		o = r.newThrowable(cls, msg, hasMsg, r.throwableArg(args, 1))
	case "(Ljava/lang/Throwable;)V":
		cause := r.throwableArg(args, 0)
		if cause != nil {
			o = r.newThrowable(cls, cause.class.name, true, cause)
		} else {
			o = r.newThrowable(cls, "", false, nil)
		}
	case "(I)V":
		var index int32
		if len(args) > 0 {
			index = args[0].Int()
		}
		o = r.newThrowable(cls, fmt.Sprintf("Index out of range: %d", index), true, nil)
	default:
		return 0
	}
	return ffi.ObjectRef(r.newRef(o, false))
}

func (r *Runtime) stringArg(args []ffi.Value, i int) (string, bool) {
	if i >= len(args) || args[i].Ref().IsNil() {
		return "", false
	}
	o := r.resolveObject(uintptr(args[i].Ref()))
	if o == nil {
		return "", false
	}
	return o.str, true
}

func (r *Runtime) throwableArg(args []ffi.Value, i int) *object {
	if i >= len(args) || args[i].Ref().IsNil() {
		return nil
	}
	return r.resolveObject(uintptr(args[i].Ref()))
}

func (r *Runtime) callObject(o *object, m ffi.MethodID, args []ffi.Value) ffi.ObjectRef {
	mi := r.methods[m]
	if o == nil || mi == nil {
		return 0
	}
	switch mi.name {
	case "getMessage":
		if !o.hasMessage {
			return 0
		}
		return ffi.ObjectRef(r.newString(o.message))
	case "getCause", "getException":
		if o.cause == nil {
			return 0
		}
		return ffi.ObjectRef(r.newRef(o.cause, false))
	case "getStackTrace":
		arr := &object{class: r.classes["java.lang.Object"], elems: o.frames}
		return ffi.ObjectRef(r.newRef(arr, false))
	case "getSuppressed":
		arr := &object{class: r.classes["java.lang.Object"], elems: o.suppressed}
		return ffi.ObjectRef(r.newRef(arr, false))
	case "getClassName":
		return ffi.ObjectRef(r.newString(o.declClass))
	case "getMethodName":
		return ffi.ObjectRef(r.newString(o.methodName))
	case "getFileName":
		if o.fileName == "" {
			return 0
		}
		return ffi.ObjectRef(r.newString(o.fileName))
	default:
		panic("mockjvm: unmodeled method " + mi.name)
	}
}
