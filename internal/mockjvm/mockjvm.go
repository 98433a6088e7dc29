// Package mockjvm is an in-memory stand-in for a JVM used by the package
// tests. It implements every bound table slot over a small object model:
// a java.lang class hierarchy, exception objects with messages, causes,
// suppressed lists and canned stack traces, a pending-exception flag, and
// local reference frames.
//
// The runtime is strict: every slot invocation is recorded, a non-safe slot
// invoked while an exception is pending is recorded as a violation, and use
// of a reference that was deleted or whose frame was popped panics. Tests
// assert on these records to prove the wrappers' safety properties.
//
// A Runtime is single-threaded, like the attachment it models.
package mockjvm

import (
	"fmt"

	"github.com/deepnoodle-ai/jnigo/ffi"
)

type class struct {
	name     string // binary name, e.g. "java.lang.OutOfMemoryError"
	super    *class
	ctorSigs map[string]bool
	methods  map[string]bool // "name" + "sig"
}

func (c *class) isSubclassOf(other *class) bool {
	for cur := c; cur != nil; cur = cur.super {
		if cur == other {
			return true
		}
	}
	return false
}

func (c *class) hasMethod(name, sig string) bool {
	for cur := c; cur != nil; cur = cur.super {
		if cur.methods[name+sig] {
			return true
		}
	}
	return false
}

type object struct {
	class *class

	// string objects
	str string

	// throwables
	hasMessage bool
	message    string
	cause      *object
	suppressed []*object
	frames     []*object

	// arrays
	elems []*object

	// stack trace elements
	declClass  string
	methodName string
	fileName   string
	line       int32
}

type method struct {
	class *class
	name  string
	sig   string
}

// Runtime is the in-memory JVM.
type Runtime struct {
	version ffi.Version

	classes   map[string]*class
	classRefs map[*class]ffi.ClassRef

	next      uintptr
	refs      map[uintptr]any // *class or *object; absent = dead
	global    map[uintptr]bool
	frames    [][]uintptr
	methods   map[ffi.MethodID]*method
	methodIDs map[string]ffi.MethodID

	pending *object
	// dropPending simulates a runtime that reports pending state but yields
	// no throwable, to exercise the fatal-inconsistency path.
	dropPending bool

	calls      map[string]int
	violations []string
}

// Option configures the runtime.
type Option func(*Runtime)

// WithVersion sets the interface version reported by GetVersion.
func WithVersion(v ffi.Version) Option {
	return func(r *Runtime) { r.version = v }
}

// New creates a runtime with the java.lang hierarchy preloaded and one root
// local frame.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		version:   ffi.Version1_8,
		classes:   make(map[string]*class),
		classRefs: make(map[*class]ffi.ClassRef),
		next:      1,
		refs:      make(map[uintptr]any),
		global:    make(map[uintptr]bool),
		frames:    [][]uintptr{{}},
		methods:   make(map[ffi.MethodID]*method),
		methodIDs: make(map[string]ffi.MethodID),
		calls:     make(map[string]int),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.loadBootClasses()
	return r
}

func (r *Runtime) defineClass(name string, super *class) *class {
	c := &class{
		name:     name,
		super:    super,
		ctorSigs: make(map[string]bool),
		methods:  make(map[string]bool),
	}
	r.classes[name] = c
	return c
}

func (r *Runtime) loadBootClasses() {
	obj := r.defineClass("java.lang.Object", nil)
	r.defineClass("java.lang.String", obj)
	r.defineClass("java.lang.Class", obj)

	ste := r.defineClass("java.lang.StackTraceElement", obj)
	ste.methods["getClassName()Ljava/lang/String;"] = true
	ste.methods["getMethodName()Ljava/lang/String;"] = true
	ste.methods["getFileName()Ljava/lang/String;"] = true
	ste.methods["getLineNumber()I"] = true

	throwable := r.defineClass("java.lang.Throwable", obj)
	throwable.methods["getMessage()Ljava/lang/String;"] = true
	throwable.methods["getCause()Ljava/lang/Throwable;"] = true
	throwable.methods["getStackTrace()[Ljava/lang/StackTraceElement;"] = true
	throwable.methods["addSuppressed(Ljava/lang/Throwable;)V"] = true
	throwable.methods["getSuppressed()[Ljava/lang/Throwable;"] = true

	errorCls := r.defineClass("java.lang.Error", throwable)
	exception := r.defineClass("java.lang.Exception", throwable)
	runtimeEx := r.defineClass("java.lang.RuntimeException", exception)

	linkage := r.defineClass("java.lang.LinkageError", errorCls)
	r.defineClass("java.lang.ClassCircularityError", linkage)
	r.defineClass("java.lang.ClassFormatError", linkage)
	r.defineClass("java.lang.NoClassDefFoundError", linkage)
	initErr := r.defineClass("java.lang.ExceptionInInitializerError", linkage)
	initErr.methods["getException()Ljava/lang/Throwable;"] = true
	incompat := r.defineClass("java.lang.IncompatibleClassChangeError", linkage)
	r.defineClass("java.lang.NoSuchMethodError", incompat)
	r.defineClass("java.lang.NoSuchFieldError", incompat)

	vmErr := r.defineClass("java.lang.VirtualMachineError", errorCls)
	r.defineClass("java.lang.OutOfMemoryError", vmErr)

	reflective := r.defineClass("java.lang.ReflectiveOperationException", exception)
	r.defineClass("java.lang.ClassNotFoundException", reflective)
	r.defineClass("java.lang.InstantiationException", reflective)

	illegalArg := r.defineClass("java.lang.IllegalArgumentException", runtimeEx)
	r.defineClass("java.lang.NumberFormatException", illegalArg)
	r.defineClass("java.lang.IllegalMonitorStateException", runtimeEx)
	indexOOB := r.defineClass("java.lang.IndexOutOfBoundsException", runtimeEx)
	r.defineClass("java.lang.ArrayIndexOutOfBoundsException", indexOOB)
	r.defineClass("java.lang.StringIndexOutOfBoundsException", indexOOB)
	r.defineClass("java.lang.ArrayStoreException", runtimeEx)
	r.defineClass("java.lang.SecurityException", runtimeEx)

	// Every throwable class accepts the standard constructor shapes; the
	// index exceptions additionally take an int index.
	for _, c := range r.classes {
		if !c.isSubclassOf(throwable) {
			continue
		}
		c.ctorSigs["()V"] = true
		c.ctorSigs["(Ljava/lang/String;)V"] = true
		c.ctorSigs["(Ljava/lang/String;Ljava/lang/Throwable;)V"] = true
		c.ctorSigs["(Ljava/lang/Throwable;)V"] = true
		if c.isSubclassOf(indexOOB) {
			c.ctorSigs["(I)V"] = true
		}
	}
}

// record notes a slot invocation and flags it as a violation when a
// non-safe slot runs with a pending exception.
func (r *Runtime) record(slot string, safe bool) {
	r.calls[slot]++
	if r.pending != nil && !safe {
		r.violations = append(r.violations,
			fmt.Sprintf("%s invoked with pending %s", slot, r.pending.class.name))
	}
}

func (r *Runtime) newRef(target any, global bool) uintptr {
	ref := r.next
	r.next++
	r.refs[ref] = target
	if global {
		r.global[ref] = true
	} else {
		top := len(r.frames) - 1
		r.frames[top] = append(r.frames[top], ref)
	}
	return ref
}

func (r *Runtime) resolve(ref uintptr) any {
	if ref == 0 {
		return nil
	}
	target, ok := r.refs[ref]
	if !ok {
		panic(fmt.Sprintf("mockjvm: use of dead reference %#x", ref))
	}
	return target
}

func (r *Runtime) resolveObject(ref uintptr) *object {
	target := r.resolve(ref)
	if target == nil {
		return nil
	}
	o, ok := target.(*object)
	if !ok {
		panic(fmt.Sprintf("mockjvm: reference %#x is not an object", ref))
	}
	return o
}

func (r *Runtime) resolveClass(ref uintptr) *class {
	target := r.resolve(ref)
	if target == nil {
		return nil
	}
	c, ok := target.(*class)
	if !ok {
		panic(fmt.Sprintf("mockjvm: reference %#x is not a class", ref))
	}
	return c
}

func (r *Runtime) classRef(c *class) ffi.ClassRef {
	// Class objects get one stable global reference each.
	if ref, ok := r.classRefs[c]; ok {
		return ref
	}
	ref := ffi.ClassRef(r.newRef(c, true))
	r.classRefs[c] = ref
	return ref
}

func (r *Runtime) newString(s string) uintptr {
	return r.newRef(&object{class: r.classes["java.lang.String"], str: s}, false)
}

func (r *Runtime) throw(className, msg string) {
	cls := r.classes[className]
	if cls == nil {
		panic("mockjvm: unknown throwable class " + className)
	}
	r.pending = r.newThrowable(cls, msg, true, nil)
}

func (r *Runtime) newThrowable(cls *class, msg string, hasMsg bool, cause *object) *object {
	t := &object{
		class:      cls,
		hasMessage: hasMsg,
		message:    msg,
		cause:      cause,
	}
	t.frames = []*object{
		{
			class:      r.classes["java.lang.StackTraceElement"],
			declClass:  cls.name,
			methodName: "<init>",
			fileName:   "Mock.java",
			line:       42,
		},
		{
			class:      r.classes["java.lang.StackTraceElement"],
			declClass:  "MockHarness",
			methodName: "run",
			fileName:   "MockHarness.java",
			line:       7,
		},
	}
	return t
}
