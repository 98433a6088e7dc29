package mockjvm

import "github.com/deepnoodle-ai/jnigo/ffi"

// Inspection and fault-injection hooks for tests. These bypass the table
// and are never recorded as calls.

// Pending reports whether an exception is pending.
func (r *Runtime) Pending() bool { return r.pending != nil }

// PendingClassName returns the binary class name of the pending exception,
// or "" when none is pending.
func (r *Runtime) PendingClassName() string {
	if r.pending == nil {
		return ""
	}
	return r.pending.class.name
}

// Calls returns how many times the named slot was invoked.
func (r *Runtime) Calls(slot string) int { return r.calls[slot] }

// TotalCalls returns the number of slot invocations across all slots.
func (r *Runtime) TotalCalls() int {
	total := 0
	for _, n := range r.calls {
		total += n
	}
	return total
}

// Violations returns every recorded invocation of a non-safe slot while an
// exception was pending. A correct caller produces none.
func (r *Runtime) Violations() []string { return r.violations }

// FrameDepth returns the current local frame depth, counting the root frame.
func (r *Runtime) FrameDepth() int { return len(r.frames) }

// LiveLocalRefs returns the number of live local references across all
// frames.
func (r *Runtime) LiveLocalRefs() int {
	n := 0
	for _, frame := range r.frames {
		n += len(frame)
	}
	return n
}

// ThrowNow makes an exception of the given binary class name pending, as if
// thrown by Java code. It panics on an unknown class.
func (r *Runtime) ThrowNow(className, msg string) {
	r.throw(className, msg)
}

// DropPendingThrowable makes ExceptionCheck keep reporting a pending
// exception while ExceptionOccurred returns null, a contract violation the
// wrappers must treat as fatal.
func (r *Runtime) DropPendingThrowable() {
	if r.pending == nil {
		panic("mockjvm: DropPendingThrowable with nothing pending")
	}
	r.dropPending = true
}

// NewThrowableRef constructs a throwable of the given binary class name
// without making it pending and returns a local reference to it.
func (r *Runtime) NewThrowableRef(className, msg string) ffi.ThrowableRef {
	cls := r.classes[className]
	if cls == nil {
		panic("mockjvm: unknown throwable class " + className)
	}
	return ffi.ThrowableRef(r.newRef(r.newThrowable(cls, msg, true, nil), false))
}
