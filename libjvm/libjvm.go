//go:build unix

// Package libjvm loads a real JVM shared library at runtime and exposes it
// through the ffi function table. It resolves JNI_CreateJavaVM with purego,
// builds the per-attachment table by env vtable slot index, and owns the VM
// lifecycle: create, attach, detach, destroy.
package libjvm

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/jnigo/ffi"
)

// JavaVM vtable slots.
const (
	vmDestroyJavaVM       = 3
	vmAttachCurrentThread = 4
	vmDetachCurrentThread = 5
	vmGetEnv              = 6
)

// Options configure VM creation.
type Options struct {
	version            ffi.Version
	args               []string
	ignoreUnrecognized bool
}

// Option is a configuration function for Create.
type Option func(*Options)

// WithVersion requests a specific interface version. The default is 1.8.
func WithVersion(v ffi.Version) Option {
	return func(o *Options) { o.version = v }
}

// WithArgs appends JVM launch arguments, e.g. "-Djava.class.path=/app" or
// "-Xmx512m".
func WithArgs(args ...string) Option {
	return func(o *Options) { o.args = append(o.args, args...) }
}

// WithIgnoreUnrecognized makes the JVM ignore launch arguments it does not
// recognize instead of failing creation.
func WithIgnoreUnrecognized() Option {
	return func(o *Options) { o.ignoreUnrecognized = true }
}

// VM is a loaded, running JVM.
type VM struct {
	lib uintptr
	vm  uintptr

	mu       sync.Mutex
	attached bool
	closed   bool
}

// Matches JavaVMOption.
type vmOption struct {
	optionString *byte
	extraInfo    uintptr
}

// Matches JavaVMInitArgs.
type vmInitArgs struct {
	version            int32
	nOptions           int32
	options            *vmOption
	ignoreUnrecognized uint8
}

// Create loads the JVM shared library at path (e.g.
// "$JAVA_HOME/lib/server/libjvm.so") and starts a VM in this process. A
// process hosts at most one VM; creating a second fails inside the library.
func Create(path string, opts ...Option) (*VM, error) {
	options := &Options{version: ffi.Version1_8}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("libjvm: load %s: %w", path, err)
	}
	createFn, err := purego.Dlsym(lib, "JNI_CreateJavaVM")
	if err != nil {
		_ = purego.Dlclose(lib)
		return nil, fmt.Errorf("libjvm: resolve JNI_CreateJavaVM: %w", err)
	}

	cOptions := make([]vmOption, 0, len(options.args))
	for _, arg := range options.args {
		cOptions = append(cOptions, vmOption{optionString: cstring(arg)})
	}
	args := vmInitArgs{
		version:  int32(options.version),
		nOptions: int32(len(cOptions)),
	}
	if len(cOptions) > 0 {
		args.options = &cOptions[0]
	}
	if options.ignoreUnrecognized {
		args.ignoreUnrecognized = 1
	}

	// The creating thread comes back attached; pin it so the env pointer
	// stays valid until Detach.
	runtime.LockOSThread()
	var vmPtr, envPtr uintptr
	rc, _, _ := purego.SyscallN(createFn,
		uintptr(unsafe.Pointer(&vmPtr)),
		uintptr(unsafe.Pointer(&envPtr)),
		uintptr(unsafe.Pointer(&args)))
	runtime.KeepAlive(cOptions)
	if int32(rc) != ffi.OK {
		runtime.UnlockOSThread()
		_ = purego.Dlclose(lib)
		return nil, fmt.Errorf("libjvm: JNI_CreateJavaVM failed with code %d", int32(rc))
	}
	return &VM{lib: lib, vm: vmPtr, attached: true}, nil
}

// Attach attaches the calling goroutine's OS thread to the VM and returns a
// validated handle for it. The goroutine is locked to its thread until
// Detach.
func (v *VM) Attach() (*ffi.Handle, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, fmt.Errorf("libjvm: VM is closed")
	}
	runtime.LockOSThread()
	env, err := v.currentEnv()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	h, err := ffi.NewHandle(bindTable(env))
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	v.attached = true
	return h, nil
}

// currentEnv returns the env pointer for the current thread, attaching it
// first if needed. Callers hold v.mu and have locked the OS thread.
func (v *VM) currentEnv() (uintptr, error) {
	var env uintptr
	rc := int32(vtcall(v.vm, vmGetEnv,
		uintptr(unsafe.Pointer(&env)), uintptr(uint32(ffi.Version1_8))))
	switch rc {
	case ffi.OK:
		return env, nil
	case ffi.Detached:
		rc = int32(vtcall(v.vm, vmAttachCurrentThread,
			uintptr(unsafe.Pointer(&env)), 0))
		if rc != ffi.OK {
			return 0, fmt.Errorf("libjvm: AttachCurrentThread failed with code %d", rc)
		}
		return env, nil
	case ffi.BadVersion:
		return 0, fmt.Errorf("libjvm: interface version 1.8 not supported")
	default:
		return 0, fmt.Errorf("libjvm: GetEnv failed with code %d", rc)
	}
}

// Detach detaches the current thread from the VM. Any handle obtained for
// this thread is invalid afterwards.
func (v *VM) Detach() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return fmt.Errorf("libjvm: VM is closed")
	}
	rc := int32(vtcall(v.vm, vmDetachCurrentThread))
	runtime.UnlockOSThread()
	v.attached = false
	if rc != ffi.OK {
		return fmt.Errorf("libjvm: DetachCurrentThread failed with code %d", rc)
	}
	return nil
}

// Close detaches the current thread if it is attached, destroys the VM and
// unloads the library. Every failing step is reported; later steps still
// run.
func (v *VM) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true

	var result error
	if v.attached {
		if rc := int32(vtcall(v.vm, vmDetachCurrentThread)); rc != ffi.OK {
			result = multierror.Append(result,
				fmt.Errorf("libjvm: DetachCurrentThread failed with code %d", rc))
		}
		runtime.UnlockOSThread()
		v.attached = false
	}
	if rc := int32(vtcall(v.vm, vmDestroyJavaVM)); rc != ffi.OK {
		result = multierror.Append(result,
			fmt.Errorf("libjvm: DestroyJavaVM failed with code %d", rc))
	}
	if err := purego.Dlclose(v.lib); err != nil {
		result = multierror.Append(result, fmt.Errorf("libjvm: unload: %w", err))
	}
	return result
}
