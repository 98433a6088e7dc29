package exceptions

import (
	"github.com/deepnoodle-ai/jnigo/env"
	"github.com/deepnoodle-ai/jnigo/ffi"
	"github.com/deepnoodle-ai/jnigo/objects"
)

// Typed wrappers for the bound java.lang exception types. Each is a plain
// struct over Throwable; all Throwable methods (GetMessage, GetCause,
// GetStackTrace, ...) are available on every wrapper.

type (
	ArrayIndexOutOfBoundsException  struct{ objects.Throwable }
	ArrayStoreException             struct{ objects.Throwable }
	ClassCircularityError           struct{ objects.Throwable }
	ClassFormatError                struct{ objects.Throwable }
	ClassNotFoundException          struct{ objects.Throwable }
	ExceptionInInitializerError     struct{ objects.Throwable }
	IllegalArgumentException        struct{ objects.Throwable }
	IllegalMonitorStateException    struct{ objects.Throwable }
	InstantiationException          struct{ objects.Throwable }
	LinkageError                    struct{ objects.Throwable }
	NoClassDefFoundError            struct{ objects.Throwable }
	NoSuchFieldError                struct{ objects.Throwable }
	NoSuchMethodError               struct{ objects.Throwable }
	NumberFormatException           struct{ objects.Throwable }
	OutOfMemoryError                struct{ objects.Throwable }
	RuntimeException                struct{ objects.Throwable }
	SecurityException               struct{ objects.Throwable }
	StringIndexOutOfBoundsException struct{ objects.Throwable }
)

// The bound identities. More specific classes must be listed before broader
// ones when assembling catch chains; for reference, ExceptionInInitializer,
// NoClassDefFound, ClassCircularity and ClassFormat are all LinkageError
// subclasses, and both index bindings extend IndexOutOfBoundsException.
var (
	ArrayIndexOutOfBounds  = bind[ArrayIndexOutOfBoundsException]("java.lang.ArrayIndexOutOfBoundsException")
	ArrayStore             = bind[ArrayStoreException]("java.lang.ArrayStoreException")
	ClassCircularity       = bind[ClassCircularityError]("java.lang.ClassCircularityError")
	ClassFormat            = bind[ClassFormatError]("java.lang.ClassFormatError")
	ClassNotFound          = bind[ClassNotFoundException]("java.lang.ClassNotFoundException")
	ExceptionInInitializer = bind[ExceptionInInitializerError]("java.lang.ExceptionInInitializerError")
	IllegalArgument        = bind[IllegalArgumentException]("java.lang.IllegalArgumentException")
	IllegalMonitorState    = bind[IllegalMonitorStateException]("java.lang.IllegalMonitorStateException")
	Instantiation          = bind[InstantiationException]("java.lang.InstantiationException")
	Linkage                = bind[LinkageError]("java.lang.LinkageError")
	NoClassDefFound        = bind[NoClassDefFoundError]("java.lang.NoClassDefFoundError")
	NoSuchField            = bind[NoSuchFieldError]("java.lang.NoSuchFieldError")
	NoSuchMethod           = bind[NoSuchMethodError]("java.lang.NoSuchMethodError")
	NumberFormat           = bind[NumberFormatException]("java.lang.NumberFormatException")
	OutOfMemory            = bind[OutOfMemoryError]("java.lang.OutOfMemoryError")
	Runtime                = bind[RuntimeException]("java.lang.RuntimeException")
	Security               = bind[SecurityException]("java.lang.SecurityException")
	StringIndexOutOfBounds = bind[StringIndexOutOfBoundsException]("java.lang.StringIndexOutOfBoundsException")
)

// GetException returns the exception thrown during static initialization,
// via the getException method specific to ExceptionInInitializerError.
func (x ExceptionInInitializerError) GetException(e *env.Env) (objects.Throwable, bool, error) {
	res, err := objects.CallObjectMethod(e, x.Ref.Object(), "getException", "()Ljava/lang/Throwable;")
	if err != nil {
		return objects.Throwable{}, false, err
	}
	if res.IsNil() {
		return objects.Throwable{}, false, nil
	}
	return objects.AsThrowable(ffi.ThrowableRef(res)), true, nil
}
