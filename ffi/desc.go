package ffi

// Desc statically describes one table slot: its diagnostic name, the
// interface version that introduced it, and whether the JNI specification
// documents it as safe to call while an exception is pending.
//
// Descriptors are constructed once as package variables and passed by value
// at each call site together with the closure that selects the slot.
type Desc struct {
	// Name is the JNI entry point name, used verbatim in diagnostics
	// ("GetMethodID result" and the like).
	Name string

	// Since is the first interface version that provides this slot.
	Since Version

	// Safe marks the slot as a member of the fixed allow-list of entry
	// points that may be invoked with a pending exception.
	Safe bool
}

// The slots bound by this library. The allow-list flags follow the JNI
// design specification: only exception state queries, reference releases,
// monitor exit and local frame push/pop may run with a pending exception.
var (
	DescGetVersion        = Desc{Name: "GetVersion", Since: Version1_1}
	DescFindClass         = Desc{Name: "FindClass", Since: Version1_1}
	DescThrow             = Desc{Name: "Throw", Since: Version1_1}
	DescThrowNew          = Desc{Name: "ThrowNew", Since: Version1_1}
	DescExceptionOccurred = Desc{Name: "ExceptionOccurred", Since: Version1_1, Safe: true}
	DescExceptionDescribe = Desc{Name: "ExceptionDescribe", Since: Version1_1, Safe: true}
	DescExceptionClear    = Desc{Name: "ExceptionClear", Since: Version1_1, Safe: true}
	DescExceptionCheck    = Desc{Name: "ExceptionCheck", Since: Version1_2, Safe: true}
	DescFatalError        = Desc{Name: "FatalError", Since: Version1_1, Safe: true}
	DescPushLocalFrame    = Desc{Name: "PushLocalFrame", Since: Version1_2, Safe: true}
	DescPopLocalFrame     = Desc{Name: "PopLocalFrame", Since: Version1_2, Safe: true}
	DescNewGlobalRef      = Desc{Name: "NewGlobalRef", Since: Version1_1}
	DescDeleteGlobalRef   = Desc{Name: "DeleteGlobalRef", Since: Version1_1, Safe: true}
	DescDeleteLocalRef    = Desc{Name: "DeleteLocalRef", Since: Version1_1, Safe: true}
	DescNewLocalRef       = Desc{Name: "NewLocalRef", Since: Version1_2}
	DescGetObjectClass    = Desc{Name: "GetObjectClass", Since: Version1_1}
	DescIsInstanceOf      = Desc{Name: "IsInstanceOf", Since: Version1_1}
	DescIsSameObject      = Desc{Name: "IsSameObject", Since: Version1_1}
	DescGetMethodID       = Desc{Name: "GetMethodID", Since: Version1_1}
	DescGetStaticMethodID = Desc{Name: "GetStaticMethodID", Since: Version1_1}
	DescGetFieldID        = Desc{Name: "GetFieldID", Since: Version1_1}
	DescNewObjectA        = Desc{Name: "NewObjectA", Since: Version1_1}

	DescCallObjectMethodA       = Desc{Name: "CallObjectMethodA", Since: Version1_1}
	DescCallBooleanMethodA      = Desc{Name: "CallBooleanMethodA", Since: Version1_1}
	DescCallIntMethodA          = Desc{Name: "CallIntMethodA", Since: Version1_1}
	DescCallVoidMethodA         = Desc{Name: "CallVoidMethodA", Since: Version1_1}
	DescCallStaticObjectMethodA = Desc{Name: "CallStaticObjectMethodA", Since: Version1_1}

	DescNewStringUTF          = Desc{Name: "NewStringUTF", Since: Version1_1}
	DescGetStringUTFChars     = Desc{Name: "GetStringUTFChars", Since: Version1_1}
	DescGetArrayLength        = Desc{Name: "GetArrayLength", Since: Version1_1}
	DescGetObjectArrayElement = Desc{Name: "GetObjectArrayElement", Since: Version1_1}
	DescMonitorEnter          = Desc{Name: "MonitorEnter", Since: Version1_1}
	DescMonitorExit           = Desc{Name: "MonitorExit", Since: Version1_1, Safe: true}
)
