package ffi

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		version  Version
		expected string
	}{
		{Version1_1, "1.1"},
		{Version1_2, "1.2"},
		{Version1_8, "1.8"},
		{Version9, "9.0"},
		{Version10, "10.0"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.version.String(), tc.expected)
	}
}

func TestVersionAtLeast(t *testing.T) {
	assert.True(t, Version1_8.AtLeast(Version1_2))
	assert.True(t, Version1_2.AtLeast(Version1_2))
	assert.True(t, Version9.AtLeast(Version1_8))
	assert.False(t, Version1_1.AtLeast(Version1_2))
	assert.False(t, Version1_6.AtLeast(Version1_8))
}

func TestRefNilness(t *testing.T) {
	assert.True(t, ObjectRef(0).IsNil())
	assert.True(t, ClassRef(0).IsNil())
	assert.True(t, ThrowableRef(0).IsNil())
	assert.True(t, StringRef(0).IsNil())
	assert.True(t, MethodID(0).IsNil())
	assert.True(t, FieldID(0).IsNil())
	assert.False(t, ObjectRef(1).IsNil())
	assert.False(t, ThrowableRef(42).IsNil())
}

func TestRefUpcasts(t *testing.T) {
	assert.Equal(t, ClassRef(7).Object(), ObjectRef(7))
	assert.Equal(t, ThrowableRef(8).Object(), ObjectRef(8))
	assert.Equal(t, StringRef(9).Object(), ObjectRef(9))
}

func TestValuePacking(t *testing.T) {
	assert.Equal(t, RefValue(ObjectRef(17)).Ref(), ObjectRef(17))
	assert.Equal(t, RefValue(ThrowableRef(3)).Ref(), ObjectRef(3))
	assert.Equal(t, BoolValue(true), Value(1))
	assert.Equal(t, BoolValue(false), Value(0))
	assert.True(t, BoolValue(true).Bool())
	assert.False(t, BoolValue(false).Bool())
	assert.Equal(t, IntValue(-5).Int(), int32(-5))
	assert.Equal(t, IntValue(0x7fffffff).Int(), int32(0x7fffffff))
}

// minimalTable returns a table carrying only the slots NewHandle requires.
func minimalTable(version Version) *Table {
	return &Table{
		GetVersion:        func() Version { return version },
		ExceptionCheck:    func() bool { return false },
		ExceptionOccurred: func() ThrowableRef { return 0 },
		ExceptionClear:    func() {},
		PushLocalFrame:    func(capacity int32) int32 { return OK },
		PopLocalFrame:     func(result ObjectRef) ObjectRef { return 0 },
	}
}

func TestNewHandle(t *testing.T) {
	h, err := NewHandle(minimalTable(Version1_8))
	assert.Nil(t, err)
	assert.Equal(t, h.Version(), Version1_8)
}

func TestNewHandleNilTable(t *testing.T) {
	_, err := NewHandle(nil)
	assert.NotNil(t, err)
	assert.Equal(t, err.Error(), "ffi: nil function table")
}

func TestNewHandleMissingSlots(t *testing.T) {
	table := minimalTable(Version1_8)
	table.ExceptionCheck = nil
	_, err := NewHandle(table)
	assert.NotNil(t, err)

	table = minimalTable(Version1_8)
	table.PopLocalFrame = nil
	_, err = NewHandle(table)
	assert.NotNil(t, err)

	table = minimalTable(Version1_8)
	table.GetVersion = nil
	_, err = NewHandle(table)
	assert.NotNil(t, err)
}

func TestNewHandleRejectsOldVersion(t *testing.T) {
	_, err := NewHandle(minimalTable(Version1_1))
	assert.NotNil(t, err)
	assert.Equal(t, err.Error(), "ffi: interface version 1.2 or newer required")
}

func TestInvokeDispatchesThroughTable(t *testing.T) {
	table := minimalTable(Version1_6)
	calls := 0
	table.FindClass = func(name string) ClassRef {
		calls++
		assert.Equal(t, name, "java/lang/String")
		return ClassRef(99)
	}
	h, err := NewHandle(table)
	assert.Nil(t, err)

	ref := Invoke(h, DescFindClass, func(tb *Table) ClassRef {
		return tb.FindClass("java/lang/String")
	})
	assert.Equal(t, ref, ClassRef(99))
	assert.Equal(t, calls, 1)

	InvokeVoid(h, DescExceptionClear, func(tb *Table) { tb.ExceptionClear() })
}
