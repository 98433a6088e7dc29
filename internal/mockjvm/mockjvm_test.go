package mockjvm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/jnigo/ffi"
)

func TestRecordsViolations(t *testing.T) {
	rt := New()
	table := rt.Table()

	rt.ThrowNow("java.lang.RuntimeException", "boom")
	table.FindClass("java/lang/String")

	violations := rt.Violations()
	require.Len(t, violations, 1)
	require.Equal(t,
		"FindClass invoked with pending java.lang.RuntimeException",
		violations[0])
}

func TestSafeSlotsDoNotViolate(t *testing.T) {
	rt := New()
	table := rt.Table()

	rt.ThrowNow("java.lang.RuntimeException", "boom")
	require.True(t, table.ExceptionCheck())
	thrown := table.ExceptionOccurred()
	require.False(t, thrown.IsNil())
	table.DeleteLocalRef(thrown.Object())
	table.ExceptionClear()
	require.Empty(t, rt.Violations())
}

func TestDeadReferencePanics(t *testing.T) {
	rt := New()
	table := rt.Table()

	ref := rt.NewThrowableRef("java.lang.RuntimeException", "boom")
	table.DeleteLocalRef(ref.Object())

	require.Panics(t, func() {
		table.GetObjectClass(ref.Object())
	})
}

func TestPopLocalFrameKillsRefs(t *testing.T) {
	rt := New()
	table := rt.Table()

	require.Equal(t, ffi.OK, table.PushLocalFrame(4))
	ref := rt.NewThrowableRef("java.lang.RuntimeException", "boom")
	require.Equal(t, 1, rt.LiveLocalRefs())
	table.PopLocalFrame(0)
	require.Equal(t, 0, rt.LiveLocalRefs())
	require.Equal(t, 1, rt.FrameDepth())

	require.Panics(t, func() {
		table.GetObjectClass(ref.Object())
	})
}

func TestPopLocalFramePromotesResult(t *testing.T) {
	rt := New()
	table := rt.Table()

	table.PushLocalFrame(4)
	ref := rt.NewThrowableRef("java.lang.RuntimeException", "boom")
	survivor := table.PopLocalFrame(ref.Object())
	require.False(t, survivor.IsNil())

	// The promoted reference stays alive in the parent frame.
	cls := table.GetObjectClass(survivor)
	require.False(t, cls.IsNil())
}

func TestClassHierarchy(t *testing.T) {
	rt := New()
	table := rt.Table()

	nfe := table.FindClass("java/lang/NumberFormatException")
	iae := table.FindClass("java/lang/IllegalArgumentException")
	require.False(t, nfe.IsNil())
	require.False(t, iae.IsNil())

	thrown := rt.NewThrowableRef("java.lang.NumberFormatException", "12x")
	require.True(t, table.IsInstanceOf(thrown.Object(), iae))
	sec := table.FindClass("java/lang/SecurityException")
	require.False(t, table.IsInstanceOf(thrown.Object(), sec))
}

func TestGetObjectArrayElementBounds(t *testing.T) {
	rt := New()
	table := rt.Table()

	thrown := rt.NewThrowableRef("java.lang.RuntimeException", "boom")
	cls := table.GetObjectClass(thrown.Object())
	m := table.GetMethodID(cls, "getStackTrace", "()[Ljava/lang/StackTraceElement;")
	arr := table.CallObjectMethodA(thrown.Object(), m, nil)
	require.Equal(t, int32(2), table.GetArrayLength(arr))

	elem := table.GetObjectArrayElement(arr, 5)
	require.True(t, elem.IsNil())
	require.Equal(t, "java.lang.ArrayIndexOutOfBoundsException", rt.PendingClassName())
}
