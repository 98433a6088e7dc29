// Package ffi models the JNI environment as a versioned table of function
// slots and provides the single raw dispatch primitive used by the call
// wrappers in the env package.
//
// All knowledge of the underlying function-pointer table is confined to this
// package and to the backend that populates a Table (libjvm for a real JVM).
// Code outside this package never dereferences the table directly; it goes
// through Invoke with a slot descriptor, or through one of the checked
// wrappers built on top of it.
package ffi

import "fmt"

// Version is a JNI interface version as reported by GetVersion.
type Version int32

const (
	Version1_1 Version = 0x00010001
	Version1_2 Version = 0x00010002
	Version1_4 Version = 0x00010004
	Version1_6 Version = 0x00010006
	Version1_8 Version = 0x00010008
	Version9   Version = 0x00090000
	Version10  Version = 0x000a0000
)

// String returns the version in "major.minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", int32(v)>>16, int32(v)&0xffff)
}

// AtLeast reports whether v is the same or a newer interface version
// than other.
func (v Version) AtLeast(other Version) bool {
	return v >= other
}

// Return codes shared by the table slots that report status as a jint.
const (
	OK         int32 = 0
	ErrCode    int32 = -1
	Detached   int32 = -2
	BadVersion int32 = -3
)
