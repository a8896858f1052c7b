// Package unsafeconv provides zero-copy conversions between []byte and
// string for the connection read/write loop, where a request line and its
// response are both already uniquely owned and never mutated afterward.
package unsafeconv

import "unsafe"

// BytesToString reinterprets b as a string without copying. The returned
// string must not outlive any subsequent mutation of b.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes reinterprets s as a byte slice without copying. The
// returned slice must never be mutated.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
