// Package io provides the console the MIPS syscalls read and write.
package io

// Console is the byte-level terminal behind the console syscalls.
// Reads block until input is available.
type Console interface {
	// PrintInt writes a signed decimal integer.
	PrintInt(value int32) error
	// PrintString writes raw bytes.
	PrintString(text []byte) error
	// PrintChar writes a single byte.
	PrintChar(value byte) error
	// ReadInt reads a decimal integer, clamped to the int32 range.
	ReadInt() (value int32, err error)
	// ReadString reads at most limit bytes, stopping after a newline.
	ReadString(limit int) (text []byte, err error)
	// ReadChar reads a single byte.
	ReadChar() (value byte, err error)
}
