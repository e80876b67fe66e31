package io

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
)

// Tape is a Console over a byte stream. It wraps an io.Reader for input
// and an io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Crlf   bool // If set, "\n" is written as "\r\n".

	reader *bufio.Reader
}

var _ Console = (*Tape)(nil)

// Rewind drops any buffered input. Call it after replacing Input.
func (tc *Tape) Rewind() {
	tc.reader = nil
}

// in returns the buffered input stream.
func (tc *Tape) in() (in *bufio.Reader, err error) {
	if tc.Input == nil {
		err = ErrNoInput
		return
	}

	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Input)
	}

	in = tc.reader
	return
}

func (tc *Tape) write(data []byte) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	if tc.Crlf {
		data = bytes.ReplaceAll(data, []byte{'\n'}, []byte{'\r', '\n'})
	}

	_, err = tc.Output.Write(data)
	return
}

// PrintInt writes a signed decimal integer.
func (tc *Tape) PrintInt(value int32) error {
	return tc.write(strconv.AppendInt(nil, int64(value), 10))
}

// PrintString writes the bytes of text.
func (tc *Tape) PrintString(text []byte) error {
	return tc.write(text)
}

// PrintChar writes a single byte.
func (tc *Tape) PrintChar(value byte) error {
	return tc.write([]byte{value})
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ReadInt reads a decimal integer the way scanf("%d") does: leading
// whitespace is skipped, an optional sign is accepted, and the first byte
// after the digits is left unread. Values outside the int32 range are
// clamped to the nearest limit.
//
// io.EOF is returned if the input ends before any non-space byte.
func (tc *Tape) ReadInt() (value int32, err error) {
	in, err := tc.in()
	if err != nil {
		return
	}

	var c byte
	for {
		c, err = in.ReadByte()
		if err != nil {
			return
		}
		if !isSpace(c) {
			break
		}
	}

	var text []byte
	if c == '-' || c == '+' {
		text = append(text, c)
		c, err = in.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrInputNumber
		}
		if err != nil {
			return
		}
	}

	digits := 0
	for isDigit(c) {
		text = append(text, c)
		digits++
		c, err = in.ReadByte()
		if err != nil {
			break
		}
	}

	switch {
	case err == nil:
		in.UnreadByte()
	case errors.Is(err, io.EOF):
		err = nil
	default:
		return
	}

	if digits == 0 {
		err = ErrInputNumber
		return
	}

	// ParseInt saturates at the bit size limits on overflow.
	v64, err := strconv.ParseInt(string(text), 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		err = nil
	}
	if err != nil {
		return
	}

	value = int32(v64)
	return
}

// ReadString reads up to limit bytes, stopping after a newline (which is
// included in text) or at the end of input. The end of input is not an
// error unless nothing could be read.
func (tc *Tape) ReadString(limit int) (text []byte, err error) {
	if limit <= 0 {
		return
	}

	in, err := tc.in()
	if err != nil {
		return
	}

	for len(text) < limit {
		var c byte
		c, err = in.ReadByte()
		if err != nil {
			break
		}
		text = append(text, c)
		if c == '\n' {
			break
		}
	}

	if errors.Is(err, io.EOF) && len(text) > 0 {
		err = nil
	}

	return
}

// ReadChar reads a single byte.
func (tc *Tape) ReadChar() (value byte, err error) {
	in, err := tc.in()
	if err != nil {
		return
	}

	value, err = in.ReadByte()
	return
}
