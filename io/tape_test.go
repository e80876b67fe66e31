package io

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failReader struct{}

var errFail = errors.New("fail")

func (failReader) Read(p []byte) (int, error) {
	return 0, errFail
}

func TestTapePrint(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.PrintInt(-2147483648))
	assert.NoError(tape.PrintChar(' '))
	assert.NoError(tape.PrintInt(42))
	assert.NoError(tape.PrintString([]byte("\nbye\n")))
	assert.Equal("-2147483648 42\nbye\n", output.String())

	output.Reset()
	tape.Crlf = true
	assert.NoError(tape.PrintString([]byte("a\nb")))
	assert.NoError(tape.PrintChar('\n'))
	assert.Equal("a\r\nb\r\n", output.String())

	tape.Output = nil
	assert.ErrorIs(tape.PrintInt(1), ErrNoOutput)
}

func TestTapeReadInt(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input  string
		values []int32
		err    error
	}){
		{"1 2 3", []int32{1, 2, 3}, io.EOF},
		{"\t-7\n+8\n", []int32{-7, 8}, io.EOF},
		{"4294967296 -4294967296", []int32{2147483647, -2147483648}, io.EOF},
		{"12abc", []int32{12}, ErrInputNumber},
		{"-", nil, ErrInputNumber},
		{"- 1", nil, ErrInputNumber},
		{"", nil, io.EOF},
	}

	for _, entry := range table {
		tape := &Tape{Input: strings.NewReader(entry.input)}

		var values []int32
		var err error
		for {
			var value int32
			value, err = tape.ReadInt()
			if err != nil {
				break
			}
			values = append(values, value)
		}
		assert.Equal(entry.values, values, entry.input)
		assert.ErrorIs(err, entry.err, entry.input)
	}

	tape := &Tape{}
	_, err := tape.ReadInt()
	assert.ErrorIs(err, ErrNoInput)

	tape.Input = failReader{}
	_, err = tape.ReadInt()
	assert.ErrorIs(err, errFail)
}

func TestTapeReadString(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("hello\nworld")}

	text, err := tape.ReadString(3)
	assert.NoError(err)
	assert.Equal("hel", string(text))

	text, err = tape.ReadString(10)
	assert.NoError(err)
	assert.Equal("lo\n", string(text))

	text, err = tape.ReadString(10)
	assert.NoError(err)
	assert.Equal("world", string(text))

	text, err = tape.ReadString(10)
	assert.ErrorIs(err, io.EOF)
	assert.Empty(text)

	text, err = tape.ReadString(0)
	assert.NoError(err)
	assert.Empty(text)
}

func TestTapeReadChar(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("7x")}

	value, err := tape.ReadInt()
	assert.NoError(err)
	assert.Equal(int32(7), value)

	c, err := tape.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('x'), c)

	_, err = tape.ReadChar()
	assert.ErrorIs(err, io.EOF)

	// Rewind picks up a replaced input.
	tape.Input = strings.NewReader("y")
	tape.Rewind()
	c, err = tape.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('y'), c)
}
