package cpu

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mips32/io"
)

func FuzzExecute(f *testing.F) {
	for op := Op(0); op < OP_COUNT; op++ {
		f.Add(uint32(MakeCodeR(op, REG_T0, REG_A0, REG_A1)), uint32(0x0040_0000), uint32(SYS_PRINT_INT))
		f.Add(uint32(MakeCodeI(op, REG_A0, REG_T0, 0x8000)), uint32(0xffff_fffc), uint32(SYS_READ_STRING))
	}
	f.Add(uint32(0xffff_ffff), uint32(0), uint32(SYS_EXIT))

	f.Fuzz(func(t *testing.T, code uint32, start uint32, selector uint32) {
		assert := assert.New(t)

		word := Word(code)
		op := Classify(word)
		assert.True(op.Valid())

		reg := &traceRegisters{}
		for n := range reg.RegisterFile {
			reg.RegisterFile[n] = 0x0101_0101 * uint32(n)
		}
		reg.RegisterFile[REG_ZERO] = 0
		reg.RegisterFile[REG_V0] = selector
		reg.RegisterFile[REG_A1] = 16

		mem := &traceMemory{}
		output := &bytes.Buffer{}
		tape := &io.Tape{Input: strings.NewReader("123 abc\n"), Output: output}

		cpu := NewCpu(reg, mem, tape)

		pc := start
		exit, err := cpu.Execute(word, &pc)

		code_str := fmt.Sprintf("0x%08x (%v) pc:0x%08x v0:%d", code, word, start, selector)

		if op != OP_SYSTEMCALL {
			assert.NoError(err, code_str)
			assert.False(exit, code_str)
		}

		switch op.Class() {
		case CLASS_BRANCH:
			taken := start + uint32(int32(word.Offset()))<<2
			assert.True(pc == start+4 || pc == taken, code_str)
		case CLASS_JUMP:
			if op != OP_JR {
				assert.Equal((start&SEGMENT_MASK)|(word.Target()<<2), pc, code_str)
			}
		case CLASS_SYSCALL:
			if exit {
				assert.Equal(start, pc, code_str)
			} else {
				assert.Equal(start+4, pc, code_str)
			}
		default:
			assert.Equal(start+4, pc, code_str)
		}

		// $zero always reads zero.
		assert.Equal(uint32(0), reg.RegisterFile[REG_ZERO], code_str)

		// Only stores and read_string write memory.
		if op.Class() != CLASS_STORE && !(op == OP_SYSTEMCALL && Syscall(selector) == SYS_READ_STRING) {
			assert.Empty(mem.Write, code_str)
		}
	})
}
