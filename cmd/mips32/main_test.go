package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mips32/cpu"
	"github.com/ezrec/mips32/emulator"
)

func TestDump(t *testing.T) {
	assert := assert.New(t)

	emu := &Machine{Emulator: emulator.NewEmulator()}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"main: addi $t0, $zero, 5",
		"      syscall",
	}, "\n")))
	assert.NoError(err)
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)
	_, err = emu.Tick()
	assert.NoError(err)

	text := &strings.Builder{}
	emu.Dump(text)
	dump := text.String()

	assert.Contains(dump, "pc: 0x00400004 ticks: 1")
	assert.Contains(dump, "$t0: 0000_0005")

	// The register file is shown once, followed by the line at the PC.
	assert.Equal(1, strings.Count(dump, "$t0:"))
	assert.Contains(dump, "LineNo: (int) 2")
	assert.Contains(dump, `(string) (len=7) "syscall"`)
}
