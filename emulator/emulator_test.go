package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mips32/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(0, emu.Ticks())

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("10", defines["SYS_EXIT"])
	assert.Equal("4096", defines["PAGE_SIZE"])
}

func doRun(emu *Emulator, program []string, input []byte, t *testing.T) (output []byte) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		t.FailNow()
	}
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	emu.Tape.Input = bytes.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	emu.MaxTicks = 10000

	var done bool
	for !done {
		line := emu.LineNo()
		if line == 0 {
			t.Fatalf("pc 0x%08x is outside of the program", emu.Pc)
		}
		done, err = emu.Tick()
		if err != nil {
			t.Log(emu.Register.String())
			t.Fatalf("%v: %v", program[line-1], err)
		}
	}

	output = tape_output.Bytes()
	return
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".data",
		"value: .word 0x12345678",
		".text",
		"main: lw $t0, 0($gp)",
	}, "\n")))
	assert.NoError(err)

	emu.Program = prog
	emu.Register.SetRegister(cpu.REG_T0, 99)
	emu.Pc = 0x1234

	err = emu.Reset()
	assert.NoError(err)

	assert.Equal(uint32(cpu.SEGMENT_TEXT), emu.Pc)
	assert.Equal(uint32(cpu.SEGMENT_STACK), emu.Register.GetRegister(cpu.REG_SP))
	assert.Equal(uint32(cpu.SEGMENT_GP), emu.Register.GetRegister(cpu.REG_GP))
	assert.Equal(uint32(0), emu.Register.GetRegister(cpu.REG_T0))
	assert.Equal([]uint8{0x78, 0x56, 0x34, 0x12}, emu.Ram.Read(cpu.SEGMENT_DATA, 4))
	assert.Equal(0, emu.Power())
	assert.Equal(prog.Opcodes[1].Codes[0], emu.Fetch())
	assert.Equal(4, emu.LineNo())
}

func TestResetSeed(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".data",
		"value: .word 0x12345678",
		".text",
		"main: lw $t0, 0($gp)",
	}, "\n")))
	assert.NoError(err)

	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(make([]uint8, 64), emu.Ram.Read(cpu.SEGMENT_DATA+4, 64))

	emu.Seed = 7
	err = emu.Reset()
	assert.NoError(err)

	// The program survives, the slack around it does not.
	assert.Equal([]uint8{0x78, 0x56, 0x34, 0x12}, emu.Ram.Read(cpu.SEGMENT_DATA, 4))
	assert.Equal(prog.Opcodes[1].Codes[0], emu.Fetch())
	assert.Equal(0, emu.Power())
	slack := emu.Ram.Read(cpu.SEGMENT_DATA+4, 64)
	assert.NotEqual(make([]uint8, 64), slack)

	// The same seed gives the same memory.
	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(slack, emu.Ram.Read(cpu.SEGMENT_DATA+4, 64))
}

func TestHello(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	output := doRun(emu, []string{
		".data",
		"hello: .asciiz \"Hello, world!\\n\"",
		".text",
		"main:",
		"  la $a0, hello",
		"  li $v0, SYS_PRINT_STRING",
		"  syscall",
		"  li $v0, SYS_EXIT",
		"  syscall",
	}, nil, t)

	assert.Equal("Hello, world!\n", string(output))
	assert.Equal(6, emu.Ticks())
}

func TestSum(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	// Sum integers until a zero is read.
	program := []string{
		"main:",
		"  move $s0, $zero",
		"loop:",
		"  li $v0, SYS_READ_INT",
		"  syscall",
		"  beq $v0, $zero, done",
		"  add $s0, $s0, $v0",
		"  b loop",
		"done:",
		"  move $a0, $s0",
		"  li $v0, SYS_PRINT_INT",
		"  syscall",
		"  li $a0, '\\n'",
		"  li $v0, SYS_PRINT_CHAR",
		"  syscall",
		"  li $v0, SYS_EXIT",
		"  syscall",
	}

	table := [](struct {
		input  string
		output string
	}){
		{"0", "0\n"},
		{"1 2 3 0", "6\n"},
		{"-5\n10\n-20\n0\n", "-15\n"},
		{"2147483647 1 0", "-2147483648\n"},
	}

	for _, entry := range table {
		output := doRun(emu, program, []byte(entry.input), t)
		assert.Equal(entry.output, string(output), entry.input)
	}
}

func TestFunctionCall(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	output := doRun(emu, []string{
		".macro PUTC char",
		"  li $a0, char",
		"  li $v0, SYS_PRINT_CHAR",
		"  syscall",
		".endm",
		"square:",
		"  mul $v0, $a0, $a0",
		"  jr $ra",
		"main:",
		"  li $a0, 12",
		"  jal square",
		"  move $a0, $v0",
		"  li $v0, SYS_PRINT_INT",
		"  syscall",
		"  PUTC '!'",
		"  li $v0, SYS_EXIT",
		"  syscall",
	}, nil, t)

	assert.Equal("144!", string(output))
}

func TestStack(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	output := doRun(emu, []string{
		"main:",
		"  addi $sp, $sp, -8",
		"  li $t0, -2",
		"  sh $t0, 0($sp)",
		"  lh $t1, 0($sp)",
		"  lb $t2, 1($sp)",
		"  addi $sp, $sp, 8",
		"  add $a0, $t1, $t2",
		"  li $v0, SYS_PRINT_INT",
		"  syscall",
		"  li $v0, SYS_EXIT",
		"  syscall",
	}, nil, t)

	assert.Equal("-3", string(output))
	assert.Equal(uint32(cpu.SEGMENT_STACK), emu.Register.GetRegister(cpu.REG_SP))
}

func TestReadString(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	output := doRun(emu, []string{
		".data",
		"buffer: .space 16",
		".text",
		"main:",
		"  la $a0, buffer",
		"  li $a1, 16",
		"  li $v0, SYS_READ_STRING",
		"  syscall",
		"  li $v0, SYS_PRINT_STRING",
		"  syscall",
		"  li $v0, SYS_EXIT",
		"  syscall",
	}, []byte("echo\nignored"), t)

	assert.Equal("echo\n", string(output))
}

func TestErrors(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("main: b main\n"))
	assert.NoError(err)

	emu.Program = prog
	emu.MaxTicks = 3
	assert.NoError(emu.Reset())

	for range 3 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	_, err = emu.Tick()
	assert.ErrorIs(err, ErrTickLimit)
	var rt *ErrRuntime
	assert.ErrorAs(err, &rt)
	assert.Equal(1, rt.LineNo)
	assert.Equal(uint32(cpu.SEGMENT_TEXT), rt.Pc)

	// Console failure on output.
	prog, err = asm.Parse(strings.NewReader("main: li $v0, 1\nsyscall\n"))
	assert.NoError(err)
	emu.Program = prog
	emu.MaxTicks = 0
	assert.NoError(emu.Reset())
	emu.Tape.Output = nil

	_, err = emu.Tick()
	assert.NoError(err)
	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrSyscall)
	assert.ErrorAs(err, &rt)
	assert.Equal(2, rt.LineNo)
}
