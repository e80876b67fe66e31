package cpu

import (
	"errors"
	"log"

	"github.com/ezrec/mips32/io"
)

// Console is the console the syscalls use.
type Console io.Console

// Memory is the byte-addressable memory image the CPU executes against.
type Memory interface {
	GetByte(address uint32) uint8
	SetByte(address uint32, value uint8)
}

// Cpu executes single instruction words against a register file, a
// memory image and a console. It holds no state between instructions.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers Registers // Register file.
	Memory    Memory    // Memory image.
	Console   Console   // Console used by the syscalls.
	Abi       *Abi      // Register roles; DefaultAbi if nil.
}

// NewCpu creates a new CPU attached to a register file, memory and console.
func NewCpu(registers Registers, memory Memory, console Console) (cpu *Cpu) {
	cpu = &Cpu{
		Registers: registers,
		Memory:    memory,
		Console:   console,
	}

	return
}

// abi returns the register roles in effect.
func (cpu *Cpu) abi() *Abi {
	if cpu.Abi == nil {
		return &DefaultAbi
	}
	return cpu.Abi
}

// Execute executes a single instruction word located at *pc, and updates
// *pc to the address of the next instruction.
//
// exit is set only when the exit syscall ran; *pc is then left unchanged.
// An error is returned only when a console syscall fails, in which case
// *pc has still been advanced.
func (cpu *Cpu) Execute(word Word, pc *uint32) (exit bool, err error) {
	op := Classify(word)

	if cpu.Verbose {
		log.Printf("%08x: %08x %v", *pc, uint32(word), word)
	}

	next_pc := *pc + 4
	reg := cpu.Registers

	switch op.Class() {
	case CLASS_ALU:
		var a, b uint32
		if op.Format() == FORMAT_SHIFT {
			a = reg.GetRegister(word.Rt())
			b = word.Shamt()
		} else {
			a = reg.GetRegister(word.Rs())
			b = reg.GetRegister(word.Rt())
		}
		reg.SetRegister(word.Rd(), cpu.doAlu(op, a, b))
	case CLASS_IMM:
		if op == OP_LUI {
			reg.SetRegister(word.Rt(), uint32(uint16(word.Imm()))<<16)
			break
		}
		a := reg.GetRegister(word.Rs())
		// Every register/immediate operation sign-extends.
		b := uint32(int32(word.Imm()))
		reg.SetRegister(word.Rt(), cpu.doAlu(op, a, b))
	case CLASS_LOAD:
		address := reg.GetRegister(word.Base()) + uint32(int32(word.Offset()))
		reg.SetRegister(word.Rt(), cpu.load(address, op.Width()))
	case CLASS_STORE:
		address := reg.GetRegister(word.Base()) + uint32(int32(word.Offset()))
		cpu.store(address, op.Width(), reg.GetRegister(word.Rt()))
	case CLASS_BRANCH:
		if cpu.doBranch(op, word) {
			// Relative to this instruction, not to the one after it.
			next_pc = *pc + uint32(int32(word.Offset()))<<2
		}
	case CLASS_JUMP:
		switch op {
		case OP_JAL:
			reg.SetRegister(cpu.abi().ReturnAddress, *pc+4)
			fallthrough
		case OP_J:
			next_pc = (*pc & SEGMENT_MASK) | (word.Target() << 2)
		case OP_JR:
			next_pc = reg.GetRegister(word.Rs())
		}
	case CLASS_SYSCALL:
		exit, err = cpu.syscall()
		if exit {
			return
		}
		if err != nil {
			err = errors.Join(ErrSyscall, err)
		}
	}

	*pc = next_pc

	return
}

// doAlu performs the arithmetic or logical operation, and returns the
// output value. Arithmetic wraps at 32 bits.
func (cpu *Cpu) doAlu(op Op, a uint32, b uint32) (output uint32) {
	switch op {
	case OP_ADD, OP_ADDU, OP_ADDI:
		output = a + b
	case OP_SUB:
		output = a - b
	case OP_MUL:
		output = a * b
	case OP_AND, OP_ANDI:
		output = a & b
	case OP_OR, OP_ORI:
		output = a | b
	case OP_XOR, OP_XORI:
		output = a ^ b
	case OP_SLLV, OP_SLL:
		output = a << (b & 0x1f)
	case OP_SRLV, OP_SRL:
		output = a >> (b & 0x1f)
	case OP_SLT, OP_SLTI:
		if int32(a) < int32(b) {
			output = 1
		}
	}

	return
}

// doBranch evaluates the branch condition. Comparisons against zero are
// signed.
func (cpu *Cpu) doBranch(op Op, word Word) (taken bool) {
	reg := cpu.Registers

	s := int32(reg.GetRegister(word.Rs()))

	switch op {
	case OP_BEQ:
		taken = s == int32(reg.GetRegister(word.Rt()))
	case OP_BNE:
		taken = s != int32(reg.GetRegister(word.Rt()))
	case OP_BLEZ:
		taken = s <= 0
	case OP_BGTZ:
		taken = s > 0
	case OP_BLTZ:
		taken = s < 0
	case OP_BGEZ:
		taken = s >= 0
	}

	return
}

// load reads a little-endian value of width bytes, sign-extending
// anything narrower than a word.
func (cpu *Cpu) load(address uint32, width int) (value uint32) {
	for n := range width {
		value |= uint32(cpu.Memory.GetByte(address+uint32(n))) << (8 * n)
	}

	switch width {
	case 1:
		value = uint32(int32(int8(value)))
	case 2:
		value = uint32(int32(int16(value)))
	}

	return
}

// store writes the low width bytes of value, little-endian.
func (cpu *Cpu) store(address uint32, width int, value uint32) {
	for n := range width {
		cpu.Memory.SetByte(address+uint32(n), uint8(value>>(8*n)))
	}
}
