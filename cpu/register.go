package cpu

import (
	"fmt"
	"strings"
)

// Register is a general purpose register index, 0 through 31.
type Register uint8

const (
	REG_ZERO = Register(0)
	REG_AT   = Register(1)
	REG_V0   = Register(2)
	REG_V1   = Register(3)
	REG_A0   = Register(4)
	REG_A1   = Register(5)
	REG_A2   = Register(6)
	REG_A3   = Register(7)
	REG_T0   = Register(8)
	REG_S0   = Register(16)
	REG_T8   = Register(24)
	REG_K0   = Register(26)
	REG_GP   = Register(28)
	REG_SP   = Register(29)
	REG_FP   = Register(30)
	REG_RA   = Register(31)

	REGISTER_COUNT = 32
)

var _register_name = [REGISTER_COUNT]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// registerMap maps assembler register names, without the '$', to indexes.
var registerMap = func() map[string]Register {
	regs := make(map[string]Register, 2*REGISTER_COUNT+1)
	for n, name := range _register_name {
		regs[name] = Register(n)
		regs[fmt.Sprintf("%d", n)] = Register(n)
	}
	regs["s8"] = REG_FP
	return regs
}()

// RegisterOf parses an assembler register name such as "$t0" or "$8".
func RegisterOf(name string) (reg Register, ok bool) {
	if !strings.HasPrefix(name, "$") {
		return
	}
	reg, ok = registerMap[name[1:]]
	return
}

// String returns the ABI name of the register.
func (reg Register) String() string {
	if reg >= REGISTER_COUNT {
		return fmt.Sprintf("$%d?", uint8(reg))
	}
	return "$" + _register_name[reg]
}

// Registers is the register file the CPU executes against.
type Registers interface {
	GetRegister(index Register) uint32
	SetRegister(index Register, value uint32)
}

// Abi names the registers that have a fixed role during execution.
type Abi struct {
	ReturnAddress Register // Written by jal.
	Syscall       Register // Syscall selector.
	Result        Register // Syscall result.
	Arg0          Register // First syscall argument.
	Arg1          Register // Second syscall argument.
}

// DefaultAbi is the conventional MIPS register assignment.
var DefaultAbi = Abi{
	ReturnAddress: REG_RA,
	Syscall:       REG_V0,
	Result:        REG_V0,
	Arg0:          REG_A0,
	Arg1:          REG_A1,
}

// RegisterFile is a bank of 32 registers with $zero hardwired to zero.
type RegisterFile [REGISTER_COUNT]uint32

var _ Registers = (*RegisterFile)(nil)

// GetRegister returns the value of a register.
func (rf *RegisterFile) GetRegister(index Register) uint32 {
	return rf[index&MASK_REG]
}

// SetRegister sets a register. Writes to $zero are discarded.
func (rf *RegisterFile) SetRegister(index Register, value uint32) {
	index &= MASK_REG
	if index == REG_ZERO {
		return
	}
	rf[index] = value
}

// Reset clears all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}

// String returns a register dump, four registers per line.
func (rf *RegisterFile) String() (text string) {
	for n, val := range rf {
		text += fmt.Sprintf("% 5s: %04X_%04X", Register(n).String(), val>>16, val&0xffff)
		if n%4 == 3 {
			text += "\n"
		} else {
			text += " "
		}
	}

	return
}
