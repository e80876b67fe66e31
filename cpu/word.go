package cpu

import (
	"fmt"
)

// Word is a single 32-bit instruction word.
type Word uint32

// Field shifts and masks.
const (
	SHIFT_OP    = 26
	SHIFT_RS    = 21
	SHIFT_RT    = 16
	SHIFT_RD    = 11
	SHIFT_SHAMT = 6

	MASK_OP     = 0x3f
	MASK_OP_RS  = 0x7ff
	MASK_REG    = 0x1f
	MASK_SHAMT  = 0x1f
	MASK_IMM    = 0xffff
	MASK_TARGET = 0x3ff_ffff
	MASK_LOW21  = 0x1f_ffff
	MASK_FUNCT  = 0x3f
	MASK_LOW11  = 0x7ff
)

// Opcode returns the primary opcode, bits 26..31.
func (word Word) Opcode() uint32 {
	return (uint32(word) >> SHIFT_OP) & MASK_OP
}

// OpRs returns the opcode and rs fields combined, bits 21..31.
func (word Word) OpRs() uint32 {
	return (uint32(word) >> SHIFT_RS) & MASK_OP_RS
}

// Rs returns the source register index, bits 21..25.
func (word Word) Rs() Register {
	return Register((uint32(word) >> SHIFT_RS) & MASK_REG)
}

// Base returns the base register of a load or store. It shares bits
// 21..25 with Rs.
func (word Word) Base() Register {
	return word.Rs()
}

// Rt returns the target register index, bits 16..20.
func (word Word) Rt() Register {
	return Register((uint32(word) >> SHIFT_RT) & MASK_REG)
}

// Rd returns the destination register index, bits 11..15.
func (word Word) Rd() Register {
	return Register((uint32(word) >> SHIFT_RD) & MASK_REG)
}

// Imm returns the 16-bit immediate, bits 0..15, as a signed value.
func (word Word) Imm() int16 {
	return int16(uint32(word) & MASK_IMM)
}

// Offset returns the 16-bit load/store/branch offset. It shares bits
// 0..15 with Imm.
func (word Word) Offset() int16 {
	return word.Imm()
}

// Shamt returns the shift amount, bits 6..10.
func (word Word) Shamt() uint32 {
	return (uint32(word) >> SHIFT_SHAMT) & MASK_SHAMT
}

// Target returns the 26-bit jump target, bits 0..25.
func (word Word) Target() uint32 {
	return uint32(word) & MASK_TARGET
}

// Low21 returns bits 0..20.
func (word Word) Low21() uint32 {
	return uint32(word) & MASK_LOW21
}

// Funct returns bits 0..5.
func (word Word) Funct() uint32 {
	return uint32(word) & MASK_FUNCT
}

// Low11 returns bits 0..10, the shift amount and function code combined.
func (word Word) Low11() uint32 {
	return uint32(word) & MASK_LOW11
}

// Op classifies the word.
func (word Word) Op() Op {
	return Classify(word)
}

// String returns the assembly language representation of the word.
func (word Word) String() (out string) {
	op := Classify(word)

	switch op.Format() {
	case FORMAT_R:
		out = fmt.Sprintf("%v %v, %v, %v", op, word.Rd(), word.Rs(), word.Rt())
	case FORMAT_SHIFT:
		out = fmt.Sprintf("%v %v, %v, %d", op, word.Rd(), word.Rt(), word.Shamt())
	case FORMAT_I:
		out = fmt.Sprintf("%v %v, %v, %d", op, word.Rt(), word.Rs(), word.Imm())
	case FORMAT_LUI:
		out = fmt.Sprintf("%v %v, 0x%04x", op, word.Rt(), uint16(word.Imm()))
	case FORMAT_MEM:
		out = fmt.Sprintf("%v %v, %d(%v)", op, word.Rt(), word.Offset(), word.Base())
	case FORMAT_BRANCH2:
		out = fmt.Sprintf("%v %v, %v, %d", op, word.Rs(), word.Rt(), word.Offset())
	case FORMAT_BRANCH1:
		out = fmt.Sprintf("%v %v, %d", op, word.Rs(), word.Offset())
	case FORMAT_JUMP:
		out = fmt.Sprintf("%v 0x%07x", op, word.Target()<<2)
	case FORMAT_JR:
		out = fmt.Sprintf("%v %v", op, word.Rs())
	default:
		out = op.String()
		if word != SYSCALL_WORD {
			out = fmt.Sprintf("%v ; 0x%08x", out, uint32(word))
		}
	}

	return
}
