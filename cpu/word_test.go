package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordFields(t *testing.T) {
	assert := assert.New(t)

	// 100011 01001 01010 11111 11111 111100  =  lw $t2, -4($t1)
	word := Word(0x8d2a_fffc)

	assert.Equal(uint32(0x23), word.Opcode())
	assert.Equal(uint32(0x469), word.OpRs())
	assert.Equal(Register(9), word.Rs())
	assert.Equal(Register(9), word.Base())
	assert.Equal(Register(10), word.Rt())
	assert.Equal(Register(31), word.Rd())
	assert.Equal(int16(-4), word.Imm())
	assert.Equal(int16(-4), word.Offset())
	assert.Equal(uint32(0x1f), word.Shamt())
	assert.Equal(uint32(0x12a_fffc), word.Target())
	assert.Equal(uint32(0xa_fffc), word.Low21())
	assert.Equal(uint32(0x3c), word.Funct())
	assert.Equal(uint32(0x7fc), word.Low11())
	assert.Equal(OP_LW, word.Op())
}

func TestWordString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word Word
		text string
	}){
		{MakeCodeR(OP_ADD, REG_V0, REG_A0, REG_A1), "add $v0, $a0, $a1"},
		{MakeCodeShift(OP_SLL, REG_T0, REG_T8, 4), "sll $t0, $t8, 4"},
		{MakeCodeI(OP_ADDI, REG_SP, REG_SP, 0xfff8), "addi $sp, $sp, -8"},
		{MakeCodeI(OP_LUI, REG_ZERO, REG_AT, 0x1001), "lui $at, 0x1001"},
		{MakeCodeI(OP_LW, REG_SP, REG_T0, 0xfffc), "lw $t0, -4($sp)"},
		{MakeCodeI(OP_BEQ, REG_S0, REG_ZERO, 3), "beq $s0, $zero, 3"},
		{MakeCodeI(OP_BGEZ, REG_A0, REG_ZERO, 0xffff), "bgez $a0, -1"},
		{MakeCodeJ(OP_JAL, 0x0100_0004), "jal 0x4000010"},
		{MakeCodeJr(REG_RA), "jr $ra"},
		{MakeCodeSyscall(), "syscall"},
		{Word(0xffff_ffff), "syscall ; 0xffffffff"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.word.String())
	}
}
