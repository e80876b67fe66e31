package cpu

// SYSCALL_WORD is the canonical encoding of the syscall instruction.
const SYSCALL_WORD = Word(FUNCT_SYSCALL)

// encoding holds the fixed fields of an operation's encoding.
type encoding struct {
	opcode uint32
	low    uint32   // shift amount and function code, bits 0..10
	rt     Register // fixed rt field, for the opcode 1 branches
}

var _op_encoding = [OP_COUNT]encoding{
	OP_ADD:        {OPCODE_SPECIAL, 0x20, 0},
	OP_ADDU:       {OPCODE_SPECIAL, 0x21, 0},
	OP_SUB:        {OPCODE_SPECIAL, 0x22, 0},
	OP_MUL:        {OPCODE_SPECIAL2, FUNCT_MUL, 0},
	OP_AND:        {OPCODE_SPECIAL, 0x24, 0},
	OP_OR:         {OPCODE_SPECIAL, 0x25, 0},
	OP_XOR:        {OPCODE_SPECIAL, 0x26, 0},
	OP_SLLV:       {OPCODE_SPECIAL, 0x04, 0},
	OP_SRLV:       {OPCODE_SPECIAL, 0x06, 0},
	OP_SLT:        {OPCODE_SPECIAL, 0x2a, 0},
	OP_ADDI:       {0x08, 0, 0},
	OP_ANDI:       {0x0c, 0, 0},
	OP_ORI:        {0x0d, 0, 0},
	OP_XORI:       {0x0e, 0, 0},
	OP_SLL:        {OPCODE_SPECIAL, FUNCT_SLL, 0},
	OP_SRL:        {OPCODE_SPECIAL, FUNCT_SRL, 0},
	OP_SLTI:       {0x0a, 0, 0},
	OP_LUI:        {OPCODE_LUI, 0, 0},
	OP_LB:         {0x20, 0, 0},
	OP_LH:         {0x21, 0, 0},
	OP_LW:         {0x23, 0, 0},
	OP_SB:         {0x28, 0, 0},
	OP_SH:         {0x29, 0, 0},
	OP_SW:         {0x2b, 0, 0},
	OP_BEQ:        {0x04, 0, 0},
	OP_BNE:        {0x05, 0, 0},
	OP_BLEZ:       {0x06, 0, 0},
	OP_BGTZ:       {0x07, 0, 0},
	OP_BLTZ:       {OPCODE_REGIMM, 0, REGIMM_BLTZ},
	OP_BGEZ:       {OPCODE_REGIMM, 0, REGIMM_BGEZ},
	OP_J:          {OPCODE_J, 0, 0},
	OP_JAL:        {OPCODE_JAL, 0, 0},
	OP_JR:         {OPCODE_SPECIAL, FUNCT_JR, 0},
	OP_SYSTEMCALL: {OPCODE_SPECIAL, FUNCT_SYSCALL, 0},
}

func makeWord(opcode uint32, s, t, d Register, low uint32) Word {
	return Word((opcode&MASK_OP)<<SHIFT_OP |
		(uint32(s)&MASK_REG)<<SHIFT_RS |
		(uint32(t)&MASK_REG)<<SHIFT_RT |
		(uint32(d)&MASK_REG)<<SHIFT_RD |
		low&MASK_LOW11)
}

// MakeCodeR creates a register/register instruction: op $d, $s, $t.
func MakeCodeR(op Op, d, s, t Register) Word {
	enc := _op_encoding[op]
	return makeWord(enc.opcode, s, t, d, enc.low)
}

// MakeCodeShift creates a shift-by-immediate instruction: op $d, $t, shamt.
func MakeCodeShift(op Op, d, t Register, shamt uint32) Word {
	enc := _op_encoding[op]
	return makeWord(enc.opcode, 0, t, d, (shamt&MASK_SHAMT)<<SHIFT_SHAMT|enc.low)
}

// MakeCodeI creates an instruction with a 16-bit immediate field. The
// register fields are placed as named; for loads and stores s is the base,
// and for the opcode 1 branches t is replaced by the operation's selector.
func MakeCodeI(op Op, s, t Register, imm uint16) Word {
	enc := _op_encoding[op]
	if enc.opcode == OPCODE_REGIMM {
		t = enc.rt
	}
	return Word((enc.opcode&MASK_OP)<<SHIFT_OP |
		(uint32(s)&MASK_REG)<<SHIFT_RS |
		(uint32(t)&MASK_REG)<<SHIFT_RT |
		uint32(imm))
}

// MakeCodeJ creates a jump with a 26-bit word target.
func MakeCodeJ(op Op, target uint32) Word {
	enc := _op_encoding[op]
	return Word((enc.opcode&MASK_OP)<<SHIFT_OP | target&MASK_TARGET)
}

// MakeCodeJr creates a jump to the address held in $s.
func MakeCodeJr(s Register) Word {
	return makeWord(OPCODE_SPECIAL, s, 0, 0, FUNCT_JR)
}

// MakeCodeSyscall creates a syscall instruction.
func MakeCodeSyscall() Word {
	return SYSCALL_WORD
}
