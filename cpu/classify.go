package cpu

// Primary opcodes and function codes that are not looked up by table.
const (
	OPCODE_SPECIAL  = 0x00
	OPCODE_REGIMM   = 0x01
	OPCODE_J        = 0x02
	OPCODE_JAL      = 0x03
	OPCODE_LUI      = 0x0f
	OPCODE_SPECIAL2 = 0x1c

	OP_RS_SPECIAL = 0x000 // opcode 0, rs 0
	OP_RS_LUI     = 0x1e0 // opcode 0xf, rs 0

	FUNCT_SLL     = 0x00
	FUNCT_SRL     = 0x02
	FUNCT_JR      = 0x08
	FUNCT_SYSCALL = 0x0c
	FUNCT_MUL     = 0x02

	REGIMM_BLTZ = 0x00
	REGIMM_BGEZ = 0x01
)

// _special_ops are the opcode 0 operations keyed by shift amount and
// function code combined.
var _special_ops = map[uint32]Op{
	0x20: OP_ADD,
	0x21: OP_ADDU,
	0x22: OP_SUB,
	0x24: OP_AND,
	0x25: OP_OR,
	0x26: OP_XOR,
	0x04: OP_SLLV,
	0x06: OP_SRLV,
	0x2a: OP_SLT,
}

// _imm_ops are the register/immediate operations keyed by opcode.
var _imm_ops = map[uint32]Op{
	0x08: OP_ADDI,
	0x0c: OP_ANDI,
	0x0d: OP_ORI,
	0x0e: OP_XORI,
	0x0a: OP_SLTI,
}

// _mem_ops are the loads and stores keyed by opcode.
var _mem_ops = map[uint32]Op{
	0x20: OP_LB,
	0x21: OP_LH,
	0x23: OP_LW,
	0x28: OP_SB,
	0x29: OP_SH,
	0x2b: OP_SW,
}

// _branch_ops are the branches keyed by opcode.
var _branch_ops = map[uint32]Op{
	0x04: OP_BEQ,
	0x05: OP_BNE,
	0x06: OP_BLEZ,
	0x07: OP_BGTZ,
}

// _regimm_ops are the opcode 1 branches keyed by the rt field.
var _regimm_ops = map[Register]Op{
	REGIMM_BLTZ: OP_BLTZ,
	REGIMM_BGEZ: OP_BGEZ,
}

// Classify returns the operation encoded by a word. Every word classifies;
// anything unrecognized is OP_SYSTEMCALL.
//
// Several encodings overlap, so the order of the checks below is
// significant: the first match wins.
func Classify(word Word) Op {
	opcode := word.Opcode()
	op_rs := word.OpRs()

	if opcode == OPCODE_SPECIAL {
		if op, ok := _special_ops[word.Low11()]; ok {
			return op
		}
	}

	if opcode == OPCODE_SPECIAL2 && word.Low11() == FUNCT_MUL {
		return OP_MUL
	}

	if op, ok := _imm_ops[opcode]; ok {
		return op
	}

	if op_rs == OP_RS_SPECIAL {
		switch word.Funct() {
		case FUNCT_SLL:
			return OP_SLL
		case FUNCT_SRL:
			return OP_SRL
		}
	}

	if op_rs == OP_RS_LUI {
		return OP_LUI
	}

	if op, ok := _mem_ops[opcode]; ok {
		return op
	}

	if op, ok := _branch_ops[opcode]; ok {
		return op
	}

	if opcode == OPCODE_REGIMM {
		if op, ok := _regimm_ops[word.Rt()]; ok {
			return op
		}
	}

	switch {
	case opcode == OPCODE_J:
		return OP_J
	case opcode == OPCODE_JAL:
		return OP_JAL
	case opcode == OPCODE_SPECIAL && word.Low21() == FUNCT_JR:
		return OP_JR
	}

	return OP_SYSTEMCALL
}
