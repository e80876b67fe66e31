package cpu

//go:generate go tool stringer -linecomment -type=Op

// Op is the operation an instruction word encodes.
type Op int

const (
	OP_ADD        = Op(0)  // add
	OP_ADDU       = Op(1)  // addu
	OP_SUB        = Op(2)  // sub
	OP_MUL        = Op(3)  // mul
	OP_AND        = Op(4)  // and
	OP_OR         = Op(5)  // or
	OP_XOR        = Op(6)  // xor
	OP_SLLV       = Op(7)  // sllv
	OP_SRLV       = Op(8)  // srlv
	OP_SLT        = Op(9)  // slt
	OP_ADDI       = Op(10) // addi
	OP_ANDI       = Op(11) // andi
	OP_ORI        = Op(12) // ori
	OP_XORI       = Op(13) // xori
	OP_SLL        = Op(14) // sll
	OP_SRL        = Op(15) // srl
	OP_SLTI       = Op(16) // slti
	OP_LUI        = Op(17) // lui
	OP_LB         = Op(18) // lb
	OP_LH         = Op(19) // lh
	OP_LW         = Op(20) // lw
	OP_SB         = Op(21) // sb
	OP_SH         = Op(22) // sh
	OP_SW         = Op(23) // sw
	OP_BEQ        = Op(24) // beq
	OP_BNE        = Op(25) // bne
	OP_BLEZ       = Op(26) // blez
	OP_BGTZ       = Op(27) // bgtz
	OP_BLTZ       = Op(28) // bltz
	OP_BGEZ       = Op(29) // bgez
	OP_J          = Op(30) // j
	OP_JAL        = Op(31) // jal
	OP_JR         = Op(32) // jr
	OP_SYSTEMCALL = Op(33) // syscall

	OP_COUNT = 34
)

//go:generate go tool stringer -linecomment -type=OpClass

// OpClass groups operations that the executor handles alike. CLASS_ALU
// covers the register/register and shift forms, CLASS_IMM the
// register/immediate forms.
type OpClass int

const (
	CLASS_ALU     = OpClass(0) // alu
	CLASS_IMM     = OpClass(1) // imm
	CLASS_LOAD    = OpClass(2) // load
	CLASS_STORE   = OpClass(3) // store
	CLASS_BRANCH  = OpClass(4) // branch
	CLASS_JUMP    = OpClass(5) // jump
	CLASS_SYSCALL = OpClass(6) // syscall
)

//go:generate go tool stringer -linecomment -type=OpFormat

// OpFormat is the assembly operand layout of an operation.
type OpFormat int

const (
	FORMAT_NONE    = OpFormat(0) // none
	FORMAT_R       = OpFormat(1) // $d, $s, $t
	FORMAT_SHIFT   = OpFormat(2) // $d, $t, shamt
	FORMAT_I       = OpFormat(3) // $t, $s, imm
	FORMAT_LUI     = OpFormat(4) // $t, imm
	FORMAT_MEM     = OpFormat(5) // $t, offset($b)
	FORMAT_BRANCH2 = OpFormat(6) // $s, $t, offset
	FORMAT_BRANCH1 = OpFormat(7) // $s, offset
	FORMAT_JUMP    = OpFormat(8) // target
	FORMAT_JR      = OpFormat(9) // $s
)

type opInfo struct {
	class  OpClass
	format OpFormat
	width  int // bytes moved by a load or store
}

var _op_info = [OP_COUNT]opInfo{
	OP_ADD:        {CLASS_ALU, FORMAT_R, 0},
	OP_ADDU:       {CLASS_ALU, FORMAT_R, 0},
	OP_SUB:        {CLASS_ALU, FORMAT_R, 0},
	OP_MUL:        {CLASS_ALU, FORMAT_R, 0},
	OP_AND:        {CLASS_ALU, FORMAT_R, 0},
	OP_OR:         {CLASS_ALU, FORMAT_R, 0},
	OP_XOR:        {CLASS_ALU, FORMAT_R, 0},
	OP_SLLV:       {CLASS_ALU, FORMAT_R, 0},
	OP_SRLV:       {CLASS_ALU, FORMAT_R, 0},
	OP_SLT:        {CLASS_ALU, FORMAT_R, 0},
	OP_ADDI:       {CLASS_IMM, FORMAT_I, 0},
	OP_ANDI:       {CLASS_IMM, FORMAT_I, 0},
	OP_ORI:        {CLASS_IMM, FORMAT_I, 0},
	OP_XORI:       {CLASS_IMM, FORMAT_I, 0},
	OP_SLL:        {CLASS_ALU, FORMAT_SHIFT, 0},
	OP_SRL:        {CLASS_ALU, FORMAT_SHIFT, 0},
	OP_SLTI:       {CLASS_IMM, FORMAT_I, 0},
	OP_LUI:        {CLASS_IMM, FORMAT_LUI, 0},
	OP_LB:         {CLASS_LOAD, FORMAT_MEM, 1},
	OP_LH:         {CLASS_LOAD, FORMAT_MEM, 2},
	OP_LW:         {CLASS_LOAD, FORMAT_MEM, 4},
	OP_SB:         {CLASS_STORE, FORMAT_MEM, 1},
	OP_SH:         {CLASS_STORE, FORMAT_MEM, 2},
	OP_SW:         {CLASS_STORE, FORMAT_MEM, 4},
	OP_BEQ:        {CLASS_BRANCH, FORMAT_BRANCH2, 0},
	OP_BNE:        {CLASS_BRANCH, FORMAT_BRANCH2, 0},
	OP_BLEZ:       {CLASS_BRANCH, FORMAT_BRANCH1, 0},
	OP_BGTZ:       {CLASS_BRANCH, FORMAT_BRANCH1, 0},
	OP_BLTZ:       {CLASS_BRANCH, FORMAT_BRANCH1, 0},
	OP_BGEZ:       {CLASS_BRANCH, FORMAT_BRANCH1, 0},
	OP_J:          {CLASS_JUMP, FORMAT_JUMP, 0},
	OP_JAL:        {CLASS_JUMP, FORMAT_JUMP, 0},
	OP_JR:         {CLASS_JUMP, FORMAT_JR, 0},
	OP_SYSTEMCALL: {CLASS_SYSCALL, FORMAT_NONE, 0},
}

// opMap maps assembler mnemonics to operations.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, OP_COUNT)
	for op := range Op(OP_COUNT) {
		ops[op.String()] = op
	}
	return ops
}()

// OpOf returns the operation for an assembler mnemonic.
func OpOf(mnemonic string) (op Op, ok bool) {
	op, ok = opMap[mnemonic]
	return
}

// Valid returns true for a member of the closed set of operations.
func (op Op) Valid() bool {
	return op >= 0 && op < OP_COUNT
}

// Class returns the execution class of the operation.
func (op Op) Class() OpClass {
	return _op_info[op].class
}

// Format returns the assembler operand layout.
func (op Op) Format() OpFormat {
	return _op_info[op].format
}

// Width returns the number of bytes a load or store moves, else zero.
func (op Op) Width() int {
	return _op_info[op].width
}
