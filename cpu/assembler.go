// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Assembler sections.
const (
	SECTION_TEXT = 0
	SECTION_DATA = 1
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"SEGMENT_TEXT":  fmt.Sprintf("%#x", SEGMENT_TEXT),
	"SEGMENT_DATA":  fmt.Sprintf("%#x", SEGMENT_DATA),
	"SEGMENT_GP":    fmt.Sprintf("%#x", SEGMENT_GP),
	"SEGMENT_STACK": fmt.Sprintf("%#x", SEGMENT_STACK),
}

// ENTRY_LABEL is the label execution starts at, if defined.
const ENTRY_LABEL = "main"

var (
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
	reMemory    = regexp.MustCompile(`^(.*)\(([^()]+)\)$`)
)

// Assembler is a single pass macro assembler for MIPS32 assembly text.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	section int       // Current section.
	address [2]uint32 // Next address in each section.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint64(uint64(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// stripComment removes a '#' comment that is not inside a string literal.
func stripComment(text string) string {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '\\':
			if quoted {
				n++
			}
		case '"':
			quoted = !quoted
		case '\'':
			// Character literal, such as '#'
			if !quoted && n+2 < len(text) && text[n+2] == '\'' {
				n += 2
			}
		case '#':
			if !quoted {
				return text[:n]
			}
		}
	}
	return text
}

// parseLine parses a single line into words, handling labels, equates
// and macro invocations.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// A string literal is kept verbatim as the final word.
	var literal string
	if quote := strings.IndexByte(line, '"'); quote >= 0 {
		literal = strings.TrimSpace(line[quote:])
		line = line[:quote]
	}

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf(" %v ", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	// .equ CONST VALUE
	if len(words) > 0 && words[0] == ".equ" {
		if len(words) != 3 || len(literal) != 0 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	if len(literal) != 0 {
		words = append(words, literal)
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.currentAddress()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			body_lineno := macro.LineNo + n

			// Local labels are unique per invocation.
			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, body_lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: body_lineno, Err: err}
				return
			}

			err = asm.parseWords(words, body_lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: body_lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddress gets the next address of the current section.
func (asm *Assembler) currentAddress() uint32 {
	return asm.address[asm.section]
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.section = SECTION_TEXT
	asm.address = [2]uint32{SEGMENT_TEXT, SEGMENT_DATA}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = strings.FieldsFunc(strings.Join(words[2:], " "), func(r rune) bool {
					return unicode.IsSpace(r) || r == ','
				})
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}

		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		address, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}

		err = asm.link(op, address)
		if err != nil {
			return
		}
	}

	entry, ok := asm.Label[ENTRY_LABEL]
	if !ok {
		entry = SEGMENT_TEXT
	}

	prog = &Program{
		Entry:   entry,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// link patches the first code of an opcode with a resolved label address.
func (asm *Assembler) link(op *Opcode, address uint32) (err error) {
	if len(op.Codes) < 1 {
		log.Fatalf("Unable to link label '%s' to line %d: %v", op.LinkLabel, op.LineNo, op.Words)
	}

	code := &op.Codes[0]
	switch code.Op().Class() {
	case CLASS_BRANCH:
		var offset uint16
		offset, err = branchOffset(op.Address, address)
		if err != nil {
			return
		}
		*code |= Word(offset)
	case CLASS_JUMP:
		if address&3 != 0 || (address&SEGMENT_MASK) != (op.Address&SEGMENT_MASK) {
			err = ErrTargetRange
			return
		}
		*code |= Word((address >> 2) & MASK_TARGET)
	default:
		// la: lui + addi pair
		if len(op.Codes) != 2 {
			log.Fatalf("Missing codes for link label '%s' at line %d: %v", op.LinkLabel, op.LineNo, op.Words)
		}
		hi, lo := splitHiLo(address)
		op.Codes[0] |= Word(hi)
		op.Codes[1] |= Word(lo)
	}

	return
}

// branchOffset returns the encoded offset of a branch at 'from' to 'to'.
// Offsets count words from the branch instruction itself.
func branchOffset(from, to uint32) (offset uint16, err error) {
	delta := int64(int32(to - from))
	if delta&3 != 0 {
		err = ErrTargetInvalid
		return
	}
	delta /= 4
	if delta < -0x8000 || delta > 0x7fff {
		err = ErrTargetRange
		return
	}
	offset = uint16(delta)
	return
}

// splitHiLo splits a value for a lui + addi pair. The addi immediate is
// sign-extended, so the upper half is rounded to compensate.
func splitHiLo(value uint32) (hi, lo uint16) {
	lo = uint16(value)
	hi = uint16(value >> 16)
	if lo&0x8000 != 0 {
		hi++
	}
	return
}

// register parses a register operand.
func (asm *Assembler) register(word string) (reg Register, err error) {
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}
	reg, ok := RegisterOf(word)
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// immediate parses a 16-bit immediate, which may be written signed or
// unsigned.
func (asm *Assembler) immediate(word string) (imm uint16, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value > 0xffff && int32(value) < -0x8000 {
		err = ErrImmediateRange
		return
	}
	if value > 0xffff && int32(value) >= 0 {
		err = ErrImmediateRange
		return
	}
	imm = uint16(value)
	return
}

// memory parses an 'offset($base)' operand.
func (asm *Assembler) memory(word string) (base Register, offset uint16, err error) {
	match := reMemory.FindStringSubmatch(word)
	if match == nil {
		err = ErrRegisterInvalid
		return
	}

	base, err = asm.register(match[2])
	if err != nil {
		return
	}

	if len(match[1]) != 0 {
		offset, err = asm.immediate(match[1])
	}
	return
}

// operands checks the operand count of an instruction.
func operands(words []string, count int) (err error) {
	switch {
	case len(words)-1 < count:
		err = ErrOpcodeMissing
	case len(words)-1 > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseData assembles a data directive.
func (asm *Assembler) parseData(words []string) (data []uint8, err error) {
	args := words[1:]

	switch words[0] {
	case ".byte", ".half", ".word":
		if len(args) == 0 {
			err = ErrOpcodeMissing
			return
		}
		for _, arg := range args {
			var value uint32
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			switch words[0] {
			case ".byte":
				data = append(data, uint8(value))
			case ".half":
				data = append(data, uint8(value), uint8(value>>8))
			case ".word":
				data = append(data, uint8(value), uint8(value>>8), uint8(value>>16), uint8(value>>24))
			}
		}
	case ".ascii", ".asciiz":
		err = operands(words, 1)
		if err != nil {
			return
		}
		var text string
		text, err = strconv.Unquote(args[0])
		if err != nil {
			err = ErrParseString(args[0])
			return
		}
		data = []uint8(text)
		if words[0] == ".asciiz" {
			data = append(data, 0)
		}
	case ".space":
		err = operands(words, 1)
		if err != nil {
			return
		}
		var size uint32
		size, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		data = make([]uint8, size)
	case ".align":
		err = operands(words, 1)
		if err != nil {
			return
		}
		var power uint32
		power, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if power > 16 {
			err = ErrImmediateRange
			return
		}
		align := uint32(1) << power
		pad := (align - asm.currentAddress()%align) % align
		data = make([]uint8, pad)
	default:
		err = ErrDirectiveInvalid
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Word
	var data []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || (len(codes) == 0 && len(data) == 0) {
			return
		}
		opcode := Opcode{LineNo: lineno, Address: asm.currentAddress(), Words: initial_words, Codes: codes, Data: data, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.address[asm.section] += opcode.Size()
	}()

	// Directives
	switch words[0] {
	case ".text", ".data":
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		asm.section = SECTION_TEXT
		if words[0] == ".data" {
			asm.section = SECTION_DATA
		}
		if len(words) == 2 {
			var address uint32
			address, err = asm.valueOf(words[1])
			if err != nil {
				return
			}
			asm.address[asm.section] = address
		}
		return
	case ".globl", ".extern":
		return
	}

	if strings.HasPrefix(words[0], ".") {
		data, err = asm.parseData(words)
		return
	}

	// Pseudo instruction substitutions
	switch {
	case words[0] == "nop":
		err = operands(words, 0)
		words = []string{"sll", "$zero", "$zero", "0"}
	case words[0] == "move":
		err = operands(words, 2)
		if err == nil {
			words = []string{"addu", words[1], words[2], "$zero"}
		}
	case words[0] == "b":
		err = operands(words, 1)
		if err == nil {
			words = []string{"beq", "$zero", "$zero", words[1]}
		}
	case words[0] == "li":
		err = operands(words, 2)
		if err != nil {
			return
		}
		var t Register
		t, err = asm.register(words[1])
		if err != nil {
			return
		}
		var value uint32
		value, err = asm.valueOf(words[2])
		if err != nil {
			return
		}
		if int32(value) >= -0x8000 && int32(value) <= 0x7fff {
			codes = append(codes, MakeCodeI(OP_ADDI, REG_ZERO, t, uint16(value)))
			return
		}
		hi, lo := splitHiLo(value)
		codes = append(codes, MakeCodeI(OP_LUI, REG_ZERO, t, hi))
		if lo != 0 {
			codes = append(codes, MakeCodeI(OP_ADDI, t, t, lo))
		}
		return
	case words[0] == "la":
		err = operands(words, 2)
		if err != nil {
			return
		}
		var t Register
		t, err = asm.register(words[1])
		if err != nil {
			return
		}
		codes = append(codes,
			MakeCodeI(OP_LUI, REG_ZERO, t, 0),
			MakeCodeI(OP_ADDI, t, t, 0),
		)
		label = words[2]
		return
	}
	if err != nil {
		return
	}

	op, ok := OpOf(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	var s, t, d Register
	var imm uint16

	switch op.Format() {
	case FORMAT_NONE:
		err = operands(words, 0)
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeSyscall())
	case FORMAT_R:
		err = operands(words, 3)
		if err != nil {
			return
		}
		if d, err = asm.register(words[1]); err != nil {
			return
		}
		if s, err = asm.register(words[2]); err != nil {
			return
		}
		if t, err = asm.register(words[3]); err != nil {
			return
		}
		codes = append(codes, MakeCodeR(op, d, s, t))
	case FORMAT_SHIFT:
		err = operands(words, 3)
		if err != nil {
			return
		}
		if d, err = asm.register(words[1]); err != nil {
			return
		}
		if t, err = asm.register(words[2]); err != nil {
			return
		}
		var shamt uint32
		if shamt, err = asm.valueOf(words[3]); err != nil {
			return
		}
		if shamt > MASK_SHAMT {
			err = ErrImmediateRange
			return
		}
		codes = append(codes, MakeCodeShift(op, d, t, shamt))
	case FORMAT_I:
		err = operands(words, 3)
		if err != nil {
			return
		}
		if t, err = asm.register(words[1]); err != nil {
			return
		}
		if s, err = asm.register(words[2]); err != nil {
			return
		}
		if imm, err = asm.immediate(words[3]); err != nil {
			return
		}
		codes = append(codes, MakeCodeI(op, s, t, imm))
	case FORMAT_LUI:
		err = operands(words, 2)
		if err != nil {
			return
		}
		if t, err = asm.register(words[1]); err != nil {
			return
		}
		if imm, err = asm.immediate(words[2]); err != nil {
			return
		}
		codes = append(codes, MakeCodeI(op, REG_ZERO, t, imm))
	case FORMAT_MEM:
		err = operands(words, 2)
		if err != nil {
			return
		}
		if t, err = asm.register(words[1]); err != nil {
			return
		}
		if s, imm, err = asm.memory(words[2]); err != nil {
			return
		}
		codes = append(codes, MakeCodeI(op, s, t, imm))
	case FORMAT_BRANCH2, FORMAT_BRANCH1:
		args := 1
		if op.Format() == FORMAT_BRANCH2 {
			args = 2
		}
		err = operands(words, args+1)
		if err != nil {
			return
		}
		if s, err = asm.register(words[1]); err != nil {
			return
		}
		if args == 2 {
			if t, err = asm.register(words[2]); err != nil {
				return
			}
		}
		target := words[args+1]
		if _, num_err := asm.valueOf(target); num_err == nil {
			if imm, err = asm.immediate(target); err != nil {
				return
			}
		} else {
			label = target
		}
		codes = append(codes, MakeCodeI(op, s, t, imm))
	case FORMAT_JUMP:
		err = operands(words, 1)
		if err != nil {
			return
		}
		target := words[1]
		var address uint32
		if address, err = asm.valueOf(target); err == nil {
			if address&3 != 0 || (address&SEGMENT_MASK) != (asm.currentAddress()&SEGMENT_MASK) {
				err = ErrTargetRange
				return
			}
			codes = append(codes, MakeCodeJ(op, address>>2))
		} else {
			err = nil
			label = target
			codes = append(codes, MakeCodeJ(op, 0))
		}
	case FORMAT_JR:
		err = operands(words, 1)
		if err != nil {
			return
		}
		if s, err = asm.register(words[1]); err != nil {
			return
		}
		codes = append(codes, MakeCodeJr(s))
	default:
		err = ErrInstructionInvalid
	}

	return
}
