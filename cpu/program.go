package cpu

import (
	"encoding/binary"
	"iter"
)

// Opcode represents a line of assembled code or data with its source
// location.
type Opcode struct {
	LineNo    int
	Address   uint32
	Words     []string
	Codes     []Word
	Data      []uint8
	LinkLabel string
}

// Size returns the number of bytes the opcode occupies.
func (op *Opcode) Size() uint32 {
	return uint32(4*len(op.Codes) + len(op.Data))
}

// Image returns the bytes of the opcode as loaded into memory: the
// instruction words little-endian, followed by any data.
func (op *Opcode) Image() (image []uint8) {
	image = make([]uint8, 0, op.Size())
	for _, code := range op.Codes {
		image = binary.LittleEndian.AppendUint32(image, uint32(code))
	}
	image = append(image, op.Data...)
	return
}

// Program is an assembled program.
type Program struct {
	Entry   uint32 // Address of the first instruction to execute.
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int // Byte offset of the address within the opcode.
}

// Debug returns the opcode that covers an address.
func (prog *Program) Debug(address uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address-op.Address < op.Size() {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(address - op.Address),
			}
			break
		}
	}

	return
}

// Codes iterates over every instruction word and its address.
func (prog *Program) Codes() iter.Seq2[uint32, Word] {
	return func(yield func(address uint32, code Word) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Address+uint32(4*n), code) {
					return
				}
			}
		}
	}
}

// Bytes iterates over the program image, little-endian, one byte at a time.
func (prog *Program) Bytes() iter.Seq2[uint32, uint8] {
	return func(yield func(address uint32, value uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Image() {
				if !yield(op.Address+uint32(n), value) {
					return
				}
			}
		}
	}
}
