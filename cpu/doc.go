// Package cpu implements the decode and execute stage of an interpreter
// for a subset of the MIPS32 instruction set, and an assembler for it.
//
// An instruction word is classified into exactly one Op, executed against
// an external register file and byte-addressable memory image, and the
// program counter is advanced. Branches are relative to the address of the
// branch itself, and there are no delay slots. A small set of console
// syscalls, selected by $v0, reads and writes through a Console.
//
// The assembler accepts conventional MIPS assembly syntax with labels,
// equates, macros, data directives and compile-time expression evaluation.
package cpu
