// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/mips32/cpu"
	"github.com/ezrec/mips32/internal"
	"github.com/ezrec/mips32/io"
	"github.com/ezrec/mips32/memory"
)

var _emulator_defines = map[string]string{
	"PAGE_SIZE":      fmt.Sprintf("%v", memory.PAGE_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", cpu.REGISTER_COUNT),
}

// Emulator state. CPU + register file + memory + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	MaxTicks int          // If non-zero, the number of ticks allowed after a reset.
	Seed     int          // If non-zero, scrambles the unused bytes of loaded pages on reset.

	Register cpu.RegisterFile // Register file.
	Ram      memory.Ram       // Memory image.
	Tape     io.Tape          // Console.
	Pc       uint32           // Address of the next instruction.

	ticks int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Register, &emu.Ram, &emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	emu.Ram.Reset()
	emu.Tape.Rewind()

	return
}

// Reset loads the program image and sets up the registers to run it.
func (emu *Emulator) Reset() (err error) {
	emu.Ram.Verbose = false

	emu.Ram.Reset()
	emu.load()
	if emu.Seed != 0 {
		emu.Ram.Randomize(emu.Seed)
		emu.load()
	}

	emu.Register.Reset()
	emu.Register.SetRegister(cpu.REG_SP, cpu.SEGMENT_STACK)
	emu.Register.SetRegister(cpu.REG_GP, cpu.SEGMENT_GP)

	emu.Pc = emu.Program.Entry

	emu.Tape.Rewind()

	// Reset power stats.
	emu.Ram.BitsFlipped = 0
	emu.ticks = 0

	emu.Ram.Verbose = emu.Verbose

	return
}

// load copies every opcode of the program into memory.
func (emu *Emulator) load() {
	for _, op := range emu.Program.Opcodes {
		emu.Ram.Load(op.Address, op.Image())
	}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}

// Power returns the total power consumed, as bits flipped in memory.
func (emu *Emulator) Power() int {
	return emu.Ram.BitsFlipped
}

// Fetch returns the little-endian instruction word at the PC.
func (emu *Emulator) Fetch() (code cpu.Word) {
	for n := range 4 {
		code |= cpu.Word(emu.Ram.GetByte(emu.Pc+uint32(n))) << (8 * n)
	}
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose
	emu.Ram.Verbose = emu.Verbose

	pc := emu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.ticks >= emu.MaxTicks {
		err = ErrTickLimit
		return
	}

	code := emu.Fetch()
	emu.ticks++

	done, err = emu.Cpu.Execute(code, &emu.Pc)

	return
}
