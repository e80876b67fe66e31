// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"github.com/ezrec/mips32/cpu"
	"github.com/ezrec/mips32/emulator"
)

// defineList collects -D NAME=VALUE flags.
type defineList map[string]string

func (dl defineList) String() string {
	return fmt.Sprintf("%v", map[string]string(dl))
}

func (dl defineList) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("expected NAME=VALUE, got %q", value)
	}
	dl[name] = val
	return nil
}

func main() {
	var compile string
	var input string
	var output string
	var verbose bool
	var ticks int
	var seed int
	var raw bool
	var dump bool
	defines := defineList{}

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&ticks, "n", 0, "Maximum ticks to run, 0 for no limit")
	flag.IntVar(&seed, "seed", 0, "Scramble unused memory with this seed, 0 to zero it")
	flag.Var(defines, "D", "Assembler predefine NAME=VALUE (repeatable)")
	flag.BoolVar(&raw, "raw", false, "Raw terminal console input")
	flag.BoolVar(&dump, "dump", false, "Dump the machine state on exit")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: No source file given (-c)", os.Args[0])
	}

	emu := &Machine{Emulator: emulator.NewEmulator()}

	emu.Verbose = verbose
	emu.MaxTicks = ticks
	emu.Seed = seed

	// Compile a new instruction stream.
	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	for key, value := range defines {
		asm.Predefine(key, value)
	}
	prog, err := asm.Parse(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	emu.Program = prog

	err = attach(emu, input, output, raw)
	if err != nil {
		log.Fatal(err)
	}
	defer emu.Close()

	err = emu.Reset()
	if err == nil {
		for done := false; !done && err == nil; {
			done, err = emu.Tick()
		}
	}

	if dump {
		emu.Dump(os.Stderr)
	}

	if err != nil {
		emu.Close()
		log.Fatal(err)
	}
}

// Machine is an emulator attached to the process console.
type Machine struct {
	*emulator.Emulator
	closers []func() error
}

// Close releases the console files, and restores the terminal.
func (m *Machine) Close() (err error) {
	for _, closer := range slices.Backward(m.closers) {
		err = errors.Join(err, closer())
	}
	m.closers = nil
	return errors.Join(err, m.Emulator.Close())
}

// Dump writes the machine state, and the source line at the PC.
func (m *Machine) Dump(w io.Writer) {
	fmt.Fprintf(w, "pc: 0x%08x ticks: %d power: %d\n", m.Pc, m.Ticks(), m.Power())
	fmt.Fprint(w, m.Register.String())
	spew.Fdump(w, m.Program.Debug(m.Pc))
}

// attach connects the console to stdio or files.
func attach(m *Machine, input string, output string, raw bool) (err error) {
	defer func() {
		if err != nil {
			m.Close()
		}
	}()

	if input == "-" {
		m.Tape.Input = os.Stdin
		fd := int(os.Stdin.Fd())
		if raw && term.IsTerminal(fd) {
			var state *term.State
			state, err = term.MakeRaw(fd)
			if err != nil {
				return
			}
			m.closers = append(m.closers, func() error { return term.Restore(fd, state) })
			m.Tape.Crlf = true
		}
	} else {
		var inf *os.File
		inf, err = os.Open(input)
		if err != nil {
			return
		}
		m.closers = append(m.closers, inf.Close)
		m.Tape.Input = inf
	}

	if output == "-" {
		m.Tape.Output = os.Stdout
	} else {
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		m.closers = append(m.closers, ouf.Close)
		m.Tape.Output = ouf
	}

	return
}
