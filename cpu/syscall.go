package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
)

//go:generate go tool stringer -linecomment -type=Syscall

// Syscall is a syscall selector, held in $v0.
type Syscall uint32

const (
	SYS_PRINT_INT    = Syscall(1)  // print_int
	SYS_PRINT_STRING = Syscall(4)  // print_string
	SYS_READ_INT     = Syscall(5)  // read_int
	SYS_READ_STRING  = Syscall(8)  // read_string
	SYS_EXIT         = Syscall(10) // exit
	SYS_PRINT_CHAR   = Syscall(11) // print_char
	SYS_READ_CHAR    = Syscall(12) // read_char
)

var _cpu_defines = map[string]string{
	"SYS_PRINT_INT":    fmt.Sprintf("%d", SYS_PRINT_INT),
	"SYS_PRINT_STRING": fmt.Sprintf("%d", SYS_PRINT_STRING),
	"SYS_READ_INT":     fmt.Sprintf("%d", SYS_READ_INT),
	"SYS_READ_STRING":  fmt.Sprintf("%d", SYS_READ_STRING),
	"SYS_EXIT":         fmt.Sprintf("%d", SYS_EXIT),
	"SYS_PRINT_CHAR":   fmt.Sprintf("%d", SYS_PRINT_CHAR),
	"SYS_READ_CHAR":    fmt.Sprintf("%d", SYS_READ_CHAR),
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// syscall performs the console service selected by the syscall register.
// Unknown selectors do nothing.
func (cpu *Cpu) syscall() (exit bool, err error) {
	reg := cpu.Registers
	abi := cpu.abi()

	sc := Syscall(reg.GetRegister(abi.Syscall))

	if cpu.Verbose {
		log.Printf("syscall: %v", sc)
	}

	switch sc {
	case SYS_PRINT_INT, SYS_PRINT_STRING, SYS_READ_INT, SYS_READ_STRING, SYS_PRINT_CHAR, SYS_READ_CHAR:
		if cpu.Console == nil {
			err = errors.Join(ErrSyscallSelector(sc), ErrConsoleMissing)
			return
		}
	}

	defer func() {
		if err != nil {
			err = errors.Join(ErrSyscallSelector(sc), err)
		}
	}()

	con := cpu.Console

	switch sc {
	case SYS_PRINT_INT:
		err = con.PrintInt(int32(reg.GetRegister(abi.Arg0)))
	case SYS_PRINT_STRING:
		address := reg.GetRegister(abi.Arg0)
		var text []byte
		for {
			c := cpu.Memory.GetByte(address)
			if c == 0 {
				break
			}
			text = append(text, c)
			address++
		}
		err = con.PrintString(text)
	case SYS_READ_INT:
		var value int32
		value, err = con.ReadInt()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		reg.SetRegister(abi.Result, uint32(value))
	case SYS_READ_STRING:
		address := reg.GetRegister(abi.Arg0)
		length := int32(reg.GetRegister(abi.Arg1))
		if length <= 0 {
			break
		}
		var text []byte
		text, err = con.ReadString(int(length) - 1)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		for n, c := range text {
			cpu.Memory.SetByte(address+uint32(n), c)
		}
		// NUL fill the remainder of the buffer.
		for n := int32(len(text)); n < length; n++ {
			cpu.Memory.SetByte(address+uint32(n), 0)
		}
	case SYS_EXIT:
		exit = true
	case SYS_PRINT_CHAR:
		err = con.PrintChar(uint8(reg.GetRegister(abi.Arg0)))
	case SYS_READ_CHAR:
		var c byte
		c, err = con.ReadChar()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		reg.SetRegister(abi.Result, uint32(int32(int8(c))))
	}

	return
}
