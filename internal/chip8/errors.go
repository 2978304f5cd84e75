package chip8

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the typed faults.
var (
	ErrDecode         = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrMemoryAccess   = errors.New("memory access out of range")
	ErrROMTooLarge    = errors.New("rom exceeds available memory")
)

// faultContext is implemented by faults that identify the failing instruction.
type faultContext interface {
	setContext(pc, opcode uint16)
}

// A DecodeError is returned when an opcode matches no instruction.
type DecodeError struct {
	PC     uint16
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s 0x%04X at PC 0x%04X", ErrDecode, e.Opcode, e.PC)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

func (e *DecodeError) setContext(pc, opcode uint16) {
	e.PC, e.Opcode = pc, opcode
}

// A StackFault is returned by CALL on a full stack or by RET on an empty stack.
type StackFault struct {
	PC       uint16
	Opcode   uint16
	Overflow bool
}

func (e *StackFault) Error() string {
	return fmt.Sprintf("%s executing 0x%04X at PC 0x%04X", e.Unwrap(), e.Opcode, e.PC)
}

func (e *StackFault) Unwrap() error {
	if e.Overflow {
		return ErrStackOverflow
	}
	return ErrStackUnderflow
}

func (e *StackFault) setContext(pc, opcode uint16) {
	e.PC, e.Opcode = pc, opcode
}

// A MemoryFault is returned when an instruction or fetch computes an address
// outside of memory. Fetch is set when the instruction word itself could not
// be read, Opcode is not valid then.
type MemoryFault struct {
	PC      uint16
	Opcode  uint16
	Address int
	Fetch   bool
}

func (e *MemoryFault) Error() string {
	if e.Fetch {
		return fmt.Sprintf("%s: address 0x%04X fetching instruction at PC 0x%04X",
			ErrMemoryAccess, e.Address, e.PC)
	}
	return fmt.Sprintf("%s: address 0x%04X executing 0x%04X at PC 0x%04X",
		ErrMemoryAccess, e.Address, e.Opcode, e.PC)
}

func (e *MemoryFault) Unwrap() error {
	return ErrMemoryAccess
}

func (e *MemoryFault) setContext(pc, opcode uint16) {
	e.PC, e.Opcode = pc, opcode
}

// A LoadError is returned when a ROM can not be read or does not fit into memory.
// The machine state is not modified.
type LoadError struct {
	Path string
	Size int
	Err  error
}

func (e *LoadError) Error() string {
	source := e.Path
	if source == "" {
		source = "rom"
	}
	if errors.Is(e.Err, ErrROMTooLarge) {
		return fmt.Sprintf("loading %s: %s (size: %d, available: %d)",
			source, e.Err, e.Size, MaxROMSize)
	}
	return fmt.Sprintf("loading %s: %s", source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsFatal returns whether the error is a machine fault that halts the interpreter.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrStackOverflow) ||
		errors.Is(err, ErrStackUnderflow) ||
		errors.Is(err, ErrMemoryAccess)
}
