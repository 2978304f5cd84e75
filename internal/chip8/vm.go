package chip8

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// VM is the CHIP-8 interpreter. It owns the machine state exclusively, hosts
// interact with it through the key entry points, the cycle flags and the framebuffer.
// A VM is not safe for concurrent use.
type VM struct {
	logger *log.Logger
	state  *State
	quirks Quirks
	random RandomSource
	pacer  *pacer

	rom []byte

	drawNeeded bool
	beepNeeded bool
	waiting    bool
	cycles     uint64
	fault      error
}

// New returns a new virtual machine in its power-on state.
func New(logger *log.Logger, opts Options) *VM {
	random := opts.Random
	if random == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		random = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}

	return &VM{
		logger: logger,
		state:  NewState(),
		quirks: opts.Quirks,
		random: random,
		pacer:  newPacer(opts.Rate),
	}
}

// Load resets the machine and copies the program to ProgramStart.
// A program that does not fit into memory returns a LoadError and leaves
// the machine untouched.
func (vm *VM) Load(program []byte) error {
	if err := vm.state.load(program); err != nil {
		return err
	}
	vm.rom = bytes.Clone(program)
	vm.resetFlags()
	vm.logger.Debug("Loaded program", log.Int("size", len(program)))
	return nil
}

// LoadFrom reads a program from the reader and loads it.
func (vm *VM) LoadFrom(reader io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(reader, MaxROMSize+1))
	if err != nil {
		return &LoadError{Size: len(data), Err: err}
	}
	return vm.Load(data)
}

// Reset restarts the loaded program from its power-on state.
func (vm *VM) Reset() {
	_ = vm.state.load(vm.rom) // the rom was validated by Load
	vm.resetFlags()
}

func (vm *VM) resetFlags() {
	vm.drawNeeded = false
	vm.beepNeeded = false
	vm.waiting = false
	vm.cycles = 0
	vm.fault = nil
}

// SetRate changes the number of instructions per second, 0 disables pacing.
func (vm *VM) SetRate(rate uint) {
	vm.pacer.setRate(rate)
}

// Cycle executes exactly one instruction: it paces execution to the configured
// rate, ticks the timers, fetches and decodes the instruction at PC and executes it.
// The draw and beep flags are valid until the next call.
// A fault halts the machine, the same fault is returned by all later calls.
// Cancelling the context only interrupts the pacing before the cycle starts.
func (vm *VM) Cycle(ctx context.Context) error {
	if vm.fault != nil {
		return vm.fault
	}
	if err := vm.pacer.wait(ctx); err != nil {
		return fmt.Errorf("pacing cycle: %w", err)
	}

	vm.drawNeeded = false
	vm.beepNeeded = vm.state.tickTimers()

	pc := vm.state.PC()
	opcode, err := vm.state.Fetch()
	if err != nil {
		var memErr *MemoryFault
		if errors.As(err, &memErr) {
			memErr.Fetch = true
		}
		return vm.halt(err, pc, 0)
	}

	ins, err := Decode(opcode)
	if err != nil {
		return vm.halt(err, pc, opcode)
	}
	vm.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("instruction", ins.String()))

	update, err := vm.execute(ins, opcode)
	if err != nil {
		return vm.halt(err, pc, opcode)
	}
	if update == advancePC {
		vm.state.Skip()
	}

	vm.cycles++
	return nil
}

// halt records a fault together with the instruction that caused it.
// Reporting the fault is left to the caller.
func (vm *VM) halt(err error, pc, opcode uint16) error {
	var fc faultContext
	if errors.As(err, &fc) {
		fc.setContext(pc, opcode)
	}

	vm.fault = err
	vm.logger.Debug("Machine halted",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.Err(err))
	return err
}

// Fault returns the fault that halted the machine, or nil.
func (vm *VM) Fault() error {
	return vm.fault
}

// DrawNeeded returns whether the last cycle modified the framebuffer.
func (vm *VM) DrawNeeded() bool {
	return vm.drawNeeded
}

// BeepNeeded returns whether the sound timer expired during the last cycle.
func (vm *VM) BeepNeeded() bool {
	return vm.beepNeeded
}

// WaitingForKey returns whether the machine is blocked on a key press.
func (vm *VM) WaitingForKey() bool {
	return vm.waiting
}

// Cycles returns the number of executed instructions since the program was loaded.
func (vm *VM) Cycles() uint64 {
	return vm.cycles
}

// Framebuffer returns a copy of the screen.
func (vm *VM) Framebuffer() Framebuffer {
	return vm.state.screen
}

// PressKey marks a key as pressed. Invalid keys are ignored.
func (vm *VM) PressKey(key Key) {
	vm.state.keys.Set(key, Pressed)
}

// ReleaseKey marks a key as released. Invalid keys are ignored.
func (vm *VM) ReleaseKey(key Key) {
	vm.state.keys.Set(key, Released)
}

// ApplyKeyEvent stores the state of a key event.
func (vm *VM) ApplyKeyEvent(event KeyEvent) {
	vm.state.keys.Set(event.Key, event.State)
}

// Registers returns a snapshot of the CPU registers.
func (vm *VM) Registers() Registers {
	s := vm.state
	return Registers{
		V:      s.v,
		I:      s.i,
		PC:     s.pc,
		SP:     s.sp,
		DT:     s.delayTimer,
		ST:     s.soundTimer,
		Keypad: s.keys.Bits(),
	}
}

// Registers is a read-only snapshot of the CPU registers.
type Registers struct {
	V      [RegisterCount]uint8
	I      uint16
	PC     uint16
	SP     int
	DT     uint8
	ST     uint8
	Keypad uint16
}

// String returns formatted register contents.
func (r Registers) String() string {
	return fmt.Sprintf("V: [% 02X] I: %04X PC: %04X SP: %d DT: %02X ST: %02X Keypad: %016b",
		r.V, r.I, r.PC, r.SP, r.DT, r.ST, r.Keypad)
}
