// Package emulator connects the virtual machine to host frontends.
package emulator

import (
	"context"
	"sync"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Frame summarizes the cycles executed by RunFrame.
type Frame struct {
	Cycles int
	Draw   bool // the framebuffer changed
	Beep   bool // the sound timer expired
}

// Session owns a virtual machine. Key events can be queued from any goroutine,
// they are applied to the keypad between cycles. All other methods must be
// called from a single goroutine.
type Session struct {
	logger *log.Logger
	vm     *chip8.VM
	rate   uint

	mu      sync.Mutex
	pending []chip8.KeyEvent
}

// New returns a session for a virtual machine that executes rate instructions per second.
func New(logger *log.Logger, vm *chip8.VM, rate uint) *Session {
	return &Session{
		logger: logger,
		vm:     vm,
		rate:   rate,
	}
}

// QueueKey queues a key transition. Invalid keys are dropped.
func (s *Session) QueueKey(key chip8.Key, state chip8.KeyState) {
	if !key.Valid() {
		s.logger.Debug("Ignoring invalid key", log.Uint8("key", uint8(key)))
		return
	}

	s.mu.Lock()
	s.pending = append(s.pending, chip8.KeyEvent{Key: key, State: state})
	s.mu.Unlock()
}

// applyKeys merges all queued key events into the keypad.
func (s *Session) applyKeys() {
	s.mu.Lock()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, event := range events {
		s.vm.ApplyKeyEvent(event)
	}
}

// Step applies queued key events and executes one cycle.
func (s *Session) Step(ctx context.Context) (Frame, error) {
	s.applyKeys()
	if err := s.vm.Cycle(ctx); err != nil {
		return Frame{}, err
	}
	return Frame{
		Cycles: 1,
		Draw:   s.vm.DrawNeeded(),
		Beep:   s.vm.BeepNeeded(),
	}, nil
}

// RunFrame executes up to cycles instructions and merges their flags.
// It stops at the first error and returns the flags collected until then.
// A cancelled context is reported even if the machine runs unthrottled.
func (s *Session) RunFrame(ctx context.Context, cycles int) (Frame, error) {
	var frame Frame
	if err := ctx.Err(); err != nil {
		return frame, err
	}
	for range cycles {
		step, err := s.Step(ctx)
		if err != nil {
			return frame, err
		}
		frame.Cycles++
		frame.Draw = frame.Draw || step.Draw
		frame.Beep = frame.Beep || step.Beep
	}
	return frame, nil
}

// CyclesPerFrame returns the number of instructions to run per frame for a
// frontend that refreshes fps times per second.
func (s *Session) CyclesPerFrame(fps int) int {
	if fps <= 0 || s.rate == 0 {
		return 1
	}
	return max(1, int(s.rate)/fps)
}

// Unthrottle disables the pacing of the virtual machine, for frontends that
// pace execution by their own frame rate.
func (s *Session) Unthrottle() {
	s.vm.SetRate(0)
}

// Reset restarts the program and drops all queued key events.
func (s *Session) Reset() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	s.vm.Reset()
	s.logger.Info("Machine reset")
}

// Framebuffer returns a copy of the screen.
func (s *Session) Framebuffer() chip8.Framebuffer {
	return s.vm.Framebuffer()
}

// Registers returns a snapshot of the CPU registers.
func (s *Session) Registers() chip8.Registers {
	return s.vm.Registers()
}

// Cycles returns the number of executed instructions.
func (s *Session) Cycles() uint64 {
	return s.vm.Cycles()
}

// WaitingForKey returns whether the program waits for a key press.
func (s *Session) WaitingForKey() bool {
	return s.vm.WaitingForKey()
}

// Fault returns the fault that halted the machine, or nil.
func (s *Session) Fault() error {
	return s.vm.Fault()
}
