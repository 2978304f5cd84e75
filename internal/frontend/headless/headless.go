// Package headless implements a frontend without display and input that runs
// a program for a bounded number of instructions and prints the final screen.
package headless

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

func init() {
	if err := emulator.RegisterFrontend(options.FrontendHeadless, newFrontend); err != nil {
		panic(err)
	}
}

// Frontend runs a session until the cycle limit is reached, the machine halts
// or the context is cancelled.
type Frontend struct {
	logger *log.Logger
	writer io.Writer
	cycles uint64
	beeps  int
}

// New returns a headless frontend that executes cycles instructions,
// 0 runs until the machine halts. The final screen is written to writer.
func New(logger *log.Logger, writer io.Writer, cycles uint64) *Frontend {
	return &Frontend{
		logger: logger,
		writer: writer,
		cycles: cycles,
	}
}

func newFrontend(logger *log.Logger, opts options.Program) (emulator.Frontend, error) {
	return New(logger, os.Stdout, opts.Cycles), nil
}

// Run executes the program.
func (f *Frontend) Run(ctx context.Context, session *emulator.Session) error {
	f.beeps = 0
	var executed uint64
	for f.cycles == 0 || executed < f.cycles {
		frame, err := session.Step(ctx)
		if err != nil {
			f.printScreen(session)
			return fmt.Errorf("running program: %w", err)
		}
		if frame.Beep {
			f.beeps++
		}
		executed++
	}

	f.logger.Info("Execution finished",
		log.Int("cycles", int(session.Cycles())),
		log.Int("beeps", f.beeps),
		log.Stringer("registers", session.Registers()))
	f.printScreen(session)
	return nil
}

// Beeps returns the number of beeps during the last run.
func (f *Frontend) Beeps() int {
	return f.beeps
}

func (f *Frontend) printScreen(session *emulator.Session) {
	fb := session.Framebuffer()
	_, _ = fmt.Fprint(f.writer, host.ASCII(&fb, '#', '.'))
}
