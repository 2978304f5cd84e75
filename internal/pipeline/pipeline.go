// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the ROM file and runs it in the selected frontend.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return p.ExecuteWithROM(ctx, rom, opts)
}

// ExecuteWithROM runs a pre-loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program) error {
	name := p.detector.Detect(opts)

	session, err := p.createSession(rom, opts)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	frontend, err := emulator.NewFrontend(name, p.logger, opts)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	p.printInfo(opts, name, len(rom))

	if err := frontend.Run(ctx, session); err != nil {
		return fmt.Errorf("running %s frontend: %w", name, err)
	}
	return nil
}

// createSession creates the virtual machine and loads the ROM into it.
func (p *Pipeline) createSession(rom []byte, opts options.Program) (*emulator.Session, error) {
	vm := chip8.New(p.logger, config.VMOptions(opts))
	if err := vm.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return emulator.New(p.logger, vm, opts.Rate), nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, frontend options.Frontend, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", string(frontend)),
		log.Int("rate", int(opts.Rate)),
	)
	if opts.ShiftVy || opts.LoadStoreInc {
		p.logger.Info("Quirks enabled",
			log.String("shift_vy", fmt.Sprint(opts.ShiftVy)),
			log.String("loadstore_inc", fmt.Sprint(opts.LoadStoreInc)))
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	if strings.Contains(date, "unknown") {
		date = ""
	}
	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
