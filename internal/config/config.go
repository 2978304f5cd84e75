// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// VMOptions maps the program options to the virtual machine options.
func VMOptions(opts options.Program) chip8.Options {
	return chip8.Options{
		Rate: opts.Rate,
		Seed: opts.Seed,
		Quirks: chip8.Quirks{
			ShiftSourceVy:        opts.ShiftVy,
			LoadStoreIncrementsI: opts.LoadStoreInc,
		},
	}
}
