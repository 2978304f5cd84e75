// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
)

const maxScale = 32

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	var frontend string
	readOptionFlags(flags, &opts, &frontend)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	opts.Frontend = options.Frontend(strings.ToLower(frontend))

	if err := validateOptions(opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid arguments"
	}
	return e.msg
}

// ShowUsage prints the error message if set and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8vm [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{flags: flags, msg: "only one rom file can be run"}
	}
	return nil
}

// validateOptions checks the option values
func validateOptions(opts options.Program) error {
	if !slices.Contains(options.Frontends, opts.Frontend) {
		names := make([]string, 0, len(options.Frontends))
		for _, frontend := range options.Frontends {
			names = append(names, string(frontend))
		}
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(names, ", "))
	}

	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale %d, allowed range is 1-%d", opts.Scale, maxScale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, frontend *string) {
	flags.StringVar(frontend, "f", string(options.FrontendAuto), "frontend to use (auto/headless/terminal/window)")
	flags.UintVar(&opts.Rate, "rate", options.DefaultRate, "instructions executed per second, 0 runs unthrottled")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the current time")
	flags.BoolVar(&opts.ShiftVy, "shift-vy", false, "8xy6/8xyE shift Vy and store the result in Vx")
	flags.BoolVar(&opts.LoadStoreInc, "loadstore-inc", false, "Fx55/Fx65 leave I pointing after the last register")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "headless frontend: number of instructions to execute, 0 runs until halted")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window frontend: pixel scale factor")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
