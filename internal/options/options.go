// Package options contains the program options.
package options

// Frontend names a host frontend that renders the screen and delivers input.
type Frontend string

// Supported frontends.
const (
	FrontendAuto     Frontend = "auto"
	FrontendHeadless Frontend = "headless"
	FrontendTerminal Frontend = "terminal"
	FrontendWindow   Frontend = "window"
)

// Frontends lists all selectable frontends.
var Frontends = []Frontend{FrontendAuto, FrontendHeadless, FrontendTerminal, FrontendWindow}

// Default option values.
const (
	DefaultRate  = 500
	DefaultScale = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"CHIP-8 ROM file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend Frontend `flag:"f" usage:"frontend: auto, headless, terminal, window" default:"auto"`
	Rate     uint     `flag:"rate" usage:"instructions per second, 0 runs unthrottled" default:"500"`
	Seed     uint64   `flag:"seed" usage:"seed of the random generator, 0 seeds from the current time"`
	Debug    bool     `flag:"debug" usage:"enable debug logging"`
	Quiet    bool     `flag:"q" usage:"quiet mode"`
}

// Quirks contains interpreter compatibility options.
type Quirks struct {
	ShiftVy      bool `flag:"shift-vy" usage:"8xy6/8xyE shift Vy into Vx"`
	LoadStoreInc bool `flag:"loadstore-inc" usage:"Fx55/Fx65 increment I past the last register"`
}

// FrontendFlags contains frontend specific options.
type FrontendFlags struct {
	Cycles uint64 `flag:"cycles" usage:"headless: number of instructions to execute, 0 runs until halted"`
	Scale  int    `flag:"scale" usage:"window: pixel scale factor" default:"10"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Quirks
	FrontendFlags
}
