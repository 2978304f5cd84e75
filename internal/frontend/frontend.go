// Package frontend registers all frontends. Importing this package makes the
// headless, terminal and window frontends available to the emulator.
package frontend

import (
	_ "github.com/retroenv/chip8vm/internal/frontend/headless" // register headless frontend
	_ "github.com/retroenv/chip8vm/internal/frontend/terminal" // register terminal frontend
	_ "github.com/retroenv/chip8vm/internal/frontend/window"   // register window frontend
)
