// Package detector handles frontend detection.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector picks the frontend from options or the host environment.
type Detector struct {
	logger *log.Logger

	getenv     func(string) string
	goos       string
	isTerminal func() bool
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		getenv:     os.Getenv,
		goos:       runtime.GOOS,
		isTerminal: stdoutIsTerminal,
	}
}

// Detect determines the frontend to use. An explicitly selected frontend is
// returned unchanged, otherwise a window is preferred if a display is available,
// followed by the terminal and finally the headless frontend.
func (d *Detector) Detect(opts options.Program) options.Frontend {
	if opts.Frontend != "" && opts.Frontend != options.FrontendAuto {
		return opts.Frontend
	}

	frontend := d.detectFromEnvironment()
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", string(frontend)),
		log.String("os", d.goos))
	return frontend
}

func (d *Detector) detectFromEnvironment() options.Frontend {
	switch {
	case d.hasDisplay():
		return options.FrontendWindow
	case d.isTerminal():
		return options.FrontendTerminal
	default:
		return options.FrontendHeadless
	}
}

func (d *Detector) hasDisplay() bool {
	switch d.goos {
	case "windows", "darwin":
		return true
	case "js", "android", "ios":
		return false
	default:
		return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
