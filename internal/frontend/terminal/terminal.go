// Package terminal implements a frontend that renders the screen in a text
// terminal using termloop.
//
// Terminals only report key presses, a key is released automatically when it
// was not repeated for keyReleaseDelay. The frontend quits on Ctrl+C and
// restarts the program on F5.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const (
	fps             = 60
	keyReleaseDelay = 100 * time.Millisecond
	beepFrames      = 10

	screenTop   = 2 // status lines above the screen
	pixelWidth  = 2 // terminal cells are about twice as high as wide
	statusColor = tl.ColorDefault
)

func init() {
	if err := emulator.RegisterFrontend(options.FrontendTerminal, newFrontend); err != nil {
		panic(err)
	}
}

// arrowKeys maps the cursor keys to the directional keys used by most programs.
var arrowKeys = map[tl.Key]chip8.Key{
	tl.KeyArrowUp:    chip8.Key2,
	tl.KeyArrowDown:  chip8.Key8,
	tl.KeyArrowLeft:  chip8.Key4,
	tl.KeyArrowRight: chip8.Key6,
	tl.KeyEnter:      chip8.Key5,
}

// Frontend renders a session in the terminal.
type Frontend struct {
	logger *log.Logger
	layout host.Layout
}

// New returns a terminal frontend.
func New(logger *log.Logger) *Frontend {
	return &Frontend{
		logger: logger,
		layout: host.DefaultLayout,
	}
}

func newFrontend(logger *log.Logger, _ options.Program) (emulator.Frontend, error) {
	return New(logger), nil
}

// Run starts the termloop game loop and blocks until the user quits.
// A machine fault stops the execution but keeps the last screen visible.
func (f *Frontend) Run(ctx context.Context, session *emulator.Session) error {
	// the frame rate paces the execution
	session.Unthrottle()

	game := tl.NewGame()
	scr := game.Screen()
	scr.SetFps(fps)

	r := &runner{
		ctx:       ctx,
		logger:    f.logger,
		session:   session,
		layout:    f.layout,
		cycles:    session.CyclesPerFrame(fps),
		pressed:   make(map[chip8.Key]time.Time),
		registers: tl.NewText(0, 0, "", statusColor, statusColor),
		status:    tl.NewText(0, 1, "", statusColor, statusColor),
	}
	scr.AddEntity(r)

	f.logger.Debug("Starting terminal frontend", log.Int("cycles_per_frame", r.cycles))
	game.Start()

	if r.err != nil && chip8.IsFatal(r.err) {
		return fmt.Errorf("running program: %w", r.err)
	}
	return nil
}

// runner is the termloop entity that handles input, runs the machine on every
// frame and draws the screen.
type runner struct {
	ctx     context.Context
	logger  *log.Logger
	session *emulator.Session
	layout  host.Layout
	cycles  int

	pressed   map[chip8.Key]time.Time
	beep      int
	err       error
	registers *tl.Text
	status    *tl.Text
}

// Tick handles input events.
func (r *runner) Tick(ev tl.Event) {
	if ev.Type != tl.EventKey {
		return
	}

	if ev.Key == tl.KeyF5 {
		r.session.Reset()
		r.pressed = make(map[chip8.Key]time.Time)
		r.err = nil
		return
	}

	key, ok := arrowKeys[ev.Key]
	if !ok && ev.Ch != 0 {
		key, ok = r.layout.Key(ev.Ch)
	}
	if !ok {
		return
	}

	if _, down := r.pressed[key]; !down {
		r.session.QueueKey(key, chip8.Pressed)
	}
	r.pressed[key] = time.Now()
}

// Draw is called once per frame.
func (r *runner) Draw(s *tl.Screen) {
	r.releaseKeys()
	r.runFrame()

	fb := r.session.Framebuffer()
	pixel := &tl.Cell{Bg: tl.ColorWhite, Ch: ' '}
	for row := range chip8.ScreenHeight {
		for col := range chip8.ScreenWidth {
			if !fb.Pixel(col, row) {
				continue
			}
			for i := range pixelWidth {
				s.RenderCell(col*pixelWidth+i, screenTop+row, pixel)
			}
		}
	}

	r.registers.SetText(r.session.Registers().String())
	r.status.SetText(r.statusLine())
	r.registers.Draw(s)
	r.status.Draw(s)
}

func (r *runner) releaseKeys() {
	now := time.Now()
	for key, t := range r.pressed {
		if now.Sub(t) > keyReleaseDelay {
			r.session.QueueKey(key, chip8.Released)
			delete(r.pressed, key)
		}
	}
}

func (r *runner) runFrame() {
	if r.err != nil {
		return
	}

	frame, err := r.session.RunFrame(r.ctx, r.cycles)
	if frame.Beep {
		r.beep = beepFrames
	} else if r.beep > 0 {
		r.beep--
	}
	if err == nil {
		return
	}

	r.err = err
	if errors.Is(err, context.Canceled) {
		r.logger.Info("Execution interrupted")
	}
}

func (r *runner) statusLine() string {
	switch {
	case r.err != nil:
		return fmt.Sprintf("HALTED: %s (F5 restart, Ctrl+C quit)", r.err)
	case r.session.WaitingForKey():
		return "waiting for key"
	case r.beep > 0:
		return "BEEP"
	default:
		return fmt.Sprintf("cycles: %d", r.session.Cycles())
	}
}
