// Package window implements a desktop frontend using ebiten. It renders the
// scaled screen with a status bar, reads the keyboard, mouse and touch input
// and plays the beep through the audio device.
//
// Function keys:
//
//	F5   restart the program
//	F10  toggle the status bar
//	F11  toggle fullscreen
//	F12  copy the screen as text to the clipboard
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/audio/otoplayer"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	tps          = 60
	statusHeight = 16
	windowTitle  = "chip8vm"
)

var (
	statusColor = color.RGBA{R: 190, G: 190, B: 190, A: 255}
	haltedColor = color.RGBA{R: 230, G: 80, B: 60, A: 255}
)

func init() {
	if err := emulator.RegisterFrontend(options.FrontendWindow, newFrontend); err != nil {
		panic(err)
	}
}

// hostKeys maps the characters of the host layout to ebiten keys.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Frontend renders a session in a window.
type Frontend struct {
	logger    *log.Logger
	scale     int
	openAudio audio.Opener
	face      text.Face

	keys       map[ebiten.Key]chip8.Key
	touchAreas []host.TouchArea
}

// New returns a window frontend. The audio device is opened by Run.
func New(logger *log.Logger, scale int) *Frontend {
	f := &Frontend{
		logger:     logger,
		scale:      scale,
		openAudio:  otoplayer.Open,
		face:       text.NewGoXFace(basicfont.Face7x13),
		keys:       make(map[ebiten.Key]chip8.Key, len(host.DefaultLayout)),
		touchAreas: host.PongTouchAreas,
	}

	for r, key := range host.DefaultLayout {
		if ebitenKey, ok := hostKeys[r]; ok {
			f.keys[ebitenKey] = key
		}
	}
	return f
}

func newFrontend(logger *log.Logger, opts options.Program) (emulator.Frontend, error) {
	return New(logger, opts.Scale), nil
}

// Run opens the window and blocks until it is closed, the context is cancelled
// or a fault halts the machine and the window is closed afterwards.
// A failing audio device disables the beep.
func (f *Frontend) Run(ctx context.Context, session *emulator.Session) error {
	sink := audio.Open(f.logger, f.openAudio)
	defer func() {
		if err := sink.Close(); err != nil {
			f.logger.Warn("Closing audio failed", log.Err(err))
		}
	}()

	// the tick rate paces the execution
	session.Unthrottle()

	g := &game{
		ctx:        ctx,
		frontend:   f,
		session:    session,
		beeper:     sink,
		cycles:     session.CyclesPerFrame(tps),
		tracker:    host.NewKeyTracker(),
		pixels:     make([]byte, host.RGBASize),
		showStatus: true,
		width:      chip8.ScreenWidth * f.scale,
		height:     chip8.ScreenHeight * f.scale,
	}

	ebiten.SetWindowSize(g.width, g.height+statusHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	f.logger.Debug("Starting window frontend",
		log.Int("scale", f.scale),
		log.Int("cycles_per_frame", g.cycles))

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if g.err != nil && chip8.IsFatal(g.err) {
		return fmt.Errorf("running program: %w", g.err)
	}
	return nil
}

// game implements ebiten.Game.
type game struct {
	ctx      context.Context
	frontend *Frontend
	session  *emulator.Session
	beeper   audio.Beeper
	cycles   int
	tracker  *host.KeyTracker

	screen     *ebiten.Image
	pixels     []byte
	dirty      bool
	showStatus bool
	fullscreen bool
	width      int
	height     int
	err        error

	clipboardOnce sync.Once
	clipboardOK   bool
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}

	g.handleFunctionKeys()
	g.handleInput()

	if g.err != nil {
		return nil
	}

	frame, err := g.session.RunFrame(g.ctx, g.cycles)
	if frame.Draw {
		g.dirty = true
	}
	if frame.Beep {
		g.beeper.Beep()
	}
	if err != nil {
		g.err = err
		if errors.Is(err, context.Canceled) {
			return ebiten.Termination
		}
	}
	return nil
}

func (g *game) handleFunctionKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.session.Reset()
		g.err = nil
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		g.showStatus = !g.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.copyScreen()
	}
}

// handleInput collects the held keys of keyboard, touch and mouse input and
// queues the transitions.
func (g *game) handleInput() {
	held := set.New[chip8.Key]()
	for ebitenKey, key := range g.frontend.keys {
		if ebiten.IsKeyPressed(ebitenKey) {
			held.Add(key)
		}
	}

	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.addTouch(held, x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.addTouch(held, x, y)
	}

	pressed, released := g.tracker.Update(held)
	for _, key := range pressed {
		g.session.QueueKey(key, chip8.Pressed)
	}
	for _, key := range released {
		g.session.QueueKey(key, chip8.Released)
	}
}

func (g *game) addTouch(held set.Set[chip8.Key], x, y int) {
	if key, ok := host.KeyAt(g.frontend.touchAreas, x, y, g.width, g.height); ok {
		held.Add(key)
	}
}

func (g *game) copyScreen() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		g.frontend.logger.Warn("Clipboard not available")
		return
	}

	fb := g.session.Framebuffer()
	clipboard.Write(clipboard.FmtText, []byte(host.ASCII(&fb, '#', ' ')))
	g.frontend.logger.Info("Screen copied to clipboard")
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight)
		g.dirty = true
	}
	if g.dirty {
		fb := g.session.Framebuffer()
		host.FillRGBA(g.pixels, &fb, host.Foreground, host.Background)
		g.screen.WritePixels(g.pixels)
		g.dirty = false
	}

	screen.Fill(host.Background)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.frontend.scale), float64(g.frontend.scale))
	screen.DrawImage(g.screen, op)

	if g.showStatus {
		g.drawStatus(screen)
	}
}

func (g *game) drawStatus(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(4, float64(g.height+2))

	if g.err != nil {
		op.ColorScale.ScaleWithColor(haltedColor)
		text.Draw(screen, "HALTED: "+g.err.Error(), g.frontend.face, op)
		return
	}

	regs := g.session.Registers()
	line := fmt.Sprintf("PC %04X  I %04X  DT %02X  ST %02X  cycles %d",
		regs.PC, regs.I, regs.DT, regs.ST, g.session.Cycles())
	if g.session.WaitingForKey() {
		line += "  waiting for key"
	}
	op.ColorScale.ScaleWithColor(statusColor)
	text.Draw(screen, line, g.frontend.face, op)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height + statusHeight
}
