package platform

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dvitali/maquette/engine/core"
)

// App is the interface the engine exposes to the windowing layer. The
// platform drives it once per frame from the window's own loop.
type App interface {
	FrameUpdate(deltaTime float64) error
	// FrameRender returns the finished frame as raw RGBA pixels sized
	// to the logical resolution.
	FrameRender(deltaTime float64) (*image.RGBA, error)
}

// Platform owns the window. Everything window-toolkit specific stays in
// this package; the rest of the engine only sees the App interface and
// the input/event systems in core.
type Platform struct {
	name   string
	width  int
	height int
	quit   bool
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(name string, width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("window dimensions must be nonzero (%dx%d)", width, height)
	}
	p.name = name
	p.width = int(width)
	p.height = int(height)

	ebiten.SetWindowTitle(name)
	ebiten.SetWindowSize(p.width, p.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Run enters the window loop and blocks until the application quits or
// the window closes.
func (p *Platform) Run(app App) error {
	host := &hostLoop{
		platform: p,
		app:      app,
		lastTime: time.Now(),
	}
	if err := ebiten.RunGame(host); err != nil && err != errQuit {
		return err
	}
	return nil
}

func (p *Platform) Shutdown() error {
	return nil
}

// RequestQuit makes the window loop exit at the start of the next
// update. Safe to call from event handlers.
func (p *Platform) RequestQuit() {
	p.quit = true
}

// GetAbsoluteTime returns the wall clock in seconds.
func GetAbsoluteTime() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

var errQuit = fmt.Errorf("quit requested")

// hostLoop adapts the App to the window toolkit's game interface.
type hostLoop struct {
	platform  *Platform
	app       App
	lastTime  time.Time
	delta     float64
	minimized bool
}

var keyBindings = map[ebiten.Key]core.KeyCode{
	ebiten.KeyEscape:     core.KEY_ESCAPE,
	ebiten.KeySpace:      core.KEY_SPACE,
	ebiten.KeyEnter:      core.KEY_ENTER,
	ebiten.KeyArrowLeft:  core.KEY_LEFT,
	ebiten.KeyArrowRight: core.KEY_RIGHT,
	ebiten.KeyArrowUp:    core.KEY_UP,
	ebiten.KeyArrowDown:  core.KEY_DOWN,
	ebiten.KeyA:          core.KEY_A,
	ebiten.KeyD:          core.KEY_D,
	ebiten.KeyF:          core.KEY_F,
	ebiten.KeyR:          core.KEY_R,
	ebiten.KeyS:          core.KEY_S,
	ebiten.KeyW:          core.KEY_W,
}

func (h *hostLoop) Update() error {
	if h.platform.quit {
		return errQuit
	}

	now := time.Now()
	delta := now.Sub(h.lastTime).Seconds()
	h.lastTime = now
	h.delta = delta

	h.pumpWindowState()
	h.pumpInput()

	if err := h.app.FrameUpdate(delta); err != nil {
		return err
	}

	core.InputUpdate(delta)
	return nil
}

// pumpWindowState reports minimize and restore as resize events so the
// engine can suspend rendering. A zero sized event means minimized.
func (h *hostLoop) pumpWindowState() {
	minimized := ebiten.IsWindowMinimized()
	if minimized == h.minimized {
		return
	}
	h.minimized = minimized

	ev := core.SystemEvent{}
	if !minimized {
		ev.WindowWidth = uint32(h.platform.width)
		ev.WindowHeight = uint32(h.platform.height)
	}
	core.EventFireImmediate(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: ev,
	})
}

func (h *hostLoop) pumpInput() {
	for ebitenKey, code := range keyBindings {
		core.InputProcessKey(code, ebiten.IsKeyPressed(ebitenKey))
	}
	mx, my := ebiten.CursorPosition()
	core.InputProcessMouseMove(int16(mx), int16(my))
	core.InputProcessButton(core.BUTTON_LEFT, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	core.InputProcessButton(core.BUTTON_RIGHT, ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		core.InputProcessMouseWheel(int8(wheelY))
	}
}

func (h *hostLoop) Draw(screen *ebiten.Image) {
	frame, err := h.app.FrameRender(h.delta)
	if err != nil {
		core.LogError("frame render failed: %s", err.Error())
		return
	}
	if frame == nil {
		return
	}
	screen.WritePixels(frame.Pix)
}

func (h *hostLoop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.platform.width, h.platform.height
}
