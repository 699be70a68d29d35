package engine

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/dvitali/maquette/engine/assets"
	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/platform"
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/renderer/soft"
	"github.com/dvitali/maquette/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isSuspended   bool
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	width         uint32
	height        uint32
	clock         *core.Clock
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine requires a game with an application config")
	}

	core.LogSetLevel(g.ApplicationConfig.LogLevel)

	// The event system must exist before systems register handlers.
	if !core.EventSystemInitialize() {
		return nil, fmt.Errorf("failed to initialize the event system")
	}

	p := platform.New()

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}

	r := renderer.New(soft.New())

	sm, err := systems.NewSystemManager(r, am)
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		platform:      p,
		assetManager:  am,
		systemManager: sm,
		renderer:      r,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	config := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(config.Name, e.width, e.height); err != nil {
		return err
	}

	if err := e.assetManager.Initialize(config.AssetsDir); err != nil {
		return err
	}

	if err := e.renderer.Initialize(config.Name, e.width, e.height); err != nil {
		return err
	}

	if config.FontName != "" {
		font, err := e.systemManager.FontSystem.Acquire(config.FontName)
		if err != nil {
			core.LogWarn("HUD font '%s' unavailable: %s", config.FontName, err.Error())
		} else {
			e.renderer.SetFont(font)
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run hands control to the window loop. Blocks until quit.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	// process queued events for the lifetime of the run
	go core.ProcessEvents()

	return e.platform.Run(e)
}

// FrameUpdate advances the simulation one frame. Runs on the window
// loop's goroutine; all scene and transform mutation happens here.
func (e *Engine) FrameUpdate(deltaTime float64) error {
	if e.isSuspended {
		return nil
	}

	e.clock.Update()
	core.MetricsUpdate(deltaTime)

	// Async load completions land here, on the frame thread.
	e.systemManager.Update()

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(deltaTime); err != nil {
			core.LogError("game update failed, shutting down")
			return err
		}
	}
	return nil
}

// FrameRender draws the frame the game describes and returns the
// finished framebuffer.
func (e *Engine) FrameRender(deltaTime float64) (*image.RGBA, error) {
	if e.isSuspended {
		return nil, nil
	}

	packet := &renderer.RenderPacket{DeltaTime: deltaTime}
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet, deltaTime); err != nil {
			return nil, err
		}
	}

	if err := e.renderer.DrawFrame(packet); err != nil {
		return nil, err
	}
	return e.renderer.Framebuffer(), nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("%s", err.Error())
		}
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order) of
// the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// SceneManifestPath resolves the configured scene manifest against the
// assets directory.
func (e *Engine) SceneManifestPath() string {
	config := e.gameInstance.ApplicationConfig
	if config.SceneManifest == "" {
		return ""
	}
	return filepath.Join(config.AssetsDir, config.SceneManifest)
}

func (e *Engine) onEvent(context core.EventContext) {
	if context.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("quit event received, shutting down")
		e.platform.RequestQuit()
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ev, ok := context.Data.(core.KeyEvent)
	if !ok {
		return
	}
	if ev.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
			Data: core.SystemEvent{},
		})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	ev, ok := context.Data.(core.SystemEvent)
	if !ok {
		return
	}
	if ev.WindowWidth == 0 || ev.WindowHeight == 0 {
		core.LogInfo("window minimized, suspending")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming")
		e.isSuspended = false
	}
	e.width = ev.WindowWidth
	e.height = ev.WindowHeight
	if err := e.renderer.OnResize(uint16(ev.WindowWidth), uint16(ev.WindowHeight)); err != nil {
		core.LogError("%s", err.Error())
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			core.LogError("%s", err.Error())
		}
	}
}
