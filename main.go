/*
Maquette is a small model viewer. It loads a scene manifest, shows
placeholder geometry while models stream in from disk and animates the
loaded scene graph.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dvitali/maquette/engine"
	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/testbed"
)

func main() {
	configPath := flag.String("config", "viewer.toml", "path to the viewer config file")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		config = engine.DefaultApplicationConfig()
	}

	game, err := testbed.NewViewerGame(config)
	if err != nil {
		panic(err)
	}

	eng, err := engine.New(game.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// Signals request a quit; the window loop exits and the one
	// shutdown below tears everything down.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
			Data: core.SystemEvent{},
		})
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}

	if err := eng.Shutdown(); err != nil {
		panic(err)
	}
}
