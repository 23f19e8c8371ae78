// Command island-mc generates a world and lets you fly over it while the
// blocks around you stream in and out.
package main

import (
	"errors"
	"flag"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"island-mc/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	logger := log.New(os.Stderr, "island-mc ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.FromArgs("island-mc", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.Resolve(rand.New(rand.NewSource(time.Now().UnixNano()))) {
		logger.Printf("picked random seed %d", cfg.World.Seed)
	}

	if err := glfw.Init(); err != nil {
		logger.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		logger.Fatalf("window: %v", err)
	}

	app, err := NewApp(window, cfg, logger)
	if err != nil {
		logger.Fatalf("renderer: %v", err)
	}
	setupInputHandlers(window, app)

	if err := app.Run(); err != nil {
		logger.Fatalf("%v", err)
	}
}
