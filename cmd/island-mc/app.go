package main

import (
	"fmt"
	"log"
	"time"

	"island-mc/internal/config"
	"island-mc/internal/game"
	"island-mc/internal/graphics/renderables/blocks"
	"island-mc/internal/graphics/renderables/crosshair"
	overlay "island-mc/internal/graphics/renderables/minimap"
	"island-mc/internal/graphics/renderables/wireframe"
	"island-mc/internal/graphics/renderer"
	"island-mc/internal/input"
	"island-mc/internal/minimap"
	"island-mc/internal/player"
	"island-mc/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type appState int

const (
	stateLoading appState = iota
	statePlaying
)

// profileEvery is how often timings are logged while profiling is on.
const profileEvery = time.Second

// App drives the window: it steps the loader while the world builds, then
// runs one session tick and one frame per loop.
type App struct {
	cfg    *config.Config
	logger *log.Logger

	window   *glfw.Window
	input    *input.InputManager
	renderer *renderer.Renderer
	blocks   *blocks.Blocks
	minimap  *overlay.Overlay

	state   appState
	loader  *game.Loader
	session *game.Session
	player  *player.Player

	limiter     *game.TickLimiter
	lastTime    time.Time
	profiling   bool
	lastProfile time.Time
	err         error
}

func NewApp(window *glfw.Window, cfg *config.Config, logger *log.Logger) (*App, error) {
	b := blocks.NewBlocks()
	width, height := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(width, height,
		b,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
	)
	if err != nil {
		return nil, err
	}
	r.UpdateViewport(width, height)

	radius := config.SetRenderRadius(cfg.Stream.RenderRadius)
	start := mgl32.Vec3{float32(cfg.Player.Start[0]), float32(cfg.Player.Start[1]), float32(cfg.Player.Start[2])}

	return &App{
		cfg:      cfg,
		logger:   logger,
		window:   window,
		input:    input.NewInputManager(),
		renderer: r,
		blocks:   b,
		state:    stateLoading,
		loader:   game.NewLoader(cfg.WorldOptions(), radius, start, b, logger),
		player:   player.New(start, float32(cfg.Player.Speed)),
		limiter:  game.NewTickLimiter(game.DefaultTickRate),
		lastTime: time.Now(),
	}, nil
}

// Run loops until the window closes, then tears the session down. It
// returns the loading error, if loading failed.
func (a *App) Run() error {
	for !a.window.ShouldClose() {
		a.tick()
	}
	if a.session != nil {
		n := a.session.Teardown()
		a.logger.Printf("session closed: %d blocks destroyed, %d ticks", n, a.session.Ticks)
	}
	a.renderer.Dispose()
	return a.err
}

func (a *App) tick() {
	profiling.ResetTick()
	startTick := time.Now()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	switch a.state {
	case stateLoading:
		a.stepLoader()
	case statePlaying:
		a.updatePlaying(dt)
		a.renderFrame(dt)
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if d := time.Since(startTick); d > game.SlowTick && a.state == statePlaying {
		a.logger.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}
	if a.profiling && now.Sub(a.lastProfile) >= profileEvery {
		a.lastProfile = now
		a.logger.Printf("profile: %s", profiling.TopN(8))
	}

	a.input.PostUpdate()
	a.limiter.Wait()
}

// stepLoader runs one loading stage and paints the progress.
func (a *App) stepLoader() {
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
		return
	}
	if err := a.loader.Step(); err != nil {
		a.err = err
		a.window.SetShouldClose(true)
		return
	}
	progress := a.loader.Progress()
	a.renderer.Clear(progress)
	a.window.SetTitle(fmt.Sprintf("island-mc - %s %d%%", a.loader.State(), int(progress*100)))

	if a.loader.State() == game.StateReady {
		a.startSession()
	}
}

func (a *App) startSession() {
	s, err := game.NewSession(a.loader, a.logger)
	if err != nil {
		a.err = err
		a.window.SetShouldClose(true)
		return
	}
	a.session = s
	a.loader = nil
	a.state = statePlaying
	a.window.SetTitle(fmt.Sprintf("island-mc - seed %d", s.World.Seed()))
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	opts := minimap.Options{Border: a.cfg.Minimap.Border, Scale: a.cfg.Minimap.Scale, Legend: a.cfg.Minimap.Legend}
	if _, _, err := minimap.EnsureCached(s.World, a.cfg.Minimap.Dir, opts, a.logger); err != nil {
		a.logger.Printf("minimap cache: %v", err)
	}

	img, err := minimap.Render(s.World, minimap.DefaultOptions())
	if err != nil {
		a.logger.Printf("minimap overlay: %v", err)
		return
	}
	a.minimap = overlay.NewOverlay(img, s.World.Size(), minimap.FrameWidth())
	if err := a.renderer.Add(a.minimap); err != nil {
		a.logger.Printf("minimap overlay: %v", err)
		a.minimap = nil
	}
}

func (a *App) updatePlaying(dt float64) {
	a.handleActions()

	func() {
		defer profiling.Track("player.Update")()
		a.player.Update(dt, a.input.Intent(), a.session.Window)
	}()
	a.session.Update(a.player.Viewpoint())
}

func (a *App) handleActions() {
	im := a.input
	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}

	eye, front := a.player.GetEyePosition(), a.player.GetFrontVector()
	if im.JustPressed(input.ActionPlaceBlock) {
		a.session.PlaceAtTarget(eye, front)
	}
	if im.JustPressed(input.ActionRemoveBlock) {
		a.session.RemoveTarget(eye, front)
	}

	if im.JustPressed(input.ActionRadiusUp) {
		a.setRadius(a.session.Window.Radius() + 1)
	}
	if im.JustPressed(input.ActionRadiusDown) {
		a.setRadius(a.session.Window.Radius() - 1)
	}

	if im.JustPressed(input.ActionToggleMinimap) && a.minimap != nil {
		a.minimap.Toggle()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		a.profiling = !a.profiling
	}
}

func (a *App) setRadius(r int) {
	if _, err := a.session.SetRadius(r); err != nil {
		a.logger.Printf("render radius: %v", err)
	}
}

func (a *App) renderFrame(dt float64) {
	f := renderer.Frame{
		Player: a.player,
		Radius: a.session.Window.Radius(),
		DT:     dt,
	}
	if _, hit, ok := a.session.Target(a.player.GetEyePosition(), a.player.GetFrontVector()); ok {
		f.Target = hit.HitPosition
		f.HasTarget = true
	}
	a.renderer.Render(f)
}

// refresh repaints during a resize without advancing the world.
func (a *App) refresh() {
	switch a.state {
	case stateLoading:
		if a.loader != nil {
			a.renderer.Clear(a.loader.Progress())
		}
	case statePlaying:
		a.renderFrame(0)
	}
	a.window.SwapBuffers()
}
