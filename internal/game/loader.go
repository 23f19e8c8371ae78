package game

import (
	"fmt"
	"io"
	"log"
	"time"

	"island-mc/internal/biome"
	"island-mc/internal/noise"
	"island-mc/internal/stream"
	"island-mc/internal/worldmap"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadState is a stage of world loading. Each Step runs the work of the
// current stage and moves to the next one.
type LoadState int

const (
	StateIdle LoadState = iota
	StateGeneratingHeight
	StateGeneratingHeat
	StateClassifying
	StateBuildingWorld
	StatePlacingViewpoint
	StateReady
	StateFailed
)

var loadStateNames = [...]string{
	StateIdle:             "idle",
	StateGeneratingHeight: "generating-height",
	StateGeneratingHeat:   "generating-heat",
	StateClassifying:      "classifying",
	StateBuildingWorld:    "building-world",
	StatePlacingViewpoint: "placing-viewpoint",
	StateReady:            "ready",
	StateFailed:           "failed",
}

func (s LoadState) String() string {
	if s < 0 || int(s) >= len(loadStateNames) {
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
	return loadStateNames[s]
}

// transitions lists the only legal successor of each working state.
var transitions = map[LoadState]LoadState{
	StateIdle:             StateGeneratingHeight,
	StateGeneratingHeight: StateGeneratingHeat,
	StateGeneratingHeat:   StateClassifying,
	StateClassifying:      StateBuildingWorld,
	StateBuildingWorld:    StatePlacingViewpoint,
	StatePlacingViewpoint: StateReady,
}

// Loader builds a world and its streaming window one stage per Step so the
// caller can keep drawing between stages.
type Loader struct {
	opts     worldmap.Options
	radius   int
	start    mgl32.Vec3
	renderer stream.Renderable
	logger   *log.Logger

	state      LoadState
	err        error
	stageStart time.Time
	begun      time.Time

	height *noise.Field
	heat   *noise.Field
	cells  []biome.Cell
	world  *worldmap.Map
	window *stream.Window
}

// NewLoader prepares a load. Nothing runs until the first Step.
func NewLoader(opts worldmap.Options, radius int, start mgl32.Vec3, renderer stream.Renderable, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Loader{
		opts:     opts,
		radius:   radius,
		start:    start,
		renderer: renderer,
		logger:   logger,
	}
}

// State returns the stage the next Step will run.
func (l *Loader) State() LoadState { return l.state }

// Done reports whether loading finished, successfully or not.
func (l *Loader) Done() bool { return l.state == StateReady || l.state == StateFailed }

// Err returns the error that stopped loading, if any.
func (l *Loader) Err() error { return l.err }

// Progress returns the fraction of stages completed.
func (l *Loader) Progress() float64 {
	if l.state == StateFailed {
		return 0
	}
	return float64(l.state) / float64(StateReady)
}

// World returns the built map once the building-world stage has run.
func (l *Loader) World() *worldmap.Map { return l.world }

// Window returns the streaming window once loading is ready.
func (l *Loader) Window() *stream.Window {
	if l.state != StateReady {
		return nil
	}
	return l.window
}

// Step runs the current stage. After a failure every call returns the same
// error; after success it does nothing.
func (l *Loader) Step() error {
	switch l.state {
	case StateReady:
		return nil
	case StateFailed:
		return l.err
	}

	if l.state == StateIdle {
		l.begun = time.Now()
	}
	l.stageStart = time.Now()
	if err := l.run(l.state); err != nil {
		l.err = fmt.Errorf("%s: %w", l.state, err)
		l.logger.Printf("load failed in %s: %v", l.state, err)
		l.state = StateFailed
		return l.err
	}
	l.advance()
	return nil
}

// Run steps until loading is done.
func (l *Loader) Run() error {
	for !l.Done() {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) advance() {
	next, ok := transitions[l.state]
	if !ok {
		panic(fmt.Sprintf("game: no transition out of %s", l.state))
	}
	l.logger.Printf("%s done in %v", l.state, time.Since(l.stageStart).Round(time.Microsecond))
	l.state = next
	if next == StateReady {
		l.logger.Printf("world ready in %v", time.Since(l.begun).Round(time.Millisecond))
	}
}

func (l *Loader) run(state LoadState) error {
	var err error
	switch state {
	case StateIdle:
		if err := l.opts.Validate(); err != nil {
			return err
		}
		if l.radius < 0 {
			return fmt.Errorf("render radius must not be negative, got %d", l.radius)
		}
		l.logger.Printf("loading world size %d seed %d island %v noise %s", l.opts.Size, l.opts.Seed, l.opts.Island, l.opts.Noise)
	case StateGeneratingHeight:
		l.height, err = worldmap.HeightField(l.opts)
	case StateGeneratingHeat:
		l.heat, err = worldmap.HeatField(l.opts)
	case StateClassifying:
		l.cells, err = worldmap.ClassifyFields(l.height, l.heat)
		l.height, l.heat = nil, nil
	case StateBuildingWorld:
		l.world, err = worldmap.FromCells(l.opts, l.cells)
		l.cells = nil
		if err == nil {
			l.logger.Printf("world built: max height %d, biomes %v", l.world.MaxHeight(), histogram(l.world))
		}
	case StatePlacingViewpoint:
		l.window = stream.NewWindow(l.world, l.renderer, l.logger)
		_, err = l.window.Initialize(stream.ColumnOf(l.start), l.radius)
	}
	return err
}

func histogram(m *worldmap.Map) map[string]int {
	out := make(map[string]int)
	for b, n := range m.Histogram() {
		out[b.String()] = n
	}
	return out
}
