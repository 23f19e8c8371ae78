package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"island-mc/internal/config"
	"island-mc/internal/physics"
	"island-mc/internal/profiling"
	"island-mc/internal/stream"
	"island-mc/internal/worldmap"

	"github.com/go-gl/mathgl/mgl32"
)

// SlowTick is the tick duration above which the top timers are logged.
const SlowTick = 16 * time.Millisecond

// Session owns a loaded world and the window streaming it.
type Session struct {
	World  *worldmap.Map
	Window *stream.Window

	logger *log.Logger
	Ticks  uint64
}

// TickStats reports what one Update did.
type TickStats struct {
	Moved  bool
	Edits  stream.EditStats
	Blocks int
}

// NewSession takes over the products of a finished loader.
func NewSession(l *Loader, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if l.State() != StateReady {
		if err := l.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("loader is still %s", l.State())
	}
	return &Session{World: l.World(), Window: l.Window(), logger: logger}, nil
}

// Update runs one tick: the window follows vp, then pending edits apply.
func (s *Session) Update(vp stream.Viewpoint) TickStats {
	if s.Closed() {
		return TickStats{}
	}
	start := time.Now()
	stats := TickStats{
		Moved: s.Window.Update(vp),
		Edits: s.Window.Tick(),
	}
	stats.Blocks = s.Window.Len()
	s.Ticks++
	if d := time.Since(start); d > SlowTick {
		s.logger.Printf("slow tick: %v. Top tasks: %s", d, profiling.TopN(5))
	}
	return stats
}

// Target returns the live block the ray from origin along dir hits first.
func (s *Session) Target(origin, dir mgl32.Vec3) (stream.Block, physics.RaycastResult, bool) {
	if s.Closed() {
		return stream.Block{}, physics.RaycastResult{}, false
	}
	hit := physics.Raycast(origin, dir, physics.MinReachDistance, physics.MaxReachDistance, s.Window)
	if !hit.Hit {
		return stream.Block{}, hit, false
	}
	b, ok := s.Window.BlockAt(hit.HitPosition[0], hit.HitPosition[1], hit.HitPosition[2])
	return b, hit, ok
}

// RemoveTarget requests removal of the targeted block.
func (s *Session) RemoveTarget(origin, dir mgl32.Vec3) bool {
	b, _, ok := s.Target(origin, dir)
	return ok && s.Window.RequestRemoval(b.ID)
}

// PlaceAtTarget requests a block on the face of the targeted block the ray
// entered through.
func (s *Session) PlaceAtTarget(origin, dir mgl32.Vec3) bool {
	b, hit, ok := s.Target(origin, dir)
	return ok && s.Window.RequestPlacementFrom(b.ID, hit.Normal())
}

// SetRadius clamps radius to the allowed range, stores it as the runtime
// setting and streams the difference. It returns the radius in effect.
func (s *Session) SetRadius(radius int) (int, error) {
	if s.Closed() {
		return 0, ErrClosed
	}
	radius = config.SetRenderRadius(radius)
	if radius == s.Window.Radius() {
		return radius, nil
	}
	stats, err := s.Window.SetRadius(radius)
	if err != nil {
		return s.Window.Radius(), err
	}
	s.logger.Printf("render radius %d: -%d +%d columns, total blocks %d", radius, stats.RemovedColumns, stats.AddedColumns, s.Window.Len())
	return radius, nil
}

// ErrClosed is returned when a torn down session is used.
var ErrClosed = errors.New("session closed")

// Teardown destroys every block and drops the world. It returns the number of
// blocks destroyed.
func (s *Session) Teardown() int {
	if s.Window == nil {
		return 0
	}
	n := s.Window.Teardown()
	s.Window = nil
	s.World = nil
	return n
}

// Closed reports whether Teardown has run.
func (s *Session) Closed() bool { return s.Window == nil }
