package stream

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"island-mc/internal/biome"
	"island-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotInitialized is returned by operations that need a centre.
var ErrNotInitialized = errors.New("stream window not initialized")

// neighbours are the four columns the vertical fill inspects, in order.
var neighbours = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Window keeps the blocks of every column within Radius of the viewpoint
// materialized. It is single-threaded: all methods must be called from the
// tick that owns it.
type Window struct {
	terrain  Terrain
	renderer Renderable
	logger   *log.Logger

	store     *blockStore
	footprint Footprint
	center    Column
	radius    int
	ready     bool

	placements []placement
}

type placement struct {
	pos      mgl32.Vec3
	adjacent biome.Biome
}

// MoveStats summarizes one footprint change.
type MoveStats struct {
	RemovedColumns int
	AddedColumns   int
	Destroyed      int
	Surface        int
	Fill           int
}

// NewWindow creates an empty window over terrain. A nil logger discards output.
func NewWindow(terrain Terrain, renderer Renderable, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Window{
		terrain:   terrain,
		renderer:  renderer,
		logger:    logger,
		store:     newBlockStore(),
		footprint: make(Footprint),
	}
}

// Initialize materializes the circle of radius around center and fills it.
// A window that is already initialized is torn down first.
func (w *Window) Initialize(center Column, radius int) (MoveStats, error) {
	defer profiling.Track("stream.Initialize")()
	if radius < 0 {
		return MoveStats{}, fmt.Errorf("render radius must not be negative, got %d", radius)
	}
	if w.ready {
		w.Teardown()
	}
	w.radius = radius
	w.center = center
	w.ready = true
	stats := w.apply(Circle(center, radius))
	w.logger.Printf("initialized at %v radius %d: %d columns, %d blocks", center, radius, len(w.footprint), w.store.len())
	return stats, nil
}

// Update moves the window to the column of vp. Movement inside the current
// column does nothing. It reports whether the footprint changed.
func (w *Window) Update(vp Viewpoint) bool {
	if !w.ready {
		return false
	}
	next := ColumnOf(vp.Position())
	if next == w.center {
		return false
	}
	w.OnViewpointMoved(w.center, next)
	return true
}

// OnViewpointMoved shifts the footprint from oldCenter to newCenter: blocks of
// columns that left the circle are destroyed, columns that entered it get a
// surface block and vertical fill. oldCenter must be the current centre.
func (w *Window) OnViewpointMoved(oldCenter, newCenter Column) MoveStats {
	if oldCenter == newCenter {
		return MoveStats{}
	}
	if !w.ready {
		panic(ErrNotInitialized)
	}
	if oldCenter != w.center {
		panic(fmt.Sprintf("stream: moved from %v but window is centred on %v", oldCenter, w.center))
	}
	defer profiling.Track("stream.OnViewpointMoved")()
	w.center = newCenter
	stats := w.apply(Circle(newCenter, w.radius))
	w.logger.Printf("moved %v -> %v: -%d +%d columns, %d fill, total blocks %d",
		oldCenter, newCenter, stats.RemovedColumns, stats.AddedColumns, stats.Fill, w.store.len())
	return stats
}

// SetRadius changes the render radius and streams the difference.
func (w *Window) SetRadius(radius int) (MoveStats, error) {
	if radius < 0 {
		return MoveStats{}, fmt.Errorf("render radius must not be negative, got %d", radius)
	}
	if !w.ready {
		return MoveStats{}, ErrNotInitialized
	}
	w.radius = radius
	return w.apply(Circle(w.center, radius)), nil
}

// apply diffs the live footprint against next and streams the change.
func (w *Window) apply(next Footprint) MoveStats {
	toRemove, toAdd := Diff(w.footprint, next)
	stats := MoveStats{RemovedColumns: len(toRemove), AddedColumns: len(toAdd)}

	for _, col := range toRemove {
		stats.Destroyed += w.destroyColumn(col)
	}

	var lowest []*Block
	for _, col := range toAdd {
		if b := w.materializeSurface(col); b != nil {
			lowest = append(lowest, b)
			stats.Surface++
		}
	}
	stats.Fill = w.fill(lowest)
	w.footprint = next
	return stats
}

func (w *Window) destroyColumn(col Column) int {
	ids := w.store.column(col)
	for _, id := range ids {
		w.destroy(id)
	}
	return len(ids)
}

// materializeSurface creates the top block of col. Columns outside the
// terrain are skipped.
func (w *Window) materializeSurface(col Column) *Block {
	cell, ok := w.terrain.At(col.X, col.Z)
	if !ok {
		return nil
	}
	v := Voxel{X: col.X, Y: cell.WorldHeight, Z: col.Z}
	return w.materialize(v, gridPosition(v), cell.Biome, KindSurface, cell.Biome.Destroyable(), true)
}

// fill extends columns downward so no vertical gap shows toward a lower
// neighbour. Blocks are processed tallest first; each new fill block joins
// the end of the work list, so a column keeps growing down until no
// neighbour is at least two below it. Only the first qualifying neighbour is
// used per block.
func (w *Window) fill(work []*Block) int {
	defer profiling.Track("stream.fill")()
	sort.SliceStable(work, func(i, j int) bool { return work[i].Voxel.Y > work[j].Voxel.Y })

	placed := 0
	for i := 0; i < len(work); i++ {
		b := work[i]
		if !b.IsLowest {
			continue
		}
		for _, d := range neighbours {
			cell, ok := w.terrain.At(b.Voxel.X+d[0], b.Voxel.Z+d[1])
			if !ok {
				continue
			}
			if b.Voxel.Y-cell.WorldHeight < 2 {
				continue
			}
			below := Voxel{X: b.Voxel.X, Y: b.Voxel.Y - 1, Z: b.Voxel.Z}
			b.IsLowest = false
			if nb := w.materialize(below, gridPosition(below), cell.Biome, KindFill, cell.Biome.Destroyable(), true); nb != nil {
				work = append(work, nb)
				placed++
			}
			break
		}
	}
	return placed
}

// materialize registers a block and notifies the renderer. An occupied voxel
// is left alone and nil is returned.
func (w *Window) materialize(v Voxel, pos mgl32.Vec3, b biome.Biome, kind Kind, destroyable, lowest bool) *Block {
	if w.store.occupied(v) {
		return nil
	}
	blk := &Block{
		Voxel:       v,
		Position:    pos,
		Biome:       b,
		Kind:        kind,
		IsLowest:    lowest,
		Destroyable: destroyable,
	}
	blk.handle = w.renderer.Materialize(pos, b, destroyable)
	w.store.add(blk)
	return blk
}

func (w *Window) destroy(id BlockID) bool {
	b, ok := w.store.remove(id)
	if !ok {
		return false
	}
	w.renderer.Destroy(b.handle)
	return true
}

// Teardown destroys every live block, oldest first, and forgets the centre.
// It returns the number of blocks destroyed.
func (w *Window) Teardown() int {
	defer profiling.Track("stream.Teardown")()
	blocks := w.store.sorted()
	for _, b := range blocks {
		w.renderer.Destroy(b.handle)
	}
	w.store.reset()
	w.footprint = make(Footprint)
	w.placements = nil
	w.ready = false
	if len(blocks) > 0 {
		w.logger.Printf("teardown: destroyed %d blocks", len(blocks))
	}
	return len(blocks)
}

func gridPosition(v Voxel) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Ready reports whether the window has been initialized.
func (w *Window) Ready() bool { return w.ready }

// Center returns the column the window is centred on.
func (w *Window) Center() Column { return w.center }

// Radius returns the render radius.
func (w *Window) Radius() int { return w.radius }

// Footprint returns a copy of the wanted columns.
func (w *Window) Footprint() Footprint {
	out := make(Footprint, len(w.footprint))
	for c := range w.footprint {
		out[c] = struct{}{}
	}
	return out
}

// Len returns the number of live blocks.
func (w *Window) Len() int { return w.store.len() }

// ModCount increases whenever a block is added or removed.
func (w *Window) ModCount() uint64 { return w.store.modCount }

// Blocks returns copies of the live blocks ordered by ID.
func (w *Window) Blocks() []Block {
	live := w.store.sorted()
	out := make([]Block, len(live))
	for i, b := range live {
		out[i] = b.clone()
	}
	return out
}

// Block returns a copy of the block with id.
func (w *Window) Block(id BlockID) (Block, bool) {
	b, ok := w.store.get(id)
	if !ok {
		return Block{}, false
	}
	return b.clone(), true
}

// BlockAt returns a copy of the block occupying voxel (x, y, z).
func (w *Window) BlockAt(x, y, z int) (Block, bool) {
	b, ok := w.store.at(Voxel{X: x, Y: y, Z: z})
	if !ok {
		return Block{}, false
	}
	return b.clone(), true
}

// Solid reports whether voxel (x, y, z) holds a block.
func (w *Window) Solid(x, y, z int) bool {
	return w.store.occupied(Voxel{X: x, Y: y, Z: z})
}

// Counts returns the number of live blocks per kind.
func (w *Window) Counts() map[Kind]int {
	out := make(map[Kind]int, 3)
	for _, b := range w.store.blocks {
		out[b.Kind]++
	}
	return out
}
