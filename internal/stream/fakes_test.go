package stream

import (
	"fmt"

	"island-mc/internal/biome"

	"github.com/go-gl/mathgl/mgl32"
)

// recorder is a Renderable that enforces the materialize/destroy contract.
type recorder struct {
	next      Handle
	live      map[Handle]mgl32.Vec3
	created   int
	destroyed int
}

func newRecorder() *recorder {
	return &recorder{live: make(map[Handle]mgl32.Vec3)}
}

func (r *recorder) Materialize(pos mgl32.Vec3, b biome.Biome, destroyable bool) Handle {
	for h, p := range r.live {
		if p == pos {
			panic(fmt.Sprintf("position %v materialized twice (handle %d still live)", pos, h))
		}
	}
	r.next++
	r.live[r.next] = pos
	r.created++
	return r.next
}

func (r *recorder) Destroy(h Handle) {
	if _, ok := r.live[h]; !ok {
		panic(fmt.Sprintf("destroy of unknown handle %d", h))
	}
	delete(r.live, h)
	r.destroyed++
}

// grid is a Terrain backed by explicit heights. Columns missing from the map
// are out of bounds unless unbounded is set, in which case they default.
type grid struct {
	cells     map[Column]biome.Cell
	unbounded bool
	def       biome.Cell
}

func flat(height int) *grid {
	return &grid{cells: map[Column]biome.Cell{}, unbounded: true, def: biome.Cell{Biome: biome.Plain, WorldHeight: height}}
}

func (g *grid) set(x, z, h int, b biome.Biome) *grid {
	g.cells[Column{X: x, Z: z}] = biome.Cell{Biome: b, WorldHeight: h}
	return g
}

func (g *grid) At(x, z int) (biome.Cell, bool) {
	if c, ok := g.cells[Column{X: x, Z: z}]; ok {
		return c, true
	}
	if g.unbounded {
		return g.def, true
	}
	return biome.Cell{}, false
}

type viewpoint mgl32.Vec3

func (v viewpoint) Position() mgl32.Vec3 { return mgl32.Vec3(v) }

func voxelSet(w *Window) map[Voxel]biome.Biome {
	out := make(map[Voxel]biome.Biome)
	for _, b := range w.Blocks() {
		out[b.Voxel] = b.Biome
	}
	return out
}

// nopRenderer hands out handles without bookkeeping.
type nopRenderer struct{}

func (nopRenderer) Materialize(mgl32.Vec3, biome.Biome, bool) Handle { return 0 }
func (nopRenderer) Destroy(Handle)                                 {}
