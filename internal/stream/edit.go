package stream

import (
	"island-mc/internal/biome"
	"island-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// RequestRemoval flags block id for destruction on the next Tick. Unknown and
// non-destroyable blocks (water) are ignored; the result reports whether the
// request was accepted.
func (w *Window) RequestRemoval(id BlockID) bool {
	b, ok := w.store.get(id)
	if !ok || !b.Destroyable {
		return false
	}
	b.destroyFlag = true
	return true
}

// RequestPlacement queues a free-standing block at pos for the next Tick.
// Placed blocks are always destroyable and never take part in the fill.
func (w *Window) RequestPlacement(pos mgl32.Vec3, adjacent biome.Biome) bool {
	if !w.ready {
		return false
	}
	w.placements = append(w.placements, placement{pos: pos, adjacent: adjacent})
	return true
}

// RequestPlacementFrom queues a placement against a face of block id: the new
// block goes to the anchor's position plus normal and takes the anchor's biome.
func (w *Window) RequestPlacementFrom(id BlockID, normal mgl32.Vec3) bool {
	b, ok := w.store.get(id)
	if !ok {
		return false
	}
	pos := b.Position.Add(normal)
	b.pendingCreate = &pos
	b.pendingBiome = b.Biome
	return true
}

// EditStats counts what a Tick consumed.
type EditStats struct {
	Removed int
	Placed  int
	Ignored int
}

// Tick consumes the pending edits: flagged blocks are destroyed and queued
// placements are created. Blocks are visited newest first. A placement into
// an occupied voxel or outside the footprint is dropped.
func (w *Window) Tick() EditStats {
	defer profiling.Track("stream.Tick")()
	var stats EditStats
	if !w.ready {
		return stats
	}

	live := w.store.sorted()
	var queued []placement
	for i := len(live) - 1; i >= 0; i-- {
		b := live[i]
		switch {
		case b.destroyFlag:
			w.destroy(b.ID)
			stats.Removed++
		case b.pendingCreate != nil:
			queued = append(queued, placement{pos: *b.pendingCreate, adjacent: b.pendingBiome})
			b.pendingCreate = nil
		}
	}
	queued = append(queued, w.placements...)
	w.placements = nil

	for _, p := range queued {
		if w.place(p) {
			stats.Placed++
		} else {
			stats.Ignored++
		}
	}
	return stats
}

func (w *Window) place(p placement) bool {
	v := Voxel{X: int(p.pos.X()), Y: int(p.pos.Y()), Z: int(p.pos.Z())}
	if !w.footprint.Contains(Column{X: v.X, Z: v.Z}) {
		return false
	}
	return w.materialize(v, p.pos, p.adjacent, KindPlaced, true, false) != nil
}
