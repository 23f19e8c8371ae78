package stream

import (
	"island-mc/internal/biome"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies a visual block owned by a Renderable.
type Handle uint64

// Renderable materializes and destroys visual blocks on behalf of the window.
// The window never destroys a handle it did not receive from Materialize and
// never materializes the same block twice without destroying it in between.
type Renderable interface {
	Materialize(pos mgl32.Vec3, b biome.Biome, destroyable bool) Handle
	Destroy(h Handle)
}

// Viewpoint supplies the position the window streams around.
type Viewpoint interface {
	Position() mgl32.Vec3
}

// Terrain is the read-only column source, normally a *worldmap.Map.
type Terrain interface {
	At(x, z int) (biome.Cell, bool)
}

// BlockID identifies a block for the lifetime of a window.
type BlockID uint64

// Kind tells how a block came to exist.
type Kind uint8

const (
	KindSurface Kind = iota // top of a column, from the world map
	KindFill                // below a surface block, hides a drop to a lower neighbour
	KindPlaced              // created by an edit
)

// Voxel is an integer block coordinate.
type Voxel struct {
	X, Y, Z int
}

// Block is one materialized block.
type Block struct {
	ID       BlockID
	Voxel    Voxel
	Position mgl32.Vec3
	Biome    biome.Biome
	Kind     Kind

	// IsLowest marks the bottom block of a column, the only block the
	// vertical fill extends.
	IsLowest    bool
	Destroyable bool

	destroyFlag   bool
	pendingCreate *mgl32.Vec3
	pendingBiome  biome.Biome
	handle        Handle
}

// Column returns the column the block stands in.
func (b *Block) Column() Column {
	return Column{X: b.Voxel.X, Z: b.Voxel.Z}
}

// DestroyRequested reports whether a removal is pending for the next tick.
func (b *Block) DestroyRequested() bool { return b.destroyFlag }

// PendingCreate returns the placement queued on this block, if any.
func (b *Block) PendingCreate() (mgl32.Vec3, bool) {
	if b.pendingCreate == nil {
		return mgl32.Vec3{}, false
	}
	return *b.pendingCreate, true
}

func (b *Block) clone() Block {
	out := *b
	if b.pendingCreate != nil {
		p := *b.pendingCreate
		out.pendingCreate = &p
	}
	return out
}
