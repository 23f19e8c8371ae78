package game

import (
	"island-mc/internal/biome"
	"island-mc/internal/stream"

	"github.com/go-gl/mathgl/mgl32"
)

// counter is a Renderable that tracks live handles.
type counter struct {
	next stream.Handle
	live map[stream.Handle]bool
}

func newCounter() *counter { return &counter{live: make(map[stream.Handle]bool)} }

func (c *counter) Materialize(mgl32.Vec3, biome.Biome, bool) stream.Handle {
	c.next++
	c.live[c.next] = true
	return c.next
}

func (c *counter) Destroy(h stream.Handle) {
	if !c.live[h] {
		panic("destroy of unknown handle")
	}
	delete(c.live, h)
}

type fixedPoint mgl32.Vec3

func (p fixedPoint) Position() mgl32.Vec3 { return mgl32.Vec3(p) }
