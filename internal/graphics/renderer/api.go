package renderer

import (
	"island-mc/internal/graphics"
	"island-mc/internal/player"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	Player *player.Player
	// Target is the voxel under the crosshair, if HasTarget.
	Target    [3]int
	HasTarget bool
	// Radius is the render radius in columns; it sets the fog distance.
	Radius int
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
}
