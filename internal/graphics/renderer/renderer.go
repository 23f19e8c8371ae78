package renderer

import (
	"island-mc/internal/graphics"
	"island-mc/internal/player"
	"island-mc/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SkyColor is the clear colour, also used as fog colour.
var SkyColor = [3]float32{0.53, 0.81, 0.92}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer creates a new renderer with the given renderables
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	renderer := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(width, height),
	}

	// Initialize all renderables
	for i, r := range rs {
		if err := r.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}

	return renderer, nil
}

// Add initializes r and draws it after the existing renderables.
func (r *Renderer) Add(rs Renderable) error {
	if err := rs.Init(); err != nil {
		return err
	}
	r.renderables = append(r.renderables, rs)
	return nil
}

// Frame describes what to draw this frame.
type Frame struct {
	Player    *player.Player
	Target    [3]int
	HasTarget bool
	Radius    int
	DT        float64
}

// Render executes the main render loop
func (r *Renderer) Render(f Frame) {
	defer profiling.Track("renderer.Render")()
	// Clear the screen
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx := RenderContext{
		Camera:    r.camera,
		Player:    f.Player,
		Target:    f.Target,
		HasTarget: f.HasTarget,
		Radius:    f.Radius,
		DT:        f.DT,
		View:      r.camera.GetViewMatrix(f.Player),
		Proj:      r.camera.GetProjectionMatrix(),
	}

	// Render all features
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Clear paints the sky only, used while the world is loading.
func (r *Renderer) Clear(progress float64) {
	shade := float32(0.3 + 0.7*progress)
	gl.ClearColor(SkyColor[0]*shade, SkyColor[1]*shade, SkyColor[2]*shade, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	// Dispose in reverse order
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera's viewport dimensions
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
}
