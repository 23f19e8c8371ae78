package wireframe

import (
	"island-mc/internal/graphics"
	renderer "island-mc/internal/graphics/renderer"
	"island-mc/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// edges of a unit cube centred on the origin, as line pairs
var edges = []float32{
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// Wireframe outlines the block under the crosshair
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init initializes the wireframe rendering system
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader("wireframe")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(edges)*4, gl.Ptr(edges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// Render outlines ctx.Target when there is one
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if !ctx.HasTarget {
		return
	}
	defer profiling.Track("renderer.renderHighlightedBlock")()

	w.shader.Use()
	w.shader.SetMatrix4("proj", &ctx.Proj[0])
	w.shader.SetMatrix4("view", &ctx.View[0])

	model := mgl32.Translate3D(
		float32(ctx.Target[0]),
		float32(ctx.Target[1]),
		float32(ctx.Target[2]),
	).Mul4(mgl32.Scale3D(1.01, 1.01, 1.01))
	w.shader.SetMatrix4("model", &model[0])
	w.shader.SetVector3("color", 0.0, 0.0, 0.0)

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(edges)/3))
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.shader != nil {
		w.shader.Delete()
	}
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
}
