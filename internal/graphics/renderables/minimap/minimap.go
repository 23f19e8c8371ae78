// Package minimap draws the cached world map image in a screen corner with a
// marker at the viewer's column.
package minimap

import (
	"image"

	"island-mc/internal/graphics"
	renderer "island-mc/internal/graphics/renderer"
	"island-mc/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// quad is two triangles: position xy in [0,1], uv
var quad = []float32{
	0, 0, 0, 1,
	1, 0, 1, 1,
	1, 1, 1, 0,
	1, 1, 1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// Overlay shows a map image. Pixel (x, z) of the image is world column
// (x, z), offset by the frame width.
type Overlay struct {
	img       image.Image
	worldSize int
	frame     int
	// Size is the on-screen height as a fraction of the window height.
	Size    float32
	Visible bool

	shader  *graphics.Shader
	texture uint32
	texW    int
	texH    int
	vao     uint32
	vbo     uint32
}

// NewOverlay creates an overlay for img, a map of a worldSize world drawn
// with a frame of frame pixels on each side.
func NewOverlay(img image.Image, worldSize, frame int) *Overlay {
	return &Overlay{img: img, worldSize: worldSize, frame: frame, Size: 0.35, Visible: true}
}

// Toggle flips visibility.
func (o *Overlay) Toggle() { o.Visible = !o.Visible }

// Init uploads the image and builds the quad
func (o *Overlay) Init() error {
	var err error
	o.shader, err = graphics.NewShader("overlay")
	if err != nil {
		return err
	}
	o.texture, o.texW, o.texH = graphics.UploadImage(o.img)

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)
	return nil
}

// Render draws the map in the top right corner
func (o *Overlay) Render(ctx renderer.RenderContext) {
	if !o.Visible || o.texW == 0 || o.texH == 0 {
		return
	}
	defer profiling.Track("renderer.renderMinimap")()

	h := o.Size * 2
	w := h * float32(o.texW) / float32(o.texH) / ctx.Camera.AspectRatio
	x := 1 - w - 0.02
	y := 1 - h - 0.02

	// the image's x axis is world x, its y axis is world z
	pos := ctx.Player.Position
	u := (float32(o.frame) + pos.X() + 0.5) / float32(o.texW)
	v := (float32(o.frame) + pos.Z() + 0.5) / float32(o.texH)

	o.shader.Use()
	o.shader.SetVector4("rect", x, y, w, h)
	o.shader.SetInt("tex", 0)
	o.shader.SetVector2("marker", u, v)
	o.shader.SetFloat("markerSize", 1.5/float32(o.texW))

	gl.Disable(gl.DEPTH_TEST)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Enable(gl.DEPTH_TEST)
}

// Dispose cleans up OpenGL resources
func (o *Overlay) Dispose() {
	if o.shader != nil {
		o.shader.Delete()
	}
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
	}
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
}
