// Package blocks draws the streamed blocks as one instanced cube batch and
// serves as the window's Renderable.
package blocks

import (
	"island-mc/internal/biome"
	"island-mc/internal/graphics"
	"island-mc/internal/graphics/instances"
	renderer "island-mc/internal/graphics/renderer"
	"island-mc/internal/profiling"
	"island-mc/internal/stream"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Blocks implements block rendering feature
type Blocks struct {
	shader      *graphics.Shader
	vao         uint32
	cubeVBO     uint32
	instanceVBO uint32
	capacity    int // instances the GPU buffer can hold

	set *instances.Set
}

// NewBlocks creates a new blocks renderable
func NewBlocks() *Blocks {
	return &Blocks{set: instances.New()}
}

// Materialize adds a cube at pos coloured by biome.
func (b *Blocks) Materialize(pos mgl32.Vec3, bio biome.Biome, destroyable bool) stream.Handle {
	c := bio.Color()
	shade := shadeAt(pos)
	rgb := [3]float32{
		float32(c.R) / 255 * shade,
		float32(c.G) / 255 * shade,
		float32(c.B) / 255 * shade,
	}
	return stream.Handle(b.set.Add([3]float32(pos), rgb))
}

// Destroy removes the cube h.
func (b *Blocks) Destroy(h stream.Handle) {
	b.set.Remove(instances.Handle(h))
}

// Len returns the number of live cubes.
func (b *Blocks) Len() int { return b.set.Len() }

// shadeAt gives each voxel a stable brightness in [0.92, 1] so flat areas
// do not read as one colour.
func shadeAt(pos mgl32.Vec3) float32 {
	h := uint32(int32(pos.X()))*73856093 ^ uint32(int32(pos.Y()))*19349663 ^ uint32(int32(pos.Z()))*83492791
	return 0.92 + 0.08*float32(h%1000)/999
}

// Init initializes the blocks rendering system
func (b *Blocks) Init() error {
	var err error
	b.shader, err = graphics.NewShader("blocks")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)

	gl.GenBuffers(1, &b.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, instances.Stride*4, 0)
	gl.VertexAttribDivisor(2, 1)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, instances.Stride*4, 3*4)
	gl.VertexAttribDivisor(3, 1)

	gl.BindVertexArray(0)
	return nil
}

// Render renders all live blocks
func (b *Blocks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderBlocks")()
	b.upload()
	if b.set.Len() == 0 {
		return
	}

	b.shader.Use()
	b.shader.SetMatrix4("view", &ctx.View[0])
	b.shader.SetMatrix4("proj", &ctx.Proj[0])
	b.shader.SetVector3("lightDir", -0.4, -1.0, -0.3)
	b.shader.SetVector3("fogColor", renderer.SkyColor[0], renderer.SkyColor[1], renderer.SkyColor[2])
	b.shader.SetFloat("fogEnd", float32(ctx.Radius)+4)

	gl.BindVertexArray(b.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, cubeVertexCount, int32(b.set.Len()))
	gl.BindVertexArray(0)
}

// upload pushes changed instance data, growing the buffer geometrically.
func (b *Blocks) upload() {
	if !b.set.TakeDirty() {
		return
	}
	data := b.set.Data()
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	if n := b.set.Len(); n > b.capacity {
		b.capacity = max(n, b.capacity*2, 1024)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*instances.Stride*4, nil, gl.DYNAMIC_DRAW)
	}
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Dispose cleans up OpenGL resources
func (b *Blocks) Dispose() {
	if b.shader != nil {
		b.shader.Delete()
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.cubeVBO != 0 {
		gl.DeleteBuffers(1, &b.cubeVBO)
	}
	if b.instanceVBO != 0 {
		gl.DeleteBuffers(1, &b.instanceVBO)
	}
}
