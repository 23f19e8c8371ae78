package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HandleMouseMovement turns the camera by the cursor delta since the last call.
func (p *Player) HandleMouseMovement(xpos, ypos float64) {
	if p.FirstMouse {
		p.LastMouseX = xpos
		p.LastMouseY = ypos
		p.FirstMouse = false
		return
	}

	xoffset := xpos - p.LastMouseX
	yoffset := p.LastMouseY - ypos
	p.LastMouseX = xpos
	p.LastMouseY = ypos

	p.CamYaw += xoffset * MouseSensitivity
	p.CamPitch += yoffset * MouseSensitivity

	// Constrain pitch
	if p.CamPitch > 89.0 {
		p.CamPitch = 89.0
	}
	if p.CamPitch < -89.0 {
		p.CamPitch = -89.0
	}
}

func (p *Player) GetFrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// groundAxes returns the horizontal forward and right unit vectors.
func (p *Player) groundAxes() (forward, right mgl32.Vec3) {
	y := float64(mgl32.DegToRad(float32(p.CamYaw)))
	forward = mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
	right = forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	return forward, right
}

func (p *Player) GetViewMatrix() mgl32.Mat4 {
	eyePos := p.GetEyePosition()
	return mgl32.LookAtV(eyePos, eyePos.Add(p.GetFrontVector()), mgl32.Vec3{0, 1, 0})
}
