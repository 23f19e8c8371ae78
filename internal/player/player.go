// Package player is the viewer's body: a first-person camera that flies by
// default and falls onto the live blocks once gravity is switched on.
package player

import (
	"island-mc/internal/stream"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	PlayerEyeHeight = 1.62
	PlayerHeight    = 1.8

	Gravity          = 32.0
	TerminalVelocity = -78.4
	JumpVelocity     = 9.4

	// RiseStep and SinkStep are the vertical hops bound to the up and down keys.
	RiseStep = 3.0
	SinkStep = 1.0

	MouseSensitivity = 0.1
)

// Intent is one tick of movement input.
type Intent struct {
	Forward float32 // +1 forward, -1 backward
	Strafe  float32 // +1 right, -1 left
	Jump    bool
	Rise    bool
	Sink    bool
}

type Player struct {
	Position mgl32.Vec3 // feet
	Velocity mgl32.Vec3
	OnGround bool
	// Gravity is off while flying.
	Gravity bool
	Speed   float32

	CamYaw     float64
	CamPitch   float64
	LastMouseX float64
	LastMouseY float64
	FirstMouse bool
}

// New places a flying player at start moving at speed blocks per second.
func New(start mgl32.Vec3, speed float32) *Player {
	return &Player{
		Position:   start,
		Speed:      speed,
		FirstMouse: true,
	}
}

type viewpoint struct{ p *Player }

func (v viewpoint) Position() mgl32.Vec3 { return v.p.Position }

// Viewpoint exposes the live feet position to a streaming window.
func (p *Player) Viewpoint() stream.Viewpoint { return viewpoint{p} }

// GetEyePosition returns the camera position.
func (p *Player) GetEyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, PlayerEyeHeight, 0})
}
