package player

import (
	"island-mc/internal/physics"
	"island-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// floorY bounds the ground search; nothing is ever materialized below 0.
const floorY = -1

// Update applies one tick of intent. solid may be nil, in which case the
// player moves freely.
func (p *Player) Update(dt float64, in Intent, solid physics.Solid) {
	defer profiling.Track("player.Update")()

	if in.Rise {
		p.Position[1] += RiseStep
		p.Gravity = false
		p.Velocity[1] = 0
	}
	if in.Sink {
		p.Position[1] -= SinkStep
	}
	if in.Jump {
		p.Gravity = true
		if p.OnGround {
			p.Velocity[1] = JumpVelocity
			p.OnGround = false
		}
	}

	forward, right := p.groundAxes()
	move := forward.Mul(in.Forward).Add(right.Mul(in.Strafe))
	if move.Len() > 0 {
		move = move.Normalize().Mul(p.Speed * float32(dt))
	}
	p.moveAxis(0, move.X(), solid)
	p.moveAxis(2, move.Z(), solid)

	if !p.Gravity {
		p.Velocity[1] = 0
		p.OnGround = false
		return
	}

	p.Velocity[1] -= float32(Gravity * dt)
	if p.Velocity[1] < TerminalVelocity {
		p.Velocity[1] = TerminalVelocity
	}
	dy := p.Velocity.Y() * float32(dt)
	if !p.moveAxis(1, dy, solid) {
		if dy < 0 {
			p.land(solid)
		}
		p.Velocity[1] = 0
		return
	}
	p.OnGround = false
}

// moveAxis shifts the position along one axis unless that would put the body
// inside a solid voxel. It reports whether the move happened.
func (p *Player) moveAxis(axis int, delta float32, solid physics.Solid) bool {
	if delta == 0 {
		return true
	}
	next := p.Position
	next[axis] += delta
	if solid != nil && physics.Collides(next, PlayerHeight, solid) {
		return false
	}
	p.Position = next
	return true
}

// land snaps the feet onto the ground below after a blocked fall.
func (p *Player) land(solid physics.Solid) {
	p.OnGround = true
	if top, ok := physics.GroundLevel(p.Position.X(), p.Position.Z(), p.Position.Y(), floorY, solid); ok && top <= p.Position.Y() {
		p.Position[1] = top
	}
}

// Teleport moves the player without collision checks and stops any fall.
func (p *Player) Teleport(pos mgl32.Vec3) {
	p.Position = pos
	p.Velocity = mgl32.Vec3{}
	p.OnGround = false
}
