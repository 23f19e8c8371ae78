package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyHalfWidth is half the horizontal extent of the viewer's body.
const BodyHalfWidth = 0.3

// Collides checks if a body standing at pos with the given height overlaps
// any solid voxel.
func Collides(pos mgl32.Vec3, height float32, solid Solid) bool {
	minX := int(math.Floor(float64(pos.X() - BodyHalfWidth + 0.5)))
	maxX := int(math.Floor(float64(pos.X() + BodyHalfWidth + 0.5)))
	minY := int(math.Floor(float64(pos.Y() + 0.5)))
	maxY := int(math.Floor(float64(pos.Y() + height + 0.5)))
	minZ := int(math.Floor(float64(pos.Z() - BodyHalfWidth + 0.5)))
	maxZ := int(math.Floor(float64(pos.Z() + BodyHalfWidth + 0.5)))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !solid.Solid(x, y, z) {
					continue
				}
				blockMinX := float32(x) - 0.5
				blockMaxX := float32(x) + 0.5
				blockMinY := float32(y) - 0.5
				blockMaxY := float32(y) + 0.5
				blockMinZ := float32(z) - 0.5
				blockMaxZ := float32(z) + 0.5

				if pos.X()-BodyHalfWidth < blockMaxX && pos.X()+BodyHalfWidth > blockMinX &&
					pos.Y() < blockMaxY && pos.Y()+height > blockMinY &&
					pos.Z()-BodyHalfWidth < blockMaxZ && pos.Z()+BodyHalfWidth > blockMinZ {
					return true
				}
			}
		}
	}
	return false
}

// GroundLevel returns the top of the highest solid voxel under the body at
// (x, z), scanning down from fromY to floorY. ok is false when nothing is there.
func GroundLevel(x, z, fromY float32, floorY int, solid Solid) (top float32, ok bool) {
	minX := int(math.Floor(float64(x - BodyHalfWidth + 0.5)))
	maxX := int(math.Floor(float64(x + BodyHalfWidth + 0.5)))
	minZ := int(math.Floor(float64(z - BodyHalfWidth + 0.5)))
	maxZ := int(math.Floor(float64(z + BodyHalfWidth + 0.5)))

	best := float32(math.Inf(-1))
	for bx := minX; bx <= maxX; bx++ {
		for bz := minZ; bz <= maxZ; bz++ {
			for by := int(math.Floor(float64(fromY) + 0.5)); by >= floorY; by-- {
				if solid.Solid(bx, by, bz) {
					if groundY := float32(by) + 0.5; groundY > best {
						best = groundY
					}
					break
				}
			}
		}
	}
	if math.IsInf(float64(best), -1) {
		return 0, false
	}
	return best, true
}
