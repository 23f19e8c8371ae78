package physics

import (
	"math"

	"island-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

// Solid reports whether the unit cube centred on voxel (x, y, z) is occupied.
type Solid interface {
	Solid(x, y, z int) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Normal returns the face of the hit voxel the ray entered through.
func (r RaycastResult) Normal() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(r.AdjacentPosition[0] - r.HitPosition[0]),
		float32(r.AdjacentPosition[1] - r.HitPosition[1]),
		float32(r.AdjacentPosition[2] - r.HitPosition[2]),
	}
}

// VoxelAt returns the voxel whose cube contains pos.
func VoxelAt(pos mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(pos.X()) + 0.5)),
		int(math.Floor(float64(pos.Y()) + 0.5)),
		int(math.Floor(float64(pos.Z()) + 0.5)),
	}
}

// Raycast steps from start along direction and returns the first solid voxel
// between minDist and maxDist. The adjacent position is the last free voxel
// before the hit.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, solid Solid) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	stepSize := float32(0.02)
	steps := int(maxDist / stepSize)

	lastEmptyPos := VoxelAt(start)
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		pos := start.Add(direction.Mul(dist))
		blockPos := VoxelAt(pos)

		if dist >= minDist && solid.Solid(blockPos[0], blockPos[1], blockPos[2]) {
			result.HitPosition = blockPos
			result.AdjacentPosition = lastEmptyPos
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmptyPos = blockPos
	}

	return result
}
