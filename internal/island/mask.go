// Package island biases a height field toward a single central landmass.
package island

import (
	"fmt"
	"math"

	"island-mc/internal/noise"
)

// Plateau caps the normalized centre distance so the outer ring of the mask
// is flat instead of sloping all the way to the corners.
const Plateau = 0.8

// CircularMask returns a size*size falloff field. Cells are mapped onto
// [-1,1]x[-1,1]; the value is the negated, normalized distance from the
// centre, so the centre is 0 and the plateau ring is -1.
func CircularMask(size int) *noise.Field {
	f := noise.NewField(size, size)
	for y := range size {
		for x := range size {
			f.Set(x, y, math.Hypot(linspace(x, size), linspace(y, size)))
		}
	}
	noise.Normalize(f)
	for i, v := range f.Values {
		f.Values[i] = min(v, Plateau)
	}
	noise.Normalize(f)
	for i, v := range f.Values {
		f.Values[i] = -v
	}
	return f
}

// linspace maps index i of n evenly spaced samples onto [-1, 1].
func linspace(i, n int) float64 {
	if n <= 1 {
		return -1
	}
	return -1 + 2*float64(i)/float64(n-1)
}

// Combine adds mask to height cell by cell, clamps negatives to 0 and
// normalizes the sum. height is left untouched.
func Combine(height, mask *noise.Field) (*noise.Field, error) {
	if height.W != mask.W || height.H != mask.H {
		return nil, fmt.Errorf("combine: shape mismatch %dx%d vs %dx%d", height.W, height.H, mask.W, mask.H)
	}
	out := noise.NewField(height.W, height.H)
	for i, v := range height.Values {
		out.Values[i] = max(v+mask.Values[i], 0)
	}
	return noise.Normalize(out), nil
}
