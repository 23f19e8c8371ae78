package noise

import (
	"fmt"
	"math"

	"island-mc/internal/profiling"
)

// Shape is the width and height of a field in grid cells.
type Shape struct {
	W, H int
}

// Field is a dense row-major grid of scalars.
type Field struct {
	W, H   int
	Values []float64
}

// NewField allocates a zeroed w*h field.
func NewField(w, h int) *Field {
	return &Field{W: w, H: h, Values: make([]float64, w*h)}
}

// At returns the value at (x, y). Coordinates must be in range.
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.W+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Values[y*f.W+x] = v
}

// InBounds reports whether (x, y) addresses a cell of the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// MinMax returns the smallest and largest value. An empty field yields (0, 0).
func (f *Field) MinMax() (float64, float64) {
	if len(f.Values) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Normalize rescales f in place so its minimum becomes 0 and its maximum 1.
// A constant field has no range and becomes all zeros.
func Normalize(f *Field) *Field {
	lo, hi := f.MinMax()
	span := hi - lo
	if span == 0 {
		clear(f.Values)
		return f
	}
	for i, v := range f.Values {
		f.Values[i] = (v - lo) / span
	}
	return f
}

// Generator produces normalized noise fields from one noise implementation.
type Generator struct {
	Kind Kind
}

// Generate samples the noise at (x/W, y/H, seed) for every cell and
// normalizes the result to [0,1]. The output depends only on the arguments.
func (g Generator) Generate(shape Shape, seed int64, p Params) (*Field, error) {
	defer profiling.Track("noise.Generate")()
	if shape.W <= 0 || shape.H <= 0 {
		return nil, fmt.Errorf("%w: shape must be positive, got %dx%d", ErrInvalidParams, shape.W, shape.H)
	}
	sample, err := NewSampler(g.Kind, seed, p)
	if err != nil {
		return nil, err
	}

	f := NewField(shape.W, shape.H)
	z := float64(seed)
	for y := range shape.H {
		for x := range shape.W {
			f.Set(x, y, sample(float64(x)/float64(shape.W), float64(y)/float64(shape.H), z))
		}
	}
	return Normalize(f), nil
}

// Generate is Generator{Kind: KindSimplex}.Generate.
func Generate(shape Shape, seed int64, p Params) (*Field, error) {
	return Generator{Kind: KindSimplex}.Generate(shape, seed, p)
}
