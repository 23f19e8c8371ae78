// Package worldmap builds the static grid of classified columns that every
// other component reads from.
package worldmap

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"island-mc/internal/biome"
	"island-mc/internal/island"
	"island-mc/internal/noise"
	"island-mc/internal/profiling"
)

// ErrInvalidSize is returned when the requested grid side is not positive.
var ErrInvalidSize = errors.New("world size must be positive")

// Options fully determines a Map.
type Options struct {
	Size   int
	Seed   int64
	Island bool

	Noise           noise.Kind
	HeightIsland    noise.Params
	HeightContinent noise.Params
	Heat            noise.Params
}

// DefaultOptions uses simplex noise and the stock presets.
func DefaultOptions(size int, seed int64, island bool) Options {
	return Options{
		Size:            size,
		Seed:            seed,
		Island:          island,
		Noise:           noise.KindSimplex,
		HeightIsland:    noise.HeightIsland,
		HeightContinent: noise.HeightContinent,
		Heat:            noise.Heat,
	}
}

// Validate checks the grid size and every noise preset.
func (o Options) Validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, o.Size)
	}
	presets := []struct {
		name string
		p    noise.Params
	}{
		{"heightIsland", o.HeightIsland},
		{"heightContinent", o.HeightContinent},
		{"heat", o.Heat},
	}
	for _, preset := range presets {
		if err := preset.p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", preset.name, err)
		}
	}
	return nil
}

// Map is a Size x Size grid of cells indexed by column (x, z). It is never
// modified after construction and may be shared freely.
type Map struct {
	size   int
	seed   int64
	island bool
	cells  []biome.Cell
}

// Build generates the map for (size, seed, island) with default presets.
func Build(size int, seed int64, island bool) (*Map, error) {
	return BuildWith(DefaultOptions(size, seed, island))
}

// BuildWith runs every generation stage in one call.
func BuildWith(opts Options) (*Map, error) {
	defer profiling.Track("worldmap.Build")()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	height, err := HeightField(opts)
	if err != nil {
		return nil, err
	}
	heat, err := HeatField(opts)
	if err != nil {
		return nil, err
	}
	cells, err := ClassifyFields(height, heat)
	if err != nil {
		return nil, err
	}
	return FromCells(opts, cells)
}

// HeightField generates the height field, island-masked when opts.Island is set.
func HeightField(opts Options) (*noise.Field, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, opts.Size)
	}
	params := opts.HeightContinent
	if opts.Island {
		params = opts.HeightIsland
	}
	gen := noise.Generator{Kind: opts.Noise}
	height, err := gen.Generate(noise.Shape{W: opts.Size, H: opts.Size}, opts.Seed, params)
	if err != nil {
		return nil, fmt.Errorf("height field: %w", err)
	}
	if !opts.Island {
		return height, nil
	}
	return island.Combine(height, island.CircularMask(opts.Size))
}

// HeatField generates the heat field. Heat never gets the island bias.
func HeatField(opts Options) (*noise.Field, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, opts.Size)
	}
	gen := noise.Generator{Kind: opts.Noise}
	heat, err := gen.Generate(noise.Shape{W: opts.Size, H: opts.Size}, opts.Seed, opts.Heat)
	if err != nil {
		return nil, fmt.Errorf("heat field: %w", err)
	}
	return heat, nil
}

// ClassifyFields classifies every (height, heat) pair. The result is indexed
// like the fields: column (x, z) is at z*W + x.
func ClassifyFields(height, heat *noise.Field) ([]biome.Cell, error) {
	defer profiling.Track("worldmap.ClassifyFields")()
	if height.W != heat.W || height.H != heat.H {
		return nil, fmt.Errorf("classify: shape mismatch %dx%d vs %dx%d", height.W, height.H, heat.W, heat.H)
	}
	cells := make([]biome.Cell, len(height.Values))
	for i := range cells {
		cells[i] = biome.Classify(height.Values[i], heat.Values[i])
	}
	return cells, nil
}

// FromCells wraps classified cells into a Map.
func FromCells(opts Options, cells []biome.Cell) (*Map, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, opts.Size)
	}
	if len(cells) != opts.Size*opts.Size {
		return nil, fmt.Errorf("expected %d cells, got %d", opts.Size*opts.Size, len(cells))
	}
	return &Map{size: opts.Size, seed: opts.Seed, island: opts.Island, cells: cells}, nil
}

func (m *Map) Size() int    { return m.size }
func (m *Map) Seed() int64  { return m.seed }
func (m *Map) Island() bool { return m.island }

// InBounds reports whether (x, z) is a column of the map.
func (m *Map) InBounds(x, z int) bool {
	return x >= 0 && x < m.size && z >= 0 && z < m.size
}

// At returns the cell of column (x, z). ok is false outside the map.
func (m *Map) At(x, z int) (cell biome.Cell, ok bool) {
	if !m.InBounds(x, z) {
		return biome.Cell{}, false
	}
	return m.cells[z*m.size+x], true
}

// MaxHeight returns the tallest world height on the map.
func (m *Map) MaxHeight() int {
	h := 0
	for _, c := range m.cells {
		h = max(h, c.WorldHeight)
	}
	return h
}

// Histogram counts columns per biome.
func (m *Map) Histogram() map[biome.Biome]int {
	out := make(map[biome.Biome]int)
	for _, c := range m.cells {
		out[c.Biome]++
	}
	return out
}

// Digest hashes every cell in column order. Two maps with equal digests hold
// the same biomes and heights.
func (m *Map) Digest() [32]byte {
	h := sha256.New()
	var buf [9]byte
	for _, c := range m.cells {
		buf[0] = byte(c.Biome)
		binary.LittleEndian.PutUint64(buf[1:], uint64(c.WorldHeight))
		h.Write(buf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
