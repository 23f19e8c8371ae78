package worldmap

import (
	"errors"
	"testing"

	"island-mc/internal/biome"
	"island-mc/internal/noise"
)

// TestBuildDeterminism verifies identical arguments produce identical maps
func TestBuildDeterminism(t *testing.T) {
	cases := []struct {
		size   int
		seed   int64
		island bool
	}{
		{10, 42, false},
		{10, 42, true},
		{33, 34315, true},
		{17, 1, false},
	}
	for _, c := range cases {
		a, err := Build(c.size, c.seed, c.island)
		if err != nil {
			t.Fatalf("build %+v: %v", c, err)
		}
		b, err := Build(c.size, c.seed, c.island)
		if err != nil {
			t.Fatalf("build %+v: %v", c, err)
		}
		if a.Digest() != b.Digest() {
			t.Errorf("build %+v not deterministic", c)
		}
		for x := range c.size {
			for z := range c.size {
				ca, _ := a.At(x, z)
				cb, _ := b.At(x, z)
				if ca != cb {
					t.Fatalf("build %+v: cell (%d,%d) differs: %+v vs %+v", c, x, z, ca, cb)
				}
			}
		}
	}
}

// TestBuildEndToEndOrigin checks the (0,0) column of the reference world
func TestBuildEndToEndOrigin(t *testing.T) {
	a, err := Build(10, 42, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(10, 42, false)
	if err != nil {
		t.Fatal(err)
	}
	ca, ok := a.At(0, 0)
	if !ok {
		t.Fatalf("(0,0) must be in bounds")
	}
	cb, _ := b.At(0, 0)
	if ca != cb {
		t.Errorf("(0,0) differs between builds: %+v vs %+v", ca, cb)
	}
	if ca.Biome == biome.None {
		t.Errorf("(0,0) was not classified")
	}
}

func TestBuildSeedsDiffer(t *testing.T) {
	a, err := Build(24, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(24, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if a.Digest() == b.Digest() {
		t.Errorf("seeds 1 and 2 produced the same world")
	}
}

// TestBuildMatchesStages verifies BuildWith equals the staged pipeline
func TestBuildMatchesStages(t *testing.T) {
	opts := DefaultOptions(20, 777, true)
	whole, err := BuildWith(opts)
	if err != nil {
		t.Fatal(err)
	}
	height, err := HeightField(opts)
	if err != nil {
		t.Fatal(err)
	}
	heat, err := HeatField(opts)
	if err != nil {
		t.Fatal(err)
	}
	cells, err := ClassifyFields(height, heat)
	if err != nil {
		t.Fatal(err)
	}
	staged, err := FromCells(opts, cells)
	if err != nil {
		t.Fatal(err)
	}
	if whole.Digest() != staged.Digest() {
		t.Errorf("staged build differs from BuildWith")
	}
}

// TestIslandHasSea verifies the island mask zeroes the outer ring
func TestIslandHasSea(t *testing.T) {
	m, err := Build(48, 34315, true)
	if err != nil {
		t.Fatal(err)
	}
	hist := m.Histogram()
	if hist[biome.Sea] == 0 {
		t.Errorf("island world has no sea: %v", hist)
	}
	total := 0
	for _, n := range hist {
		total += n
	}
	if total != 48*48 {
		t.Errorf("histogram covers %d columns, expected %d", total, 48*48)
	}
	corner, _ := m.At(0, 0)
	if corner.Biome != biome.Sea || corner.WorldHeight != 0 {
		t.Errorf("island corner should be sea at height 0, got %+v", corner)
	}
}

func TestHeightsWithinShapingRange(t *testing.T) {
	m, err := Build(32, 5, false)
	if err != nil {
		t.Fatal(err)
	}
	if h := m.MaxHeight(); h != biome.HeightScale {
		t.Errorf("max height %d, expected %d (normalized peak)", h, biome.HeightScale)
	}
	for x := range 32 {
		for z := range 32 {
			c, _ := m.At(x, z)
			if c.WorldHeight < 0 || c.WorldHeight > biome.HeightScale {
				t.Fatalf("(%d,%d) height %d out of range", x, z, c.WorldHeight)
			}
		}
	}
}

func TestAtOutOfBounds(t *testing.T) {
	m, err := Build(4, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if _, ok := m.At(p[0], p[1]); ok {
			t.Errorf("At(%d,%d) should be out of bounds", p[0], p[1])
		}
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	if _, err := Build(0, 1, false); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size 0: expected ErrInvalidSize, got %v", err)
	}
	if _, err := Build(-3, 1, true); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size -3: expected ErrInvalidSize, got %v", err)
	}
	opts := DefaultOptions(8, 1, false)
	opts.Heat.Persistence = 0
	if _, err := BuildWith(opts); !errors.Is(err, noise.ErrInvalidParams) {
		t.Errorf("bad heat preset: expected ErrInvalidParams, got %v", err)
	}
}

func TestPerlinWorld(t *testing.T) {
	opts := DefaultOptions(16, 9, true)
	opts.Noise = noise.KindPerlin
	a, err := BuildWith(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildWith(opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Digest() != b.Digest() {
		t.Errorf("perlin world not deterministic")
	}
}
