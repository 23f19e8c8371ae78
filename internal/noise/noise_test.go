package noise

import (
	"errors"
	"math"
	"testing"
)

// TestGenerateDeterministic verifies identical inputs produce identical fields
func TestGenerateDeterministic(t *testing.T) {
	for _, kind := range []Kind{KindSimplex, KindPerlin} {
		a, err := Generator{Kind: kind}.Generate(Shape{W: 24, H: 24}, 42, HeightContinent)
		if err != nil {
			t.Fatalf("%s: generate: %v", kind, err)
		}
		b, err := Generator{Kind: kind}.Generate(Shape{W: 24, H: 24}, 42, HeightContinent)
		if err != nil {
			t.Fatalf("%s: generate: %v", kind, err)
		}
		for i := range a.Values {
			if a.Values[i] != b.Values[i] {
				t.Fatalf("%s: value %d differs: %v != %v", kind, i, a.Values[i], b.Values[i])
			}
		}
	}
}

// TestGenerateSeedChangesField verifies the seed reaches the sampler
func TestGenerateSeedChangesField(t *testing.T) {
	a, err := Generate(Shape{W: 16, H: 16}, 1, HeightIsland)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(Shape{W: 16, H: 16}, 2, HeightIsland)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("fields for seeds 1 and 2 are identical")
	}
}

// TestGenerateNormalized verifies min maps to 0 and max maps to 1
func TestGenerateNormalized(t *testing.T) {
	presets := []Params{HeightIsland, HeightContinent, Heat}
	for _, p := range presets {
		f, err := Generate(Shape{W: 32, H: 20}, 34315, p)
		if err != nil {
			t.Fatalf("generate %+v: %v", p, err)
		}
		lo, hi := f.MinMax()
		if math.Abs(lo) > 1e-12 || math.Abs(hi-1) > 1e-12 {
			t.Errorf("preset %+v: range [%v, %v], expected [0, 1]", p, lo, hi)
		}
		if f.W != 32 || f.H != 20 || len(f.Values) != 640 {
			t.Errorf("preset %+v: unexpected shape %dx%d (%d values)", p, f.W, f.H, len(f.Values))
		}
	}
}

func TestNormalizeConstantFieldIsZero(t *testing.T) {
	f := NewField(3, 3)
	for i := range f.Values {
		f.Values[i] = 0.7
	}
	Normalize(f)
	for i, v := range f.Values {
		if v != 0 {
			t.Errorf("value %d = %v, expected 0", i, v)
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	f := &Field{W: 4, H: 1, Values: []float64{-2, 0, 2, 6}}
	Normalize(f)
	want := []float64{0, 0.25, 0.5, 1}
	for i := range want {
		if f.Values[i] != want[i] {
			t.Errorf("value %d = %v, expected %v", i, f.Values[i], want[i])
		}
	}
}

// TestGenerateSingleCell covers the degenerate one-sample field
func TestGenerateSingleCell(t *testing.T) {
	f, err := Generate(Shape{W: 1, H: 1}, 7, Heat)
	if err != nil {
		t.Fatal(err)
	}
	if f.At(0, 0) != 0 {
		t.Errorf("single cell should normalize to 0, got %v", f.At(0, 0))
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"island preset", HeightIsland, true},
		{"continent preset", HeightContinent, true},
		{"heat preset", Heat, true},
		{"persistence one", Params{Octaves: 1, Persistence: 1, Lacunarity: 2}, true},
		{"zero octaves", Params{Octaves: 0, Persistence: 0.5, Lacunarity: 2}, false},
		{"zero persistence", Params{Octaves: 1, Persistence: 0, Lacunarity: 2}, false},
		{"negative persistence", Params{Octaves: 1, Persistence: -0.5, Lacunarity: 2}, false},
		{"persistence above one", Params{Octaves: 1, Persistence: 1.5, Lacunarity: 2}, false},
		{"lacunarity one", Params{Octaves: 1, Persistence: 0.5, Lacunarity: 1}, false},
		{"nan persistence", Params{Octaves: 1, Persistence: math.NaN(), Lacunarity: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	if _, err := Generate(Shape{W: 0, H: 4}, 1, Heat); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("zero width: expected ErrInvalidParams, got %v", err)
	}
	if _, err := Generate(Shape{W: 4, H: 4}, 1, Params{}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("zero params: expected ErrInvalidParams, got %v", err)
	}
	if _, err := (Generator{Kind: "value"}).Generate(Shape{W: 4, H: 4}, 1, Heat); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("unknown kind: expected ErrInvalidParams, got %v", err)
	}
}

// TestSimplexSamplerIterationOrder verifies a sample does not depend on what was sampled before
func TestSimplexSamplerIterationOrder(t *testing.T) {
	s, err := NewSampler(KindSimplex, 99, HeightContinent)
	if err != nil {
		t.Fatal(err)
	}
	first := s(0.25, 0.75, 99)
	for i := range 50 {
		s(float64(i)/50, 0.5, 99)
	}
	if again := s(0.25, 0.75, 99); again != first {
		t.Errorf("sample changed after unrelated calls: %v != %v", first, again)
	}
}
