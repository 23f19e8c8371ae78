package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned for noise presets that cannot produce a field.
var ErrInvalidParams = errors.New("invalid noise params")

// Params configures the fractal sum of a coherent noise source.
type Params struct {
	Octaves     int     `yaml:"octaves" json:"octaves"`
	Persistence float64 `yaml:"persistence" json:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity" json:"lacunarity"`
}

// Presets used by world generation.
var (
	HeightIsland    = Params{Octaves: 2, Persistence: 0.5, Lacunarity: 4}
	HeightContinent = Params{Octaves: 4, Persistence: 0.2, Lacunarity: 7}
	Heat            = Params{Octaves: 1, Persistence: 0.5, Lacunarity: 2}
)

// Validate reports whether p describes a usable octave sum.
func (p Params) Validate() error {
	if p.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be >= 1, got %d", ErrInvalidParams, p.Octaves)
	}
	if math.IsNaN(p.Persistence) || p.Persistence <= 0 || p.Persistence > 1 {
		return fmt.Errorf("%w: persistence must be in (0,1], got %v", ErrInvalidParams, p.Persistence)
	}
	if math.IsNaN(p.Lacunarity) || p.Lacunarity <= 1 {
		return fmt.Errorf("%w: lacunarity must be > 1, got %v", ErrInvalidParams, p.Lacunarity)
	}
	return nil
}
