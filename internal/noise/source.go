package noise

import (
	"fmt"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind selects the coherent noise implementation behind a field.
type Kind string

const (
	KindSimplex Kind = "simplex"
	KindPerlin  Kind = "perlin"
)

// Sampler returns the raw fractal noise value at a 3D point.
type Sampler func(x, y, z float64) float64

// NewSampler builds the octave sampler for kind, seeded with seed.
func NewSampler(kind Kind, seed int64, p Params) (Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case KindSimplex, "":
		return simplexSampler(opensimplex.New(seed), p), nil
	case KindPerlin:
		return perlinSampler(seed, p), nil
	default:
		return nil, fmt.Errorf("%w: unknown noise kind %q", ErrInvalidParams, kind)
	}
}

// simplexSampler sums octaves of 3D simplex noise. Every axis, including the
// seed axis, is scaled by the octave frequency.
func simplexSampler(n opensimplex.Noise, p Params) Sampler {
	return func(x, y, z float64) float64 {
		amplitude := 1.0
		frequency := 1.0
		sum := 0.0
		norm := 0.0
		for range p.Octaves {
			sum += n.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
			norm += amplitude
			amplitude *= p.Persistence
			frequency *= p.Lacunarity
		}
		return sum / norm
	}
}

// perlinSampler maps Params onto go-perlin's alpha/beta/n: alpha divides the
// amplitude each octave, beta multiplies the frequency.
func perlinSampler(seed int64, p Params) Sampler {
	gen := perlin.NewPerlin(1/p.Persistence, p.Lacunarity, int32(p.Octaves), seed)
	return gen.Noise3D
}
