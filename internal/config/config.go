package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"island-mc/internal/noise"
	"island-mc/internal/worldmap"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Ranges offered by the main menu sliders.
const (
	MinWorldSize    = 50
	MaxWorldSize    = 2000
	MinRenderRadius = 4
	MaxRenderRadius = 30
	MinSpeed        = 1
	MaxSpeed        = 20

	// A zero seed is replaced by one drawn from [RandomSeedMin, RandomSeedMax].
	RandomSeedMin = 10000
	RandomSeedMax = 99999

	ClassicSeed = 34315
)

// Config captures everything needed to build a world and explore it.
type Config struct {
	World   WorldConfig   `yaml:"world" json:"world"`
	Stream  StreamConfig  `yaml:"stream" json:"stream"`
	Player  PlayerConfig  `yaml:"player" json:"player"`
	Noise   NoiseConfig   `yaml:"noise" json:"noise"`
	Minimap MinimapConfig `yaml:"minimap" json:"minimap"`
}

type WorldConfig struct {
	Size   int   `yaml:"size" json:"size"`
	Seed   int64 `yaml:"seed" json:"seed"` // 0 picks a random seed
	Island bool  `yaml:"island" json:"island"`
}

type StreamConfig struct {
	RenderRadius int `yaml:"renderRadius" json:"renderRadius"` // columns
}

type PlayerConfig struct {
	Speed float64    `yaml:"speed" json:"speed"` // blocks per second
	Start [3]float64 `yaml:"start" json:"start"`
}

type NoiseConfig struct {
	Source          noise.Kind   `yaml:"source" json:"source"`
	HeightIsland    noise.Params `yaml:"heightIsland" json:"heightIsland"`
	HeightContinent noise.Params `yaml:"heightContinent" json:"heightContinent"`
	Heat            noise.Params `yaml:"heat" json:"heat"`
}

type MinimapConfig struct {
	Dir    string `yaml:"dir" json:"dir"`
	Border bool   `yaml:"border" json:"border"`
	Scale  int    `yaml:"scale" json:"scale"`
	Legend bool   `yaml:"legend" json:"legend"`
}

// Default returns the classic island setup.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Size:   512,
			Seed:   ClassicSeed,
			Island: true,
		},
		Stream: StreamConfig{RenderRadius: 10},
		Player: PlayerConfig{
			Speed: 15,
			Start: [3]float64{250.5, 40, 250.5},
		},
		Noise: NoiseConfig{
			Source:          noise.KindSimplex,
			HeightIsland:    noise.HeightIsland,
			HeightContinent: noise.HeightContinent,
			Heat:            noise.Heat,
		},
		Minimap: MinimapConfig{
			Dir:    "maps",
			Border: true,
			Scale:  1,
		},
	}
}

// Load reads a YAML or JSON file over the defaults. An empty path returns
// defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func (c *Config) Validate() error {
	if c.World.Size < MinWorldSize || c.World.Size > MaxWorldSize {
		return fmt.Errorf("%w: world.size must be in [%d, %d], got %d", ErrInvalid, MinWorldSize, MaxWorldSize, c.World.Size)
	}
	if c.World.Seed < 0 {
		return fmt.Errorf("%w: world.seed cannot be negative", ErrInvalid)
	}
	if c.Stream.RenderRadius < MinRenderRadius || c.Stream.RenderRadius > MaxRenderRadius {
		return fmt.Errorf("%w: stream.renderRadius must be in [%d, %d], got %d", ErrInvalid, MinRenderRadius, MaxRenderRadius, c.Stream.RenderRadius)
	}
	if math.IsNaN(c.Player.Speed) || c.Player.Speed < MinSpeed || c.Player.Speed > MaxSpeed {
		return fmt.Errorf("%w: player.speed must be in [%d, %d], got %v", ErrInvalid, MinSpeed, MaxSpeed, c.Player.Speed)
	}
	for _, v := range c.Player.Start {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: player.start must be finite", ErrInvalid)
		}
	}
	switch c.Noise.Source {
	case noise.KindSimplex, noise.KindPerlin:
	default:
		return fmt.Errorf("%w: noise.source must be %q or %q, got %q", ErrInvalid, noise.KindSimplex, noise.KindPerlin, c.Noise.Source)
	}
	if err := c.WorldOptions().Validate(); err != nil {
		return fmt.Errorf("%w: noise: %v", ErrInvalid, err)
	}
	if c.Minimap.Dir == "" {
		return fmt.Errorf("%w: minimap.dir must be set", ErrInvalid)
	}
	if c.Minimap.Scale < 1 {
		return fmt.Errorf("%w: minimap.scale must be >= 1", ErrInvalid)
	}
	return nil
}

// Resolve replaces a zero seed with a random one and clamps the start
// position into the world. It reports whether a seed was drawn.
func (c *Config) Resolve(rng *rand.Rand) bool {
	drawn := false
	if c.World.Seed == 0 {
		c.World.Seed = int64(RandomSeedMin + rng.Intn(RandomSeedMax-RandomSeedMin+1))
		drawn = true
	}
	limit := float64(c.World.Size) - 0.5
	for _, i := range []int{0, 2} {
		c.Player.Start[i] = math.Max(0.5, math.Min(c.Player.Start[i], limit))
	}
	return drawn
}

// WorldOptions converts the world and noise sections for worldmap.BuildWith.
func (c *Config) WorldOptions() worldmap.Options {
	return worldmap.Options{
		Size:            c.World.Size,
		Seed:            c.World.Seed,
		Island:          c.World.Island,
		Noise:           c.Noise.Source,
		HeightIsland:    c.Noise.HeightIsland,
		HeightContinent: c.Noise.HeightContinent,
		Heat:            c.Noise.Heat,
	}
}

// Preset names offered by the launcher.
const (
	PresetClassic = "classic"
	PresetRandom  = "random"
	PresetCustom  = "custom"
)

// ApplyPreset adjusts the world section. Custom keeps the configured values.
func (c *Config) ApplyPreset(name string) error {
	switch name {
	case PresetClassic:
		c.World.Seed = ClassicSeed
		c.World.Island = true
	case PresetRandom:
		c.World.Seed = 0
		c.World.Island = true
	case PresetCustom, "":
	default:
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.World.Size, "size", c.World.Size, "world size in columns")
	fs.Int64Var(&c.World.Seed, "seed", c.World.Seed, "world seed (0 picks a random one)")
	fs.BoolVar(&c.World.Island, "island", c.World.Island, "apply the circular island mask")
	fs.IntVar(&c.Stream.RenderRadius, "radius", c.Stream.RenderRadius, "render radius in columns")
	fs.Float64Var(&c.Player.Speed, "speed", c.Player.Speed, "flying speed")
	fs.StringVar((*string)(&c.Noise.Source), "noise", string(c.Noise.Source), "noise source (simplex or perlin)")
	fs.StringVar(&c.Minimap.Dir, "minimap-dir", c.Minimap.Dir, "minimap cache directory")
	fs.IntVar(&c.Minimap.Scale, "minimap-scale", c.Minimap.Scale, "minimap pixels per column")
	fs.BoolVar(&c.Minimap.Legend, "legend", c.Minimap.Legend, "draw a biome legend under the minimap")
}

// FromArgs parses args, loads the file named by -config and lets explicitly
// set flags override file values. The -preset flag is applied last.
func FromArgs(name string, args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	path := fs.String("config", "", "YAML or JSON config file")
	preset := fs.String("preset", PresetCustom, "world preset: classic, random or custom")
	Default().Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return nil, err
	}

	overlay := flag.NewFlagSet(name, flag.ContinueOnError)
	overlay.SetOutput(io.Discard)
	cfg.Bind(overlay)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if overlay.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		if err := overlay.Set(f.Name, f.Value.String()); err != nil {
			setErr = fmt.Errorf("flag -%s: %w", f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	if err := cfg.ApplyPreset(*preset); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
