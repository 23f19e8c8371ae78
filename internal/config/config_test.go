package config

import (
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"island-mc/internal/noise"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.World.Size != 512 || cfg.World.Seed != 34315 || cfg.Stream.RenderRadius != 10 || cfg.Player.Speed != 15 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Player.Start != [3]float64{250.5, 40, 250.5} {
		t.Errorf("unexpected start %v", cfg.Player.Start)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Size != Default().World.Size {
		t.Errorf("expected defaults")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "world.yaml", `
world:
  size: 200
  seed: 7
  island: false
stream:
  renderRadius: 6
noise:
  source: perlin
  heat:
    octaves: 3
    persistence: 0.4
    lacunarity: 2.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Size != 200 || cfg.World.Seed != 7 || cfg.World.Island {
		t.Errorf("world section not decoded: %+v", cfg.World)
	}
	if cfg.Stream.RenderRadius != 6 {
		t.Errorf("renderRadius = %d", cfg.Stream.RenderRadius)
	}
	if cfg.Noise.Source != noise.KindPerlin {
		t.Errorf("noise source = %q", cfg.Noise.Source)
	}
	if cfg.Noise.Heat != (noise.Params{Octaves: 3, Persistence: 0.4, Lacunarity: 2.5}) {
		t.Errorf("heat preset = %+v", cfg.Noise.Heat)
	}
	// Untouched sections keep their defaults.
	if cfg.Player.Speed != 15 || cfg.Noise.HeightIsland != noise.HeightIsland || cfg.Minimap.Dir != "maps" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "world.json", `{"player": {"speed": 4, "start": [10.5, 30, 12.5]}, "minimap": {"legend": true}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Player.Speed != 4 || cfg.Player.Start != [3]float64{10.5, 30, 12.5} {
		t.Errorf("player section not decoded: %+v", cfg.Player)
	}
	if !cfg.Minimap.Legend || !cfg.Minimap.Border {
		t.Errorf("minimap section = %+v", cfg.Minimap)
	}
}

func TestLoadEmptyYAMLFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Seed != ClassicSeed {
		t.Errorf("expected defaults, got seed %d", cfg.World.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"unknown yaml key", "a.yaml", "world:\n  sise: 10\n", "parse config"},
		{"unknown json key", "a.json", `{"wrld": {}}`, "parse config"},
		{"bad format", "a.toml", "size = 3", "unsupported config format"},
		{"invalid value", "a.yaml", "world:\n  size: 10\n", "world.size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"random seed", func(c *Config) { c.World.Seed = 0 }, ""},
		{"smallest world", func(c *Config) { c.World.Size = MinWorldSize }, ""},
		{"world too small", func(c *Config) { c.World.Size = 49 }, "world.size"},
		{"world too large", func(c *Config) { c.World.Size = 2001 }, "world.size"},
		{"negative seed", func(c *Config) { c.World.Seed = -1 }, "world.seed"},
		{"radius too small", func(c *Config) { c.Stream.RenderRadius = 3 }, "stream.renderRadius"},
		{"radius too large", func(c *Config) { c.Stream.RenderRadius = 31 }, "stream.renderRadius"},
		{"speed too low", func(c *Config) { c.Player.Speed = 0.5 }, "player.speed"},
		{"speed too high", func(c *Config) { c.Player.Speed = 21 }, "player.speed"},
		{"unknown noise", func(c *Config) { c.Noise.Source = "value" }, "noise.source"},
		{"zero persistence", func(c *Config) { c.Noise.Heat.Persistence = 0 }, "persistence"},
		{"no octaves", func(c *Config) { c.Noise.HeightIsland.Octaves = 0 }, "octaves"},
		{"no minimap dir", func(c *Config) { c.Minimap.Dir = "" }, "minimap.dir"},
		{"zero scale", func(c *Config) { c.Minimap.Scale = 0 }, "minimap.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.World.Seed = 0
	cfg.World.Size = 100
	cfg.Player.Start = [3]float64{250.5, 40, -3}
	if !cfg.Resolve(rand.New(rand.NewSource(1))) {
		t.Fatalf("expected a seed to be drawn")
	}
	if cfg.World.Seed < RandomSeedMin || cfg.World.Seed > RandomSeedMax {
		t.Errorf("seed %d out of range", cfg.World.Seed)
	}
	if cfg.Player.Start != [3]float64{99.5, 40, 0.5} {
		t.Errorf("start not clamped: %v", cfg.Player.Start)
	}

	fixed := Default()
	if fixed.Resolve(rand.New(rand.NewSource(1))) {
		t.Errorf("a fixed seed must be kept")
	}
	if fixed.World.Seed != ClassicSeed || fixed.Player.Start != Default().Player.Start {
		t.Errorf("fixed config changed: %+v", fixed)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	cfg.World.Seed = 5
	cfg.World.Island = false
	if err := cfg.ApplyPreset(PresetCustom); err != nil || cfg.World.Seed != 5 {
		t.Errorf("custom preset changed the world: %v %+v", err, cfg.World)
	}
	if err := cfg.ApplyPreset(PresetRandom); err != nil || cfg.World.Seed != 0 || !cfg.World.Island {
		t.Errorf("random preset: %v %+v", err, cfg.World)
	}
	if err := cfg.ApplyPreset(PresetClassic); err != nil || cfg.World.Seed != ClassicSeed {
		t.Errorf("classic preset: %v %+v", err, cfg.World)
	}
	if err := cfg.ApplyPreset("archipelago"); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown preset error = %v", err)
	}
}

func TestFromArgs(t *testing.T) {
	path := writeFile(t, "world.yaml", "world:\n  size: 300\n  seed: 11\nstream:\n  renderRadius: 8\n")

	cfg, err := FromArgs("test", []string{"-config", path, "-radius", "12", "-island=false"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Size != 300 || cfg.World.Seed != 11 {
		t.Errorf("file values lost: %+v", cfg.World)
	}
	if cfg.Stream.RenderRadius != 12 || cfg.World.Island {
		t.Errorf("flags did not override the file: %+v", cfg)
	}

	cfg, err = FromArgs("test", []string{"-preset", "classic", "-seed", "9"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Seed != ClassicSeed {
		t.Errorf("preset should win over -seed, got %d", cfg.World.Seed)
	}

	if _, err := FromArgs("test", []string{"-radius", "99"}, io.Discard); err == nil {
		t.Errorf("expected validation error")
	}
	if _, err := FromArgs("test", []string{"-bogus"}, io.Discard); err == nil {
		t.Errorf("expected flag error")
	}
}

func TestSetRenderRadiusClamps(t *testing.T) {
	prev := GetRenderRadius()
	defer SetRenderRadius(prev)

	tests := []struct{ in, want int }{
		{10, 10},
		{1, MinRenderRadius},
		{100, MaxRenderRadius},
		{MaxRenderRadius, MaxRenderRadius},
	}
	for _, tt := range tests {
		if got := SetRenderRadius(tt.in); got != tt.want {
			t.Errorf("SetRenderRadius(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := GetRenderRadius(); got != tt.want {
			t.Errorf("GetRenderRadius() = %d, want %d", got, tt.want)
		}
	}
}
