// Command minimap builds a world headlessly and writes its biome map to the
// minimap cache.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"island-mc/internal/biome"
	"island-mc/internal/config"
	"island-mc/internal/minimap"
	"island-mc/internal/worldmap"
)

func main() {
	logger := log.New(os.Stderr, "minimap ", log.LstdFlags)

	args, force := splitForce(os.Args[1:])
	cfg, err := config.FromArgs("minimap", args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "  -force\n    \tre-render even if the map is cached")
		return
	}
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.Resolve(rand.New(rand.NewSource(time.Now().UnixNano()))) {
		logger.Printf("picked random seed %d", cfg.World.Seed)
	}

	start := time.Now()
	world, err := worldmap.BuildWith(cfg.WorldOptions())
	if err != nil {
		logger.Fatalf("build world: %v", err)
	}
	logger.Printf("built %dx%d world seed %d in %v, max height %d",
		world.Size(), world.Size(), world.Seed(), time.Since(start).Round(time.Millisecond), world.MaxHeight())
	logHistogram(logger, world.Histogram(), world.Size()*world.Size())

	opts := minimap.Options{Border: cfg.Minimap.Border, Scale: cfg.Minimap.Scale, Legend: cfg.Minimap.Legend}
	if force {
		path := minimap.PathForSeed(cfg.Minimap.Dir, world.Seed())
		img, err := minimap.Render(world, opts)
		if err != nil {
			logger.Fatalf("render: %v", err)
		}
		if err := minimap.Save(img, path); err != nil {
			logger.Fatalf("save: %v", err)
		}
		fmt.Println(path)
		return
	}
	path, _, err := minimap.EnsureCached(world, cfg.Minimap.Dir, opts, logger)
	if err != nil {
		logger.Fatalf("minimap: %v", err)
	}
	fmt.Println(path)
}

// splitForce removes -force from args; the remaining flags belong to config.
func splitForce(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	force := false
	for _, a := range args {
		if a == "-force" || a == "--force" {
			force = true
			continue
		}
		out = append(out, a)
	}
	return out, force
}

func logHistogram(logger *log.Logger, h map[biome.Biome]int, total int) {
	bs := make([]biome.Biome, 0, len(h))
	for b := range h {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return h[bs[i]] > h[bs[j]] })
	for _, b := range bs {
		logger.Printf("  %-10s %7d  %5.1f%%", b, h[b], 100*float64(h[b])/float64(total))
	}
}
