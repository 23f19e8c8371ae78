// Package minimap renders a world map as a top-down biome image and caches it
// on disk per seed.
package minimap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"island-mc/internal/biome"
	"island-mc/internal/profiling"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Source is the read side of a generated world.
type Source interface {
	Size() int
	Seed() int64
	At(x, z int) (biome.Cell, bool)
}

// Frame colours, drawn from the outside in.
var (
	Black = color.RGBA{A: 255}
	Gold  = color.RGBA{R: 255, G: 215, A: 255}
)

type band struct {
	width int
	color color.RGBA
}

var frame = []band{{1, Black}, {5, Gold}, {2, Black}}

// FrameWidth is the total border thickness on each side.
func FrameWidth() int {
	n := 0
	for _, b := range frame {
		n += b.width
	}
	return n
}

// Options controls how a map is drawn.
type Options struct {
	Border bool
	// Scale is the number of pixels per column, at least 1.
	Scale  int
	Legend bool
}

// DefaultOptions draws a bordered 1:1 map without legend.
func DefaultOptions() Options {
	return Options{Border: true, Scale: 1}
}

const (
	legendLine   = 14
	legendSwatch = 10
	legendPad    = 4
)

// Render draws src with one pixel per column, pixel (x, z) showing the biome
// colour of column (x, z), then applies scale, border and legend.
func Render(src Source, opts Options) (*image.RGBA, error) {
	defer profiling.Track("minimap.Render")()
	if src == nil || src.Size() <= 0 {
		return nil, errors.New("minimap: empty source")
	}
	if opts.Scale < 1 {
		return nil, fmt.Errorf("minimap: scale must be at least 1, got %d", opts.Scale)
	}

	size := src.Size()
	base := image.NewRGBA(image.Rect(0, 0, size, size))
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			cell, _ := src.At(x, z)
			base.SetRGBA(x, z, cell.Biome.Color())
		}
	}

	img := base
	if opts.Scale > 1 {
		img = image.NewRGBA(image.Rect(0, 0, size*opts.Scale, size*opts.Scale))
		xdraw.NearestNeighbor.Scale(img, img.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	}
	if opts.Border {
		img = addFrame(img)
	}
	if opts.Legend {
		img = addLegend(img)
	}
	return img, nil
}

func addFrame(src *image.RGBA) *image.RGBA {
	fw := FrameWidth()
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*fw, b.Dy()+2*fw))
	inset := 0
	for _, band := range frame {
		r := out.Bounds().Inset(inset)
		draw.Draw(out, r, image.NewUniform(band.color), image.Point{}, draw.Src)
		inset += band.width
	}
	draw.Draw(out, b.Add(image.Pt(fw, fw)), src, b.Min, draw.Src)
	return out
}

// addLegend appends a panel below src naming each biome next to its colour.
func addLegend(src *image.RGBA) *image.RGBA {
	all := biome.All()
	b := src.Bounds()
	width := b.Dx()
	if minW := legendPad*3 + legendSwatch + 13*7; width < minW {
		width = minW
	}
	height := b.Dy() + legendPad*2 + len(all)*legendLine
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(Black), image.Point{}, draw.Src)
	draw.Draw(out, b, src, b.Min, draw.Src)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	top := b.Dy() + legendPad
	for i, bio := range all {
		y := top + i*legendLine
		swatch := image.Rect(legendPad, y+2, legendPad+legendSwatch, y+2+legendSwatch)
		draw.Draw(out, swatch, image.NewUniform(bio.Color()), image.Point{}, draw.Src)
		d.Dot = fixed.P(legendPad*2+legendSwatch, y+legendLine-3)
		d.DrawString(bio.String())
	}
	return out
}

// PathForSeed returns where the map of seed is cached inside dir.
func PathForSeed(dir string, seed int64) string {
	return filepath.Join(dir, fmt.Sprintf("seed_%d.png", seed))
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode minimap: %w", err)
	}
	return nil
}

// Save writes img to path, creating parent directories.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create minimap dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create minimap: %w", err)
	}
	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load decodes a cached PNG.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode minimap %s: %w", path, err)
	}
	return img, nil
}

// EnsureCached renders src into dir unless a map for its seed already exists.
// It returns the cache path and whether a new file was written.
func EnsureCached(src Source, dir string, opts Options, logger *log.Logger) (string, bool, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	path := PathForSeed(dir, src.Seed())
	if _, err := os.Stat(path); err == nil {
		logger.Printf("minimap for seed %d already cached at %s", src.Seed(), path)
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("stat minimap: %w", err)
	}
	img, err := Render(src, opts)
	if err != nil {
		return "", false, err
	}
	if err := Save(img, path); err != nil {
		return "", false, err
	}
	logger.Printf("saved minimap for seed %d to %s", src.Seed(), path)
	return path, true, nil
}
