package biome

import (
	"image/color"
	"math"
)

// Biome tags a world column. The order of the constants is the display
// order used by the minimap legend.
type Biome uint8

const (
	None Biome = iota // placed blocks with no terrain source
	Sea
	Lake
	Desert
	Savanna
	Plain
	Hill
	Mountain
	MountainSnow
)

// Info holds the per-biome display properties.
type Info struct {
	Name  string
	Color color.RGBA
	Water bool
}

var infos = [...]Info{
	None:         {Name: "none", Color: color.RGBA{255, 0, 255, 255}},
	Sea:          {Name: "sea", Color: color.RGBA{0, 0, 128, 255}, Water: true},
	Lake:         {Name: "lake", Color: color.RGBA{65, 105, 225, 255}, Water: true},
	Desert:       {Name: "desert", Color: color.RGBA{245, 222, 179, 255}},
	Savanna:      {Name: "savanna", Color: color.RGBA{189, 183, 107, 255}},
	Plain:        {Name: "plain", Color: color.RGBA{50, 205, 50, 255}},
	Hill:         {Name: "hill", Color: color.RGBA{0, 100, 0, 255}},
	Mountain:     {Name: "mountain", Color: color.RGBA{192, 192, 192, 255}},
	MountainSnow: {Name: "mountain-snow", Color: color.RGBA{255, 255, 255, 255}},
}

// All lists the terrain biomes in order, excluding None.
func All() []Biome {
	return []Biome{Sea, Lake, Desert, Savanna, Plain, Hill, Mountain, MountainSnow}
}

func (b Biome) info() Info {
	if int(b) < len(infos) {
		return infos[b]
	}
	return infos[None]
}

func (b Biome) String() string { return b.info().Name }

// Color is the minimap colour of the biome.
func (b Biome) Color() color.RGBA { return b.info().Color }

// IsWater reports whether the biome is a water surface.
func (b Biome) IsWater() bool { return b.info().Water }

// Destroyable reports whether terrain blocks of this biome may be removed by an edit.
func (b Biome) Destroyable() bool { return !b.IsWater() }

// Cell is the classified content of one world column.
type Cell struct {
	Biome       Biome
	WorldHeight int
}

// Height shaping: worldHeight = trunc(height^HeightExponent * HeightScale).
const (
	HeightExponent = 4
	HeightScale    = 40
)

// Decision table thresholds.
const (
	lakeBelow     = 0.1
	lowlandBelow  = 0.5
	plainBelow    = 0.65
	hillBelow     = 0.8
	snowAbove     = 0.95
	hotAbove      = 0.6
	temperateHeat = 0.4
)

// WorldHeight maps a normalized height onto block units. The fourth power
// keeps lowlands flat and exaggerates peaks.
func WorldHeight(height float64) int {
	return int(math.Pow(height, HeightExponent) * HeightScale)
}

// Classify maps a (height, heat) pair onto a Cell. Rules are evaluated top
// to bottom and the first match wins.
func Classify(height, heat float64) Cell {
	return Cell{Biome: classify(height, heat), WorldHeight: WorldHeight(height)}
}

func classify(height, heat float64) Biome {
	switch {
	case height == 0:
		return Sea
	case height < lakeBelow:
		return Lake
	case height < lowlandBelow:
		if heat > hotAbove {
			return Desert
		} else if heat > temperateHeat {
			return Savanna
		}
		return Plain
	case height < plainBelow:
		return Plain
	case height < hillBelow:
		return Hill
	case height > snowAbove && heat > hotAbove:
		return MountainSnow
	default:
		return Mountain
	}
}
