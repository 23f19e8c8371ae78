package stream

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Column is an integer (x, z) grid coordinate, independent of height.
type Column struct {
	X, Z int
}

func (c Column) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Z) }

// ColumnOf truncates a position toward zero onto its column.
func ColumnOf(pos mgl32.Vec3) Column {
	return Column{X: int(pos.X()), Z: int(pos.Z())}
}

// Footprint is the set of columns within range of a centre.
type Footprint map[Column]struct{}

// Circle returns every column with dx*dx+dz*dz <= radius*radius around center.
// A negative radius yields an empty set.
func Circle(center Column, radius int) Footprint {
	fp := make(Footprint)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			fp[Column{X: center.X + dx, Z: center.Z + dz}] = struct{}{}
		}
	}
	return fp
}

// PointsInCircle returns the footprint of radius around the origin.
func PointsInCircle(radius int) Footprint {
	return Circle(Column{}, radius)
}

// Contains reports whether c is part of the footprint.
func (f Footprint) Contains(c Column) bool {
	_, ok := f[c]
	return ok
}

// Sorted returns the columns ordered by x, then z.
func (f Footprint) Sorted() []Column {
	out := make([]Column, 0, len(f))
	for c := range f {
		out = append(out, c)
	}
	sortColumns(out)
	return out
}

// Minus returns the columns of f that are not in other, sorted.
func (f Footprint) Minus(other Footprint) []Column {
	var out []Column
	for c := range f {
		if !other.Contains(c) {
			out = append(out, c)
		}
	}
	sortColumns(out)
	return out
}

// Diff returns the columns to drop and to add when moving from current to
// next. Both lists are sorted. Overlap between them is a programming error.
func Diff(current, next Footprint) (toRemove, toAdd []Column) {
	toRemove = current.Minus(next)
	toAdd = next.Minus(current)
	if len(toRemove) > 0 && len(toAdd) > 0 {
		removing := make(map[Column]struct{}, len(toRemove))
		for _, c := range toRemove {
			removing[c] = struct{}{}
		}
		for _, c := range toAdd {
			if _, ok := removing[c]; ok {
				panic(fmt.Sprintf("stream: column %v is both removed and added", c))
			}
		}
	}
	return toRemove, toAdd
}

func sortColumns(cs []Column) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].X != cs[j].X {
			return cs[i].X < cs[j].X
		}
		return cs[i].Z < cs[j].Z
	})
}
