package stream

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPointsInCircleRadiusTwo(t *testing.T) {
	got := PointsInCircle(2)
	want := []Column{
		{0, 1}, {-1, -1}, {0, 0}, {-1, 1}, {1, 1}, {2, 0}, {1, -1},
		{0, -2}, {-1, 0}, {-2, 0}, {0, 2}, {1, 0}, {0, -1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d: %v", len(want), len(got), got.Sorted())
	}
	for _, c := range want {
		if !got.Contains(c) {
			t.Errorf("missing %v", c)
		}
	}
	// The square corners are excluded
	for _, c := range []Column{{2, 2}, {-2, 1}, {1, -2}} {
		if got.Contains(c) {
			t.Errorf("%v should be outside the circle", c)
		}
	}
}

func TestCircleSizes(t *testing.T) {
	tests := []struct {
		radius int
		want   int
	}{
		{-1, 0},
		{0, 1},
		{1, 5},
		{2, 13},
		{3, 29},
		{10, 317},
	}
	for _, tt := range tests {
		if got := len(Circle(Column{X: 7, Z: -3}, tt.radius)); got != tt.want {
			t.Errorf("radius %d: expected %d columns, got %d", tt.radius, tt.want, got)
		}
	}
}

func TestDiffOneStep(t *testing.T) {
	toRemove, toAdd := Diff(Circle(Column{0, 0}, 1), Circle(Column{1, 0}, 1))
	wantRemove := []Column{{-1, 0}, {0, -1}, {0, 1}}
	wantAdd := []Column{{1, -1}, {1, 1}, {2, 0}}
	if !equalColumns(toRemove, wantRemove) {
		t.Errorf("toRemove = %v, expected %v", toRemove, wantRemove)
	}
	if !equalColumns(toAdd, wantAdd) {
		t.Errorf("toAdd = %v, expected %v", toAdd, wantAdd)
	}
}

func TestDiffFromEmpty(t *testing.T) {
	toRemove, toAdd := Diff(Footprint{}, Circle(Column{3, 3}, 2))
	if len(toRemove) != 0 || len(toAdd) != 13 {
		t.Errorf("expected 0 removed and 13 added, got %d and %d", len(toRemove), len(toAdd))
	}
}

func TestColumnOfTruncates(t *testing.T) {
	tests := []struct {
		pos  mgl32.Vec3
		want Column
	}{
		{mgl32.Vec3{250.5, 40, 250.5}, Column{250, 250}},
		{mgl32.Vec3{5.99, 0, 5.01}, Column{5, 5}},
		{mgl32.Vec3{-0.5, 0, -0.9}, Column{0, 0}},
		{mgl32.Vec3{-1.5, 0, 2}, Column{-1, 2}},
	}
	for _, tt := range tests {
		if got := ColumnOf(tt.pos); got != tt.want {
			t.Errorf("ColumnOf(%v) = %v, expected %v", tt.pos, got, tt.want)
		}
	}
}

func equalColumns(a, b []Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
