package spatial

import (
	"testing"

	"github.com/golang/geo/r2"
)

func TestPathLength(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 10}}
	if got := PathLength(pts); got != 11 {
		t.Fatalf("path length %v want 11", got)
	}
	if got := PathLength(nil); got != 0 {
		t.Fatalf("empty path length %v", got)
	}
}

func TestBoundsAndRegion(t *testing.T) {
	b := Bounds([]r2.Point{{X: 5, Y: 1}, {X: -2, Y: 7}, {X: 0, Y: 0}})
	if b.Lo() != (r2.Point{X: -2, Y: 0}) || b.Hi() != (r2.Point{X: 5, Y: 7}) {
		t.Fatalf("bounds lo=%v hi=%v", b.Lo(), b.Hi())
	}
	if !Bounds(nil).IsEmpty() {
		t.Fatalf("bounds of nothing should be empty")
	}

	region := Region(10, 10, 0, 0)
	if !Contains(region, r2.Point{X: 10, Y: 0}) {
		t.Fatalf("edge should be inside")
	}
	if Contains(region, r2.Point{X: 10.5, Y: 5}) {
		t.Fatalf("outside point reported inside")
	}
}

func TestFitScale(t *testing.T) {
	if got := FitScale(200, 100, 100, 100); got != 0.5 {
		t.Fatalf("scale %v", got)
	}
	if got := FitScale(0, 100, 100, 100); got != 0 {
		t.Fatalf("degenerate scale %v", got)
	}
}
