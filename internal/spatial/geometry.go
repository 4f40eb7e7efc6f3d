package spatial

import (
	"math"

	"github.com/golang/geo/r2"
)

// Floor-plan coordinates are planar pixels, so everything here works on r2.

// PathLength sums the straight-line distances between consecutive points
func PathLength(points []r2.Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i].Sub(points[i-1]).Norm()
	}
	return total
}

// Bounds returns the smallest rectangle containing every point. The result
// is empty when points is empty.
func Bounds(points []r2.Point) r2.Rect {
	if len(points) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(points...)
}

// Region builds a selection rectangle from two corners in any order
func Region(x1, y1, x2, y2 float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: x1, Y: y1}, r2.Point{X: x2, Y: y2})
}

// Contains reports whether p lies inside the region, edges included
func Contains(region r2.Rect, p r2.Point) bool {
	return region.ContainsPoint(p)
}

// FitScale returns the uniform scale that fits a width x height image inside
// a boxWidth x boxHeight viewport without distortion
func FitScale(width, height, boxWidth, boxHeight float64) float64 {
	if width <= 0 || height <= 0 || boxWidth <= 0 || boxHeight <= 0 {
		return 0
	}
	return math.Min(boxWidth/width, boxHeight/height)
}
