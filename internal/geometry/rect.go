package geometry

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RotatedRect is a rectangle of the given size centred on Center and turned
// by Angle degrees. A positive angle turns clockwise on screen.
type RotatedRect struct {
	Center r2.Vec
	Width  float64
	Height float64
	Angle  float64
}

// Corners returns the four corners in drawing order: top-left, top-right,
// bottom-right, bottom-left of the unrotated rectangle, each turned about the
// centre.
func (r RotatedRect) Corners() [4]r2.Vec {
	hw, hh := r.Width/2, r.Height/2
	alpha := r.Angle * math.Pi / 180

	corners := [4]r2.Vec{
		{X: r.Center.X - hw, Y: r.Center.Y - hh},
		{X: r.Center.X + hw, Y: r.Center.Y - hh},
		{X: r.Center.X + hw, Y: r.Center.Y + hh},
		{X: r.Center.X - hw, Y: r.Center.Y + hh},
	}
	for i, c := range corners {
		corners[i] = r2.Rotate(c, alpha, r.Center)
	}
	return corners
}

// Edges returns the four sides of the rectangle as segments between corners
// rounded to the nearest pixel.
func (r RotatedRect) Edges() [4]LineSegment {
	c := r.Corners()
	var edges [4]LineSegment
	for i := range c {
		edges[i] = LineSegmentFromPoints(point(c[i]), point(c[(i+1)%4]))
	}
	return edges
}

// BoundingRect returns the smallest axis-aligned rectangle holding every
// corner.
func (r RotatedRect) BoundingRect() image.Rectangle {
	c := r.Corners()
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// ExpandRect grows original by expandX pixels of total width and expandY
// pixels of total height, split evenly with round(expand/2) going to the
// left and top, and then clamps the result into [0,maxX] x [0,maxY].
//
// The result never has a negative origin, never extends past the bounds and
// never has a negative size. A rectangle lying wholly outside the bounds
// collapses to an empty rectangle on the nearest edge.
func ExpandRect(original image.Rectangle, expandX, expandY, maxX, maxY int) image.Rectangle {
	halfX := int(math.Round(float64(expandX) / 2))
	halfY := int(math.Round(float64(expandY) / 2))

	r := original.Canon()
	x0 := r.Min.X - halfX
	y0 := r.Min.Y - halfY
	x1 := x0 + r.Dx() + expandX
	y1 := y0 + r.Dy() + expandY

	x0, x1 = clampSpan(x0, x1, maxX)
	y0, y1 = clampSpan(y0, y1, maxY)
	return image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}
}

// clampSpan clamps both ends of [lo, hi] into [0, limit] and keeps lo <= hi.
func clampSpan(lo, hi, limit int) (int, int) {
	if limit < 0 {
		limit = 0
	}
	lo = clampInt(lo, 0, limit)
	hi = clampInt(hi, 0, limit)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
