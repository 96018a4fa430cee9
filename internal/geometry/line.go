package geometry

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NoPoint is returned, together with ok == false, when a point query has no
// answer (for example the intersection of two parallel lines).
var NoPoint = image.Point{X: math.MinInt32, Y: math.MinInt32}

// LineSegment is a 2D segment between two integer pixel coordinates.
//
// The slope, length and angle are derived from the endpoints when the value
// is built and cannot be changed afterwards, so they never disagree with the
// endpoints. The zero value is a zero-length segment at the origin.
type LineSegment struct {
	p1, p2 image.Point

	slope  float64
	length float64
	angle  float64
}

// NewLineSegment builds the segment from (x1,y1) to (x2,y2).
func NewLineSegment(x1, y1, x2, y2 int) LineSegment {
	return LineSegmentFromPoints(image.Pt(x1, y1), image.Pt(x2, y2))
}

// LineSegmentFromPoints builds the segment from p1 to p2.
func LineSegmentFromPoints(p1, p2 image.Point) LineSegment {
	s := LineSegment{p1: p1, p2: p2}
	if dx := p2.X - p1.X; dx != 0 {
		s.slope = float64(p2.Y-p1.Y) / float64(dx)
	}
	s.length = DistanceBetweenPoints(p1, p2)
	s.angle = AngleBetweenPoints(p1, p2)
	return s
}

// WithEndpoints returns a new segment with the given endpoints. The result is
// identical to calling NewLineSegment with the same coordinates; the receiver
// is left unchanged.
func (s LineSegment) WithEndpoints(x1, y1, x2, y2 int) LineSegment {
	return NewLineSegment(x1, y1, x2, y2)
}

// P1 returns the first endpoint.
func (s LineSegment) P1() image.Point { return s.p1 }

// P2 returns the second endpoint.
func (s LineSegment) P2() image.Point { return s.p2 }

// Length returns the Euclidean distance between the endpoints.
func (s LineSegment) Length() float64 { return s.length }

// Angle returns the direction from P1 to P2 in degrees, in (-180, 180].
func (s LineSegment) Angle() float64 { return s.angle }

// IsVertical reports whether both endpoints share the same X. Zero-length
// segments are vertical.
func (s LineSegment) IsVertical() bool { return s.p1.X == s.p2.X }

// Slope returns rise over run. ok is false for vertical segments, whose slope
// is undefined; the returned slope is then 0.
func (s LineSegment) Slope() (slope float64, ok bool) {
	if s.IsVertical() {
		return 0, false
	}
	return s.slope, true
}

// IsPointBelowLine reports whether p lies strictly on the "below" side of the
// infinite line through the segment, using the sign of the cross product
// (P2-P1) x (p-P1). For a segment drawn left to right, below means a larger Y
// in image coordinates. Points exactly on the line are not below.
func (s LineSegment) IsPointBelowLine(p image.Point) bool {
	return r2.Cross(s.direction(), r2.Sub(vec(p), vec(s.p1))) > 0
}

// PointAt returns the y coordinate of the segment's infinite line at x.
// ok is false for vertical segments, and y is then 0.
func (s LineSegment) PointAt(x float64) (y float64, ok bool) {
	if s.IsVertical() {
		return 0, false
	}
	return s.slope*(x-float64(s.p2.X)) + float64(s.p2.Y), true
}

// ClosestPointOnSegmentTo projects p onto the segment and clamps the result to
// the endpoints. The projection is rounded to the nearest pixel. A zero-length
// segment returns P1.
func (s LineSegment) ClosestPointOnSegmentTo(p image.Point) image.Point {
	d := s.direction()
	lenSq := r2.Dot(d, d)
	if lenSq == 0 {
		return s.p1
	}

	t := r2.Dot(r2.Sub(vec(p), vec(s.p1)), d) / lenSq
	switch {
	case t <= 0:
		return s.p1
	case t >= 1:
		return s.p2
	}
	return point(r2.Add(vec(s.p1), r2.Scale(t, d)))
}

// Intersection returns the point where the infinite lines through s and other
// cross, rounded to the nearest pixel. Parallel or collinear lines, and
// zero-length segments, have no single intersection: the result is then
// NoPoint and ok is false.
func (s LineSegment) Intersection(other LineSegment) (p image.Point, ok bool) {
	d1 := s.direction()
	d2 := other.direction()

	// Endpoints are integers, so the determinant is exact and zero means
	// parallel.
	det := r2.Cross(d1, d2)
	if det == 0 {
		return NoPoint, false
	}

	t := r2.Cross(r2.Sub(vec(other.p1), vec(s.p1)), d2) / det
	return point(r2.Add(vec(s.p1), r2.Scale(t, d1))), true
}

// ParallelLine returns a copy of the segment moved perpendicular to itself by
// distance pixels. The offset is rounded to whole pixels and applied to both
// endpoints, so length and slope are preserved exactly. A positive distance
// moves towards the side where IsPointBelowLine is false. Zero-length
// segments are returned unchanged.
func (s LineSegment) ParallelLine(distance float64) LineSegment {
	if s.length == 0 {
		return s
	}
	d := s.direction()
	off := image.Pt(
		int(math.Round(distance*d.Y/s.length)),
		int(math.Round(-distance*d.X/s.length)),
	)
	return LineSegmentFromPoints(s.p1.Add(off), s.p2.Add(off))
}

// Midpoint returns the mean of the two endpoints, rounded half away from zero.
func (s LineSegment) Midpoint() image.Point {
	return point(r2.Scale(0.5, r2.Add(vec(s.p1), vec(s.p2))))
}

// String renders the segment as "(x1, y1) : (x2, y2)".
func (s LineSegment) String() string {
	return fmt.Sprintf("(%d, %d) : (%d, %d)", s.p1.X, s.p1.Y, s.p2.X, s.p2.Y)
}

func (s LineSegment) direction() r2.Vec {
	return r2.Sub(vec(s.p2), vec(s.p1))
}

func vec(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

func point(v r2.Vec) image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}
