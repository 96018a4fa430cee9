package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/plate-prep/internal/geometry"
)

// BaselineSkew returns the angle, in degrees within (-90, 90], by which a
// character baseline leans away from horizontal. A segment drawn right to
// left gives the same skew as its reverse.
func BaselineSkew(baseline geometry.LineSegment) float64 {
	angle := baseline.Angle()
	switch {
	case angle > 90:
		angle -= 180
	case angle <= -90:
		angle += 180
	}
	return angle
}

// CorrectRotation turns img about its centre so that baseline becomes
// horizontal. The output keeps the input size; corners uncovered by the
// rotation are transparent. A zero-length baseline leaves the image as is.
func CorrectRotation(img image.Image, baseline geometry.LineSegment) *image.RGBA {
	skew := 0.0
	if baseline.Length() > 0 {
		skew = BaselineSkew(baseline)
	}
	// bild rotates clockwise for positive angles; a positive skew already
	// leans clockwise on screen.
	return transform.Rotate(img, -skew, &transform.RotationOptions{ResizeBounds: false})
}
