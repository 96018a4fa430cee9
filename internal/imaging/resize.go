package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// SizeMaintainingAspect returns the largest size with the aspect ratio of img
// that fits in maxWidth x maxHeight.
//
// The constraining dimension equals its maximum exactly; the other one is
// scaled and rounded to the nearest integer (halves away from zero), and is
// never below 1. A 200x100 image in 100x50 gives (100, 50); a 100x200 image
// gives (25, 50). An empty image, or a non-positive maximum, gives (0, 0).
func SizeMaintainingAspect(img image.Image, maxWidth, maxHeight int) image.Point {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return image.Point{}
	}

	aspect := float64(size.X) / float64(size.Y)
	if float64(maxWidth)/aspect > float64(maxHeight) {
		return image.Pt(max(1, int(math.Round(float64(maxHeight)*aspect))), maxHeight)
	}
	return image.Pt(maxWidth, max(1, int(math.Round(float64(maxWidth)/aspect))))
}

// ResizeMaintainingAspect scales img with Lanczos resampling to the size
// chosen by SizeMaintainingAspect.
//
// # Errors
//
//   - ErrInvalidInput if img is empty or a maximum is not positive
func ResizeMaintainingAspect(img image.Image, maxWidth, maxHeight int) (*image.NRGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	size := SizeMaintainingAspect(img, maxWidth, maxHeight)
	if size.X == 0 {
		return nil, fmt.Errorf("%w: resize bounds %dx%d", ErrInvalidInput, maxWidth, maxHeight)
	}
	return imaging.Resize(img, size.X, size.Y, imaging.Lanczos), nil
}
