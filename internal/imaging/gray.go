package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/plate-prep/internal/config"
)

// ErrInvalidInput is returned, wrapped, for empty images and malformed
// configuration values. It is the same value as config.ErrInvalidInput.
var ErrInvalidInput = config.ErrInvalidInput

// ToGray returns a single-channel copy of img with bounds starting at (0,0).
//
// A *image.Gray input is copied as is. Any other image is converted with the
// fixed ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B); alpha is ignored.
// The input is never modified and the result never shares its pixels.
//
// # Errors
//
//   - ErrInvalidInput if img is nil or has a zero width or height
func ToGray(img image.Image) (*image.Gray, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < bounds.Dy(); y++ {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+bounds.Dx()], src.Pix[start:start+bounds.Dx()])
		}
		return dst, nil
	}

	// imaging.Grayscale writes the BT.601 luma into R, G and B.
	luma := imaging.Grayscale(img)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = luma.Pix[luma.PixOffset(x, y)]
		}
	}
	return dst, nil
}

// checkImage rejects nil and zero-area images.
func checkImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: empty image %dx%d", ErrInvalidInput, b.Dx(), b.Dy())
	}
	return nil
}

// grayFromRGBA keeps the red channel of an RGBA image produced from a gray
// source, where R, G and B are equal.
func grayFromRGBA(src *image.RGBA) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
		}
	}
	return dst
}

// invert flips a binary image in place.
func invert(img *image.Gray) {
	for i, v := range img.Pix {
		img.Pix[i] = 255 - v
	}
}
