package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"gonum.org/v1/gonum/floats"
)

// brightnessKernelRadius is the radius of the disc used to estimate the
// illumination of a plate; 9 gives a 19px wide element.
const brightnessKernelRadius = 9

// EqualizeBrightness flattens uneven illumination across a plate image.
//
// The illumination is estimated with a morphological close (dilate then
// erode with a 19px disc), which removes dark characters and keeps the lit
// background. Each pixel is divided by that estimate and the ratios are
// stretched to [0, 255]. A pixel whose estimate is 0 maps to ratio 0. When
// every ratio is equal the result is that ratio scaled to 255.
//
// The input is not modified; color inputs are converted to gray first.
//
// # Errors
//
//   - ErrInvalidInput if img is nil or empty
func EqualizeBrightness(img image.Image) (*image.Gray, error) {
	gray, err := ToGray(img)
	if err != nil {
		return nil, fmt.Errorf("equalize brightness: %w", err)
	}

	closed := effect.Erode(effect.Dilate(gray, brightnessKernelRadius), brightnessKernelRadius)
	cb := closed.Bounds()

	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	ratios := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bg := float64(closed.RGBAAt(cb.Min.X+x, cb.Min.Y+y).R)
			if bg == 0 {
				continue
			}
			ratios[y*w+x] = float64(gray.Pix[y*gray.Stride+x]) / bg
		}
	}

	lo, hi := floats.Min(ratios), floats.Max(ratios)

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for i, r := range ratios {
		var v float64
		if hi > lo {
			v = (r - lo) / (hi - lo) * 255
		} else {
			v = r * 255
		}
		dst.Pix[(i/w)*dst.Stride+i%w] = uint8(math.Round(math.Min(math.Max(v, 0), 255)))
	}
	return dst, nil
}
