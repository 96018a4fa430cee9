package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

func newUniformRGBA(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func newUniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// Plate layout used by the threshold tests: a 120x40 light background with
// two dark vertical strokes, far enough apart that the region around
// plateFar only sees background.
const (
	plateBackground = 220
	plateInk        = 30
)

var (
	plateStroke = image.Pt(22, 20)
	plateFar    = image.Pt(100, 20)
)

func newPlate() *image.Gray {
	img := newUniformGray(120, 40, plateBackground)
	for _, x0 := range []int{20, 40} {
		for y := 10; y < 30; y++ {
			for x := x0; x < x0+4; x++ {
				img.SetGray(x, y, color.Gray{Y: plateInk})
			}
		}
	}
	return img
}

func grayToRGBA(src *image.Gray) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func isUniform(img *image.Gray) bool {
	for _, v := range img.Pix {
		if v != img.Pix[0] {
			return false
		}
	}
	return true
}
