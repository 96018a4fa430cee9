package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelBandHeight is the height of the caption band AddLabel puts above the
// image.
const LabelBandHeight = 20

var (
	labelBackground = color.RGBA{222, 222, 222, 255}
	labelForeground = color.RGBA{0, 0, 0, 255}
	labelBorder     = color.RGBA{255, 0, 0, 255}
)

// AddLabel returns a new color image holding img under a light-gray caption
// band with text written in black, all enclosed in a 1px red border. It is
// used for debug output only.
//
// The result is img.Dx()+2 wide and img.Dy()+LabelBandHeight+1 tall; img
// itself is copied to (1, LabelBandHeight) and left unmodified. Text that does
// not fit is clipped.
func AddLabel(img image.Image, text string) *image.RGBA {
	src := img.Bounds()
	w := src.Dx() + 2
	h := src.Dy() + LabelBandHeight + 1
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(dst, image.Rect(0, 0, w, LabelBandHeight), image.NewUniform(labelBackground), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(1, LabelBandHeight, 1+src.Dx(), LabelBandHeight+src.Dy()), img, src.Min, draw.Src)

	band := dst.SubImage(image.Rect(1, 1, w-1, LabelBandHeight)).(*image.RGBA)
	d := &font.Drawer{
		Dst:  band,
		Src:  image.NewUniform(labelForeground),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(5, LabelBandHeight-5),
	}
	d.DrawString(text)

	for x := 0; x < w; x++ {
		dst.SetRGBA(x, 0, labelBorder)
		dst.SetRGBA(x, h-1, labelBorder)
	}
	for y := 0; y < h; y++ {
		dst.SetRGBA(0, y, labelBorder)
		dst.SetRGBA(w-1, y, labelBorder)
	}
	return dst
}
