package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/plate-prep/internal/geometry"
)

// The helpers in this file draw into the image they are given. The caller
// owns that image and must not touch it from another goroutine during the
// call.

// DrawLineSegment strokes seg onto img with square caps, thickness pixels
// wide. Coordinates are absolute image coordinates; parts outside img are
// clipped. Thickness below 1 is drawn as 1.
func DrawLineSegment(img draw.Image, seg geometry.LineSegment, c color.Color, thickness int) {
	strokeLine(img, toVec(seg.P1()), toVec(seg.P2()), c, thickness)
}

// DrawRotatedRect outlines rect onto img. All four corners are turned by the
// rectangle's angle before they are joined.
func DrawRotatedRect(img draw.Image, rect geometry.RotatedRect, c color.Color, thickness int) {
	corners := rect.Corners()
	for i := range corners {
		strokeLine(img, corners[i], corners[(i+1)%4], c, thickness)
	}
}

// DrawX draws both diagonals of rect onto img, marking the region as
// rejected.
func DrawX(img draw.Image, rect image.Rectangle, c color.Color, thickness int) {
	tl := toVec(rect.Min)
	br := toVec(rect.Max)
	tr := r2.Vec{X: br.X, Y: tl.Y}
	bl := r2.Vec{X: tl.X, Y: br.Y}

	strokeLine(img, tl, br, c, thickness)
	strokeLine(img, bl, tr, c, thickness)
}

// FillMask overlays c onto img wherever mask is non-zero. Each RGBA channel
// of an affected pixel becomes c | previous, so the overlay tints instead of
// painting over. Pixels where the mask is zero, or that lie outside the mask,
// are left untouched.
func FillMask(img draw.Image, mask *image.Gray, c color.Color) {
	overlay := color.RGBAModel.Convert(c).(color.RGBA)
	area := img.Bounds().Intersect(mask.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				continue
			}
			prev := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			img.Set(x, y, color.RGBA{
				R: prev.R | overlay.R,
				G: prev.G | overlay.G,
				B: prev.B | overlay.B,
				A: prev.A | overlay.A,
			})
		}
	}
}

// strokeLine fills the quad covering the segment a-b, widened by thickness
// and extended by half the thickness past each end. Pixel (x, y) is the unit
// square whose centre is (x+0.5, y+0.5).
func strokeLine(img draw.Image, a, b r2.Vec, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return
	}

	origin := r2.Vec{X: float64(bounds.Min.X) - 0.5, Y: float64(bounds.Min.Y) - 0.5}
	a = r2.Sub(a, origin)
	b = r2.Sub(b, origin)

	half := float64(thickness) / 2
	along := r2.Vec{X: half}
	if d := r2.Sub(b, a); r2.Norm(d) > 0 {
		along = r2.Scale(half, r2.Unit(d))
	}
	across := r2.Vec{X: -along.Y, Y: along.X}

	quad := [4]r2.Vec{
		r2.Add(r2.Sub(a, along), across),
		r2.Add(r2.Add(b, along), across),
		r2.Sub(r2.Add(b, along), across),
		r2.Sub(r2.Sub(a, along), across),
	}

	ras := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ras.DrawOp = draw.Over
	ras.MoveTo(float32(quad[0].X), float32(quad[0].Y))
	for _, p := range quad[1:] {
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()
	ras.Draw(img, bounds, image.NewUniform(c), image.Point{})
}

func toVec(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}
