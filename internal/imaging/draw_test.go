package imaging

import (
	"image"
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/plate-prep/internal/geometry"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	transparent = color.RGBA{}
)

func TestDrawLineSegment(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawLineSegment(img, geometry.NewLineSegment(2, 10, 17, 10), red, 1)

	tests := []struct {
		name string
		p    image.Point
		want color.RGBA
	}{
		{"on line", image.Pt(10, 10), red},
		{"start", image.Pt(2, 10), red},
		{"end", image.Pt(17, 10), red},
		{"above", image.Pt(10, 5), transparent},
		{"past end", image.Pt(19, 10), transparent},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.p.X, tt.p.Y); got != tt.want {
			t.Errorf("%s %v: got %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestDrawLineSegment_Clipped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawLineSegment(img, geometry.NewLineSegment(-50, 5, 50, 5), red, 3)
	DrawLineSegment(img, geometry.NewLineSegment(100, 100, 200, 200), red, 1)

	if got := img.RGBAAt(0, 5); got != red {
		t.Errorf("left edge: got %v, want %v", got, red)
	}
	if got := img.RGBAAt(9, 9); got != transparent {
		t.Errorf("segment outside image drew at (9, 9): %v", got)
	}
}

func TestDrawRotatedRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	rect := geometry.RotatedRect{Center: r2.Vec{X: 10, Y: 10}, Width: 10, Height: 6}
	DrawRotatedRect(img, rect, red, 1)

	for _, p := range []image.Point{{10, 7}, {10, 13}, {5, 10}, {15, 10}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("edge %v: got %v, want %v", p, got, red)
		}
	}
	if got := img.RGBAAt(10, 10); got != transparent {
		t.Errorf("centre was filled: %v", got)
	}
}

func TestDrawX(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	DrawX(img, image.Rect(0, 0, 10, 10), red, 3)

	for _, p := range []image.Point{{5, 5}, {2, 2}, {9, 1}, {1, 9}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("diagonal %v: got %v, want %v", p, got, red)
		}
	}
	if got := img.RGBAAt(5, 0); got != transparent {
		t.Errorf("off diagonal (5, 0): got %v", got)
	}
}

func TestFillMask(t *testing.T) {
	base := color.RGBA{0x10, 0, 0, 255}
	img := newUniformRGBA(6, 6, base)

	mask := image.NewGray(image.Rect(0, 0, 4, 4))
	mask.SetGray(1, 1, color.Gray{Y: 255})
	mask.SetGray(3, 2, color.Gray{Y: 7})

	FillMask(img, mask, color.RGBA{0, 0x20, 0, 255})

	want := color.RGBA{0x10, 0x20, 0, 255}
	for _, p := range []image.Point{{1, 1}, {3, 2}} {
		if got := img.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("masked %v: got %v, want %v", p, got, want)
		}
	}
	for _, p := range []image.Point{{0, 0}, {2, 2}, {5, 5}} {
		if got := img.RGBAAt(p.X, p.Y); got != base {
			t.Errorf("unmasked %v: got %v, want %v", p, got, base)
		}
	}
}
