package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// ImageType selects the pixel format of a composite image.
type ImageType int

const (
	// ImageTypeGray composites into a single-channel *image.Gray. Color
	// inputs are reduced to their luminance.
	ImageTypeGray ImageType = iota

	// ImageTypeRGBA composites into an *image.RGBA, so gray candidates and
	// color annotations can share one grid.
	ImageTypeRGBA
)

// DrawImageDashboard arranges images into a grid for inspection.
//
// Parameters:
//   - images: The cells in row-major order. A nil entry leaves its cell blank.
//   - imageType: Pixel format of the result.
//   - numColumns: Columns in the grid; values below 1 are treated as 1. The
//     row count is ceil(len(images) / numColumns).
//
// Returns a new image whose cells are all as large as the widest and the
// tallest input. Each image is anchored at the top-left of its cell; unused
// space and empty cells are black. An empty input returns a zero-size image
// of the requested type.
func DrawImageDashboard(images []image.Image, imageType ImageType, numColumns int) draw.Image {
	if numColumns < 1 {
		numColumns = 1
	}

	var cell image.Point
	for _, img := range images {
		if img == nil {
			continue
		}
		size := img.Bounds().Size()
		cell.X = max(cell.X, size.X)
		cell.Y = max(cell.Y, size.Y)
	}

	numRows := (len(images) + numColumns - 1) / numColumns
	bounds := image.Rect(0, 0, cell.X*numColumns, cell.Y*numRows)
	if len(images) == 0 {
		bounds = image.Rectangle{}
	}

	dashboard := newCanvas(imageType, bounds)

	for i, img := range images {
		if img == nil {
			continue
		}
		origin := image.Pt((i%numColumns)*cell.X, (i/numColumns)*cell.Y)
		src := img.Bounds()
		draw.Draw(dashboard, image.Rectangle{Min: origin, Max: origin.Add(src.Size())}, img, src.Min, draw.Src)
	}
	return dashboard
}

// newCanvas returns an opaque black image of the requested type.
func newCanvas(imageType ImageType, bounds image.Rectangle) draw.Image {
	if imageType == ImageTypeGray {
		return image.NewGray(bounds)
	}
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	return canvas
}
