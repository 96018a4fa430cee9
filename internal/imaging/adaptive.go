package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
)

// AdaptiveThreshold compares each pixel with the Gaussian-weighted mean of
// its blockSize neighbourhood. Pixels brighter than mean - c become 255, the
// rest 0. Borders replicate the edge pixels.
func AdaptiveThreshold(src *image.Gray, blockSize int, c float64) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	radius := float64(blockSize-1) / 2
	local := blur.Gaussian(src, radius)
	lb := local.Bounds()

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			m := float64(local.RGBAAt(lb.Min.X+x, lb.Min.Y+y).R)
			if v > m-c {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

// OtsuLevel returns the global threshold that maximises the between-class
// variance of the image histogram. Pixels above the level belong to the
// bright class. A flat image returns 0.
func OtsuLevel(src *image.Gray) uint8 {
	bins := histogram.NewRGBAHistogram(src).R.Bins

	total := 0
	var totalSum float64
	for i, n := range bins {
		total += n
		totalSum += float64(i) * float64(n)
	}
	if total == 0 {
		return 0
	}

	var sumBackground, maxVariance float64
	var weightBackground int
	var best uint8

	for t, n := range bins {
		weightBackground += n
		if weightBackground == 0 {
			continue
		}
		weightForeground := total - weightBackground
		if weightForeground == 0 {
			break
		}

		sumBackground += float64(t) * float64(n)
		meanBackground := sumBackground / float64(weightBackground)
		meanForeground := (totalSum - sumBackground) / float64(weightForeground)

		variance := float64(weightBackground) * float64(weightForeground) *
			(meanBackground - meanForeground) * (meanBackground - meanForeground)
		if variance > maxVariance {
			maxVariance = variance
			best = uint8(t)
		}
	}
	return best
}

// OtsuThreshold binarizes src at its Otsu level: pixels above the level
// become 255, the rest 0.
func OtsuThreshold(src *image.Gray) *image.Gray {
	level := OtsuLevel(src)
	if level == 255 {
		bounds := src.Bounds()
		return image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	}
	return segment.Threshold(src, level+1)
}
