package imaging

import (
	"image"
	"math"
)

// BinarizeMethod selects the local threshold rule used by Binarize.
type BinarizeMethod int

const (
	// Niblack thresholds at m + k*s.
	Niblack BinarizeMethod = iota

	// Sauvola thresholds at m * (1 + k*(s/R - 1)) with R = 128.
	Sauvola

	// WolfJolion thresholds at m + k*(s/maxS - 1)*(m - minI), where maxS is
	// the largest local deviation and minI the darkest pixel of the image.
	// It adapts to the contrast between plate background and characters.
	WolfJolion
)

// sauvolaDynamicRange is R in the Sauvola rule: the largest standard
// deviation of 8-bit data.
const sauvolaDynamicRange = 128.0

// String returns the method name.
func (m BinarizeMethod) String() string {
	switch m {
	case Niblack:
		return "niblack"
	case Sauvola:
		return "sauvola"
	case WolfJolion:
		return "wolf-jolion"
	default:
		return "unknown"
	}
}

// Binarize thresholds each pixel of src against statistics of the
// winWidth x winHeight window centred on it, clipped at the image border.
//
// Pixels greater than or equal to their local threshold become 255, the rest
// become 0. With dark characters on a light plate, characters therefore come
// out black.
//
// Local mean m and standard deviation s are read from summed-area tables, so
// the cost is independent of the window size and a flat image gives exactly
// s = 0 and a flat result.
func Binarize(src *image.Gray, method BinarizeMethod, winWidth, winHeight int, k float64) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	stats := newLocalStats(src, max(winWidth, 1), max(winHeight, 1))

	minI := 255.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			minI = math.Min(minI, float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m, s := stats.at(x, y)

			var th float64
			switch method {
			case Niblack:
				th = m + k*s
			case Sauvola:
				th = m * (1 + k*(s/sauvolaDynamicRange-1))
			default:
				ratio := 0.0
				if stats.maxStd > 0 {
					ratio = s / stats.maxStd
				}
				th = m + k*(ratio-1)*(m-minI)
			}

			if float64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) >= th {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

// localStats answers window mean and standard deviation queries from
// summed-area tables of the pixel values and their squares.
type localStats struct {
	w, h         int
	winW, winH   int
	sum, sumSq   []int64
	mean, stdDev []float64
	maxStd       float64
}

func newLocalStats(src *image.Gray, winW, winH int) *localStats {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	ls := &localStats{
		w: w, h: h,
		winW: winW, winH: winH,
		sum:    make([]int64, (w+1)*(h+1)),
		sumSq:  make([]int64, (w+1)*(h+1)),
		mean:   make([]float64, w*h),
		stdDev: make([]float64, w*h),
	}

	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum, rowSq int64
		for x := 0; x < w; x++ {
			v := int64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			rowSum += v
			rowSq += v * v
			i := (y+1)*stride + x + 1
			ls.sum[i] = ls.sum[i-stride] + rowSum
			ls.sumSq[i] = ls.sumSq[i-stride] + rowSq
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m, s := ls.window(x, y)
			ls.mean[y*w+x] = m
			ls.stdDev[y*w+x] = s
			ls.maxStd = math.Max(ls.maxStd, s)
		}
	}
	return ls
}

func (ls *localStats) at(x, y int) (mean, stdDev float64) {
	return ls.mean[y*ls.w+x], ls.stdDev[y*ls.w+x]
}

func (ls *localStats) window(x, y int) (mean, stdDev float64) {
	x0 := clamp(x-ls.winW/2, 0, ls.w)
	y0 := clamp(y-ls.winH/2, 0, ls.h)
	x1 := clamp(x0+ls.winW, 0, ls.w)
	y1 := clamp(y0+ls.winH, 0, ls.h)

	stride := ls.w + 1
	area := func(t []int64) int64 {
		return t[y1*stride+x1] - t[y0*stride+x1] - t[y1*stride+x0] + t[y0*stride+x0]
	}

	n := float64((x1 - x0) * (y1 - y0))
	mean = float64(area(ls.sum)) / n
	variance := float64(area(ls.sumSq))/n - mean*mean
	if variance <= 0 {
		return mean, 0
	}
	return mean, math.Sqrt(variance)
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
