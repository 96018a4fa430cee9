package geometry

import (
	"image"
	"math"
	"sort"
)

// DistanceBetweenPoints returns the Euclidean distance between p1 and p2.
func DistanceBetweenPoints(p1, p2 image.Point) float64 {
	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleBetweenPoints returns the direction from p1 to p2 in degrees, in
// (-180, 180]. Identical points give 0.
func AngleBetweenPoints(p1, p2 image.Point) float64 {
	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// Median returns the median of values without reordering the caller's slice.
//
// For an odd count the exact middle element is returned. For an even count
// the result is the mean of the two middle elements, so [4 1 2 3] gives 2.5.
// An empty slice gives 0.
func Median(values []int) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]int, n)
	copy(sorted, values)
	sort.Ints(sorted)

	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}
