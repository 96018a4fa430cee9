// Package imaging implements the image side of the plate preprocessing layer:
// producing binarized candidates of a plate, equalizing its brightness,
// resizing it, and drawing debug annotations.
//
// # Candidates
//
// ProduceThresholds returns ThresholdCount binary images in a fixed order
// (see the Threshold* constants). Each candidate is white (255) where plate
// characters are expected and black (0) elsewhere, so character segmentation
// can pick whichever variant separates them best.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left. Images returned
// by this package always have bounds starting at (0,0), whatever the bounds of
// their input.
//
// # Ownership
//
// Functions that return an image allocate it; none of them keeps or modifies
// its input. DrawLineSegment, DrawRotatedRect, DrawX and FillMask are the
// exception: they draw into the image passed to them, and the caller must
// make sure nothing else uses that image during the call.
//
// # Thread Safety
//
// There is no package-level mutable state. ImageCache is safe for concurrent
// use; everything else is safe as long as concurrent calls do not share a
// mutable image.
//
// # Error Handling
//
// Empty images and malformed configuration return errors wrapping
// ErrInvalidInput. Degenerate geometry is handled in package geometry and
// never produces an error here.
package imaging
