// Package geometry provides the 2D primitives used to model plate edges,
// character baselines and rotation correction.
//
// # Coordinate System
//
// All coordinates are image coordinates: (0,0) is the top-left pixel, X grows
// rightward and Y grows downward. Angles are in degrees, computed with
// atan2(dy, dx), so they lie in (-180, 180] and a positive angle turns
// clockwise on screen.
//
// # Degenerate Cases
//
// Operations that are undefined for some inputs (the intersection of parallel
// lines, the y value of a vertical line) never panic and never return NaN.
// They return a second boolean result that is false, together with a fixed
// sentinel value such as NoPoint.
//
// # Thread Safety
//
// Every type in this package is an immutable value and every function is
// pure, so all of it is safe for concurrent use.
package geometry
