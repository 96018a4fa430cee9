// Package server implements the MCP (Model Context Protocol) server that
// exposes the plate preprocessing layer for inspection.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Plate images:
//   - plate_load: Dimensions, format and channels of an image file
//   - plate_thresholds: Binarized candidates and a labelled dashboard
//   - plate_equalize: Brightness equalization
//   - plate_resize: Aspect-preserving resize
//   - plate_deskew: Rotate so a baseline becomes horizontal
//   - plate_annotate: Rotated rectangles, rejection marks, lines and masks
//
// Geometry:
//   - line_analyze: Length, angle, slope, midpoint, parallel line and point queries
//   - line_intersection: Intersection of two lines
//   - rect_expand: Grow and clamp a rectangle
//
// Images are returned as base64-encoded PNG.
//
// # Image Caching
//
// Images are cached by path for the lifetime of the process. Tools never
// draw into a cached image; annotations are applied to a copy.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(config.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
