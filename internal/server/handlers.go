package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/plate-prep/internal/geometry"
	plateimg "github.com/ironsheep/plate-prep/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plate_load", "line_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Plate image tools
	case "plate_load":
		return s.handlePlateLoad(args)
	case "plate_thresholds":
		return s.handlePlateThresholds(args)
	case "plate_equalize":
		return s.handlePlateEqualize(args)
	case "plate_resize":
		return s.handlePlateResize(args)
	case "plate_deskew":
		return s.handlePlateDeskew(args)
	case "plate_annotate":
		return s.handlePlateAnnotate(args)

	// Geometry tools
	case "line_analyze":
		return s.handleLineAnalyze(args)
	case "line_intersection":
		return s.handleLineIntersection(args)
	case "rect_expand":
		return s.handleRectExpand(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is left out of the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageResult carries an encoded image back to the client.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// encodePNG renders img as a base64 PNG result.
func encodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Request shapes shared by several tools.

type pointArg struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p pointArg) point() image.Point { return image.Pt(p.X, p.Y) }

type segmentArg struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (a segmentArg) segment() geometry.LineSegment {
	return geometry.NewLineSegment(a.X1, a.Y1, a.X2, a.Y2)
}

func (a segmentArg) rect() image.Rectangle {
	return image.Rect(a.X1, a.Y1, a.X2, a.Y2)
}

type rotatedRectArg struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Angle   float64 `json:"angle"`
}

func (a rotatedRectArg) rotatedRect() geometry.RotatedRect {
	return geometry.RotatedRect{
		Center: r2.Vec{X: a.CenterX, Y: a.CenterY},
		Width:  a.Width,
		Height: a.Height,
		Angle:  a.Angle,
	}
}

// === Plate Image Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePlateLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return plateimg.LoadImageInfo(s.cache, a.Path)
}

type plateThresholdsArgs struct {
	Path             string            `json:"path"`
	Config           map[string]string `json:"config,omitempty"`
	IncludeVariants  *bool             `json:"include_variants,omitempty"`
	DashboardColumns int               `json:"dashboard_columns,omitempty"`
}

type thresholdVariant struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	*ImageResult
}

type plateThresholdsResult struct {
	Count     int                `json:"count"`
	Variants  []thresholdVariant `json:"variants,omitempty"`
	Dashboard *ImageResult       `json:"dashboard"`
}

func (s *Server) handlePlateThresholds(args json.RawMessage) (interface{}, error) {
	var a plateThresholdsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.DashboardColumns == 0 {
		a.DashboardColumns = 3
	}
	includeVariants := a.IncludeVariants == nil || *a.IncludeVariants

	cfg, err := s.cfg.With(a.Config)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	thresholds, err := plateimg.ProduceThresholds(img, cfg)
	if err != nil {
		return nil, err
	}

	result := &plateThresholdsResult{Count: len(thresholds)}
	labelled := make([]image.Image, len(thresholds))
	for i, t := range thresholds {
		labelled[i] = plateimg.AddLabel(t, plateimg.ThresholdName(i))
		if !includeVariants {
			continue
		}
		enc, err := encodePNG(t)
		if err != nil {
			return nil, err
		}
		result.Variants = append(result.Variants, thresholdVariant{Index: i, Name: plateimg.ThresholdName(i), ImageResult: enc})
	}

	result.Dashboard, err = encodePNG(plateimg.DrawImageDashboard(labelled, plateimg.ImageTypeRGBA, a.DashboardColumns))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Server) handlePlateEqualize(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	equalized, err := plateimg.EqualizeBrightness(img)
	if err != nil {
		return nil, err
	}
	return encodePNG(equalized)
}

type plateResizeArgs struct {
	Path      string `json:"path"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
}

func (s *Server) handlePlateResize(args json.RawMessage) (interface{}, error) {
	var a plateResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	resized, err := plateimg.ResizeMaintainingAspect(img, a.MaxWidth, a.MaxHeight)
	if err != nil {
		return nil, err
	}
	return encodePNG(resized)
}

type plateDeskewArgs struct {
	Path     string     `json:"path"`
	Baseline segmentArg `json:"baseline"`
}

type plateDeskewResult struct {
	SkewDegrees float64 `json:"skew_degrees"`
	*ImageResult
}

func (s *Server) handlePlateDeskew(args json.RawMessage) (interface{}, error) {
	var a plateDeskewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	baseline := a.Baseline.segment()
	enc, err := encodePNG(plateimg.CorrectRotation(img, baseline))
	if err != nil {
		return nil, err
	}
	skew := 0.0
	if baseline.Length() > 0 {
		skew = plateimg.BaselineSkew(baseline)
	}
	return &plateDeskewResult{SkewDegrees: skew, ImageResult: enc}, nil
}

type plateAnnotateArgs struct {
	Path        string          `json:"path"`
	RotatedRect *rotatedRectArg `json:"rotated_rect,omitempty"`
	Reject      *segmentArg     `json:"reject,omitempty"`
	Lines       []segmentArg    `json:"lines,omitempty"`
	Highlight   string          `json:"highlight,omitempty"`
	Color       string          `json:"color,omitempty"`
	Thickness   int             `json:"thickness,omitempty"`
}

func (s *Server) handlePlateAnnotate(args json.RawMessage) (interface{}, error) {
	var a plateAnnotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = "#ff0000"
	}
	if a.Thickness == 0 {
		a.Thickness = 1
	}

	c, err := plateimg.ParseHexColor(a.Color)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	// Cached images are shared, so annotations go on a copy.
	canvas := imaging.Clone(img)

	if a.Highlight != "" {
		mask, err := s.thresholdByName(img, a.Highlight)
		if err != nil {
			return nil, err
		}
		plateimg.FillMask(canvas, mask, c)
	}
	if a.RotatedRect != nil {
		plateimg.DrawRotatedRect(canvas, a.RotatedRect.rotatedRect(), c, a.Thickness)
	}
	if a.Reject != nil {
		plateimg.DrawX(canvas, a.Reject.rect(), c, a.Thickness)
	}
	for _, l := range a.Lines {
		plateimg.DrawLineSegment(canvas, l.segment(), c, a.Thickness)
	}

	return encodePNG(canvas)
}

// thresholdByName returns the named candidate of img produced with the
// server's configuration.
func (s *Server) thresholdByName(img image.Image, name string) (*image.Gray, error) {
	thresholds, err := plateimg.ProduceThresholds(img, s.cfg)
	if err != nil {
		return nil, err
	}
	for i, t := range thresholds {
		if plateimg.ThresholdName(i) == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown threshold %q", name)
}

// === Geometry Handlers ===

type lineAnalyzeArgs struct {
	segmentArg
	Distance float64   `json:"distance,omitempty"`
	Point    *pointArg `json:"point,omitempty"`
}

type segmentResult struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func newSegmentResult(seg geometry.LineSegment) segmentResult {
	return segmentResult{X1: seg.P1().X, Y1: seg.P1().Y, X2: seg.P2().X, Y2: seg.P2().Y}
}

type lineAnalyzeResult struct {
	Segment      string        `json:"segment"`
	Length       float64       `json:"length"`
	Angle        float64       `json:"angle_degrees"`
	Slope        *float64      `json:"slope"`
	IsVertical   bool          `json:"is_vertical"`
	Midpoint     pointArg      `json:"midpoint"`
	ParallelLine segmentResult `json:"parallel_line"`

	// Set only when a point was given.
	ClosestPoint *pointArg `json:"closest_point,omitempty"`
	PointBelow   *bool     `json:"point_below,omitempty"`
	YAtPointX    *float64  `json:"y_at_point_x,omitempty"`
}

func (s *Server) handleLineAnalyze(args json.RawMessage) (interface{}, error) {
	var a lineAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	seg := a.segment()
	mid := seg.Midpoint()
	result := &lineAnalyzeResult{
		Segment:      seg.String(),
		Length:       seg.Length(),
		Angle:        seg.Angle(),
		IsVertical:   seg.IsVertical(),
		Midpoint:     pointArg{X: mid.X, Y: mid.Y},
		ParallelLine: newSegmentResult(seg.ParallelLine(a.Distance)),
	}
	if slope, ok := seg.Slope(); ok {
		result.Slope = &slope
	}

	if a.Point != nil {
		p := a.Point.point()
		closest := seg.ClosestPointOnSegmentTo(p)
		below := seg.IsPointBelowLine(p)
		result.ClosestPoint = &pointArg{X: closest.X, Y: closest.Y}
		result.PointBelow = &below
		if y, ok := seg.PointAt(float64(p.X)); ok {
			result.YAtPointX = &y
		}
	}
	return result, nil
}

type lineIntersectionArgs struct {
	Line1 segmentArg `json:"line1"`
	Line2 segmentArg `json:"line2"`
}

type lineIntersectionResult struct {
	Found bool      `json:"found"`
	Point *pointArg `json:"point,omitempty"`
}

func (s *Server) handleLineIntersection(args json.RawMessage) (interface{}, error) {
	var a lineIntersectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, ok := a.Line1.segment().Intersection(a.Line2.segment())
	if !ok {
		return &lineIntersectionResult{Found: false}, nil
	}
	return &lineIntersectionResult{Found: true, Point: &pointArg{X: p.X, Y: p.Y}}, nil
}

type rectExpandArgs struct {
	segmentArg
	ExpandX int `json:"expand_x"`
	ExpandY int `json:"expand_y"`
	MaxX    int `json:"max_x"`
	MaxY    int `json:"max_y"`
}

func (s *Server) handleRectExpand(args json.RawMessage) (interface{}, error) {
	var a rectExpandArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r := geometry.ExpandRect(a.rect(), a.ExpandX, a.ExpandY, a.MaxX, a.MaxY)
	return &segmentResult{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}, nil
}
