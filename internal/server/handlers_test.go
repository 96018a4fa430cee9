package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/plate-prep/internal/config"
)

// createPlateFile writes a light plate with two dark strokes and returns its
// path.
func createPlateFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{220, 220, 220, 255}), image.Point{}, draw.Src)
	for _, x0 := range []int{width / 5, width / 3} {
		draw.Draw(img, image.Rect(x0, height/4, x0+4, height*3/4), image.NewUniform(color.RGBA{30, 30, 30, 255}), image.Point{}, draw.Src)
	}

	path := filepath.Join(t.TempDir(), "plate.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool runs a tools/call request and decodes the text content into out.
func callTool(t *testing.T, s *Server, name string, args interface{}, out interface{}) *MCPResponse {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: paramsJSON})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil || out == nil {
		return resp
	}

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("failed to decode result %q: %v", text, err)
	}
	return resp
}

func mustSucceed(t *testing.T, resp *MCPResponse) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func decodeResultImage(t *testing.T, r ImageResult) image.Image {
	t.Helper()
	if r.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", r.MimeType)
	}
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if img.Bounds().Dx() != r.Width || img.Bounds().Dy() != r.Height {
		t.Errorf("reported %dx%d, decoded %v", r.Width, r.Height, img.Bounds())
	}
	return img
}

func TestHandleToolsCall_PlateLoad(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 120, 40)

	var info struct {
		Width    int    `json:"width"`
		Height   int    `json:"height"`
		Format   string `json:"format"`
		Channels int    `json:"channels"`
	}
	mustSucceed(t, callTool(t, s, "plate_load", map[string]interface{}{"path": path}, &info))

	if info.Width != 120 || info.Height != 40 || info.Format != "png" {
		t.Errorf("got %+v", info)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(config.Default())
	resp := callTool(t, s, "plate_load", map[string]interface{}{"path": "/nonexistent/plate.png"}, nil)

	if resp.Error == nil {
		t.Fatal("expected error for missing file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_PlateThresholds(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 120, 40)

	var result plateThresholdsResult
	mustSucceed(t, callTool(t, s, "plate_thresholds", map[string]interface{}{"path": path}, &result))

	if result.Count != 5 || len(result.Variants) != 5 {
		t.Fatalf("got count %d with %d variants, want 5", result.Count, len(result.Variants))
	}
	for i, v := range result.Variants {
		if v.Index != i || v.Name == "" {
			t.Errorf("variant %d: %+v", i, v)
		}
		if img := decodeResultImage(t, *v.ImageResult); img.Bounds().Size() != image.Pt(120, 40) {
			t.Errorf("variant %s size %v", v.Name, img.Bounds().Size())
		}
	}

	// Three columns of 122x61 labelled cells.
	if result.Dashboard == nil {
		t.Fatal("missing dashboard")
	}
	dash := decodeResultImage(t, *result.Dashboard)
	if dash.Bounds().Size() != image.Pt(3*122, 2*61) {
		t.Errorf("dashboard size: got %v", dash.Bounds().Size())
	}
}

func TestHandleToolsCall_PlateThresholds_Options(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 60, 20)

	var result plateThresholdsResult
	mustSucceed(t, callTool(t, s, "plate_thresholds", map[string]interface{}{
		"path":              path,
		"config":            map[string]string{"sauvola_k": "0.3", "pre_blur_radius": "1"},
		"include_variants":  false,
		"dashboard_columns": 5,
	}, &result))

	if len(result.Variants) != 0 {
		t.Errorf("variants returned although disabled: %d", len(result.Variants))
	}
	if result.Dashboard.Width != 5*62 {
		t.Errorf("dashboard width: got %d, want %d", result.Dashboard.Width, 5*62)
	}
	if s.cfg != config.Default() {
		t.Error("per-call overrides changed the server configuration")
	}
}

func TestHandleToolsCall_PlateThresholds_BadConfig(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 60, 20)

	for _, cfg := range []map[string]string{
		{"adaptive_block_size": "4"},
		{"no_such_key": "1"},
		{"wolf_k_low": "abc"},
	} {
		resp := callTool(t, s, "plate_thresholds", map[string]interface{}{"path": path, "config": cfg}, nil)
		if resp.Error == nil {
			t.Errorf("config %v: expected error", cfg)
		}
	}
}

func TestHandleToolsCall_PlateEqualize(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 80, 30)

	var result ImageResult
	mustSucceed(t, callTool(t, s, "plate_equalize", map[string]interface{}{"path": path}, &result))

	img := decodeResultImage(t, result)
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("equalized image decoded as %T, want *image.Gray", img)
	}
}

func TestHandleToolsCall_PlateResize(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 200, 100)

	var result ImageResult
	mustSucceed(t, callTool(t, s, "plate_resize", map[string]interface{}{
		"path": path, "max_width": 100, "max_height": 100,
	}, &result))
	if result.Width != 100 || result.Height != 50 {
		t.Errorf("got %dx%d, want 100x50", result.Width, result.Height)
	}

	resp := callTool(t, s, "plate_resize", map[string]interface{}{"path": path, "max_width": 0, "max_height": 10}, nil)
	if resp.Error == nil {
		t.Error("expected error for zero width")
	}
}

func TestHandleToolsCall_PlateDeskew(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 120, 40)

	var result plateDeskewResult
	mustSucceed(t, callTool(t, s, "plate_deskew", map[string]interface{}{
		"path":     path,
		"baseline": map[string]int{"x1": 0, "y1": 0, "x2": 10, "y2": 10},
	}, &result))

	if math.Abs(result.SkewDegrees-45) > 1e-9 {
		t.Errorf("skew: got %f, want 45", result.SkewDegrees)
	}
	if result.Width != 120 || result.Height != 40 {
		t.Errorf("size: got %dx%d, want 120x40", result.Width, result.Height)
	}
}

func TestHandleToolsCall_PlateAnnotate(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 100, 50)

	var result ImageResult
	mustSucceed(t, callTool(t, s, "plate_annotate", map[string]interface{}{
		"path":         path,
		"rotated_rect": map[string]float64{"center_x": 50, "center_y": 25, "width": 40, "height": 20},
		"reject":       map[string]int{"x1": 60, "y1": 0, "x2": 90, "y2": 30},
		"lines":        []map[string]int{{"x1": 0, "y1": 45, "x2": 99, "y2": 45}},
		"color":        "#00ff00",
		"thickness":    3,
	}, &result))

	img := decodeResultImage(t, result)
	green := color.RGBA{0, 255, 0, 255}
	for _, p := range []image.Point{{50, 15}, {75, 15}, {10, 45}} {
		if got := color.RGBAModel.Convert(img.At(p.X, p.Y)); got != green {
			t.Errorf("pixel %v: got %v, want %v", p, got, green)
		}
	}

	// The cached original must stay untouched.
	cached, err := s.cache.Load(path)
	if err != nil {
		t.Fatalf("cache Load failed: %v", err)
	}
	if got := color.RGBAModel.Convert(cached.At(10, 45)); got == green {
		t.Error("annotation was drawn into the cached image")
	}
}

func TestHandleToolsCall_PlateAnnotate_Highlight(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 100, 40)

	var result ImageResult
	mustSucceed(t, callTool(t, s, "plate_annotate", map[string]interface{}{
		"path": path, "highlight": "otsu", "color": "#0000ff",
	}, &result))

	// Stroke pixels get the blue channel ORed in; background stays gray.
	img := decodeResultImage(t, result)
	stroke := color.RGBAModel.Convert(img.At(21, 20)).(color.RGBA)
	if stroke.B != 255 || stroke.R != 30 {
		t.Errorf("stroke pixel: got %v, want blue ORed over ink", stroke)
	}
	if bg := color.RGBAModel.Convert(img.At(90, 20)).(color.RGBA); bg.B != 220 {
		t.Errorf("background pixel: got %v, want untouched", bg)
	}
}

func TestHandleToolsCall_PlateAnnotate_Errors(t *testing.T) {
	s := New(config.Default())
	path := createPlateFile(t, 50, 20)

	for name, args := range map[string]map[string]interface{}{
		"bad color":         {"path": path, "color": "not-a-color"},
		"unknown highlight": {"path": path, "highlight": "niblack"},
		"missing file":      {"path": "/nonexistent.png"},
	} {
		if resp := callTool(t, s, "plate_annotate", args, nil); resp.Error == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestHandleToolsCall_LineAnalyze(t *testing.T) {
	s := New(config.Default())

	var result lineAnalyzeResult
	mustSucceed(t, callTool(t, s, "line_analyze", map[string]interface{}{
		"x1": 0, "y1": 10, "x2": 100, "y2": 10,
		"distance": 5,
		"point":    map[string]int{"x": 50, "y": 30},
	}, &result))

	if result.Length != 100 || result.Angle != 0 {
		t.Errorf("length/angle: got %f/%f", result.Length, result.Angle)
	}
	if result.Slope == nil || *result.Slope != 0 {
		t.Errorf("slope: got %v, want 0", result.Slope)
	}
	if result.Midpoint != (pointArg{X: 50, Y: 10}) {
		t.Errorf("midpoint: got %+v", result.Midpoint)
	}
	if result.ParallelLine != (segmentResult{X1: 0, Y1: 5, X2: 100, Y2: 5}) {
		t.Errorf("parallel line: got %+v", result.ParallelLine)
	}
	if result.ClosestPoint == nil || *result.ClosestPoint != (pointArg{X: 50, Y: 10}) {
		t.Errorf("closest point: got %+v", result.ClosestPoint)
	}
	if result.PointBelow == nil || !*result.PointBelow {
		t.Error("point (50,30) should be below the line")
	}
	if result.YAtPointX == nil || *result.YAtPointX != 10 {
		t.Errorf("y at x: got %v, want 10", result.YAtPointX)
	}
}

func TestHandleToolsCall_LineAnalyze_Vertical(t *testing.T) {
	s := New(config.Default())

	var result lineAnalyzeResult
	mustSucceed(t, callTool(t, s, "line_analyze", map[string]interface{}{
		"x1": 5, "y1": 0, "x2": 5, "y2": 20,
		"point": map[string]int{"x": 0, "y": 0},
	}, &result))

	if !result.IsVertical || result.Slope != nil {
		t.Errorf("vertical: is_vertical=%v slope=%v", result.IsVertical, result.Slope)
	}
	if result.YAtPointX != nil {
		t.Error("y at x should be omitted for vertical segments")
	}
}

func TestHandleToolsCall_LineIntersection(t *testing.T) {
	s := New(config.Default())

	tests := []struct {
		name      string
		line1     map[string]int
		line2     map[string]int
		wantFound bool
		wantPoint pointArg
	}{
		{"crossing", map[string]int{"x1": 0, "y1": 0, "x2": 10, "y2": 10}, map[string]int{"x1": 0, "y1": 10, "x2": 10, "y2": 0}, true, pointArg{5, 5}},
		{"parallel", map[string]int{"x1": 0, "y1": 0, "x2": 10, "y2": 0}, map[string]int{"x1": 0, "y1": 5, "x2": 10, "y2": 5}, false, pointArg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result lineIntersectionResult
			mustSucceed(t, callTool(t, s, "line_intersection", map[string]interface{}{"line1": tt.line1, "line2": tt.line2}, &result))

			if result.Found != tt.wantFound {
				t.Fatalf("found: got %v, want %v", result.Found, tt.wantFound)
			}
			if tt.wantFound && (result.Point == nil || *result.Point != tt.wantPoint) {
				t.Errorf("point: got %+v, want %+v", result.Point, tt.wantPoint)
			}
			if !tt.wantFound && result.Point != nil {
				t.Errorf("point should be omitted, got %+v", result.Point)
			}
		})
	}
}

func TestHandleToolsCall_RectExpand(t *testing.T) {
	s := New(config.Default())

	var result segmentResult
	mustSucceed(t, callTool(t, s, "rect_expand", map[string]interface{}{
		"x1": 10, "y1": 10, "x2": 30, "y2": 20,
		"expand_x": 10, "expand_y": 4,
		"max_x": 100, "max_y": 100,
	}, &result))

	if result != (segmentResult{X1: 5, Y1: 8, X2: 35, Y2: 22}) {
		t.Errorf("got %+v", result)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(config.Default())
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`{invalid json}`),
	})

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New(config.Default())
	if _, err := s.executeTool("unknown_tool", json.RawMessage(`{}`)); err == nil {
		t.Error("Expected error for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New(config.Default())
	for _, tool := range GetToolDefinitions() {
		if _, err := s.executeTool(tool.Name, json.RawMessage(`{"x1": "not a number", "path": 7, "line1": 3}`)); err == nil {
			t.Errorf("%s: expected error for invalid JSON types", tool.Name)
		}
	}
}

func TestExecuteTool_MissingArguments(t *testing.T) {
	s := New(config.Default())
	// Geometry tools work on the zero segment; image tools fail to load "".
	if _, err := s.executeTool("line_analyze", nil); err != nil {
		t.Errorf("line_analyze with no arguments: %v", err)
	}
	if _, err := s.executeTool("plate_load", nil); err == nil {
		t.Error("plate_load with no path should fail")
	}
}
