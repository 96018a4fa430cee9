package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the plate image file",
	}
}

func integerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func numberProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

// segmentProperty describes an object with x1, y1, x2, y2.
func segmentProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties":  segmentProperties(),
		"required":    []string{"x1", "y1", "x2", "y2"},
	}
}

func segmentProperties() map[string]interface{} {
	return map[string]interface{}{
		"x1": integerProperty("First X coordinate (0-based)"),
		"y1": integerProperty("First Y coordinate (0-based)"),
		"x2": integerProperty("Second X coordinate"),
		"y2": integerProperty("Second Y coordinate"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Plate image tools
		{
			Name:        "plate_load",
			Description: "Load a plate image and return its dimensions, format and channel count. The image stays cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_thresholds",
			Description: "Produce the binarized candidates of a plate image (wolf-low, wolf-high, sauvola, adaptive, otsu). Characters are white on black. Returns each candidate and a labelled dashboard as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"config": map[string]interface{}{
						"type":                 "object",
						"description":          "Optional parameter overrides keyed like the config file, e.g. {\"sauvola_k\": \"0.25\"}",
						"additionalProperties": map[string]interface{}{"type": "string"},
					},
					"include_variants": map[string]interface{}{
						"type":        "boolean",
						"description": "Return every candidate as well as the dashboard. Default true",
						"default":     true,
					},
					"dashboard_columns": map[string]interface{}{
						"type":        "integer",
						"description": "Columns in the dashboard grid. Default 3",
						"default":     3,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_equalize",
			Description: "Flatten uneven illumination across a plate image and return the stretched gray result as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_resize",
			Description: "Resize a plate image to the largest size that fits the bounds while keeping its aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty(),
					"max_width":  integerProperty("Maximum output width in pixels"),
					"max_height": integerProperty("Maximum output height in pixels"),
				},
				"required": []string{"path", "max_width", "max_height"},
			},
		},
		{
			Name:        "plate_deskew",
			Description: "Rotate a plate image so that the given character baseline becomes horizontal. Returns the skew found and the rotated image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"baseline": segmentProperty("Baseline segment in image coordinates"),
				},
				"required": []string{"path", "baseline"},
			},
		},
		{
			Name:        "plate_annotate",
			Description: "Draw debug annotations on a copy of a plate image: a rotated rectangle, an X over a rejected region, line segments and a threshold mask overlay.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"rotated_rect": map[string]interface{}{
						"type":        "object",
						"description": "Rectangle to outline, turned clockwise by angle degrees",
						"properties": map[string]interface{}{
							"center_x": numberProperty("Centre X"),
							"center_y": numberProperty("Centre Y"),
							"width":    numberProperty("Width in pixels"),
							"height":   numberProperty("Height in pixels"),
							"angle":    numberProperty("Rotation in degrees"),
						},
						"required": []string{"center_x", "center_y", "width", "height"},
					},
					"reject": segmentProperty("Region (x1,y1)-(x2,y2) to cross out"),
					"lines": map[string]interface{}{
						"type":        "array",
						"description": "Line segments to stroke",
						"items":       segmentProperty("Segment"),
					},
					"highlight": map[string]interface{}{
						"type":        "string",
						"description": "Overlay the named threshold candidate as a mask",
						"enum":        []string{"wolf-low", "wolf-high", "sauvola", "adaptive", "otsu"},
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Annotation color as hex (#RRGGBB, #RGB or #RRGGBBAA). Default #ff0000",
						"default":     "#ff0000",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Stroke width in pixels. Default 1",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},

		// Geometry tools
		{
			Name:        "line_analyze",
			Description: "Describe a line segment: length, angle, slope, midpoint and a parallel copy. With a point, also report the closest point on the segment and which side of the line the point is on.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(segmentProperties(), map[string]interface{}{
					"distance": map[string]interface{}{
						"type":        "number",
						"description": "Offset of the parallel line in pixels. Default 0",
						"default":     0,
					},
					"point": map[string]interface{}{
						"type":        "object",
						"description": "Optional probe point",
						"properties": map[string]interface{}{
							"x": integerProperty("X coordinate"),
							"y": integerProperty("Y coordinate"),
						},
						"required": []string{"x", "y"},
					},
				}),
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "line_intersection",
			Description: "Intersect the infinite lines through two segments. Parallel or degenerate lines report found=false.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"line1": segmentProperty("First segment"),
					"line2": segmentProperty("Second segment"),
				},
				"required": []string{"line1", "line2"},
			},
		},
		{
			Name:        "rect_expand",
			Description: "Grow a rectangle by a total width and height, split evenly across both sides, and clamp it into the image bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(segmentProperties(), map[string]interface{}{
					"expand_x": integerProperty("Total pixels added to the width"),
					"expand_y": integerProperty("Total pixels added to the height"),
					"max_x":    integerProperty("Right clamp bound (image width)"),
					"max_y":    integerProperty("Bottom clamp bound (image height)"),
				}),
				"required": []string{"x1", "y1", "x2", "y2", "expand_x", "expand_y", "max_x", "max_y"},
			},
		},
	}
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
