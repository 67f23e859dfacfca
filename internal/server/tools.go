package server

import "github.com/airi103/nerine/internal/config"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func boundedIntProp(description string, minimum, maximum int) map[string]interface{} {
	prop := intProp(description)
	prop["minimum"] = minimum
	prop["maximum"] = maximum
	return prop
}

func hexProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func regionProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": intProp("Left edge X coordinate (inclusive)"),
			"y1": intProp("Top edge Y coordinate (inclusive)"),
			"x2": intProp("Right edge X coordinate (exclusive)"),
			"y2": intProp("Bottom edge Y coordinate (exclusive)"),
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and alpha information. The decoded pixels are cached for later sampling.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp(),
			}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp(),
			}, "path"),
		},

		// Sampling
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGB, HSV and HSL. Out-of-range coordinates are an error unless clamp is set.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp(),
				"x":    intProp("X coordinate (0-based, 0 to width-1)"),
				"y":    intProp("Y coordinate (0-based, 0 to height-1)"),
				"clamp": map[string]interface{}{
					"type":        "boolean",
					"description": "Move out-of-range coordinates to the nearest edge pixel instead of failing",
				},
			}, "path", "x", "y"),
		},
		{
			Name:        "image_sample_random",
			Description: "Sample the color at a uniformly random pixel. Returns the chosen position with the color.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp(),
			}, "path"),
		},
		{
			Name:        "image_sample_smoothed",
			Description: "Get the box-averaged color around a pixel. Useful for photos where single pixels are noisy.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":   pathProp(),
				"x":      intProp("X coordinate of the center pixel"),
				"y":      intProp("Y coordinate of the center pixel"),
				"radius": boundedIntProp("Neighbourhood radius in pixels (default 2, 0 samples the single pixel)", 0, maxSmoothRadius),
			}, "path", "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple pixels in one call. Results keep the input order.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp(),
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Points to sample",
					"items": objectSchema(map[string]interface{}{
						"x": intProp("X coordinate"),
						"y": intProp("Y coordinate"),
						"label": map[string]interface{}{
							"type":        "string",
							"description": "Optional label echoed in the result",
						},
					}, "x", "y"),
				},
			}, "path", "points"),
		},
		{
			Name:        "image_loupe",
			Description: "Return a magnified PNG of the pixels around a point together with the color at the point. Use this to aim before sampling.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":   pathProp(),
				"x":      intProp("X coordinate of the center pixel"),
				"y":      intProp("Y coordinate of the center pixel"),
				"radius": boundedIntProp("Pixels shown on each side of the center (default from NERINE_LOUPE_RADIUS)", 0, config.MaxLoupeRadius),
				"scale":  boundedIntProp("Magnification factor (default 8)", 1, maxLoupeScale),
			}, "path", "x", "y"),
		},

		// Analysis
		{
			Name:        "image_dominant_colors",
			Description: "Find the most common colors in an image or region. Colors are quantized to steps of 16 per channel.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":   pathProp(),
				"count":  intProp("Number of colors to return (default from NERINE_DOMINANT_COUNT)"),
				"region": regionProp("Optional region to analyze"),
			}, "path"),
		},
		{
			Name:        "image_compare_regions",
			Description: "Compare the colors of two regions of an image. Reports both averages, their CIEDE2000 distance and pixel statistics.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":    pathProp(),
				"region1": regionProp("First region"),
				"region2": regionProp("Second region"),
			}, "path", "region1", "region2"),
		},

		// Color Conversion
		{
			Name:        "color_convert",
			Description: "Convert a hex color (#RRGGBB or #RGB) to RGB, HSV and HSL.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Hex color, with or without the leading #"),
			}, "hex"),
		},

		// Palette
		{
			Name:        "palette_add",
			Description: "Save a color to the session palette, either given as hex or sampled from path at (x, y). Returns the palette.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex":  hexProp("Hex color to save"),
				"path": pathProp(),
				"x":    intProp("X coordinate to sample when path is given"),
				"y":    intProp("Y coordinate to sample when path is given"),
			}),
		},
		{
			Name:        "palette_list",
			Description: "List the saved colors in the order they were added.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "palette_clear",
			Description: "Remove every saved color.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "palette_nearest",
			Description: "Find the saved color perceptually closest (CIEDE2000) to a hex color.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Hex color to match"),
			}, "hex"),
		},
	}
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
