package server

import (
	"encoding/json"
	"fmt"

	"github.com/airi103/nerine/internal/config"
	"github.com/airi103/nerine/internal/imaging"
)

const (
	defaultSmoothRadius = 2
	maxSmoothRadius     = 64

	defaultLoupeScale = 8
	maxLoupeScale     = 32
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_sample_color", "palette_add").
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
		s.logger.Info("tool failed", "tool", params.Name, "error", err)
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
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Sampling
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_random":
		return s.handleImageSampleRandom(args)
	case "image_sample_smoothed":
		return s.handleImageSampleSmoothed(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_loupe":
		return s.handleImageLoupe(args)

	// Analysis
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "image_compare_regions":
		return s.handleImageCompareRegions(args)

	// Color Conversion
	case "color_convert":
		return s.handleColorConvert(args)

	// Palette
	case "palette_add":
		return s.handlePaletteAdd(args)
	case "palette_list":
		return s.paletteResult(), nil
	case "palette_clear":
		s.swatches.Clear()
		return s.paletteResult(), nil
	case "palette_nearest":
		return s.handlePaletteNearest(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r regionArgs) region() imaging.Region {
	return imaging.Region{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Sampling Handlers ===

type imageSampleColorArgs struct {
	Path  string `json:"path"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Clamp bool   `json:"clamp"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Clamp {
		a.X, a.Y = buf.Clamp(a.X, a.Y)
	}
	c, err := s.sampler.SampleColor(buf, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &imaging.LabeledColorResult{X: a.X, Y: a.Y, Color: *c}, nil
}

type imageSampleRandomArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageSampleRandom(args json.RawMessage) (interface{}, error) {
	var a imageSampleRandomArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	sample, err := s.sampler.SampleRandom(buf)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("random sample", "path", a.Path, "x", sample.X, "y", sample.Y, "hex", sample.Color.Hex())
	return &imaging.LabeledColorResult{X: sample.X, Y: sample.Y, Color: *imaging.Describe(sample.Color)}, nil
}

type imageSampleSmoothedArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Radius *int   `json:"radius,omitempty"`
}

func (s *Server) handleImageSampleSmoothed(args json.RawMessage) (interface{}, error) {
	var a imageSampleSmoothedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	radius := defaultSmoothRadius
	if a.Radius != nil {
		radius = *a.Radius
	}
	if radius > maxSmoothRadius {
		return nil, fmt.Errorf("radius must be <= %d, got %d", maxSmoothRadius, radius)
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := s.sampler.SampleSmoothed(buf, a.X, a.Y, radius)
	if err != nil {
		return nil, err
	}
	return &imaging.LabeledColorResult{X: a.X, Y: a.Y, Color: *imaging.Describe(c)}, nil
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return s.sampler.SampleColorsMulti(buf, points)
}

type imageLoupeArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Radius *int   `json:"radius,omitempty"`
	Scale  int    `json:"scale"`
}

func (s *Server) handleImageLoupe(args json.RawMessage) (interface{}, error) {
	var a imageLoupeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	radius := s.cfg.LoupeRadius
	if a.Radius != nil {
		radius = *a.Radius
	}
	if a.Scale == 0 {
		a.Scale = defaultLoupeScale
	}
	if radius > config.MaxLoupeRadius {
		return nil, fmt.Errorf("radius must be <= %d, got %d", config.MaxLoupeRadius, radius)
	}
	if a.Scale > maxLoupeScale {
		return nil, fmt.Errorf("scale must be <= %d, got %d", maxLoupeScale, a.Scale)
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Loupe(buf, a.X, a.Y, radius, a.Scale)
}

// === Analysis Handlers ===

type imageDominantColorsArgs struct {
	Path   string      `json:"path"`
	Count  int         `json:"count"`
	Region *regionArgs `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = s.cfg.DominantCount
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		r := a.Region.region()
		region = &r
	}
	return imaging.DominantColors(buf, a.Count, region)
}

type imageCompareRegionsArgs struct {
	Path    string     `json:"path"`
	Region1 regionArgs `json:"region1"`
	Region2 regionArgs `json:"region2"`
}

func (s *Server) handleImageCompareRegions(args json.RawMessage) (interface{}, error) {
	var a imageCompareRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(buf, a.Region1.region(), a.Region2.region())
}

// === Color Conversion Handlers ===

type colorConvertArgs struct {
	Hex string `json:"hex"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := imaging.ParseHex(a.Hex)
	if err != nil {
		return nil, err
	}
	return imaging.Describe(c), nil
}

// === Palette Handlers ===

// PaletteResult lists the saved colors in the order they were added.
type PaletteResult struct {
	Count  int                   `json:"count"`
	Colors []imaging.ColorResult `json:"colors"`
}

func (s *Server) paletteResult() *PaletteResult {
	colors := s.swatches.Colors()
	out := make([]imaging.ColorResult, len(colors))
	for i, c := range colors {
		out[i] = *imaging.Describe(c)
	}
	return &PaletteResult{Count: len(out), Colors: out}
}

type paletteAddArgs struct {
	Hex  string `json:"hex,omitempty"`
	Path string `json:"path,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// handlePaletteAdd saves either an explicit hex color or the color sampled
// at (x, y) of path.
func (s *Server) handlePaletteAdd(args json.RawMessage) (interface{}, error) {
	var a paletteAddArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var c imaging.Color
	switch {
	case a.Hex != "" && a.Path != "":
		return nil, fmt.Errorf("provide either hex or path, not both")
	case a.Hex != "":
		parsed, err := imaging.ParseHex(a.Hex)
		if err != nil {
			return nil, err
		}
		c = parsed
	case a.Path != "":
		buf, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		sampled, err := s.sampler.SampleAt(buf, a.X, a.Y)
		if err != nil {
			return nil, err
		}
		c = sampled
	default:
		return nil, fmt.Errorf("hex or path is required")
	}

	s.swatches.Append(c)
	s.logger.Debug("palette add", "hex", c.Hex(), "count", s.swatches.Len())
	return s.paletteResult(), nil
}

type paletteNearestArgs struct {
	Hex string `json:"hex"`
}

// PaletteNearestResult is the saved color closest to a query color.
type PaletteNearestResult struct {
	Index int                 `json:"index"`
	Color imaging.ColorResult `json:"color"`
}

func (s *Server) handlePaletteNearest(args json.RawMessage) (interface{}, error) {
	var a paletteNearestArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	query, err := imaging.ParseHex(a.Hex)
	if err != nil {
		return nil, err
	}
	c, i, ok := s.swatches.Nearest(query)
	if !ok {
		return nil, fmt.Errorf("palette is empty")
	}
	return &PaletteNearestResult{Index: i, Color: *imaging.Describe(c)}, nil
}
