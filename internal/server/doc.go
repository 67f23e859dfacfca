// Package server implements the MCP (Model Context Protocol) server for
// color sampling.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout, one per line
//
// Supported MCP methods are initialize, tools/list, tools/call and ping.
// A line that is not valid JSON gets a -32700 parse error and the server
// keeps reading.
//
// # Available Tools
//
// Image information:
//   - image_load, image_dimensions
//
// Sampling:
//   - image_sample_color: Color at a pixel, optionally clamped to the edge
//   - image_sample_random: Color at a uniformly random pixel
//   - image_sample_smoothed: Box-averaged color around a pixel
//   - image_sample_colors_multi: Several labeled points at once
//   - image_loupe: Magnified view around a pixel
//
// Analysis:
//   - image_dominant_colors, image_compare_regions
//
// Conversion and palette:
//   - color_convert: Hex to RGB, HSV and HSL
//   - palette_add, palette_list, palette_clear, palette_nearest
//
// # State
//
// Decoded images are cached by path for the life of the process. The
// palette is kept per Server in insertion order and is not persisted.
// Random sampling is reproducible when the server is built with a seed
// (NERINE_SEED).
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string in data. Malformed tools/call params use
// -32602 and unknown methods -32601.
//
// # Usage
//
//	cfg, err := config.Load(os.Getenv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, cfg.NewLogger(os.Stderr))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
