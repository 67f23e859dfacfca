package imaging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of decoded pixel buffers to avoid
// redundant disk reads.
//
// The cache stores PixelBuffers keyed by their file path. Once an image is
// loaded, subsequent Load() calls for the same path return the cached buffer
// without disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached buffers remain in memory until explicitly removed via Evict() or
// Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	buf, err := cache.Load("/path/to/photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, err := sampler.SampleAt(buf, 10, 20)
type ImageCache struct {
	mu      sync.RWMutex
	buffers map[string]*PixelBuffer
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		buffers: make(map[string]*PixelBuffer),
	}
}

// Load retrieves a pixel buffer from the cache or decodes it from disk.
//
// Supported formats are those of github.com/disintegration/imaging: PNG,
// JPEG, GIF, BMP and TIFF. JPEG EXIF orientation is applied during decoding,
// so coordinates match what a viewer displays.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
//   - Returns ErrEmptyBuffer for images with no pixels
func (c *ImageCache) Load(path string) (*PixelBuffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buf, err := NewPixelBuffer(img)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Clear removes all buffers from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*PixelBuffer)
	c.mu.Unlock()
}

// Evict removes a specific buffer from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Len returns the number of cached buffers.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels, after orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after orientation is applied.
	Height int `json:"height"`

	// Format is the format implied by the file extension ("png", "jpeg",
	// "gif", "bmp", "tiff") or "unknown".
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque. Alpha is
	// ignored when sampling.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and returns metadata about it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	return &ImageInfo{
		Width:         buf.Width(),
		Height:        buf.Height(),
		Format:        format,
		HasAlpha:      !buf.pix.Opaque(),
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image, loading it if needed.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	return &DimensionsResult{
		Width:  buf.Width(),
		Height: buf.Height(),
	}, nil
}
