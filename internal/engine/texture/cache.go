package texture

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/logger"
)

// FallbackGray is the color of the 1x1 texture bound when an image is
// missing or fails to decode.
var FallbackGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Uploader creates and deletes GPU textures. GLUploader is the production
// implementation; tests substitute a recorder.
type Uploader interface {
	Upload(img *image.RGBA) (uint32, error)
	Delete(id uint32)
}

// LoaderFunc reads an image from a path.
type LoaderFunc func(path string) (*image.RGBA, error)

// CacheOptions configures a Cache.
type CacheOptions struct {
	// FlipY mirrors rows before upload so V=0 samples the image bottom.
	FlipY bool
	// MaxSize downscales larger images. Zero disables it.
	MaxSize int
	// Loader overrides Load.
	Loader LoaderFunc
}

// Cache maps image paths to texture ids. Each path is decoded and uploaded
// at most once, failures included: a path that failed keeps resolving to
// the fallback texture.
type Cache struct {
	up       Uploader
	opts     CacheOptions
	entries  map[string]uint32
	failed   map[string]bool
	fallback uint32
	log      *zap.Logger
}

// NewCache creates an empty cache.
func NewCache(up Uploader, opts CacheOptions) *Cache {
	if opts.Loader == nil {
		opts.Loader = Load
	}
	return &Cache{
		up:      up,
		opts:    opts,
		entries: make(map[string]uint32),
		failed:  make(map[string]bool),
		log:     logger.Named("texture"),
	}
}

// Get returns the texture for path, loading it on first use. An empty path
// or a load failure yields the fallback texture.
func (c *Cache) Get(path string) uint32 {
	if path == "" {
		return c.Fallback()
	}
	if id, ok := c.entries[path]; ok {
		return id
	}
	if c.failed[path] {
		return c.Fallback()
	}

	img, err := c.opts.Loader(path)
	if err == nil {
		img = FitWithin(img, c.opts.MaxSize)
		if c.opts.FlipY {
			FlipVertical(img)
		}
		var id uint32
		if id, err = c.up.Upload(img); err == nil {
			c.entries[path] = id
			c.log.Debug("texture loaded",
				zap.String("path", path),
				zap.Int("width", img.Rect.Dx()),
				zap.Int("height", img.Rect.Dy()))
			return id
		}
	}

	c.failed[path] = true
	c.log.Warn("texture unavailable, using fallback", zap.String("path", path), zap.Error(err))
	return c.Fallback()
}

// Fallback returns the 1x1 gray texture, creating it on first use.
func (c *Cache) Fallback() uint32 {
	if c.fallback != 0 {
		return c.fallback
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, FallbackGray)
	id, err := c.up.Upload(img)
	if err != nil {
		c.log.Error("fallback texture upload failed", zap.Error(err))
		return 0
	}
	c.fallback = id
	return id
}

// Len returns the number of successfully loaded textures.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Release deletes every texture, the fallback included, and empties the cache.
func (c *Cache) Release() {
	for path, id := range c.entries {
		c.up.Delete(id)
		delete(c.entries, path)
	}
	clear(c.failed)
	if c.fallback != 0 {
		c.up.Delete(c.fallback)
		c.fallback = 0
	}
}
