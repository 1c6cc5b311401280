// Package capture turns a laid-out preview into an image artifact.
//
// A [Capturer] takes a snapshot of a [Source] (normally a mounted
// preview.Surface) and renders it either as PNG through fogleman/gg or as
// standalone SVG markup. Artifacts are returned as data URIs, ready to be
// decoded by a file-save or clipboard collaborator with [DecodeDataURI].
//
// # Pixel ratio
//
// Raster captures are Width×PixelRatio by Height×PixelRatio pixels. Vector
// captures ignore the ratio; their size is Width×Height.
//
// # Memoization
//
// Renders are memoized in an LRU keyed by the snapshot and options. Setting
// [Options.CacheBust] skips the cache entirely and stamps vector output with
// a fresh token.
package capture

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/observability"
	"github.com/matzehuels/codeshot/pkg/preview"
)

// DefaultCacheSize is the number of rendered artifacts kept in memory.
const DefaultCacheSize = 16

// Source provides the display list to capture.
type Source interface {
	Snapshot(overrides map[string]string) (*preview.DisplayList, error)
}

// Options controls a single capture.
type Options struct {
	Format     config.Format
	Width      int // CSS pixels; zero uses the snapshot width
	Height     int // CSS pixels; zero uses the snapshot height
	PixelRatio int // raster only; zero means 1
	CacheBust  bool
	Style      map[string]string // inline styles for the captured root
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithLogger sets the capture logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Capturer) { c.logger = l }
}

// WithCacheSize sets the LRU size. Sizes below one disable memoization.
func WithCacheSize(n int) Option {
	return func(c *Capturer) { c.cacheSize = n }
}

// WithTokenFunc replaces the cache-bust token generator.
func WithTokenFunc(fn func() string) Option {
	return func(c *Capturer) { c.newToken = fn }
}

// Capturer renders snapshots to data URIs.
type Capturer struct {
	cache     *lru.Cache[string, string]
	cacheSize int
	logger    *log.Logger
	newToken  func() string
}

// New creates a Capturer.
func New(opts ...Option) *Capturer {
	c := &Capturer{
		cacheSize: DefaultCacheSize,
		logger:    log.New(io.Discard),
		newToken:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		c.cache, _ = lru.New[string, string](c.cacheSize)
	}
	return c
}

// Capture snapshots src and renders it according to opts.
func (c *Capturer) Capture(ctx context.Context, src Source, opts Options) (string, error) {
	start := time.Now()
	uri, err := c.capture(ctx, src, opts)
	observability.Export().OnCaptureComplete(ctx, string(opts.Format), len(uri), time.Since(start), err)
	return uri, err
}

func (c *Capturer) capture(ctx context.Context, src Source, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !opts.Format.Valid() {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported capture format: %q", opts.Format)
	}
	if opts.Width < 0 || opts.Height < 0 || opts.PixelRatio < 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "capture size must be non-negative")
	}
	if src == nil {
		return "", errors.New(errors.ErrCodeNotMounted, "nothing to capture")
	}

	dl, err := src.Snapshot(opts.Style)
	if err != nil {
		return "", err
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = int(math.Ceil(dl.Width))
	}
	if height == 0 {
		height = int(math.Ceil(dl.Height))
	}
	ratio := max(1, opts.PixelRatio)
	if !opts.Format.Raster() {
		ratio = 1
	}

	key := hashKey("capture", opts.Format, width, height, ratio, dl)
	if !opts.CacheBust && c.cache != nil {
		if uri, ok := c.cache.Get(key); ok {
			c.logger.Debug("capture cache hit", "format", opts.Format)
			return uri, nil
		}
	}

	var uri string
	switch opts.Format {
	case config.PNG:
		data, err := RenderPNG(dl, width, height, ratio)
		if err != nil {
			return "", err
		}
		uri = EncodeDataURI(opts.Format.MimeType(), data)
	case config.SVG:
		token := ""
		if opts.CacheBust {
			token = c.newToken()
		}
		uri = encodeTextDataURI(opts.Format.MimeType(), RenderSVG(dl, width, height, token))
	}

	c.logger.Debug("captured", "format", opts.Format, "width", width*ratio, "height", height*ratio, "bytes", len(uri))
	if !opts.CacheBust && c.cache != nil {
		c.cache.Add(key, uri)
	}
	return uri, nil
}
