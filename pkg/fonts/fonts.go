// Package fonts provides the monospace faces used to lay out and capture
// code snippets.
//
// The Go Mono family ships with golang.org/x/image, so faces are available
// without external files or system font lookup. The same TTF data is embedded
// as base64 into SVG exports so vector output renders identically.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family name for the embedded face.
const FontFamily = "Go Mono"

// FallbackFontFamily provides fallback fonts for viewers that ignore @font-face.
const FallbackFontFamily = `'Go Mono', ui-monospace, SFMono-Regular, Menlo, Consolas, monospace`

// Variant selects one of the four Go Mono faces.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic
)

// VariantOf maps weight and slant flags to a Variant.
func VariantOf(bold, italic bool) Variant {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	}
	return Regular
}

// CSSWeight returns the font-weight value for SVG output.
func (v Variant) CSSWeight() string {
	if v == Bold || v == BoldItalic {
		return "bold"
	}
	return "normal"
}

// CSSStyle returns the font-style value for SVG output.
func (v Variant) CSSStyle() string {
	if v == Italic || v == BoldItalic {
		return "italic"
	}
	return "normal"
}

// TTF returns the raw font data of v.
func TTF(v Variant) []byte {
	switch v {
	case Bold:
		return gomonobold.TTF
	case Italic:
		return gomonoitalic.TTF
	case BoldItalic:
		return gomonobolditalic.TTF
	}
	return gomono.TTF
}

// =============================================================================
// Parsed fonts
// =============================================================================

var (
	parsed     [4]*opentype.Font
	parsedErr  [4]error
	parsedOnce [4]sync.Once
)

func parse(v Variant) (*opentype.Font, error) {
	if v < Regular || v > BoldItalic {
		v = Regular
	}
	parsedOnce[v].Do(func() {
		parsed[v], parsedErr[v] = opentype.Parse(TTF(v))
	})
	return parsed[v], parsedErr[v]
}

// Face returns a new face for v at size pixels (72 DPI).
// Faces are not safe for concurrent use, so every caller gets its own.
func Face(v Variant, size float64) (font.Face, error) {
	f, err := parse(v)
	if err != nil {
		return nil, fmt.Errorf("parse go mono: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// =============================================================================
// Metrics
// =============================================================================

// Metrics holds the pixel metrics of the monospace face at one size.
type Metrics struct {
	Advance float64 // width of one column
	Ascent  float64
	Descent float64
}

// Mono measures text set in Go Mono. The zero value is ready to use.
type Mono struct{}

var (
	metricsMu    sync.Mutex
	metricsCache = map[float64]Metrics{}
)

// Metrics returns the metrics at size pixels. Results are cached per size.
func (Mono) Metrics(size float64) Metrics {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if m, ok := metricsCache[size]; ok {
		return m
	}
	m := Metrics{Advance: size * 0.6, Ascent: size * 0.8, Descent: size * 0.2}
	if face, err := Face(Regular, size); err == nil {
		if adv, ok := face.GlyphAdvance('0'); ok {
			m.Advance = fromFixed(adv)
		}
		fm := face.Metrics()
		m.Ascent = fromFixed(fm.Ascent)
		m.Descent = fromFixed(fm.Descent)
		face.Close()
	}
	metricsCache[size] = m
	return m
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// =============================================================================
// Base64 (SVG embedding)
// =============================================================================

var (
	ttfBase64     [4]string
	ttfBase64Once [4]sync.Once
)

// TTFBase64 returns the font data of v as a base64 string.
// The result is cached after first computation.
func TTFBase64(v Variant) string {
	if v < Regular || v > BoldItalic {
		v = Regular
	}
	ttfBase64Once[v].Do(func() {
		ttfBase64[v] = base64.StdEncoding.EncodeToString(TTF(v))
	})
	return ttfBase64[v]
}
