package config

import (
	"github.com/matzehuels/codeshot/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSource is the snippet shown in a fresh session.
	DefaultSource = "function helloWorld() {\n  console.log('Hello, world!');\n}"

	// DefaultFileName is the file name shown in the window title bar.
	DefaultFileName = "helloworld.js"

	// DefaultPadding is the outer padding in pixels.
	DefaultPadding = 12

	// DefaultRadius is the outer corner radius in pixels.
	DefaultRadius = 8

	// DefaultBackground is used when BackgroundColor is empty.
	DefaultBackground = "#333333"
)

// =============================================================================
// RenderConfig
// =============================================================================

// RenderConfig holds the appearance settings of the preview block.
type RenderConfig struct {
	SourceText       string
	Language         Language
	Theme            Theme
	Padding          int
	CornerRadius     int
	ShowLineNumbers  bool
	ShowWindowChrome bool
	DisplayFileName  string
	BackgroundColor  string
}

// DefaultRenderConfig returns the settings of a fresh session.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SourceText:       DefaultSource,
		Language:         JavaScript,
		Theme:            AtomDark,
		Padding:          DefaultPadding,
		CornerRadius:     DefaultRadius,
		ShowLineNumbers:  true,
		ShowWindowChrome: true,
		DisplayFileName:  DefaultFileName,
	}
}

// Reset restores every field to its default.
func (c *RenderConfig) Reset() {
	*c = DefaultRenderConfig()
}

// Background returns the effective background color.
func (c RenderConfig) Background() string {
	if c.BackgroundColor == "" {
		return DefaultBackground
	}
	return c.BackgroundColor
}

// AffectsLayout reports whether moving from prev to c changes any field that
// requires the measured dimensions to be recomputed explicitly. Fields not
// listed here (title bar, file name, background) are picked up by resize
// observation instead.
func (c RenderConfig) AffectsLayout(prev RenderConfig) bool {
	return c.SourceText != prev.SourceText ||
		c.Language != prev.Language ||
		c.Theme != prev.Theme ||
		c.Padding != prev.Padding ||
		c.CornerRadius != prev.CornerRadius ||
		c.ShowLineNumbers != prev.ShowLineNumbers
}

// Validate checks enum membership and sign constraints.
func (c RenderConfig) Validate() error {
	if !c.Language.Valid() {
		return errors.New(errors.ErrCodeInvalidLanguage, "unsupported language: %q", c.Language)
	}
	if !c.Theme.Valid() {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", c.Theme)
	}
	if c.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must be non-negative, got %d", c.Padding)
	}
	if c.CornerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "corner radius must be non-negative, got %d", c.CornerRadius)
	}
	return nil
}

// =============================================================================
// ExportConfig
// =============================================================================

// ExportConfig holds the settings of the export dialog.
type ExportConfig struct {
	Format             Format
	Density            Density
	OutputFileBaseName string
}

// DefaultExportConfig returns PNG at 1x with the given base name.
func DefaultExportConfig(baseName string) ExportConfig {
	return ExportConfig{
		Format:             PNG,
		Density:            Density1x,
		OutputFileBaseName: baseName,
	}
}

// PixelRatio returns the capture pixel ratio. Vector output ignores density.
func (c ExportConfig) PixelRatio() int {
	if c.Format == SVG {
		return 1
	}
	return c.Density.Multiplier()
}

// Validate checks enum membership.
func (c ExportConfig) Validate() error {
	if !c.Format.Valid() {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", c.Format)
	}
	if !c.Density.Valid() {
		return errors.New(errors.ErrCodeInvalidDensity, "unsupported density: %q", c.Density)
	}
	return nil
}
