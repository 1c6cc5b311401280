package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// appName is used for the configuration directory.
const appName = "codeshot"

// File is the decoded startup defaults file. Unset keys are nil and leave
// the built-in defaults untouched.
type File struct {
	Render  RenderFile  `toml:"render"`
	Export  ExportFile  `toml:"export"`
	Preview PreviewFile `toml:"preview"`
}

// RenderFile mirrors RenderConfig without the source text.
type RenderFile struct {
	Language        *Language `toml:"language"`
	Theme           *Theme    `toml:"theme"`
	Padding         *int      `toml:"padding"`
	Radius          *int      `toml:"radius"`
	LineNumbers     *bool     `toml:"line_numbers"`
	WindowControls  *bool     `toml:"window_controls"`
	FileName        *string   `toml:"file_name"`
	BackgroundColor *string   `toml:"background"`
}

// ExportFile holds export dialog defaults.
type ExportFile struct {
	Format    *Format  `toml:"format"`
	Density   *Density `toml:"density"`
	OutputDir string   `toml:"output_dir"`
}

// PreviewFile holds the preview viewport settings.
type PreviewFile struct {
	ViewportWidth int `toml:"viewport_width"`
	CellWidth     int `toml:"cell_width"`
}

// DefaultPath returns $XDG_CONFIG_HOME/codeshot/config.toml, falling back
// to ~/.config/codeshot/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load decodes the TOML file at path. A missing file yields an empty File.
func Load(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return f, f.validate()
}

// Decode parses TOML from a string. Used for tests and embedded defaults.
func Decode(data string) (File, error) {
	var f File
	if _, err := toml.Decode(data, &f); err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	return f, f.validate()
}

func (f File) validate() error {
	if p := f.Render.Padding; p != nil && *p < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.padding must be non-negative")
	}
	if r := f.Render.Radius; r != nil && *r < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.radius must be non-negative")
	}
	if f.Preview.ViewportWidth < 0 || f.Preview.CellWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "preview sizes must be non-negative")
	}
	if f.Export.OutputDir != "" {
		if err := errors.ValidateDir(f.Export.OutputDir); err != nil {
			return err
		}
	}
	return nil
}

// Apply overlays the set values of f onto rc and ec.
func (f File) Apply(rc *RenderConfig, ec *ExportConfig) {
	r := f.Render
	if r.Language != nil {
		rc.Language = *r.Language
	}
	if r.Theme != nil {
		rc.Theme = *r.Theme
	}
	if r.Padding != nil {
		rc.Padding = *r.Padding
	}
	if r.Radius != nil {
		rc.CornerRadius = *r.Radius
	}
	if r.LineNumbers != nil {
		rc.ShowLineNumbers = *r.LineNumbers
	}
	if r.WindowControls != nil {
		rc.ShowWindowChrome = *r.WindowControls
	}
	if r.FileName != nil {
		rc.DisplayFileName = *r.FileName
	}
	if r.BackgroundColor != nil {
		rc.BackgroundColor = *r.BackgroundColor
	}
	if ec == nil {
		return
	}
	if f.Export.Format != nil {
		ec.Format = *f.Export.Format
	}
	if f.Export.Density != nil {
		ec.Density = *f.Export.Density
	}
}
