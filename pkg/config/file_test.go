package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/codeshot/pkg/errors"
)

func TestDecodeAndApply(t *testing.T) {
	f, err := Decode(`
[render]
theme = "Dracula"
language = "go"
padding = 32
line_numbers = false
background = "rgb(10, 20, 30)"

[export]
format = "svg"
density = "2x"
output_dir = "/tmp/shots"

[preview]
viewport_width = 900
`)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	rc := DefaultRenderConfig()
	ec := DefaultExportConfig(rc.DisplayFileName)
	f.Apply(&rc, &ec)

	if rc.Theme != Dracula || rc.Language != Go || rc.Padding != 32 {
		t.Errorf("render overlay = %+v", rc)
	}
	if rc.ShowLineNumbers {
		t.Error("line_numbers = false not applied")
	}
	if !rc.ShowWindowChrome {
		t.Error("unset window_controls should keep the default")
	}
	if rc.CornerRadius != DefaultRadius {
		t.Errorf("CornerRadius = %d, want default", rc.CornerRadius)
	}
	if rc.BackgroundColor != "rgb(10, 20, 30)" {
		t.Errorf("BackgroundColor = %q", rc.BackgroundColor)
	}
	if ec.Format != SVG || ec.Density != Density2x {
		t.Errorf("export overlay = %+v", ec)
	}
	if f.Export.OutputDir != "/tmp/shots" || f.Preview.ViewportWidth != 900 {
		t.Errorf("file = %+v", f)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad theme", "[render]\ntheme = \"nord\"\n"},
		{"bad density", "[export]\ndensity = \"5x\"\n"},
		{"negative padding", "[render]\npadding = -4\n"},
		{"syntax", "[render\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Decode() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		f, err := Load(filepath.Join(dir, "absent.toml"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if f.Render.Theme != nil {
			t.Error("missing file should decode to an empty File")
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.toml")
		if err := os.WriteFile(path, []byte("[render]\nfont = \"Fira\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte("[render]\nradius = 20\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		f, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if f.Render.Radius == nil || *f.Render.Radius != 20 {
			t.Errorf("Radius = %v", f.Render.Radius)
		}
	})
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", "codeshot", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoadExampleConfig(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	rc := DefaultRenderConfig()
	ec := DefaultExportConfig(rc.DisplayFileName)
	f.Apply(&rc, &ec)

	if rc.Language != Go || rc.Theme != Dracula || rc.Padding != 24 || rc.DisplayFileName != "main.go" {
		t.Errorf("render = %+v", rc)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("example render config invalid: %v", err)
	}
	if ec.Format != PNG || ec.Density != Density2x {
		t.Errorf("export = %+v", ec)
	}
	if f.Export.OutputDir != "images" || f.Preview.ViewportWidth != 960 || f.Preview.CellWidth != 8 {
		t.Errorf("file = %+v", f)
	}
}
