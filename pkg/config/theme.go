package config

import (
	"strings"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// Theme identifies a syntax color theme.
type Theme string

// Supported themes.
const (
	AtomDark       Theme = "atom-dark"
	MaterialLight  Theme = "material-light"
	Dracula        Theme = "dracula"
	SolarizedLight Theme = "solarized-light"
	VisualStudio   Theme = "visual-studio"
	Xonokai        Theme = "xonokai"
)

type themeInfo struct {
	name   string
	chroma string
}

var themes = []Theme{AtomDark, MaterialLight, Dracula, SolarizedLight, VisualStudio, Xonokai}

var themeInfos = map[Theme]themeInfo{
	AtomDark:       {"Atom Dark", "onedark"},
	MaterialLight:  {"Material Light", "github"},
	Dracula:        {"Dracula", "dracula"},
	SolarizedLight: {"Solarized Light", "solarized-light"},
	VisualStudio:   {"Visual Studio", "vs"},
	Xonokai:        {"Xonokai", "monokai"},
}

// Themes returns all supported themes in picker order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ParseTheme accepts a slug ("atom-dark") or a display name ("Atom Dark").
func ParseTheme(s string) (Theme, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = strings.ReplaceAll(slug, " ", "-")
	t := Theme(slug)
	if !t.Valid() {
		return "", errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", s)
	}
	return t, nil
}

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool {
	_, ok := themeInfos[t]
	return ok
}

// DisplayName returns the human-readable theme name.
func (t Theme) DisplayName() string {
	if info, ok := themeInfos[t]; ok {
		return info.name
	}
	return string(t)
}

// ChromaStyle returns the chroma style that renders t.
func (t Theme) ChromaStyle() string {
	if info, ok := themeInfos[t]; ok {
		return info.chroma
	}
	return themeInfos[AtomDark].chroma
}

// String implements fmt.Stringer.
func (t Theme) String() string { return t.DisplayName() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(b []byte) error {
	v, err := ParseTheme(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
