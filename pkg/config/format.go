package config

import (
	"strings"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// Format is the export artifact format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{PNG, SVG} }

// ParseFormat parses "png" or "svg" case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q (use png or svg)", s)
	}
	return f, nil
}

// Valid reports whether f is supported.
func (f Format) Valid() bool { return f == PNG || f == SVG }

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }

// MimeType returns the media type of artifacts in f.
func (f Format) MimeType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Raster reports whether f is pixel based.
func (f Format) Raster() bool { return f == PNG }

// Label returns the upper-case name used in messages ("PNG").
func (f Format) Label() string { return strings.ToUpper(string(f)) }

// String implements fmt.Stringer.
func (f Format) String() string { return string(f) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Density is the raster pixel density.
type Density string

const (
	Density1x Density = "1x"
	Density2x Density = "2x"
	Density3x Density = "3x"
)

// Densities lists the supported densities.
func Densities() []Density { return []Density{Density1x, Density2x, Density3x} }

// ParseDensity parses "1x", "2x" or "3x". A bare digit is accepted too.
func ParseDensity(s string) (Density, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 {
		s += "x"
	}
	d := Density(s)
	if !d.Valid() {
		return "", errors.New(errors.ErrCodeInvalidDensity, "unsupported density: %q (use 1x, 2x or 3x)", s)
	}
	return d, nil
}

// Valid reports whether d is supported.
func (d Density) Valid() bool {
	return d == Density1x || d == Density2x || d == Density3x
}

// Multiplier returns 1, 2 or 3. Unknown densities count as 1.
func (d Density) Multiplier() int {
	switch d {
	case Density2x:
		return 2
	case Density3x:
		return 3
	}
	return 1
}

// String implements fmt.Stringer.
func (d Density) String() string { return string(d) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Density) UnmarshalText(b []byte) error {
	v, err := ParseDensity(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
