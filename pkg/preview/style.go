package preview

import (
	"sort"
	"strconv"
	"strings"
)

// Style is an element's inline style: a bag of CSS properties.
//
// Styles owned by a mounted Surface mark it for reflow when changed.
type Style struct {
	props map[string]string
	owner *Surface
}

// NewStyle builds a Style from "prop: value" declarations.
func NewStyle(decls ...string) *Style {
	s := &Style{props: make(map[string]string, len(decls))}
	for _, d := range decls {
		prop, value, ok := strings.Cut(d, ":")
		if !ok {
			continue
		}
		s.props[strings.TrimSpace(prop)] = strings.TrimSpace(value)
	}
	return s
}

// Get returns the value of prop and whether it is set.
func (s *Style) Get(prop string) (string, bool) {
	if s.owner != nil {
		s.owner.mu.Lock()
		defer s.owner.mu.Unlock()
	}
	v, ok := s.props[prop]
	return v, ok
}

// Set assigns prop.
func (s *Style) Set(prop, value string) {
	if s.owner != nil {
		s.owner.mu.Lock()
		defer s.owner.mu.Unlock()
		s.owner.dirty = true
	}
	s.props[prop] = value
}

// Remove unsets prop.
func (s *Style) Remove(prop string) {
	if s.owner != nil {
		s.owner.mu.Lock()
		defer s.owner.mu.Unlock()
		s.owner.dirty = true
	}
	delete(s.props, prop)
}

// Unset is the saved value of a property that was not set.
const Unset = "unset"

// Snapshot returns the current values of props, with Unset for the ones
// not set. Pass the result to Restore to undo later changes.
func (s *Style) Snapshot(props ...string) map[string]string {
	s.lock()
	defer s.unlock()
	saved := make(map[string]string, len(props))
	for _, p := range props {
		if v, ok := s.props[p]; ok {
			saved[p] = v
		} else {
			saved[p] = Unset
		}
	}
	return saved
}

// Restore reapplies values from Snapshot. Unset removes the property.
func (s *Style) Restore(saved map[string]string) {
	s.lock()
	defer s.unlock()
	for p, v := range saved {
		if v == Unset {
			delete(s.props, p)
		} else {
			s.props[p] = v
		}
	}
	if s.owner != nil {
		s.owner.dirty = true
	}
}

// Width returns the width property, or "auto" when unset.
func (s *Style) Width() string {
	s.lock()
	defer s.unlock()
	if v := s.props["width"]; v != "" {
		return v
	}
	return "auto"
}

// Overflow returns the overflow property, defaulting to visible.
func (s *Style) Overflow() string {
	s.lock()
	defer s.unlock()
	return s.overflow()
}

// WhiteSpace returns the white-space property, defaulting to normal.
func (s *Style) WhiteSpace() string {
	s.lock()
	defer s.unlock()
	return s.whiteSpace()
}

// Length resolves prop to pixels; see ParseLength.
func (s *Style) Length(prop string, em, base float64) (float64, bool) {
	s.lock()
	defer s.unlock()
	return s.length(prop, em, base)
}

func (s *Style) lock() {
	if s.owner != nil {
		s.owner.mu.Lock()
	}
}

func (s *Style) unlock() {
	if s.owner != nil {
		s.owner.mu.Unlock()
	}
}

// String renders the declarations sorted by property name.
func (s *Style) String() string {
	if s.owner != nil {
		s.owner.mu.Lock()
		defer s.owner.mu.Unlock()
	}
	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + s.props[k]
	}
	return strings.Join(parts, "; ")
}

// =============================================================================
// Unlocked accessors used during layout
// =============================================================================

func (s *Style) get(prop string) string { return s.props[prop] }

func (s *Style) overflow() string {
	if v := s.props["overflow"]; v != "" {
		return v
	}
	return "visible"
}

func (s *Style) whiteSpace() string {
	if v := s.props["white-space"]; v != "" {
		return v
	}
	return "normal"
}

// wraps reports whether white-space allows soft wrapping.
func (s *Style) wraps() bool {
	switch s.whiteSpace() {
	case "pre", "nowrap":
		return false
	}
	return true
}

// length resolves prop to pixels. em is the font size used for "em" units and
// base is the reference for percentages. Returns false for auto, unset or
// unparsable values.
func (s *Style) length(prop string, em, base float64) (float64, bool) {
	return ParseLength(s.props[prop], em, base)
}

// ParseLength converts a CSS length ("12px", "1em", "100%", "0") to pixels.
func ParseLength(v string, em, base float64) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "auto" {
		return 0, false
	}
	num := func(s string) (float64, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	switch {
	case strings.HasSuffix(v, "px"):
		return num(strings.TrimSuffix(v, "px"))
	case strings.HasSuffix(v, "rem"):
		f, ok := num(strings.TrimSuffix(v, "rem"))
		return f * 16, ok
	case strings.HasSuffix(v, "em"):
		f, ok := num(strings.TrimSuffix(v, "em"))
		return f * em, ok
	case strings.HasSuffix(v, "%"):
		f, ok := num(strings.TrimSuffix(v, "%"))
		return f / 100 * base, ok
	}
	// Unitless zero is the only valid bare length.
	if f, ok := num(v); ok && f == 0 {
		return 0, true
	}
	return 0, false
}

// lineHeight resolves line-height against the font size. Unitless values
// are multipliers.
func (s *Style) lineHeight(fontSize float64) float64 {
	v := strings.TrimSpace(s.props["line-height"])
	if v == "" || v == "normal" {
		return fontSize * 1.2
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f * fontSize
	}
	if px, ok := ParseLength(v, fontSize, fontSize); ok {
		return px
	}
	return fontSize * 1.2
}
