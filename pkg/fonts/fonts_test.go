package fonts

import (
	"encoding/base64"
	"testing"
)

func TestVariantOf(t *testing.T) {
	tests := []struct {
		bold, italic bool
		want         Variant
	}{
		{false, false, Regular},
		{true, false, Bold},
		{false, true, Italic},
		{true, true, BoldItalic},
	}
	for _, tt := range tests {
		if got := VariantOf(tt.bold, tt.italic); got != tt.want {
			t.Errorf("VariantOf(%v, %v) = %v, want %v", tt.bold, tt.italic, got, tt.want)
		}
	}
}

func TestFaceAllVariants(t *testing.T) {
	for _, v := range []Variant{Regular, Bold, Italic, BoldItalic} {
		face, err := Face(v, 14)
		if err != nil {
			t.Fatalf("Face(%v) error: %v", v, err)
		}
		if _, ok := face.GlyphAdvance('x'); !ok {
			t.Errorf("Face(%v) has no glyph for 'x'", v)
		}
		face.Close()
	}
}

func TestMonoMetrics(t *testing.T) {
	m := Mono{}.Metrics(14)
	if m.Advance < 7 || m.Advance > 10 {
		t.Errorf("Advance = %v, want roughly 0.6em at 14px", m.Advance)
	}
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("Ascent/Descent = %v/%v, want positive", m.Ascent, m.Descent)
	}

	// Monospace: scaling the size scales the advance.
	m28 := Mono{}.Metrics(28)
	if diff := m28.Advance - 2*m.Advance; diff > 0.1 || diff < -0.1 {
		t.Errorf("Advance(28) = %v, want about %v", m28.Advance, 2*m.Advance)
	}
}

func TestTTFBase64(t *testing.T) {
	enc := TTFBase64(Regular)
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != len(TTF(Regular)) {
		t.Errorf("decoded %d bytes, want %d", len(raw), len(TTF(Regular)))
	}
	if TTFBase64(Regular) != enc {
		t.Error("TTFBase64 should be stable across calls")
	}
}
