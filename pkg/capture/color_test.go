package capture

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#333333", color.NRGBA{0x33, 0x33, 0x33, 255}, true},
		{"#fff", color.NRGBA{255, 255, 255, 255}, true},
		{"#FF000080", color.NRGBA{255, 0, 0, 0x80}, true},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}, true},
		{"rgba(10,20,30,0.5)", color.NRGBA{10, 20, 30, 128}, true},
		{"rgb(100% 0% 0% / 50%)", color.NRGBA{255, 0, 0, 128}, true},
		{" White ", color.NRGBA{255, 255, 255, 255}, true},
		{"transparent", color.NRGBA{}, true},
		{"", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
		{"rgb(1,2)", color.NRGBA{}, false},
		{"notacolor", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSVGPaint(t *testing.T) {
	if fill, op := svgPaint("rgba(255,0,0,0.5)"); fill != "#ff0000" || op < 0.49 || op > 0.51 {
		t.Errorf("svgPaint = %q %v", fill, op)
	}
	if fill, _ := svgPaint("bogus"); fill != "none" {
		t.Errorf("invalid color fill = %q, want none", fill)
	}
}
