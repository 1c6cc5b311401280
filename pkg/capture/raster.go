package capture

import (
	"bytes"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/preview"
)

type faceKey struct {
	variant fonts.Variant
	size    float64
}

// RenderPNG rasterizes dl onto a width×height canvas (CSS pixels) at the
// given pixel ratio. Items beyond the canvas are cut off.
func RenderPNG(dl *preview.DisplayList, width, height, ratio int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeCaptureFailed, "empty capture area %dx%d", width, height)
	}
	ratio = max(1, ratio)
	r := float64(ratio)

	dc := gg.NewContext(width*ratio, height*ratio)
	faces := make(map[faceKey]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, it := range dl.Items {
		c, ok := ParseColor(it.Fill)
		if !ok || c.A == 0 {
			continue
		}
		for _, clip := range it.Clips {
			roundedRect(dc, clip.X*r, clip.Y*r, clip.W*r, clip.H*r, clip.Radius*r)
			dc.Clip()
		}

		switch it.Kind {
		case preview.KindRect:
			dc.SetColor(c)
			roundedRect(dc, it.X*r, it.Y*r, it.W*r, it.H*r, it.Radius*r)
			dc.Fill()
		case preview.KindCircle:
			dc.SetColor(c)
			dc.DrawCircle((it.X+it.W/2)*r, (it.Y+it.H/2)*r, it.W/2*r)
			dc.Fill()
		case preview.KindText:
			key := faceKey{fonts.VariantOf(it.Bold, it.Italic), it.FontSize * r}
			face, ok := faces[key]
			if !ok {
				var err error
				face, err = fonts.Face(key.variant, key.size)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeCaptureFailed, err, "load font")
				}
				faces[key] = face
			}
			dc.SetFontFace(face)
			dc.SetColor(c)
			dc.DrawString(it.Text, it.X*r, it.Y*r)
		}

		if len(it.Clips) > 0 {
			dc.ResetClip()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCaptureFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// roundedRect adds a rounded rectangle path, limiting the radius to half
// the shorter side as CSS does.
func roundedRect(dc *gg.Context, x, y, w, h, radius float64) {
	radius = max(0, min(radius, w/2, h/2))
	if radius == 0 {
		dc.DrawRectangle(x, y, w, h)
		return
	}
	dc.DrawRoundedRectangle(x, y, w, h, radius)
}

