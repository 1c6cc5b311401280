package capture

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/preview"
)

// RenderSVG writes dl as standalone SVG markup of width×height CSS pixels.
// The Go Mono faces in use are embedded, so the file renders without the
// font installed. A non-empty token is recorded as a comment.
func RenderSVG(dl *preview.DisplayList, width, height int, token string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	if token != "" {
		fmt.Fprintf(&buf, "  <!-- capture %s -->\n", escapeXML(token))
	}

	clipIDs := renderDefs(&buf, dl)
	for _, it := range dl.Items {
		fill, opacity := svgPaint(it.Fill)
		if fill == "none" {
			continue
		}
		for _, c := range it.Clips {
			fmt.Fprintf(&buf, `  <g clip-path="url(#%s)">`, clipIDs[c])
		}
		renderItem(&buf, it, fill, opacity)
		for range it.Clips {
			buf.WriteString("</g>")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderDefs writes font faces and clip paths and returns the clip ids.
func renderDefs(buf *bytes.Buffer, dl *preview.DisplayList) map[preview.Clip]string {
	used := map[fonts.Variant]bool{}
	clipIDs := map[preview.Clip]string{}
	var clips []preview.Clip
	for _, it := range dl.Items {
		if it.Kind == preview.KindText {
			used[fonts.VariantOf(it.Bold, it.Italic)] = true
		}
		for _, c := range it.Clips {
			if _, ok := clipIDs[c]; !ok {
				clipIDs[c] = "clip" + strconv.Itoa(len(clips))
				clips = append(clips, c)
			}
		}
	}
	if len(used) == 0 && len(clips) == 0 {
		return clipIDs
	}

	buf.WriteString("  <defs>\n")
	if len(used) > 0 {
		buf.WriteString("  <style>")
		for _, v := range []fonts.Variant{fonts.Regular, fonts.Bold, fonts.Italic, fonts.BoldItalic} {
			if !used[v] {
				continue
			}
			fmt.Fprintf(buf, "@font-face{font-family:'%s';font-weight:%s;font-style:%s;src:url(data:font/ttf;base64,%s) format('truetype');}",
				fonts.FontFamily, v.CSSWeight(), v.CSSStyle(), fonts.TTFBase64(v))
		}
		buf.WriteString("</style>\n")
	}
	for _, c := range clips {
		r := max(0, min(c.Radius, c.W/2, c.H/2))
		fmt.Fprintf(buf, `  <clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s" rx="%s"/></clipPath>`+"\n",
			clipIDs[c], num(c.X), num(c.Y), num(c.W), num(c.H), num(r))
	}
	buf.WriteString("  </defs>\n")
	return clipIDs
}

func renderItem(buf *bytes.Buffer, it preview.Item, fill string, opacity float64) {
	op := ""
	if opacity < 1 {
		op = fmt.Sprintf(` fill-opacity="%s"`, num(opacity))
	}
	switch it.Kind {
	case preview.KindRect:
		r := max(0, min(it.Radius, it.W/2, it.H/2))
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"%s/>`,
			num(it.X), num(it.Y), num(it.W), num(it.H), num(r), fill, op)
	case preview.KindCircle:
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"%s/>`,
			num(it.X+it.W/2), num(it.Y+it.H/2), num(it.W/2), fill, op)
	case preview.KindText:
		v := fonts.VariantOf(it.Bold, it.Italic)
		fmt.Fprintf(buf, `<text x="%s" y="%s" fill="%s"%s font-family="%s" font-size="%s"`,
			num(it.X), num(it.Y), fill, op, escapeXML(fonts.FallbackFontFamily), num(it.FontSize))
		if v.CSSWeight() != "normal" {
			fmt.Fprintf(buf, ` font-weight="%s"`, v.CSSWeight())
		}
		if v.CSSStyle() != "normal" {
			fmt.Fprintf(buf, ` font-style="%s"`, v.CSSStyle())
		}
		fmt.Fprintf(buf, ` xml:space="preserve">%s</text>`, escapeXML(it.Text))
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
