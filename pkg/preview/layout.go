package preview

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/codeshot/pkg/highlight"
)

// Gutter metrics of the line-number column, in em.
const (
	gutterMinWidthEm = 2.25
	gutterPaddingEm  = 1.0
)

// layout computes boxes and scroll extents for the block tree rooted at root.
//
// The tree shape is the one Build produces: an optional chrome row followed
// by pre > code. Blocks stack vertically; the root shrinks to its content up
// to the viewport width unless it has an explicit width.
func layout(root *Element, m Measurer, viewport float64) {
	if root == nil {
		return
	}
	rs := root.Style
	pad, _ := rs.length("padding", 16, 0)

	var chrome, pre *Element
	for _, c := range root.Children {
		switch {
		case c.Tag == "pre":
			pre = c
		case c.Class == "chrome":
			chrome = c
		}
	}
	var code *Element
	if pre != nil {
		code = pre.FirstChild()
	}

	// Intrinsic widths.
	chromeW, chromeH := 0.0, 0.0
	if chrome != nil {
		chromeW, chromeH = measureChrome(chrome, m)
	}
	cm := codeMetrics(pre, code, m)
	preNatural := cm.naturalWidth()
	maxContent := max(preNatural, chromeW) + 2*pad

	// Root width.
	w, explicit := rs.length("width", 16, viewport)
	if !explicit {
		w = maxContent
		if viewport > 0 && rs.get("max-width") == "100%" && w > viewport {
			w = viewport
		}
	}
	w = max(w, 2*pad)
	contentW := w - 2*pad
	top := pad

	// Chrome row.
	if chrome != nil {
		placeChrome(chrome, m, pad, top, contentW, chromeH)
		top += chromeH
	}

	// Code block.
	preExtent := 0.0
	preH := 0.0
	if pre != nil {
		ps := pre.Style
		preW, ok := ps.length("width", cm.fontSize, contentW)
		if !ok {
			preW = contentW
		}
		if minW, ok := ps.length("min-width", cm.fontSize, contentW); ok {
			preW = max(preW, minW)
		}

		codeW := preW
		innerW := codeW - 2*cm.pad
		rows, textW := wrapRows(code, cm, innerW-cm.gutterW, ps.wraps())
		codeH := float64(len(rows))*cm.lineH + 2*cm.pad
		preH = codeH

		if code != nil {
			code.rows = rows
			code.box = Box{X: pad, Y: top, W: codeW, H: codeH}
			code.scrollW = max(innerW, cm.gutterW+textW)
			code.scrollH = codeH
		}

		pre.box = Box{X: pad, Y: top, W: preW, H: preH}
		// Code overflow is visible to pre, including its trailing padding.
		pre.scrollW = max(preW, cm.gutterW+textW+2*cm.pad)
		pre.scrollH = preH

		preExtent = preW
		if ps.overflow() == "visible" {
			preExtent = pre.scrollW
		}
	}

	h := top + preH + pad
	root.box = Box{X: 0, Y: 0, W: w, H: h}
	root.scrollW = max(contentW, preExtent, chromeW)
	root.scrollH = h
}

// =============================================================================
// Chrome
// =============================================================================

func measureChrome(chrome *Element, m Measurer) (w, h float64) {
	cs := chrome.Style
	gap, _ := cs.length("gap", 16, 0)
	rowH := cs.lineHeight(16)
	for i, c := range chrome.Children {
		cw, ch := inlineSize(c, m)
		if i > 0 {
			w += gap
		}
		ml, _ := c.Style.length("margin-left", 16, 0)
		w += ml + cw
		rowH = max(rowH, ch)
	}
	pb, _ := cs.length("padding-bottom", 16, 0)
	return w, rowH + pb
}

func placeChrome(chrome *Element, m Measurer, x, y, contentW, h float64) {
	cs := chrome.Style
	gap, _ := cs.length("gap", 16, 0)
	pb, _ := cs.length("padding-bottom", 16, 0)
	rowH := h - pb
	chrome.box = Box{X: x, Y: y, W: contentW, H: h}

	cx := x
	var extent float64
	for i, c := range chrome.Children {
		cw, ch := inlineSize(c, m)
		if i > 0 {
			cx += gap
		}
		ml, _ := c.Style.length("margin-left", 16, 0)
		cx += ml
		// Flex items are centered on the cross axis.
		c.box = Box{X: cx, Y: y + (rowH-ch)/2, W: cw, H: ch}
		c.scrollW, c.scrollH = cw, ch
		cx += cw
		extent = cx - x
	}
	chrome.scrollW = max(contentW, extent)
	chrome.scrollH = h
}

// inlineSize measures a chrome item: fixed-size dots or a text label.
func inlineSize(e *Element, m Measurer) (w, h float64) {
	if e.Text != "" {
		size := fontSize(e.Style, 16)
		adv := m.Metrics(size).Advance
		return float64(runewidth.StringWidth(e.Text)) * adv, e.Style.lineHeight(size)
	}
	w, _ = e.Style.length("width", 16, 0)
	h, _ = e.Style.length("height", 16, 0)
	return w, h
}

func fontSize(s *Style, inherited float64) float64 {
	if v, ok := s.length("font-size", inherited, inherited); ok && v > 0 {
		return v
	}
	return inherited
}

// =============================================================================
// Code
// =============================================================================

type metrics struct {
	fontSize float64
	lineH    float64
	advance  float64
	ascent   float64
	descent  float64
	pad      float64 // code padding
	gutterW  float64 // line-number column including its padding
	digits   int
	textW    float64 // widest source line
}

func (cm metrics) naturalWidth() float64 {
	return cm.gutterW + cm.textW + 2*cm.pad
}

func codeMetrics(pre, code *Element, m Measurer) metrics {
	cm := metrics{fontSize: CodeFontSize}
	if pre == nil {
		return cm
	}
	cm.fontSize = fontSize(pre.Style, CodeFontSize)
	cm.lineH = pre.Style.lineHeight(cm.fontSize)
	fm := m.Metrics(cm.fontSize)
	cm.advance, cm.ascent, cm.descent = fm.Advance, fm.Ascent, fm.Descent
	if code == nil {
		return cm
	}
	cm.pad, _ = code.Style.length("padding", cm.fontSize, 0)

	maxCols := 0
	for _, l := range code.Lines {
		maxCols = max(maxCols, l.Width())
	}
	cm.textW = float64(maxCols) * cm.advance

	if code.Class == "line-numbers" {
		cm.digits = len(strconv.Itoa(max(1, len(code.Lines))))
		numW := max(gutterMinWidthEm*cm.fontSize, float64(cm.digits)*cm.advance)
		cm.gutterW = numW + gutterPaddingEm*cm.fontSize
	}
	return cm
}

// wrapRows splits source lines into visual rows. Without wrapping each line
// is one row. With wrapping, lines break at the last column that fits.
func wrapRows(code *Element, cm metrics, avail float64, wrap bool) ([]row, float64) {
	if code == nil {
		return nil, 0
	}
	cols := 0
	if wrap && cm.advance > 0 {
		cols = max(1, int(avail/cm.advance))
	}

	var rows []row
	widest := 0
	for i, l := range code.Lines {
		if cols == 0 || l.Width() <= cols {
			rows = append(rows, row{line: i, first: true, spans: l})
			widest = max(widest, l.Width())
			continue
		}
		for j, chunk := range splitColumns(l, cols) {
			rows = append(rows, row{line: i, first: j == 0, spans: chunk})
			widest = max(widest, chunk.Width())
		}
	}
	return rows, float64(widest) * cm.advance
}

// splitColumns cuts l into chunks of at most cols display columns. A single
// rune wider than cols still gets its own chunk.
func splitColumns(l highlight.Line, cols int) []highlight.Line {
	var out []highlight.Line
	var cur highlight.Line
	used := 0
	for _, span := range l {
		start := 0
		runes := []rune(span.Text)
		for k, r := range runes {
			rw := runewidth.RuneWidth(r)
			if used+rw > cols && used > 0 {
				if k > start {
					s := span
					s.Text = string(runes[start:k])
					cur = append(cur, s)
				}
				out = append(out, cur)
				cur, used, start = nil, 0, k
			}
			used += rw
		}
		if start < len(runes) {
			s := span
			s.Text = string(runes[start:])
			cur = append(cur, s)
		}
	}
	if len(cur) > 0 || len(out) == 0 {
		out = append(out, cur)
	}
	return out
}
