package preview

import (
	"math"

	"github.com/matzehuels/codeshot/pkg/highlight"
)

// Box is a laid-out border box in CSS pixels, relative to the root.
type Box struct {
	X, Y, W, H float64
}

// Size is an integral width and height in CSS pixels.
type Size struct {
	Width, Height int
}

// Element is a node of the preview tree.
type Element struct {
	Tag      string
	Class    string
	Style    *Style
	Text     string           // text content of leaf elements
	Lines    []highlight.Line // highlighted content of the code element
	Children []*Element

	owner *Surface

	// Computed by layout.
	box     Box
	scrollW float64
	scrollH float64
	rows    []row
}

// row is one visual line of the code element after wrapping.
type row struct {
	line  int // source line index
	first bool
	spans highlight.Line
}

// FirstChild returns the first child element, or nil.
func (e *Element) FirstChild() *Element {
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return e.Children[0]
}

// Query returns the first descendant with the given tag, depth first.
func (e *Element) Query(tag string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Query(tag); found != nil {
			return found
		}
	}
	return nil
}

// Box returns the element's border box, reflowing first if needed.
func (e *Element) Box() Box {
	var b Box
	e.read(func() { b = e.box })
	return b
}

// ScrollWidth returns the width of the element's content plus any
// overflowing descendants, excluding the element's own inline padding.
// It is never less than the content box width.
func (e *Element) ScrollWidth() int {
	var w float64
	e.read(func() { w = e.scrollW })
	return ceilPx(w)
}

// ScrollHeight returns the height of the element's padding box plus any
// overflowing descendants.
func (e *Element) ScrollHeight() int {
	var h float64
	e.read(func() { h = e.scrollH })
	return ceilPx(h)
}

func (e *Element) read(fn func()) {
	if e == nil {
		return
	}
	if e.owner == nil {
		fn()
		return
	}
	e.owner.withLayout(fn)
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

// ceilPx rounds up like the DOM, tolerating float noise.
func ceilPx(v float64) int {
	return int(math.Ceil(v - 1e-6))
}
