package export

import (
	"sync"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/preview"
)

// Dimensions is the true pixel size of the preview block at 1x.
type Dimensions struct {
	Width  int
	Height int
}

// Scaled returns the size of a raster export at density d.
func (d Dimensions) Scaled(density config.Density) Dimensions {
	m := density.Multiplier()
	return Dimensions{Width: d.Width * m, Height: d.Height * m}
}

// Tracker recomputes Dimensions from a mounted preview.
type Tracker struct {
	mu       sync.Mutex
	surface  *preview.Surface
	padding  int
	dims     Dimensions
	onChange func(Dimensions)
	unwatch  func()
}

// NewTracker creates a tracker for surface and measures it once.
func NewTracker(surface *preview.Surface, padding int) *Tracker {
	t := &Tracker{surface: surface, padding: padding}
	t.Recompute()
	return t
}

// OnChange registers fn to run whenever Recompute changes the dimensions.
func (t *Tracker) OnChange(fn func(Dimensions)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// SetPadding changes the padding added on both sides. The next Recompute,
// including one triggered by a watched resize, uses it.
func (t *Tracker) SetPadding(p int) {
	t.mu.Lock()
	t.padding = p
	t.mu.Unlock()
}

// Dimensions returns the last computed size.
func (t *Tracker) Dimensions() Dimensions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dims
}

// Recompute measures the widest of the pre, its code child and the root
// block, adds the padding on both sides, and takes the root's scroll
// height. It does nothing when there is no mounted preview to measure.
func (t *Tracker) Recompute() {
	root := t.surface.Root()
	if root == nil {
		return
	}
	pre := root.Query("pre")
	if pre == nil {
		return
	}

	width := max(pre.ScrollWidth(), root.ScrollWidth())
	if code := pre.FirstChild(); code != nil {
		width = max(width, code.ScrollWidth())
	}
	height := root.ScrollHeight()

	t.mu.Lock()
	next := Dimensions{Width: width + 2*t.padding, Height: height}
	changed := next != t.dims
	t.dims = next
	fn := t.onChange
	t.mu.Unlock()

	if changed && fn != nil {
		fn(next)
	}
}

// Watch subscribes to the surface's resize notifications and returns t.
// Calling Watch again replaces the previous subscription.
func (t *Tracker) Watch() *Tracker {
	if t.surface == nil {
		return t
	}
	unwatch := t.surface.Observe(func(preview.Size) { t.Recompute() })
	t.mu.Lock()
	prev := t.unwatch
	t.unwatch = unwatch
	t.mu.Unlock()
	if prev != nil {
		prev()
	}
	return t
}

// Close ends the resize subscription.
func (t *Tracker) Close() {
	t.mu.Lock()
	unwatch := t.unwatch
	t.unwatch = nil
	t.mu.Unlock()
	if unwatch != nil {
		unwatch()
	}
}
