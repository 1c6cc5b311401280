package preview

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/observability"
)

// Measurer reports monospace font metrics at a pixel size.
type Measurer interface {
	Metrics(size float64) fonts.Metrics
}

// Option configures a Surface.
type Option func(*Surface)

// WithViewportWidth bounds the block width like max-width: 100% of a
// container that is px wide. Zero means unbounded.
func WithViewportWidth(px float64) Option {
	return func(s *Surface) { s.viewport = px }
}

// WithMeasurer replaces the Go Mono measurer.
func WithMeasurer(m Measurer) Option {
	return func(s *Surface) { s.measurer = m }
}

// WithLogger sets the logger used for layout diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// Surface is the mounted live preview: an element tree plus its layout.
//
// Measurements reflow lazily. Resize observers are notified after a reflow
// changes the root box size, except while a layout override is held.
type Surface struct {
	mu       sync.Mutex
	root     *Element
	mounted  bool
	dirty    bool
	viewport float64
	measurer Measurer
	logger   *log.Logger

	observers map[int]func(Size)
	nextID    int
	last      Size
	suppress  int
}

// Mount builds the tree for cfg and doc and lays it out.
func Mount(cfg config.RenderConfig, doc *highlight.Document, opts ...Option) *Surface {
	s := &Surface{
		measurer:  fonts.Mono{},
		logger:    log.New(io.Discard),
		observers: make(map[int]func(Size)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mu.Lock()
	s.adopt(Build(cfg, doc))
	s.mounted = true
	s.layoutLocked()
	s.last = s.rootSize()
	s.mu.Unlock()
	return s
}

// Mounted reports whether the surface currently has a tree.
func (s *Surface) Mounted() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Root returns the root element, or nil once unmounted.
func (s *Surface) Root() *Element {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return nil
	}
	return s.root
}

// Unmount detaches the tree. Later measurements and overrides are no-ops.
func (s *Surface) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
	s.root = nil
}

// Update re-renders the tree for new settings and reflows.
func (s *Surface) Update(cfg config.RenderConfig, doc *highlight.Document) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.adopt(Build(cfg, doc))
	notify, size := s.reflowLocked()
	s.mu.Unlock()
	if notify {
		s.deliver(size)
	}
}

// SetViewportWidth changes the container width and reflows.
func (s *Surface) SetViewportWidth(px float64) {
	s.mu.Lock()
	if s.viewport == px {
		s.mu.Unlock()
		return
	}
	s.viewport = px
	s.dirty = true
	notify, size := s.reflowLocked()
	s.mu.Unlock()
	if notify {
		s.deliver(size)
	}
}

// ViewportWidth returns the container width.
func (s *Surface) ViewportWidth() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// Layout reflows if needed and returns the root box size.
func (s *Surface) Layout() Size {
	var size Size
	s.withLayout(func() { size = s.rootSize() })
	return size
}

// Reflow lays out pending style changes and notifies observers.
func (s *Surface) Reflow() {
	s.withLayout(func() {})
}

// Observe registers fn for root size changes and returns its unsubscribe
// function. Unsubscribing twice is harmless.
func (s *Surface) Observe(fn func(Size)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// =============================================================================
// Layout override
// =============================================================================

// StyleChange is one inline style assignment of an override.
type StyleChange struct {
	Target *Element
	Prop   string
	Value  string
}

// Set describes assigning value to prop on target.
func Set(target *Element, prop, value string) StyleChange {
	return StyleChange{Target: target, Prop: prop, Value: value}
}

type savedProp struct {
	style *Style
	prop  string
	value string
	set   bool
}

// Override applies changes and returns a release function that restores
// every touched property to its exact prior value, including unset. Resize
// notifications are held back until release.
func (s *Surface) Override(changes ...StyleChange) (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return nil, errors.New(errors.ErrCodeNotMounted, "preview is not mounted")
	}
	for _, c := range changes {
		if c.Target == nil || c.Target.owner != s {
			return nil, errors.New(errors.ErrCodeInvalidInput, "override target does not belong to this preview")
		}
	}

	saved := make([]savedProp, 0, len(changes))
	for _, c := range changes {
		st := c.Target.Style
		v, ok := st.props[c.Prop]
		saved = append(saved, savedProp{style: st, prop: c.Prop, value: v, set: ok})
		st.props[c.Prop] = c.Value
	}
	s.suppress++
	s.dirty = true

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			for i := len(saved) - 1; i >= 0; i-- {
				p := saved[i]
				if p.set {
					p.style.props[p.prop] = p.value
				} else {
					delete(p.style.props, p.prop)
				}
			}
			s.suppress--
			s.dirty = true
			notify, size := s.reflowLocked()
			s.mu.Unlock()
			if notify {
				s.deliver(size)
			}
		})
	}, nil
}

// =============================================================================
// Internals
// =============================================================================

// adopt installs root as the current tree. Caller holds mu.
func (s *Surface) adopt(root *Element) {
	root.walk(func(e *Element) {
		e.owner = s
		if e.Style == nil {
			e.Style = NewStyle()
		}
		e.Style.owner = s
	})
	s.root = root
	s.dirty = true
}

// withLayout reflows, runs fn under the lock and then delivers any resize
// notification outside it.
func (s *Surface) withLayout(fn func()) {
	s.mu.Lock()
	notify, size := s.reflowLocked()
	fn()
	s.mu.Unlock()
	if notify {
		s.deliver(size)
	}
}

// reflowLocked lays out if dirty and reports whether observers are due.
func (s *Surface) reflowLocked() (bool, Size) {
	if !s.mounted || !s.dirty {
		return false, Size{}
	}
	s.layoutLocked()
	size := s.rootSize()
	if s.suppress > 0 || size == s.last {
		return false, size
	}
	s.last = size
	return true, size
}

func (s *Surface) layoutLocked() {
	start := time.Now()
	layout(s.root, s.measurer, s.viewport)
	s.dirty = false
	size := s.rootSize()
	elapsed := time.Since(start)
	s.logger.Debug("preview layout", "width", size.Width, "height", size.Height, "took", elapsed)
	observability.Preview().OnLayout(context.Background(), size.Width, size.Height, elapsed)
}

func (s *Surface) rootSize() Size {
	if s.root == nil {
		return Size{}
	}
	return Size{Width: ceilPx(s.root.box.W), Height: ceilPx(s.root.box.H)}
}

func (s *Surface) deliver(size Size) {
	s.mu.Lock()
	fns := make([]func(Size), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(size)
	}
}
