package preview

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// ItemKind is the shape of a display item.
type ItemKind int

const (
	KindRect ItemKind = iota
	KindCircle
	KindText
)

// Clip is a rounded clip rectangle.
type Clip struct {
	X, Y, W, H float64
	Radius     float64
}

// Item is one paint operation in root coordinates.
//
// Rects and circles use X, Y, W, H as their bounds. Text items start at X
// with their baseline at Y; H is the line box height.
type Item struct {
	Kind     ItemKind
	X, Y     float64
	W, H     float64
	Radius   float64
	Fill     string
	Text     string
	FontSize float64
	Bold     bool
	Italic   bool
	Clips    []Clip
}

// DisplayList is a flattened, painted copy of the laid-out tree.
type DisplayList struct {
	Width, Height float64
	Items         []Item
}

// Snapshot paints the current tree into a display list. overrides are set on
// the live root's inline style and the tree is laid out with them under the
// surface lock. The previous values are restored before Snapshot returns and
// the surface is marked dirty, so the next measurement reflows. Observers are
// not notified of the intermediate layout.
func (s *Surface) Snapshot(overrides map[string]string) (*DisplayList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted || s.root == nil {
		return nil, errors.New(errors.ErrCodeNotMounted, "preview is not mounted")
	}

	if len(overrides) > 0 {
		rs := s.root.Style
		saved := make(map[string]*string, len(overrides))
		for k, v := range overrides {
			if old, ok := rs.props[k]; ok {
				saved[k] = &old
			} else {
				saved[k] = nil
			}
			rs.props[k] = v
		}
		defer func() {
			for k, old := range saved {
				if old == nil {
					delete(rs.props, k)
				} else {
					rs.props[k] = *old
				}
			}
			s.dirty = true
		}()
		s.dirty = true
	}
	if s.dirty {
		s.layoutLocked()
	}

	p := painter{m: s.measurer}
	p.paint(s.root, nil)
	return &DisplayList{Width: s.root.box.W, Height: s.root.box.H, Items: p.items}, nil
}

type painter struct {
	m     Measurer
	items []Item
	clips []Clip
}

func (p *painter) add(it Item) {
	if len(p.clips) > 0 {
		it.Clips = append([]Clip(nil), p.clips...)
	}
	p.items = append(p.items, it)
}

func (p *painter) paint(e, parent *Element) {
	st := e.Style
	radius, _ := st.length("border-radius", 16, e.box.W)
	if bg := st.get("background-color"); bg != "" {
		kind := KindRect
		if st.get("border-radius") == "50%" {
			kind = KindCircle
		}
		p.add(Item{Kind: kind, X: e.box.X, Y: e.box.Y, W: e.box.W, H: e.box.H, Radius: radius, Fill: bg})
	}

	if e.Text != "" {
		p.paintLabel(e)
	}

	clipped := st.overflow() != "visible"
	if clipped {
		p.clips = append(p.clips, Clip{X: e.box.X, Y: e.box.Y, W: e.box.W, H: e.box.H, Radius: radius})
	}
	if e.Tag == "code" && parent != nil {
		p.paintCode(parent, e)
	}
	for _, c := range e.Children {
		p.paint(c, e)
	}
	if clipped {
		p.clips = p.clips[:len(p.clips)-1]
	}
}

func (p *painter) paintLabel(e *Element) {
	size := fontSize(e.Style, 16)
	fm := p.m.Metrics(size)
	p.add(Item{
		Kind:     KindText,
		X:        e.box.X,
		Y:        baseline(e.box.Y, e.box.H, fm.Ascent, fm.Descent),
		W:        e.box.W,
		H:        e.box.H,
		Fill:     e.Style.get("color"),
		Text:     e.Text,
		FontSize: size,
	})
}

// paintCode emits line numbers and token runs. Text metrics are inherited
// from the pre parent.
func (p *painter) paintCode(pre, code *Element) {
	cm := codeMetrics(pre, code, p.m)
	fg := code.Style.get("color")
	lnColor := code.Style.get("--line-number-color")

	x0 := code.box.X + cm.pad
	y := code.box.Y + cm.pad
	numW := cm.gutterW - gutterPaddingEm*cm.fontSize
	for _, r := range code.rows {
		base := baseline(y, cm.lineH, cm.ascent, cm.descent)
		if cm.gutterW > 0 && r.first {
			n := strconv.Itoa(r.line + 1)
			p.add(Item{
				Kind:     KindText,
				X:        x0 + numW - float64(len(n))*cm.advance,
				Y:        base,
				W:        float64(len(n)) * cm.advance,
				H:        cm.lineH,
				Fill:     lnColor,
				Text:     n,
				FontSize: cm.fontSize,
			})
		}
		col := 0
		for _, span := range r.spans {
			w := runewidth.StringWidth(span.Text)
			if w > 0 && !isBlank(span.Text) {
				fill := span.Color
				if fill == "" {
					fill = fg
				}
				p.add(Item{
					Kind:     KindText,
					X:        x0 + cm.gutterW + float64(col)*cm.advance,
					Y:        base,
					W:        float64(w) * cm.advance,
					H:        cm.lineH,
					Fill:     fill,
					Text:     span.Text,
					FontSize: cm.fontSize,
					Bold:     span.Bold,
					Italic:   span.Italic,
				})
			}
			col += w
		}
		y += cm.lineH
	}
}

// baseline places text vertically centered in a line box using half-leading.
func baseline(top, lineH, ascent, descent float64) float64 {
	return top + (lineH-(ascent+descent))/2 + ascent
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' {
			return false
		}
	}
	return true
}
