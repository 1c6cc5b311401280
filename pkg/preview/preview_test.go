package preview

import (
	"testing"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/highlight"
)

// fixedMeasurer gives every glyph half an em of advance.
type fixedMeasurer struct{}

func (fixedMeasurer) Metrics(size float64) fonts.Metrics {
	return fonts.Metrics{Advance: size / 2, Ascent: size * 0.75, Descent: size * 0.25}
}

func plainDoc(lines ...string) *highlight.Document {
	doc := &highlight.Document{Background: "#282c34", Foreground: "#abb2bf", LineNumber: "#636d83"}
	for _, l := range lines {
		doc.Lines = append(doc.Lines, highlight.Line{{Text: l, Color: "#abb2bf"}})
	}
	return doc
}

func bareConfig(padding int) config.RenderConfig {
	cfg := config.DefaultRenderConfig()
	cfg.Padding = padding
	cfg.ShowLineNumbers = false
	cfg.ShowWindowChrome = false
	return cfg
}

func mount(cfg config.RenderConfig, doc *highlight.Document, viewport float64) *Surface {
	return Mount(cfg, doc, WithMeasurer(fixedMeasurer{}), WithViewportWidth(viewport))
}

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name       string
		chrome     bool
		fileName   string
		wantChrome bool
		wantLabel  bool
	}{
		{"no chrome", false, "a.js", false, false},
		{"chrome with name", true, "a.js", true, true},
		{"chrome without name", true, "", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultRenderConfig()
			cfg.ShowWindowChrome = tt.chrome
			cfg.DisplayFileName = tt.fileName
			root := Build(cfg, plainDoc("x"))

			chrome := root.FirstChild()
			hasChrome := chrome != nil && chrome.Class == "chrome"
			if hasChrome != tt.wantChrome {
				t.Fatalf("chrome present = %v, want %v", hasChrome, tt.wantChrome)
			}
			if hasChrome {
				hasLabel := len(chrome.Children) == 4 && chrome.Children[3].Text == tt.fileName
				if hasLabel != tt.wantLabel {
					t.Errorf("file name present = %v, want %v", hasLabel, tt.wantLabel)
				}
			}

			pre := root.Query("pre")
			if pre == nil || pre.FirstChild() == nil || pre.FirstChild().Tag != "code" {
				t.Fatal("expected pre > code")
			}
			if v, _ := root.Style.Get("background-color"); v != "#333333" {
				t.Errorf("root background = %q, want default", v)
			}
			if v, _ := pre.Style.Get("border-radius"); v != "4px" {
				t.Errorf("pre radius = %q, want half of 8px", v)
			}
		})
	}
}

func TestLayoutNatural(t *testing.T) {
	s := mount(bareConfig(10), plainDoc("abc", "abcdef"), 0)
	root := s.Root()
	pre := root.Query("pre")
	code := pre.FirstChild()

	// 6 columns * 7px + 2 * 14px code padding = 70; plus 2 * 10px padding.
	if b := root.Box(); b.W != 90 || b.H != 90 {
		t.Errorf("root box = %+v, want 90x90", b)
	}
	if got := root.ScrollWidth(); got != 70 {
		t.Errorf("root ScrollWidth = %d, want 70", got)
	}
	if got := root.ScrollHeight(); got != 90 {
		t.Errorf("root ScrollHeight = %d, want 90", got)
	}
	if got := pre.ScrollWidth(); got != 70 {
		t.Errorf("pre ScrollWidth = %d, want 70", got)
	}
	if got := code.ScrollWidth(); got != 42 {
		t.Errorf("code ScrollWidth = %d, want 42", got)
	}
}

func TestLayoutViewportClamp(t *testing.T) {
	s := mount(bareConfig(10), plainDoc("abc", "abcdef"), 50)
	root := s.Root()
	pre := root.Query("pre")

	if b := root.Box(); b.W != 50 {
		t.Errorf("root width = %v, want clamped to 50", b.W)
	}
	// The pre clips, so the root does not see its overflow.
	if got := root.ScrollWidth(); got != 30 {
		t.Errorf("root ScrollWidth = %d, want 30", got)
	}
	if got := pre.ScrollWidth(); got != 70 {
		t.Errorf("pre ScrollWidth = %d, want 70", got)
	}

	pre.Style.Set("overflow", "visible")
	if got := root.ScrollWidth(); got != 70 {
		t.Errorf("root ScrollWidth with visible pre = %d, want 70", got)
	}
}

func TestLayoutChromeAndGutter(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.Padding = 0
	cfg.DisplayFileName = "a.js"
	s := mount(cfg, plainDoc("ab", "cd"), 0)
	root := s.Root()

	chrome := root.FirstChild()
	// 3 dots of 12px, 3 gaps of 6px, 8px margin, 4 columns at 6px.
	label := chrome.Children[3].Box()
	if right := label.X + label.W; right != 86 {
		t.Errorf("label right edge = %v, want 86", right)
	}
	if b := chrome.Box(); b.H != 32 {
		t.Errorf("chrome height = %v, want 32", b.H)
	}

	// Gutter: max(2.25em, 1 digit) + 1em = 31.5 + 14; text 2 * 7; padding 28.
	code := root.Query("code")
	if got := code.ScrollWidth(); got != 60 {
		t.Errorf("code ScrollWidth = %d, want 60", got)
	}
	if b := root.Box(); b.W != 87.5 {
		t.Errorf("root width = %v, want 87.5", b.W)
	}
	// 32 chrome + 2 rows * 21 + 28.
	if got := root.ScrollHeight(); got != 102 {
		t.Errorf("root ScrollHeight = %d, want 102", got)
	}
}

func TestLayoutWrap(t *testing.T) {
	s := mount(bareConfig(0), plainDoc("aaaaaaaaaa"), 0)
	root := s.Root()
	pre := root.Query("pre")
	before := root.ScrollHeight()

	root.Style.Set("width", "56px") // 28px padding + 4 columns
	pre.Style.Set("white-space", "pre-wrap")

	if got, want := root.ScrollHeight(), before+2*21; got != want {
		t.Errorf("wrapped height = %d, want %d", got, want)
	}
	if got := root.Query("code").ScrollWidth(); got != 28 {
		t.Errorf("wrapped code ScrollWidth = %d, want 28", got)
	}
}

func TestObserve(t *testing.T) {
	s := mount(bareConfig(10), plainDoc("abcdef"), 0)

	var got []Size
	unsubscribe := s.Observe(func(sz Size) { got = append(got, sz) })

	s.SetViewportWidth(50)
	if len(got) != 1 || got[0].Width != 50 {
		t.Fatalf("notifications = %+v, want one at width 50", got)
	}

	s.SetViewportWidth(50)
	if len(got) != 1 {
		t.Errorf("unchanged viewport should not notify, got %d", len(got))
	}

	unsubscribe()
	unsubscribe()
	s.SetViewportWidth(0)
	if len(got) != 1 {
		t.Errorf("unsubscribed observer was called")
	}
}

func TestOverrideRestoresExactly(t *testing.T) {
	s := mount(bareConfig(10), plainDoc("abcdef"), 50)
	root := s.Root()
	pre := root.Query("pre")

	notified := 0
	s.Observe(func(Size) { notified++ })

	release, err := s.Override(
		Set(root, "width", "90px"),
		Set(root, "overflow", "visible"),
		Set(pre, "width", "auto"),
		Set(pre, "overflow", "visible"),
		Set(pre, "white-space", "pre"),
	)
	if err != nil {
		t.Fatalf("Override() error: %v", err)
	}
	if b := root.Box(); b.W != 90 {
		t.Errorf("overridden width = %v, want 90", b.W)
	}
	if notified != 0 {
		t.Errorf("observers notified during override")
	}

	release()
	release()

	if _, ok := root.Style.Get("width"); ok {
		t.Error("root width should be unset again")
	}
	if _, ok := root.Style.Get("overflow"); ok {
		t.Error("root overflow should be unset again")
	}
	if v, _ := pre.Style.Get("overflow"); v != "auto" {
		t.Errorf("pre overflow = %q, want auto", v)
	}
	if v, _ := pre.Style.Get("white-space"); v != "pre" {
		t.Errorf("pre white-space = %q, want pre", v)
	}
	if b := root.Box(); b.W != 50 {
		t.Errorf("restored width = %v, want 50", b.W)
	}
	if notified != 0 {
		t.Errorf("release with unchanged size notified %d times", notified)
	}
}

func TestOverrideUnmounted(t *testing.T) {
	s := mount(bareConfig(10), plainDoc("x"), 0)
	root := s.Root()
	s.Unmount()
	if s.Mounted() || s.Root() != nil {
		t.Fatal("surface should be unmounted")
	}
	if _, err := s.Override(Set(root, "width", "1px")); err == nil {
		t.Error("Override() on unmounted surface should fail")
	}
	if _, err := s.Snapshot(nil); err == nil {
		t.Error("Snapshot() on unmounted surface should fail")
	}
}

func TestOverrideForeignElement(t *testing.T) {
	a := mount(bareConfig(10), plainDoc("x"), 0)
	b := mount(bareConfig(10), plainDoc("x"), 0)
	if _, err := a.Override(Set(b.Root(), "width", "1px")); err == nil {
		t.Error("Override() with another surface's element should fail")
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12px", 12, true},
		{"1em", 14, true},
		{"1.5rem", 24, true},
		{"50%", 100, true},
		{"0", 0, true},
		{"auto", 0, false},
		{"", 0, false},
		{"12", 0, false},
		{"wide", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in, 14, 200)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLength(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStyleSnapshotRestore(t *testing.T) {
	s := mount(bareConfig(10), plainDoc("abcdef"), 0)
	pre := s.Root().Query("pre")
	saved := pre.Style.Snapshot("width", "overflow", "max-height")
	if saved["max-height"] != Unset || saved["overflow"] != "auto" {
		t.Fatalf("Snapshot() = %v", saved)
	}

	pre.Style.Set("overflow", "visible")
	pre.Style.Set("max-height", "10px")
	pre.Style.Set("width", "500px")
	if got := pre.Style.Width(); got != "500px" {
		t.Errorf("Width() = %q", got)
	}
	if size := s.Layout(); size.Width == 0 || size.Height == 0 {
		t.Errorf("Layout() = %+v", size)
	}
	if b := pre.Box(); b.W != 500 {
		t.Errorf("pre width = %v, want 500", b.W)
	}

	pre.Style.Restore(saved)
	if got := pre.Style.Overflow(); got != "auto" {
		t.Errorf("Overflow() = %q, want auto", got)
	}
	if _, ok := pre.Style.Get("max-height"); ok {
		t.Error("max-height should be unset after Restore")
	}
	if got := pre.Style.Width(); got != "auto" {
		t.Errorf("Width() = %q, want auto", got)
	}
	if got := pre.Style.WhiteSpace(); got != "pre" {
		t.Errorf("WhiteSpace() = %q, want pre", got)
	}
	if px, ok := pre.Style.Length("font-size", 16, 0); !ok || px != 14 {
		t.Errorf("Length(font-size) = %v, %v", px, ok)
	}
}
