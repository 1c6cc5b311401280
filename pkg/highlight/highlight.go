// Package highlight turns source text into themed, line-split token spans.
//
// Highlighting is a pure function of (source, language, theme): the same
// inputs always produce the same [Document]. Tokenization and theme colors
// come from chroma; layout and drawing happen elsewhere.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
)

// TabWidth is the number of columns a tab stop spans.
const TabWidth = 4

// Span is a run of text sharing one style.
type Span struct {
	Text   string
	Color  string // #rrggbb
	Bold   bool
	Italic bool
}

// Line is one source line.
type Line []Span

// Width returns the display width of l in columns.
func (l Line) Width() int {
	n := 0
	for _, s := range l {
		n += runewidth.StringWidth(s.Text)
	}
	return n
}

// Text returns the plain text of l.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Document is a highlighted snippet.
type Document struct {
	Lines      []Line
	Background string
	Foreground string
	LineNumber string
}

// MaxWidth returns the widest line in columns.
func (d *Document) MaxWidth() int {
	w := 0
	for _, l := range d.Lines {
		w = max(w, l.Width())
	}
	return w
}

var (
	lexerCache   = make(map[config.Language]chroma.Lexer)
	lexerCacheMu sync.RWMutex
)

func lexerFor(lang config.Language) chroma.Lexer {
	lexerCacheMu.RLock()
	lexer := lexerCache[lang]
	lexerCacheMu.RUnlock()
	if lexer != nil {
		return lexer
	}

	lexer = lexers.Get(string(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	lexerCacheMu.Lock()
	lexerCache[lang] = lexer
	lexerCacheMu.Unlock()
	return lexer
}

// Highlight tokenizes source in lang and colors it with theme.
func Highlight(source string, lang config.Language, theme config.Theme) (*Document, error) {
	if !lang.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidLanguage, "unsupported language: %q", lang)
	}
	if !theme.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", theme)
	}

	source = strings.ReplaceAll(source, "\r\n", "\n")
	style := styles.Get(theme.ChromaStyle())

	bg := style.Get(chroma.Background)
	doc := &Document{
		Background: colour(bg.Background, "#1e1e1e"),
		Foreground: colour(bg.Colour, "#d4d4d4"),
	}
	doc.LineNumber = colour(style.Get(chroma.LineNumbers).Colour, doc.Foreground)

	iter, err := lexerFor(lang).Tokenise(nil, source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "tokenize %s", lang)
	}

	b := lineBuilder{fg: doc.Foreground}
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		entry := style.Get(tok.Type)
		b.add(tok.Value, Span{
			Color:  colour(entry.Colour, doc.Foreground),
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		})
	}
	doc.Lines = b.finish(strings.Count(source, "\n") + 1)
	return doc, nil
}

func colour(c chroma.Colour, fallback string) string {
	if c.IsSet() {
		return c.String()
	}
	return fallback
}

// lineBuilder splits token values on newlines and expands tabs.
type lineBuilder struct {
	fg    string
	lines []Line
	cur   Line
	col   int
}

func (b *lineBuilder) add(value string, style Span) {
	for i, part := range strings.Split(value, "\n") {
		if i > 0 {
			b.lines = append(b.lines, b.cur)
			b.cur, b.col = nil, 0
		}
		if part == "" {
			continue
		}
		part = b.expandTabs(part)
		b.col += runewidth.StringWidth(part)

		// Merge with the previous span when the style matches.
		if n := len(b.cur); n > 0 {
			last := &b.cur[n-1]
			if last.Color == style.Color && last.Bold == style.Bold && last.Italic == style.Italic {
				last.Text += part
				continue
			}
		}
		s := style
		s.Text = part
		b.cur = append(b.cur, s)
	}
}

func (b *lineBuilder) expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var out strings.Builder
	col := b.col
	for _, r := range s {
		if r == '\t' {
			n := TabWidth - col%TabWidth
			out.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		out.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return out.String()
}

// finish returns exactly n lines, dropping the trailing newline the lexer
// may have added.
func (b *lineBuilder) finish(n int) []Line {
	lines := append(b.lines, b.cur)
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, nil)
	}
	return lines
}
