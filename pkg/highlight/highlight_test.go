package highlight

import (
	"strings"
	"testing"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
)

func TestHighlightLineCount(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"empty", "", 1},
		{"single", "x := 1", 1},
		{"default", config.DefaultSource, 3},
		{"trailing newline", "a\nb\n", 3},
		{"crlf", "a\r\nb", 2},
		{"blank lines", "\n\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Highlight(tt.source, config.Go, config.AtomDark)
			if err != nil {
				t.Fatalf("Highlight() error: %v", err)
			}
			if len(doc.Lines) != tt.want {
				t.Errorf("len(Lines) = %d, want %d", len(doc.Lines), tt.want)
			}
		})
	}
}

func TestHighlightPreservesText(t *testing.T) {
	for _, lang := range config.Languages() {
		doc, err := Highlight(config.DefaultSource, lang, config.Dracula)
		if err != nil {
			t.Fatalf("Highlight(%s) error: %v", lang, err)
		}
		var lines []string
		for _, l := range doc.Lines {
			lines = append(lines, l.Text())
		}
		if got := strings.Join(lines, "\n"); got != config.DefaultSource {
			t.Errorf("%s: text = %q, want %q", lang, got, config.DefaultSource)
		}
	}
}

func TestHighlightColors(t *testing.T) {
	for _, theme := range config.Themes() {
		doc, err := Highlight("package main", config.Go, theme)
		if err != nil {
			t.Fatalf("Highlight(%s) error: %v", theme, err)
		}
		for _, c := range []string{doc.Background, doc.Foreground, doc.LineNumber} {
			if !strings.HasPrefix(c, "#") || len(c) != 7 {
				t.Errorf("%s: color %q is not #rrggbb", theme, c)
			}
		}
	}

	dark, _ := Highlight("x", config.Go, config.AtomDark)
	light, _ := Highlight("x", config.Go, config.VisualStudio)
	if dark.Background == light.Background {
		t.Errorf("dark and light themes share background %s", dark.Background)
	}
}

func TestHighlightKeywordStyled(t *testing.T) {
	doc, err := Highlight("func main() {}", config.Go, config.AtomDark)
	if err != nil {
		t.Fatal(err)
	}
	line := doc.Lines[0]
	if len(line) < 2 {
		t.Fatalf("expected several spans, got %d", len(line))
	}
	if !strings.HasPrefix(line[0].Text, "func") {
		t.Errorf("first span = %q, want keyword", line[0].Text)
	}
	if line[0].Color == doc.Foreground {
		t.Error("keyword should not use the plain foreground color")
	}
}

func TestTabExpansion(t *testing.T) {
	doc, err := Highlight("\tx\nab\ty", config.Python, config.AtomDark)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Lines[0].Text(); got != "    x" {
		t.Errorf("line 0 = %q, want 4 spaces then x", got)
	}
	if got := doc.Lines[1].Text(); got != "ab  y" {
		t.Errorf("line 1 = %q, want tab stop at column 4", got)
	}
}

func TestWidths(t *testing.T) {
	doc, err := Highlight("ab\n日本語\nabcd", config.Markdown, config.AtomDark)
	if err != nil {
		t.Fatal(err)
	}
	if w := doc.Lines[1].Width(); w != 6 {
		t.Errorf("wide runes width = %d, want 6", w)
	}
	if w := doc.MaxWidth(); w != 6 {
		t.Errorf("MaxWidth() = %d, want 6", w)
	}
}

func TestHighlightInvalid(t *testing.T) {
	if _, err := Highlight("x", "cobol", config.AtomDark); !errors.Is(err, errors.ErrCodeInvalidLanguage) {
		t.Errorf("error = %v, want INVALID_LANGUAGE", err)
	}
	if _, err := Highlight("x", config.Go, "nord"); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("error = %v, want INVALID_THEME", err)
	}
}
