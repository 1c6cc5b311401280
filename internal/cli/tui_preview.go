package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/codeshot/pkg/capture"
	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/preview"
)

// renderPreview draws the code block in the terminal, cols columns wide.
// Pixel sizes are converted with cellWidth pixels per column and twice
// that per row. Lines longer than the block are cut off, like the
// scrolling preview.
func renderPreview(cfg config.RenderConfig, doc *highlight.Document, cols, cellWidth int) string {
	cellWidth = max(1, cellWidth)
	padX := (cfg.Padding + cellWidth/2) / cellWidth
	padY := (cfg.Padding + cellWidth) / (2 * cellWidth)
	inner := max(8, min(cols-2*padX, maxLineWidth(cfg, doc)))

	bg := termColor(cfg.Background())
	var rows []string
	if cfg.ShowWindowChrome {
		rows = append(rows, renderChrome(cfg.DisplayFileName, inner, bg), lipgloss.NewStyle().Background(bg).Width(inner).Render(""))
	}

	preBg := termColor(doc.Background)
	block := lipgloss.NewStyle().Background(preBg).Width(inner)
	gutter := 0
	if cfg.ShowLineNumbers {
		gutter = len(strconv.Itoa(len(doc.Lines))) + 1
	}
	rows = append(rows, block.Render(""))
	for i, line := range doc.Lines {
		var b strings.Builder
		b.WriteString(" ")
		if gutter > 0 {
			num := lipgloss.NewStyle().Foreground(termColor(doc.LineNumber)).Background(preBg).
				Width(gutter).Align(lipgloss.Right).Render(strconv.Itoa(i + 1))
			b.WriteString(num + " ")
		}
		b.WriteString(renderLine(line, inner-gutter-2, preBg))
		rows = append(rows, block.Render(b.String()))
	}
	rows = append(rows, block.Render(""))

	return lipgloss.NewStyle().
		Background(bg).
		Padding(padY, padX).
		Render(strings.Join(rows, "\n"))
}

func renderChrome(fileName string, width int, bg lipgloss.TerminalColor) string {
	dot := func(c string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Background(bg).Render("●")
	}
	sp := lipgloss.NewStyle().Background(bg).Render(" ")
	row := dot(preview.DotRed) + sp + dot(preview.DotYellow) + sp + dot(preview.DotGreen)
	if fileName != "" {
		name := runewidth.Truncate(fileName, max(0, width-8), "…")
		row += sp + sp + lipgloss.NewStyle().Foreground(lipgloss.Color(preview.FileNameColor)).Background(bg).Render(name)
	}
	return lipgloss.NewStyle().Background(bg).Width(width).Render(row)
}

// renderLine styles the spans of line, truncated to width columns.
func renderLine(line highlight.Line, width int, bg lipgloss.TerminalColor) string {
	var b strings.Builder
	left := width
	for _, span := range line {
		if left <= 0 {
			break
		}
		text := span.Text
		if w := runewidth.StringWidth(text); w > left {
			text = runewidth.Truncate(text, left, "")
		}
		left -= runewidth.StringWidth(text)
		b.WriteString(lipgloss.NewStyle().
			Foreground(termColor(span.Color)).
			Background(bg).
			Bold(span.Bold).
			Italic(span.Italic).
			Render(text))
	}
	return b.String()
}

// maxLineWidth is the widest row the block needs, in columns.
func maxLineWidth(cfg config.RenderConfig, doc *highlight.Document) int {
	w := doc.MaxWidth() + 2
	if cfg.ShowLineNumbers {
		w += len(strconv.Itoa(len(doc.Lines))) + 2
	}
	if cfg.ShowWindowChrome {
		w = max(w, runewidth.StringWidth(cfg.DisplayFileName)+7)
	}
	return w
}

// termColor converts a CSS color to a terminal color. Invalid and fully
// transparent colors become NoColor.
func termColor(css string) lipgloss.TerminalColor {
	c, ok := capture.ParseColor(css)
	if !ok {
		return lipgloss.NoColor{}
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(cc.Hex())
}
