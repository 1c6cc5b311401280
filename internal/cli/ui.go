package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("80")
	colorGreen  = lipgloss.Color("78")
	colorYellow = lipgloss.Color("221")
	colorRed    = lipgloss.Color("203")
	colorWhite  = lipgloss.Color("252")
	colorGray   = lipgloss.Color("246")
	colorDim    = lipgloss.Color("239")
)

// Shared text styles.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = StyleSuccess
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = StyleWarning
	styleIconSpinner = StyleHighlight
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// printExports lists the files downloaded during an editor session.
func printExports(w io.Writer, paths []string) {
	if len(paths) == 0 {
		return
	}
	noun := "image"
	if len(paths) > 1 {
		noun = "images"
	}
	fmt.Fprintf(w, "%s Exported %d %s\n", styleIconSuccess.Render(iconSuccess), len(paths), noun)
	for _, p := range paths {
		fmt.Fprintf(w, "  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(p))
	}
}
