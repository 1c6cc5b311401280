package preview

import (
	"fmt"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/highlight"
)

// Window chrome colors.
const (
	DotRed        = "#ef4444"
	DotYellow     = "#eab308"
	DotGreen      = "#22c55e"
	FileNameColor = "#d1d5db"
)

// CodeFontSize is the font size of the code block in pixels.
const CodeFontSize = 14

// Build returns the styled element tree for cfg and doc. It is a pure
// function of its inputs; the tree is not laid out until mounted.
func Build(cfg config.RenderConfig, doc *highlight.Document) *Element {
	root := &Element{
		Tag:   "div",
		Class: "block",
		Style: NewStyle(
			fmt.Sprintf("padding: %dpx", cfg.Padding),
			fmt.Sprintf("border-radius: %dpx", cfg.CornerRadius),
			"background-color: "+cfg.Background(),
			"max-width: 100%",
		),
	}

	if cfg.ShowWindowChrome {
		root.Children = append(root.Children, buildChrome(cfg.DisplayFileName))
	}

	code := &Element{
		Tag:   "code",
		Style: NewStyle("display: block", "padding: 1em"),
		Lines: doc.Lines,
	}
	if cfg.ShowLineNumbers {
		code.Class = "line-numbers"
		code.Style.props["--line-number-color"] = doc.LineNumber
	}
	code.Style.props["color"] = doc.Foreground

	pre := &Element{
		Tag: "pre",
		Style: NewStyle(
			"margin: 0",
			fmt.Sprintf("border-radius: %gpx", float64(cfg.CornerRadius)/2),
			fmt.Sprintf("font-size: %dpx", CodeFontSize),
			"line-height: 1.5",
			"width: auto",
			"min-width: 100%",
			"overflow: auto",
			"white-space: pre",
			"background-color: "+doc.Background,
		),
		Children: []*Element{code},
	}
	root.Children = append(root.Children, pre)
	return root
}

func buildChrome(fileName string) *Element {
	chrome := &Element{
		Tag:   "div",
		Class: "chrome",
		Style: NewStyle("display: flex", "gap: 6px", "padding-bottom: 16px", "line-height: 16px"),
	}
	for _, color := range []string{DotRed, DotYellow, DotGreen} {
		chrome.Children = append(chrome.Children, &Element{
			Tag:   "span",
			Class: "dot",
			Style: NewStyle("width: 12px", "height: 12px", "border-radius: 50%", "background-color: "+color),
		})
	}
	if fileName != "" {
		chrome.Children = append(chrome.Children, &Element{
			Tag:   "span",
			Class: "filename",
			Text:  fileName,
			Style: NewStyle("margin-left: 8px", "font-size: 12px", "line-height: 16px", "color: "+FileNameColor),
		})
	}
	return chrome
}
