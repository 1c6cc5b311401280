package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/export"
)

// =============================================================================
// exportDialog - format, density and delivery
// =============================================================================

type dialogItem int

const (
	itemFormat dialogItem = iota
	itemDensity
	itemDownload
	itemCopy
)

type exportDialog struct {
	cursor  dialogItem
	spinner spinner.Model
}

func newExportDialog() *exportDialog {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleIconSpinner
	return &exportDialog{spinner: sp}
}

func (d *exportDialog) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.spinner, cmd = d.spinner.Update(msg)
	return cmd
}

// items lists the focusable rows. Density only applies to raster output.
func (m *editorModel) dialogItems() []dialogItem {
	if m.studio.ExportConfig().Format.Raster() {
		return []dialogItem{itemFormat, itemDensity, itemDownload, itemCopy}
	}
	return []dialogItem{itemFormat, itemDownload, itemCopy}
}

func (m *editorModel) updateDialog(msg tea.KeyMsg) tea.Cmd {
	items := m.dialogItems()
	pos := max(0, indexOf(items, m.dialog.cursor))

	switch msg.String() {
	case "esc", "q":
		m.dialog = nil
		return nil
	case "tab", "down", "j":
		m.dialog.cursor = items[(pos+1)%len(items)]
	case "shift+tab", "up", "k":
		m.dialog.cursor = items[(pos+len(items)-1)%len(items)]
	case "left", "h":
		m.changeExport(-1)
	case "right", "l":
		m.changeExport(1)
	case "d":
		return m.startExport(export.Download)
	case "c":
		return m.startExport(export.Clipboard)
	case "enter", " ":
		switch m.dialog.cursor {
		case itemDownload:
			return m.startExport(export.Download)
		case itemCopy:
			return m.startExport(export.Clipboard)
		default:
			m.changeExport(1)
		}
	}
	return nil
}

func (m *editorModel) changeExport(delta int) {
	var err error
	switch m.dialog.cursor {
	case itemFormat:
		err = m.studio.SetExport(func(e *config.ExportConfig) { e.Format = cycle(config.Formats(), e.Format, delta) })
	case itemDensity:
		err = m.studio.SetExport(func(e *config.ExportConfig) { e.Density = cycle(config.Densities(), e.Density, delta) })
	}
	if err != nil {
		m.status = errors.UserMessage(err)
	}
}

func (m *editorModel) viewDialog() string {
	ec := m.studio.ExportConfig()
	busy := m.busy()
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Export Image") + "\n")
	b.WriteString(listDimStyle.Render("Choose format and quality for your code image") + "\n\n")

	formats := make([]string, 0, 2)
	for _, f := range config.Formats() {
		formats = append(formats, f.Label())
	}
	b.WriteString(m.dialogLabel(itemFormat, "Format") + choices(formats, ec.Format.Label()) + "\n")
	if ec.Format.Raster() {
		densities := make([]string, 0, 3)
		for _, d := range config.Densities() {
			densities = append(densities, d.String())
		}
		b.WriteString(m.dialogLabel(itemDensity, "Image Quality") + choices(densities, ec.Density.String()) + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Output Dimensions") + "\n")
	b.WriteString(m.dimensionTable(ec) + "\n")
	if m.studio.WideWarning() {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " +
			StyleWarning.Render("Wide code detected. Full width will be exported correctly.") + "\n")
	}
	b.WriteString("\n")

	download := fmt.Sprintf("Download %s", ec.Format.Label())
	copyLabel := "Copy to Clipboard"
	if busy {
		download = m.dialog.spinner.View() + " Processing..."
		copyLabel = m.dialog.spinner.View() + " Processing..."
	}
	b.WriteString(m.button(itemDownload, download, busy) + "\n")
	b.WriteString(m.button(itemCopy, copyLabel, busy) + "\n\n")
	b.WriteString(listDimStyle.Render("←/→ change · d download · c copy · esc close"))
	return b.String()
}

func (m *editorModel) dialogLabel(item dialogItem, text string) string {
	if m.dialog.cursor == item {
		return focusLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m *editorModel) button(item dialogItem, text string, disabled bool) string {
	switch {
	case disabled:
		return listDimStyle.Render("[ " + text + " ]")
	case m.dialog.cursor == item:
		return listSelectedStyle.Render("▸ [ " + text + " ]")
	default:
		return StyleValue.Render("  [ " + text + " ]")
	}
}

// dimensionTable renders the size estimates: one column per density for
// PNG, the scalable base size for SVG.
func (m *editorModel) dimensionTable(ec config.ExportConfig) string {
	est := m.studio.Estimates()
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim))

	if !ec.Format.Raster() {
		d := est[0].Dimensions
		return t.Headers("SVG (Scalable)").
			Row(fmt.Sprintf("Base: %d × %d", d.Width, d.Height)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return lipgloss.NewStyle().Foreground(colorWhite)
			}).
			Render()
	}

	headers := make([]string, len(est))
	cells := make([]string, len(est))
	selected := -1
	for i, e := range est {
		headers[i] = e.Label
		cells[i] = fmt.Sprintf("%d × %d", e.Dimensions.Width, e.Dimensions.Height)
		if e.Label == ec.Density.String() {
			selected = i
		}
	}
	return t.Headers(headers...).
		Row(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == selected {
				base = base.Foreground(colorCyan).Bold(true)
			} else {
				base = base.Foreground(colorGray)
			}
			if row == table.HeaderRow {
				return base.Bold(true)
			}
			return base
		}).
		Render()
}

func choices(options []string, current string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if o == current {
			parts[i] = listSelectedStyle.Render("[" + o + "]")
		} else {
			parts[i] = listDimStyle.Render(" " + o + " ")
		}
	}
	return strings.Join(parts, " ")
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return -1
}
