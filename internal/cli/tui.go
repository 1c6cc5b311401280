package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/export"
	"github.com/matzehuels/codeshot/pkg/studio"
)

// Panel styles
var (
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle  = lipgloss.NewStyle().Foreground(colorGray)
	labelStyle        = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	focusLabelStyle   = labelStyle.Foreground(colorCyan).Bold(true)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	settingsWidth = 50
	toastDuration = 4 * time.Second
)

// =============================================================================
// Tabs and fields
// =============================================================================

type tab int

const (
	tabCode tab = iota
	tabAppearance
)

func (t tab) String() string {
	if t == tabAppearance {
		return "Appearance"
	}
	return "Code"
}

type field int

const (
	fieldSource field = iota
	fieldLanguage
	fieldFileName
	fieldTheme
	fieldPadding
	fieldRadius
	fieldBackground
	fieldLineNumbers
	fieldChrome
	fieldReset
)

var tabFields = map[tab][]field{
	tabCode:       {fieldSource, fieldLanguage, fieldFileName},
	tabAppearance: {fieldTheme, fieldPadding, fieldRadius, fieldBackground, fieldLineNumbers, fieldChrome, fieldReset},
}

var fieldLabels = map[field]string{
	fieldSource:      "Code",
	fieldLanguage:    "Language",
	fieldFileName:    "File name",
	fieldTheme:       "Theme",
	fieldPadding:     "Padding",
	fieldRadius:      "Radius",
	fieldBackground:  "Background",
	fieldLineNumbers: "Line numbers",
	fieldChrome:      "Window",
	fieldReset:       "",
}

// =============================================================================
// Messages
// =============================================================================

type exportDoneMsg struct {
	target export.Target
	err    error
	notes  []export.Notification
}

type toastExpiredMsg struct{ id int }

type toast struct {
	id   int
	note export.Notification
}

// textClipboard reads pasted text.
type textClipboard interface {
	ReadText() (string, error)
}

// =============================================================================
// editorModel - the interactive editor
// =============================================================================

type editorSettings struct {
	cellWidth     int
	fixedViewport bool
}

type editorModel struct {
	ctx      context.Context
	studio   *studio.Studio
	notes    <-chan export.Notification
	clip     textClipboard
	settings editorSettings

	tab        tab
	cursor     int
	source     textarea.Model
	fileName   textinput.Model
	background textinput.Model

	dialog    *exportDialog
	exporting bool
	toasts    []toast
	nextToast int
	status    string
	saved     []string

	dims          export.Dimensions
	width, height int
	resizePending bool
}

func newEditorModel(ctx context.Context, st *studio.Studio, notes <-chan export.Notification, clip textClipboard, settings editorSettings) *editorModel {
	if settings.cellWidth <= 0 {
		settings.cellWidth = defaultCellWidth
	}
	cfg := st.Config()

	source := textarea.New()
	source.ShowLineNumbers = false
	source.CharLimit = 0
	source.Placeholder = "Paste your code here"
	source.SetWidth(settingsWidth - 4)
	source.SetHeight(12)
	source.SetValue(cfg.SourceText)
	source.Focus()

	fileName := textinput.New()
	fileName.Prompt = ""
	fileName.Placeholder = "filename.ext"
	fileName.Width = settingsWidth - 20
	fileName.SetValue(cfg.DisplayFileName)

	background := textinput.New()
	background.Prompt = ""
	background.Placeholder = config.DefaultBackground
	background.Width = settingsWidth - 20
	background.SetValue(cfg.BackgroundColor)

	m := &editorModel{
		ctx:        ctx,
		studio:     st,
		notes:      notes,
		clip:       clip,
		settings:   settings,
		source:     source,
		fileName:   fileName,
		background: background,
		dims:       st.Dimensions(),
	}
	st.OnDimensionsChange(m.dimensionsChanged)
	return m
}

// dimensionsChanged runs inside Update, on the goroutine that owns the studio.
func (m *editorModel) dimensionsChanged(d export.Dimensions) {
	loggerFromContext(m.ctx).Debug("preview resized", "width", d.Width, "height", d.Height)
	m.dims = d
}

func (m *editorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *editorModel) busy() bool {
	return m.exporting || m.studio.Busy()
}

func (m *editorModel) focused() field {
	fields := tabFields[m.tab]
	return fields[m.cursor%len(fields)]
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.busy() {
			// The pipeline holds the surface until the export is done.
			m.resizePending = true
			return m, nil
		}
		m.resize()
		return m, nil

	case exportDoneMsg:
		return m, m.finishExport(msg)

	case toastExpiredMsg:
		m.toasts = slices.DeleteFunc(m.toasts, func(t toast) bool { return t.id == msg.id })
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy() {
			return m, nil
		}
		if m.dialog != nil {
			return m, m.updateDialog(msg)
		}
		return m, m.updateKey(msg)
	}

	if m.dialog != nil {
		return m, m.dialog.update(msg)
	}
	return m, m.updateFocused(msg)
}

func (m *editorModel) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+e":
		m.dialog = newExportDialog()
		return nil
	case "ctrl+t":
		m.tab = (m.tab + 1) % 2
		m.cursor = 0
		m.syncFocus()
		return nil
	case "tab":
		m.cursor = (m.cursor + 1) % len(tabFields[m.tab])
		m.syncFocus()
		return nil
	case "shift+tab":
		n := len(tabFields[m.tab])
		m.cursor = (m.cursor + n - 1) % n
		m.syncFocus()
		return nil
	case "ctrl+v":
		m.paste()
		return nil
	}
	return m.updateFocused(msg)
}

// updateFocused routes msg to the focused control and applies its value.
func (m *editorModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f := m.focused(); f {
	case fieldSource:
		m.source, cmd = m.source.Update(msg)
		if v := m.source.Value(); v != m.studio.Config().SourceText {
			m.apply(func(c *config.RenderConfig) { c.SourceText = v })
		}
	case fieldFileName:
		m.fileName, cmd = m.fileName.Update(msg)
		if v := m.fileName.Value(); v != m.studio.Config().DisplayFileName {
			m.apply(func(c *config.RenderConfig) { c.DisplayFileName = v })
		}
	case fieldBackground:
		m.background, cmd = m.background.Update(msg)
		if v := strings.TrimSpace(m.background.Value()); v != m.studio.Config().BackgroundColor {
			m.apply(func(c *config.RenderConfig) { c.BackgroundColor = v })
		}
	default:
		if key, ok := msg.(tea.KeyMsg); ok {
			m.adjust(f, key.String())
		}
	}
	return cmd
}

// adjust handles the select, slider, toggle and button controls.
func (m *editorModel) adjust(f field, key string) {
	delta := 0
	switch key {
	case "left", "h", "-":
		delta = -1
	case "right", "l", "+", "=":
		delta = 1
	case "enter", " ":
		delta = 1
	default:
		return
	}

	switch f {
	case fieldLanguage:
		m.apply(func(c *config.RenderConfig) { c.Language = cycle(config.Languages(), c.Language, delta) })
	case fieldTheme:
		m.apply(func(c *config.RenderConfig) { c.Theme = cycle(config.Themes(), c.Theme, delta) })
	case fieldPadding:
		m.apply(func(c *config.RenderConfig) { c.Padding = config.PaddingRange.Increment(c.Padding, delta) })
	case fieldRadius:
		m.apply(func(c *config.RenderConfig) { c.CornerRadius = config.RadiusRange.Increment(c.CornerRadius, delta) })
	case fieldLineNumbers:
		m.apply(func(c *config.RenderConfig) { c.ShowLineNumbers = !c.ShowLineNumbers })
	case fieldChrome:
		m.apply(func(c *config.RenderConfig) { c.ShowWindowChrome = !c.ShowWindowChrome })
	case fieldReset:
		if key != "enter" && key != " " {
			return
		}
		if err := m.studio.Reset(); err != nil {
			m.status = errors.UserMessage(err)
			return
		}
		cfg := m.studio.Config()
		m.source.SetValue(cfg.SourceText)
		m.fileName.SetValue(cfg.DisplayFileName)
		m.background.SetValue(cfg.BackgroundColor)
		m.status = ""
	}
}

func (m *editorModel) apply(fn func(*config.RenderConfig)) {
	if err := m.studio.Apply(fn); err != nil {
		m.status = errors.UserMessage(err)
		loggerFromContext(m.ctx).Warn("settings rejected", "error", err)
		return
	}
	m.status = ""
}

func (m *editorModel) paste() {
	text, err := m.clip.ReadText()
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	switch m.focused() {
	case fieldSource:
		m.source.InsertString(text)
		v := m.source.Value()
		m.apply(func(c *config.RenderConfig) { c.SourceText = v })
	case fieldFileName:
		m.fileName.SetValue(m.fileName.Value() + strings.TrimSpace(text))
		v := m.fileName.Value()
		m.apply(func(c *config.RenderConfig) { c.DisplayFileName = v })
	}
}

func (m *editorModel) syncFocus() {
	m.source.Blur()
	m.fileName.Blur()
	m.background.Blur()
	switch m.focused() {
	case fieldSource:
		m.source.Focus()
	case fieldFileName:
		m.fileName.Focus()
	case fieldBackground:
		m.background.Focus()
	}
}

// previewColumns is the width of the preview pane in terminal columns.
func (m *editorModel) previewColumns() int {
	return max(20, m.width-settingsWidth-6)
}

func (m *editorModel) resize() {
	m.source.SetHeight(max(4, m.height-14))
	if !m.settings.fixedViewport {
		m.studio.SetViewportWidth(float64(m.previewColumns() * m.settings.cellWidth))
	}
}

// =============================================================================
// Export
// =============================================================================

func (m *editorModel) startExport(target export.Target) tea.Cmd {
	m.exporting = true
	st, ctx, notes := m.studio, m.ctx, m.notes
	run := func() tea.Msg {
		err := st.Export(ctx, target)
		return exportDoneMsg{target: target, err: err, notes: drain(notes)}
	}
	return tea.Batch(m.dialog.spinner.Tick, run)
}

func (m *editorModel) finishExport(msg exportDoneMsg) tea.Cmd {
	m.exporting = false
	if m.resizePending {
		m.resizePending = false
		m.resize()
	}
	var cmds []tea.Cmd
	for _, n := range msg.notes {
		if n.Path != "" {
			m.saved = append(m.saved, n.Path)
		}
		cmds = append(cmds, m.pushToast(n))
	}
	if msg.err != nil {
		loggerFromContext(m.ctx).Error("export failed", "target", msg.target, "error", msg.err)
		if len(msg.notes) == 0 {
			m.status = errors.UserMessage(msg.err)
		}
		return tea.Batch(cmds...)
	}
	m.dialog = nil
	return tea.Batch(cmds...)
}

func (m *editorModel) pushToast(n export.Notification) tea.Cmd {
	id := m.nextToast
	m.nextToast++
	m.toasts = append(m.toasts, toast{id: id, note: n})
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func drain(ch <-chan export.Notification) []export.Notification {
	var out []export.Notification
	for {
		select {
		case n := <-ch:
			out = append(out, n)
		default:
			return out
		}
	}
}

// =============================================================================
// View
// =============================================================================

func (m *editorModel) View() string {
	var left string
	if m.dialog != nil {
		left = m.viewDialog()
	} else {
		left = m.viewSettings()
	}
	left = panelStyle.Width(settingsWidth).Render(left)

	cols := m.previewColumns()
	dims := m.dims
	right := renderPreview(m.studio.Config(), m.studio.Document(), cols, m.settings.cellWidth)
	right += "\n" + StyleDim.Render(fmt.Sprintf("%d × %d px", dims.Width, dims.Height))

	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	b.WriteString("\n")
	b.WriteString(m.viewToasts())
	if m.status != "" {
		b.WriteString(styleIconError.Render(iconError) + " " + m.status + "\n")
	}
	b.WriteString(listDimStyle.Render("tab next field · ctrl+t switch tab · ctrl+v paste · ctrl+e export · ctrl+c quit"))
	return b.String()
}

func (m *editorModel) viewTabs() string {
	var parts []string
	for _, t := range []tab{tabCode, tabAppearance} {
		if t == m.tab {
			parts = append(parts, tabActiveStyle.Render(t.String()))
		} else {
			parts = append(parts, tabInactiveStyle.Render(t.String()))
		}
	}
	return strings.Join(parts, StyleDim.Render(" │ "))
}

func (m *editorModel) viewSettings() string {
	cfg := m.studio.Config()
	var b strings.Builder
	for i, f := range tabFields[m.tab] {
		label := labelStyle
		if i == m.cursor {
			label = focusLabelStyle
		}
		var value string
		switch f {
		case fieldSource:
			b.WriteString(label.Render(fieldLabels[f]) + "\n")
			b.WriteString(m.source.View() + "\n")
			continue
		case fieldLanguage:
			value = selector(cfg.Language.DisplayName(), i == m.cursor)
		case fieldFileName:
			value = m.fileName.View()
		case fieldTheme:
			value = selector(cfg.Theme.DisplayName(), i == m.cursor)
		case fieldPadding:
			value = slider(config.PaddingRange, cfg.Padding)
		case fieldRadius:
			value = slider(config.RadiusRange, cfg.CornerRadius)
		case fieldBackground:
			value = m.background.View()
		case fieldLineNumbers:
			value = toggle(cfg.ShowLineNumbers)
		case fieldChrome:
			value = toggle(cfg.ShowWindowChrome)
		case fieldReset:
			btn := "[ Reset All Settings ]"
			if i == m.cursor {
				b.WriteString("\n" + listSelectedStyle.Render(btn) + "\n")
			} else {
				b.WriteString("\n" + listDimStyle.Render(btn) + "\n")
			}
			continue
		}
		b.WriteString(label.Render(fieldLabels[f]) + value + "\n")
	}
	return b.String()
}

func (m *editorModel) viewToasts() string {
	var b strings.Builder
	for _, t := range m.toasts {
		icon := styleIconSuccess.Render(iconSuccess)
		if t.note.Variant == export.VariantDestructive {
			icon = styleIconError.Render(iconError)
		}
		b.WriteString(icon + " " + StyleValue.Bold(true).Render(t.note.Title) + " " + StyleDim.Render(t.note.Description))
		if t.note.Path != "" {
			b.WriteString(" " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(t.note.Path))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Controls
// =============================================================================

func selector(value string, focused bool) string {
	if focused {
		return listSelectedStyle.Render("‹ " + value + " ›")
	}
	return StyleValue.Render(value)
}

func slider(r config.Range, v int) string {
	const cells = 16
	filled := 0
	if r.Max > r.Min {
		filled = (v - r.Min) * cells / (r.Max - r.Min)
	}
	filled = max(0, min(cells, filled))
	bar := StyleHighlight.Render(strings.Repeat("━", filled)) + StyleDim.Render(strings.Repeat("─", cells-filled))
	return fmt.Sprintf("%s %s", bar, StyleNumber.Render(fmt.Sprintf("%dpx", v)))
}

func toggle(on bool) string {
	if on {
		return StyleSuccess.Render("● on")
	}
	return StyleDim.Render("○ off")
}

func cycle[T comparable](items []T, cur T, delta int) T {
	i := slices.Index(items, cur)
	if i < 0 {
		i = 0
	}
	n := len(items)
	return items[((i+delta)%n+n)%n]
}
