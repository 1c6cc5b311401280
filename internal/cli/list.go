package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/pkg/config"
)

// themesCommand lists the color themes.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(config.Themes()))
			for _, t := range config.Themes() {
				rows = append(rows, []string{t.DisplayName(), string(t), t.ChromaStyle()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Theme", "Slug", "Chroma style"}, rows))
			return nil
		},
	}
}

// languagesCommand lists the highlighting languages.
func (c *CLI) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLanguages(cmd.OutOrStdout())
		},
	}
}

func printLanguages(w io.Writer) error {
	rows := make([][]string, 0, len(config.Languages()))
	for _, l := range config.Languages() {
		rows = append(rows, []string{l.DisplayName(), string(l), strings.Join(config.Extensions(l), " ")})
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"Language", "Name", "Extensions"}, rows))
	return err
}

// renderTable renders rows with the shared table styling.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			default:
				return cellStyle.Foreground(colorWhite)
			}
		}).
		Render()
}
