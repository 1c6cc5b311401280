package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/pkg/buildinfo"
	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "codeshot"

	// defaultCellWidth approximates the pixel width of one terminal column.
	defaultCellWidth = 8
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command opens the interactive editor.
func (c *CLI) RootCommand() *cobra.Command {
	opts := &editorOptions{}
	root := &cobra.Command{
		Use:   "codeshot [file]",
		Short: "codeshot turns code snippets into images",
		Long: `codeshot is an interactive editor for styling a code snippet (theme, padding,
corner radius, line numbers, window controls, background) and exporting it
as a PNG or SVG image, or copying it to the clipboard.`,
		Version:      buildinfo.Get().Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.file = args[0]
			}
			return c.runEditor(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	opts.register(root)

	root.AddCommand(c.themesCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfigFile reads the startup defaults. An explicit path must exist;
// the default path may be absent.
func loadConfigFile(path string) (config.File, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return config.File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return config.Load(path)
	}
	def, err := config.DefaultPath()
	if err != nil {
		return config.File{}, nil
	}
	return config.Load(def)
}
