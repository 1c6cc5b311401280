package cli

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/pkg/capture"
	"github.com/matzehuels/codeshot/pkg/clipboard"
	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/export"
	"github.com/matzehuels/codeshot/pkg/studio"
)

// editorOptions holds the flags of the root command.
type editorOptions struct {
	file       string
	language   string
	theme      string
	configPath string
	outputDir  string
	logFile    string
}

func (o *editorOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.language, "language", "l", "", "syntax highlighting language (default: from file extension)")
	flags.StringVarP(&o.theme, "theme", "t", "", "color theme (see 'codeshot themes')")
	flags.StringVarP(&o.outputDir, "output-dir", "o", "", "directory for downloaded images (default: current directory)")
	flags.StringVar(&o.logFile, "log-file", "", "write logs to this file while the editor runs")
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/codeshot/config.toml)")

	_ = cmd.RegisterFlagCompletionFunc("language", completeFrom(config.Languages))
	_ = cmd.RegisterFlagCompletionFunc("theme", completeFrom(config.Themes))
}

func completeFrom[T ~string](list func() []T) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		items := list()
		out := make([]cobra.Completion, len(items))
		for i, v := range items {
			out[i] = string(v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// session is everything the editor needs to start.
type session struct {
	render    config.RenderConfig
	export    config.ExportConfig
	outputDir string
	viewport  int
	cellWidth int
}

// resolve layers the built-in defaults, the config file, the opened file
// and the flags, in that order.
func (o *editorOptions) resolve(f config.File) (session, error) {
	rc := config.DefaultRenderConfig()
	ec := config.DefaultExportConfig(rc.DisplayFileName)
	f.Apply(&rc, &ec)

	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			if os.IsNotExist(err) {
				return session{}, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", o.file)
			}
			return session{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", o.file)
		}
		rc.SourceText = string(data)
		rc.DisplayFileName = filepath.Base(o.file)
		if lang, ok := config.LanguageForFile(o.file); ok {
			rc.Language = lang
		}
	}
	if o.language != "" {
		lang, err := config.ParseLanguage(o.language)
		if err != nil {
			return session{}, err
		}
		rc.Language = lang
	}
	if o.theme != "" {
		theme, err := config.ParseTheme(o.theme)
		if err != nil {
			return session{}, err
		}
		rc.Theme = theme
	}
	if bg := rc.BackgroundColor; bg != "" {
		if _, ok := capture.ParseColor(bg); !ok {
			return session{}, errors.New(errors.ErrCodeInvalidColor, "invalid background color: %q", bg)
		}
	}
	ec.OutputFileBaseName = rc.DisplayFileName

	dir := o.outputDir
	if dir == "" {
		dir = f.Export.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	if err := errors.ValidateDir(dir); err != nil {
		return session{}, err
	}

	cell := f.Preview.CellWidth
	if cell == 0 {
		cell = defaultCellWidth
	}
	return session{
		render:    rc,
		export:    ec,
		outputDir: dir,
		viewport:  f.Preview.ViewportWidth,
		cellWidth: cell,
	}, nil
}

// runEditor opens the interactive editor.
func (c *CLI) runEditor(cmd *cobra.Command, o *editorOptions) error {
	ctx := cmd.Context()

	file, err := loadConfigFile(o.configPath)
	if err != nil {
		return err
	}
	sess, err := o.resolve(file)
	if err != nil {
		return err
	}
	c.Logger.Debug("starting editor",
		"language", sess.render.Language,
		"theme", sess.render.Theme.DisplayName(),
		"output", sess.outputDir)

	logger, closeLog, err := openLogFile(o.logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closeLog()
	ctx = withLogger(ctx, logger)

	notes := make(chan export.Notification, 8)
	st, err := studio.New(
		studio.WithRenderConfig(sess.render),
		studio.WithExportConfig(sess.export),
		studio.WithViewportWidth(float64(sess.viewport)),
		studio.WithLogger(logger),
		studio.WithFileSaver(&export.DirSaver{Dir: sess.outputDir}),
		studio.WithClipboard(clipboard.System{}),
		studio.WithNotifier(chanNotifier(notes)),
	)
	if err != nil {
		return err
	}
	defer st.Close()

	sw := startStopwatch(logger)
	model := newEditorModel(ctx, st, notes, clipboard.System{}, editorSettings{
		cellWidth:     sess.cellWidth,
		fixedViewport: sess.viewport > 0,
	})
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	sw.done("editor closed")
	if err != nil {
		return err
	}

	if m, ok := final.(*editorModel); ok {
		printExports(cmd.OutOrStdout(), m.saved)
	}
	return nil
}

// chanNotifier forwards notifications to ch without blocking the export.
func chanNotifier(ch chan<- export.Notification) export.Notifier {
	return export.NotifierFunc(func(n export.Notification) {
		select {
		case ch <- n:
		default:
		}
	})
}
