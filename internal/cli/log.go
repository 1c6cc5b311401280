// Package cli implements the codeshot command-line interface.
//
// Running codeshot without a subcommand opens the interactive editor: a
// bubbletea program with a settings panel, a terminal rendition of the code
// block and an export dialog. The remaining commands are informational.
//
// # Commands
//
//   - codeshot [file]: edit a snippet, optionally loaded from file
//   - themes: list the color themes
//   - languages: list the highlighting languages
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. While the editor owns the terminal, logs
// go to --log-file, or nowhere.
//
// # Example
//
//	import "github.com/matzehuels/codeshot/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// newLogger returns a terminal logger with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLogFile returns the logger used while the editor owns the terminal.
// Records are appended to path in logfmt. An empty path discards them.
func openLogFile(path string, level log.Level) (*log.Logger, func(), error) {
	if path == "" {
		return discardLogger, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file")
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       log.LogfmtFormatter,
		Prefix:          appName,
	})
	return l, func() { f.Close() }, nil
}

// discardLogger is the fallback when no logger is in the context. Writing
// to stderr would corrupt the editor screen.
var discardLogger = log.New(io.Discard)

// stopwatch logs how long an operation took.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg with a "took" field and any extra key/value pairs.
func (s *stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or a logger
// that discards everything.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return discardLogger
}
