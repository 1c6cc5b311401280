package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/errors"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	l, closeLog, err := openLogFile("", log.DebugLevel)
	if err != nil || l != discardLogger {
		t.Fatalf("openLogFile(\"\") = %v, %v", l, err)
	}
	closeLog()

	path := filepath.Join(t.TempDir(), "codeshot.log")
	l, closeLog, err = openLogFile(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("openLogFile() error: %v", err)
	}
	l.Info("image exported", "path", "/out/a.png")
	l.Debug("hidden")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"msg=\"image exported\"", "path=/out/a.png", "prefix=codeshot"} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}

	_, _, err = openLogFile(filepath.Join(t.TempDir(), "missing", "x.log"), log.InfoLevel)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("bad dir: err = %v", err)
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	sw := startStopwatch(newLogger(&buf, log.InfoLevel))
	sw.done("editor closed", "exports", 2)

	out := buf.String()
	for _, want := range []string{"editor closed", "exports=2", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != discardLogger {
		t.Error("empty context should yield the discard logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Fatal("loggerFromContext should return the stored logger")
	}
	loggerFromContext(ctx).Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}
