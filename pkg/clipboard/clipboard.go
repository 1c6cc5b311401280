// Package clipboard reads text from and writes images to the system
// clipboard.
//
// Text goes through github.com/atotto/clipboard. Image data has no portable
// API, so [System.WriteImage] shells out to the platform tool: wl-copy on
// Wayland, xclip on X11, osascript on macOS and PowerShell on Windows.
package clipboard

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// System is the desktop clipboard. The zero value is ready to use.
type System struct {
	// GOOS overrides runtime.GOOS.
	GOOS string
	// Getenv overrides os.Getenv.
	Getenv func(string) string
	// LookPath overrides exec.LookPath.
	LookPath func(string) (string, error)
	// Run overrides command execution; stdin is written to the command.
	Run func(ctx context.Context, stdin []byte, name string, args ...string) error
}

// command is one clipboard tool invocation.
type command struct {
	name  string
	args  []string
	stdin bool
}

// WriteImage places data of the given mime type on the clipboard.
func (s System) WriteImage(ctx context.Context, mime string, data []byte) error {
	if len(data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no image data")
	}
	goos := s.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	switch goos {
	case "darwin":
		return s.writeViaFile(ctx, mime, data, func(path string) command {
			class := "«class PNGf»"
			if mime != "image/png" {
				class = "«class utf8»"
			}
			script := fmt.Sprintf("set the clipboard to (read (POSIX file %q) as %s)", path, class)
			return command{name: "osascript", args: []string{"-e", script}}
		})
	case "windows":
		return s.writeViaFile(ctx, mime, data, func(path string) command {
			script := fmt.Sprintf(
				"Add-Type -AssemblyName System.Windows.Forms; Add-Type -AssemblyName System.Drawing; "+
					"[System.Windows.Forms.Clipboard]::SetImage([System.Drawing.Image]::FromFile('%s'))",
				strings.ReplaceAll(path, "'", "''"))
			return command{name: "powershell", args: []string{"-NoProfile", "-NonInteractive", "-Command", script}}
		})
	default:
		cmd, err := s.unixCommand(mime)
		if err != nil {
			return err
		}
		return s.exec(ctx, data, cmd)
	}
}

// unixCommand picks wl-copy under Wayland and xclip otherwise.
func (s System) unixCommand(mime string) (command, error) {
	candidates := []command{
		{name: "xclip", args: []string{"-selection", "clipboard", "-t", mime, "-i"}, stdin: true},
	}
	if s.getenv("WAYLAND_DISPLAY") != "" {
		candidates = append([]command{{name: "wl-copy", args: []string{"--type", mime}, stdin: true}}, candidates...)
	}
	for _, c := range candidates {
		if _, err := s.lookPath(c.name); err == nil {
			return c, nil
		}
	}
	return command{}, errors.New(errors.ErrCodeUnsupported, "no clipboard tool found (install wl-clipboard or xclip)")
}

// writeViaFile stages data in a temp file for tools that cannot read stdin.
func (s System) writeViaFile(ctx context.Context, mime string, data []byte, build func(path string) command) error {
	cmd := build("")
	if _, err := s.lookPath(cmd.name); err != nil {
		return errors.New(errors.ErrCodeUnsupported, "%s is not available", cmd.name)
	}

	dir, err := os.MkdirTemp("", "codeshot-clip-")
	if err != nil {
		return errors.Wrap(errors.ErrCodeClipboardFailed, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	ext := ".png"
	if mime == "image/svg+xml" {
		ext = ".svg"
	}
	path := filepath.Join(dir, "clip"+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeClipboardFailed, err, "stage image")
	}
	return s.exec(ctx, nil, build(path))
}

func (s System) exec(ctx context.Context, data []byte, c command) error {
	var stdin []byte
	if c.stdin {
		stdin = data
	}
	if err := s.run(ctx, stdin, c.name, c.args...); err != nil {
		return errors.Wrap(errors.ErrCodeClipboardFailed, err, "%s", c.name)
	}
	return nil
}

// ReadText returns the clipboard's text content.
func (s System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeClipboardFailed, err, "read clipboard")
	}
	return text, nil
}

// WriteText replaces the clipboard's content with text.
func (s System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Wrap(errors.ErrCodeClipboardFailed, err, "write clipboard")
	}
	return nil
}

// Available reports whether text clipboard access is supported here.
func (s System) Available() bool {
	return !clipboard.Unsupported
}

func (s System) getenv(key string) string {
	if s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

func (s System) lookPath(name string) (string, error) {
	if s.LookPath != nil {
		return s.LookPath(name)
	}
	return exec.LookPath(name)
}

// waitDelay bounds how long Wait lingers on inherited pipes after the tool
// exits. xclip and wl-copy fork a child that keeps serving the selection.
const waitDelay = 2 * time.Second

func (s System) run(ctx context.Context, stdin []byte, name string, args ...string) error {
	if s.Run != nil {
		return s.Run(ctx, stdin, name, args...)
	}
	// A file rather than a buffer: a pipe would stay open in the forked
	// child and Wait would block until it exits.
	stderr, err := os.CreateTemp("", "codeshot-clip-*.log")
	if err != nil {
		return err
	}
	defer os.Remove(stderr.Name())
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	err = cmd.Run()
	if err == nil || stderrors.Is(err, exec.ErrWaitDelay) {
		return nil
	}
	if msg, _ := os.ReadFile(stderr.Name()); len(bytes.TrimSpace(msg)) > 0 {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(msg))
	}
	return err
}
