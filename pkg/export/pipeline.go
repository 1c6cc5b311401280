package export

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/capture"
	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/observability"
	"github.com/matzehuels/codeshot/pkg/preview"
)

// Target is where an export is delivered.
type Target string

const (
	Download  Target = "download"
	Clipboard Target = "clipboard"
)

// Variant selects how a notification is presented.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

// Notification is a short user-facing message about an export.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
	Path        string // file written by a download, if any
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Capturer renders a preview snapshot to a data URI.
type Capturer interface {
	Capture(ctx context.Context, src capture.Source, opts capture.Options) (string, error)
}

// FileSaver stores a downloaded artifact and returns where it went.
type FileSaver interface {
	Save(ctx context.Context, name, dataURI string) (string, error)
}

// ClipboardWriter places image data on the system clipboard.
type ClipboardWriter interface {
	WriteImage(ctx context.Context, mime string, data []byte) error
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *log.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline exports the live preview at its full size.
type Pipeline struct {
	surface   *preview.Surface
	capturer  Capturer
	saver     FileSaver
	clipboard ClipboardWriter
	notifier  Notifier
	logger    *log.Logger
	busy      atomic.Bool
}

// NewPipeline wires the collaborators of an export. A nil notifier drops
// notifications.
func NewPipeline(surface *preview.Surface, c Capturer, saver FileSaver, clip ClipboardWriter, n Notifier, opts ...PipelineOption) *Pipeline {
	if n == nil {
		n = NotifierFunc(func(Notification) {})
	}
	p := &Pipeline{
		surface:   surface,
		capturer:  c,
		saver:     saver,
		clipboard: clip,
		notifier:  n,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Busy reports whether an export is in progress.
func (p *Pipeline) Busy() bool {
	return p.busy.Load()
}

// Export captures the preview at dims and delivers it to target.
//
// While capturing, the live block is widened to dims.Width and its code is
// laid out unwrapped and unclipped. The previous inline styles are restored
// before delivery and on every error path. The outcome is reported to the
// notifier; the error is returned as well. Export does nothing when the
// preview is not mounted.
func (p *Pipeline) Export(ctx context.Context, target Target, cfg config.ExportConfig, dims Dimensions) (err error) {
	root := p.surface.Root()
	if root == nil {
		return nil
	}
	pre := root.Query("pre")
	if pre == nil {
		return nil
	}
	if !p.busy.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeBusy, "an export is already in progress")
	}
	defer p.busy.Store(false)

	format, ratio := cfg.Format, cfg.PixelRatio()
	if target == Clipboard {
		format, ratio = config.PNG, cfg.Density.Multiplier()
	}

	start := time.Now()
	observability.Export().OnExportStart(ctx, string(target), string(format), ratio)
	defer func() {
		elapsed := time.Since(start)
		observability.Export().OnExportComplete(ctx, string(target), elapsed, err)
		if err != nil {
			p.logger.Error("export failed", "target", target, "format", format, "error", err)
			p.notifier.Notify(failure(target))
			return
		}
		p.logger.Debug("export finished", "target", target, "format", format, "took", elapsed)
	}()

	if target != Download && target != Clipboard {
		return errors.New(errors.ErrCodeInvalidInput, "unknown export target %q", target)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	uri, err := p.captureExpanded(ctx, root, pre, format, ratio, dims)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch target {
	case Download:
		name := FileName(cfg.OutputFileBaseName, cfg.Format)
		path, err := p.saver.Save(ctx, name, uri)
		if err != nil {
			return errors.Wrap(errors.ErrCodeSaveFailed, err, "save %s", name)
		}
		p.logger.Info("image exported", "path", path, "width", dims.Width*ratio, "height", dims.Height*ratio)
		p.notifier.Notify(Notification{
			Title:       "Image exported",
			Description: fmt.Sprintf("Your code image has been downloaded as %s.", format.Label()),
			Path:        path,
		})
	case Clipboard:
		mime, data, err := capture.DecodeDataURI(uri)
		if err != nil {
			return errors.Wrap(errors.ErrCodeClipboardFailed, err, "decode capture")
		}
		if err := p.clipboard.WriteImage(ctx, mime, data); err != nil {
			return errors.Wrap(errors.ErrCodeClipboardFailed, err, "write clipboard")
		}
		p.logger.Info("image copied to clipboard", "bytes", len(data))
		p.notifier.Notify(Notification{
			Title:       "Copied to clipboard",
			Description: "Your code image has been copied to clipboard.",
		})
	}
	return nil
}

// captureExpanded holds the export layout only for the duration of the
// capture.
func (p *Pipeline) captureExpanded(ctx context.Context, root, pre *preview.Element, format config.Format, ratio int, dims Dimensions) (string, error) {
	release, err := p.surface.Override(
		preview.Set(root, "width", fmt.Sprintf("%dpx", dims.Width)),
		preview.Set(root, "overflow", "visible"),
		preview.Set(pre, "width", "auto"),
		preview.Set(pre, "overflow", "visible"),
		preview.Set(pre, "white-space", "pre"),
	)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCaptureFailed, err, "expand preview")
	}
	defer release()

	start := time.Now()
	uri, err := p.capturer.Capture(ctx, p.surface, capture.Options{
		Format:     format,
		Width:      dims.Width,
		Height:     dims.Height,
		PixelRatio: ratio,
		CacheBust:  true,
		Style: map[string]string{
			"display":  "inline-block",
			"overflow": "visible",
		},
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCaptureFailed, err, "capture %s", format)
	}
	p.logger.Debug("captured preview", "format", format, "ratio", ratio, "took", time.Since(start))
	return uri, nil
}

func failure(target Target) Notification {
	if target == Clipboard {
		return Notification{
			Title:       "Copy failed",
			Description: "There was an error copying your image.",
			Variant:     VariantDestructive,
		}
	}
	return Notification{
		Title:       "Export failed",
		Description: "There was an error exporting your image.",
		Variant:     VariantDestructive,
	}
}
