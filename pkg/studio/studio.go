// Package studio holds the state of one code image editor: the render and
// export settings, the mounted preview, its dimension tracker and the
// export pipeline.
//
// A Studio has a single owner goroutine. Only [Studio.Export] and
// [Studio.Busy] may be called from another goroutine while the owner
// refrains from editing, which is what the busy flag is for.
package studio

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/capture"
	"github.com/matzehuels/codeshot/pkg/clipboard"
	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/export"
	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/preview"
)

// WideThreshold is the width above which exports are flagged as wide.
const WideThreshold = 1000

type options struct {
	render    config.RenderConfig
	export    *config.ExportConfig
	viewport  float64
	measurer  preview.Measurer
	logger    *log.Logger
	capturer  export.Capturer
	saver     export.FileSaver
	clipboard export.ClipboardWriter
	notifier  export.Notifier
}

// Option configures a Studio.
type Option func(*options)

// WithRenderConfig sets the initial render settings.
func WithRenderConfig(cfg config.RenderConfig) Option {
	return func(o *options) { o.render = cfg }
}

// WithExportConfig sets the initial export settings.
func WithExportConfig(cfg config.ExportConfig) Option {
	return func(o *options) { o.export = &cfg }
}

// WithViewportWidth sets the width available to the preview block.
func WithViewportWidth(px float64) Option {
	return func(o *options) { o.viewport = px }
}

// WithMeasurer replaces the font metrics used for layout.
func WithMeasurer(m preview.Measurer) Option {
	return func(o *options) { o.measurer = m }
}

// WithLogger sets the logger shared by the preview and the pipeline.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCapturer replaces the capture backend.
func WithCapturer(c export.Capturer) Option {
	return func(o *options) { o.capturer = c }
}

// WithFileSaver sets where downloads go.
func WithFileSaver(s export.FileSaver) Option {
	return func(o *options) { o.saver = s }
}

// WithClipboard sets the clipboard used by copy exports.
func WithClipboard(c export.ClipboardWriter) Option {
	return func(o *options) { o.clipboard = c }
}

// WithNotifier sets the receiver of export notifications.
func WithNotifier(n export.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// Studio is the editor state.
type Studio struct {
	cfg      config.RenderConfig
	export   config.ExportConfig
	doc      *highlight.Document
	surface  *preview.Surface
	tracker  *export.Tracker
	pipeline *export.Pipeline
	logger   *log.Logger
}

// New mounts a preview for the configured settings.
func New(opts ...Option) (*Studio, error) {
	o := options{
		render:    config.DefaultRenderConfig(),
		logger:    log.New(io.Discard),
		saver:     &export.DirSaver{Dir: "."},
		clipboard: clipboard.System{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.render.Validate(); err != nil {
		return nil, err
	}
	ec := config.DefaultExportConfig(o.render.DisplayFileName)
	if o.export != nil {
		ec = *o.export
	}
	if err := ec.Validate(); err != nil {
		return nil, err
	}
	if o.capturer == nil {
		o.capturer = capture.New(capture.WithLogger(o.logger))
	}

	doc, err := highlight.Highlight(o.render.SourceText, o.render.Language, o.render.Theme)
	if err != nil {
		return nil, err
	}

	popts := []preview.Option{
		preview.WithViewportWidth(o.viewport),
		preview.WithLogger(o.logger),
	}
	if o.measurer != nil {
		popts = append(popts, preview.WithMeasurer(o.measurer))
	}
	surface := preview.Mount(o.render, doc, popts...)

	s := &Studio{
		cfg:     o.render,
		export:  ec,
		doc:     doc,
		surface: surface,
		tracker: export.NewTracker(surface, o.render.Padding).Watch(),
		logger:  o.logger,
	}
	s.pipeline = export.NewPipeline(surface, o.capturer, o.saver, o.clipboard, o.notifier, export.WithLogger(o.logger))
	return s, nil
}

// Config returns the current render settings.
func (s *Studio) Config() config.RenderConfig { return s.cfg }

// ExportConfig returns the current export settings.
func (s *Studio) ExportConfig() config.ExportConfig { return s.export }

// Document returns the highlighted source.
func (s *Studio) Document() *highlight.Document { return s.doc }

// Surface returns the mounted preview.
func (s *Studio) Surface() *preview.Surface { return s.surface }

// Tracker returns the dimension tracker.
func (s *Studio) Tracker() *export.Tracker { return s.tracker }

// Apply edits the render settings. The preview is rebuilt and, when the
// edit can change its size, the dimensions are recomputed. An invalid
// edit leaves everything as it was.
func (s *Studio) Apply(fn func(*config.RenderConfig)) error {
	next := s.cfg
	fn(&next)
	return s.apply(next)
}

// Reset restores the default render settings.
func (s *Studio) Reset() error {
	next := s.cfg
	next.Reset()
	return s.apply(next)
}

func (s *Studio) apply(next config.RenderConfig) error {
	if err := next.Validate(); err != nil {
		return err
	}
	prev := s.cfg
	doc := s.doc
	if next.SourceText != prev.SourceText || next.Language != prev.Language || next.Theme != prev.Theme {
		d, err := highlight.Highlight(next.SourceText, next.Language, next.Theme)
		if err != nil {
			return err
		}
		doc = d
	}

	s.cfg, s.doc = next, doc
	if s.export.OutputFileBaseName == prev.DisplayFileName {
		s.export.OutputFileBaseName = next.DisplayFileName
	}
	if next == prev {
		return nil
	}

	// The surface notifies the tracker while updating, so the padding has to
	// be in place first.
	s.tracker.SetPadding(next.Padding)
	s.surface.Update(next, doc)
	if next.AffectsLayout(prev) {
		s.tracker.Recompute()
	}
	s.logger.Debug("settings applied", "dims", s.tracker.Dimensions())
	return nil
}

// SetExport edits the export settings.
func (s *Studio) SetExport(fn func(*config.ExportConfig)) error {
	next := s.export
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.export = next
	return nil
}

// SetViewportWidth changes the width available to the preview.
func (s *Studio) SetViewportWidth(px float64) {
	s.surface.SetViewportWidth(px)
}

// OnDimensionsChange registers fn to run whenever the tracked size changes.
// fn may run on the owner goroutine from within Apply or SetViewportWidth.
func (s *Studio) OnDimensionsChange(fn func(export.Dimensions)) {
	s.tracker.OnChange(fn)
}

// Dimensions returns the tracked size of the preview block.
func (s *Studio) Dimensions() export.Dimensions {
	return s.tracker.Dimensions()
}

// Estimate is one row of the export size table.
type Estimate struct {
	Label      string
	Dimensions export.Dimensions
}

// String formats the estimate as "label: w×h".
func (e Estimate) String() string {
	return fmt.Sprintf("%s: %d×%d", e.Label, e.Dimensions.Width, e.Dimensions.Height)
}

// Estimates lists the output sizes for the current format: one row per
// density for PNG, the base size for SVG.
func (s *Studio) Estimates() []Estimate {
	dims := s.Dimensions()
	if !s.export.Format.Raster() {
		return []Estimate{{Label: "Base", Dimensions: dims}}
	}
	out := make([]Estimate, 0, len(config.Densities()))
	for _, d := range config.Densities() {
		out = append(out, Estimate{Label: d.String(), Dimensions: dims.Scaled(d)})
	}
	return out
}

// WideWarning reports whether the image is wider than WideThreshold.
func (s *Studio) WideWarning() bool {
	return s.Dimensions().Width > WideThreshold
}

// Busy reports whether an export is running.
func (s *Studio) Busy() bool {
	return s.pipeline.Busy()
}

// Export captures the preview and delivers it to target. It refuses to
// start while another export is running.
func (s *Studio) Export(ctx context.Context, target export.Target) error {
	if s.Busy() {
		return errors.New(errors.ErrCodeBusy, "an export is already in progress")
	}
	return s.pipeline.Export(ctx, target, s.export, s.Dimensions())
}

// Close stops tracking and unmounts the preview.
func (s *Studio) Close() {
	s.tracker.Close()
	s.surface.Unmount()
}
