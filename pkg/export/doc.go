// Package export measures the live preview and turns it into image files.
//
// Two pieces cooperate:
//
//   - [Tracker] keeps the true, unclipped pixel size of the preview block.
//     The preview may be narrower than its code (max-width: 100% plus a
//     scrolling pre), so the tracker reads scroll sizes rather than boxes.
//   - [Pipeline] expands the live block to the tracked size, captures it,
//     and restores the previous layout on every exit path before handing
//     the artifact to a file saver or the clipboard.
//
// # Usage
//
//	tracker := export.NewTracker(surface, cfg.Padding).Watch()
//	defer tracker.Close()
//
//	p := export.NewPipeline(surface, capture.New(), &export.DirSaver{Dir: "."}, clipboard.System{}, notifier)
//	err := p.Export(ctx, export.Download, exportCfg, tracker.Dimensions())
//
// Failures are reported to the [Notifier] and also returned, so callers may
// ignore the error when a notification is enough.
package export
