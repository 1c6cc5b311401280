// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about preview layout and image export.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages can
// emit events without importing a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, target, format, density)
//	// ... capture and deliver ...
//	observability.Export().OnExportComplete(ctx, target, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export pipeline.
type ExportHooks interface {
	// OnExportStart records the start of an export to target ("download" or "clipboard").
	OnExportStart(ctx context.Context, target, format string, density int)

	// OnCaptureComplete records a finished capture and the artifact size in bytes.
	OnCaptureComplete(ctx context.Context, format string, size int, duration time.Duration, err error)

	// OnExportComplete records the end of an export, successful or not.
	OnExportComplete(ctx context.Context, target string, duration time.Duration, err error)
}

// =============================================================================
// Preview Hooks
// =============================================================================

// PreviewHooks receives events from the live preview.
type PreviewHooks interface {
	// OnLayout records a reflow and the resulting root size.
	OnLayout(ctx context.Context, width, height int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, string, int) {}
func (NoopExportHooks) OnCaptureComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopExportHooks) OnExportComplete(context.Context, string, time.Duration, error) {}

// NoopPreviewHooks is a no-op implementation of PreviewHooks.
type NoopPreviewHooks struct{}

func (NoopPreviewHooks) OnLayout(context.Context, int, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks  ExportHooks  = NoopExportHooks{}
	previewHooks PreviewHooks = NoopPreviewHooks{}
	hooksMu      sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetPreviewHooks registers custom preview hooks.
// This should be called once at application startup before mounting a preview.
func SetPreviewHooks(h PreviewHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		previewHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Preview returns the registered preview hooks.
func Preview() PreviewHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return previewHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	previewHooks = NoopPreviewHooks{}
}
