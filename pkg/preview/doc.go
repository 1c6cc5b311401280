// Package preview models the live code block as a small element tree with
// inline styles, lays it out, and exposes DOM-like measurements.
//
// # Tree
//
// [Build] renders a config and a highlighted document into
//
//	div.block            padding, border-radius, background, max-width: 100%
//	  div.chrome         optional window title bar (three dots, file name)
//	  pre                code background, overflow: auto, white-space: pre
//	    code             highlighted lines, optional line-number gutter
//
// # Surface
//
// A [Surface] is the mounted preview. It reflows lazily when styles change,
// bounds the block by its viewport width, and notifies resize observers
// registered with [Surface.Observe] when the root box changes size.
//
// [Element.ScrollWidth] reports the width of an element's content together
// with any overflowing descendants, excluding the element's own inline
// padding, so callers that add padding back get the true outer width.
// [Element.ScrollHeight] covers the padding box.
//
// # Overrides and snapshots
//
// [Surface.Override] temporarily assigns inline styles and returns a release
// function restoring the exact prior values. [Surface.Snapshot] flattens the
// current layout into a [DisplayList] for the capture backends.
package preview
