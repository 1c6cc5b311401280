// Package pkg provides the core libraries for codeshot, a code snippet to
// image editor.
//
// # Overview
//
// codeshot renders a highlighted code block inside a styled frame and exports
// it as a PNG or SVG image. The pkg directory is organized into three areas:
//
//  1. Domain logic ([config], [highlight], [preview])
//  2. Export ([capture], [export], [clipboard])
//  3. Shared infrastructure ([errors], [fonts], [observability], [buildinfo])
//
// [studio] ties them together into one editing session.
//
// # Architecture
//
// The typical data flow:
//
//	RenderConfig (source, language, theme, padding, ...)
//	         ↓
//	    [highlight] package (chroma tokens → colored lines)
//	         ↓
//	    [preview] package (element tree + layout → Surface)
//	         ↓
//	    [export] package (Tracker dimensions, expanded capture)
//	         ↓
//	    [capture] package (display list → PNG/SVG data URI)
//	         ↓
//	    file on disk or system clipboard
//
// # Quick Start
//
//	st, err := studio.New(
//	    studio.WithRenderConfig(config.RenderConfig{...}),
//	    studio.WithFileSaver(&export.DirSaver{Dir: "."}),
//	)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	_ = st.Apply(func(c *config.RenderConfig) { c.Theme = config.Dracula })
//	fmt.Println(st.Dimensions())
//	err = st.Export(ctx, export.Download)
//
// Lower-level use without a session:
//
//	doc, _ := highlight.Highlight(src, config.Go, config.AtomDark)
//	surface := preview.Mount(cfg, doc)
//	uri, _ := capture.New().Capture(ctx, surface, capture.Options{Format: config.SVG})
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/export/...   # Specific package
//
// [config]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/config
// [highlight]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/highlight
// [preview]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/preview
// [capture]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/capture
// [export]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/export
// [clipboard]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/clipboard
// [errors]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/buildinfo
// [studio]: https://pkg.go.dev/github.com/matzehuels/codeshot/pkg/studio
package pkg
