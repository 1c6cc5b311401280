// Package config defines the user-editable settings of a code snippet image.
//
// # Render settings
//
// [RenderConfig] holds everything that affects how the preview looks: the
// source text, its [Language] and [Theme], padding, corner radius, line
// numbers, the simulated window title bar and the background color.
// [DefaultRenderConfig] returns the settings a fresh session starts with and
// [RenderConfig.Reset] restores them in place.
//
// # Export settings
//
// [ExportConfig] selects the artifact [Format] (PNG or SVG), the raster
// [Density] and the base name of the downloaded file.
//
// # Ranges
//
// Padding and corner radius are bounded by the input controls through
// [PaddingRange] and [RadiusRange], not by the model itself. Any non-negative
// value set programmatically is rendered as given.
//
// # Startup defaults
//
// [Load] reads an optional TOML file whose values overlay the built-in
// defaults via [File.Apply]. The file is never written back.
package config
