// Package config loads proptrack settings.
//
// Settings are layered, lowest precedence first:
//
//   - built-in defaults (Default)
//   - a TOML or YAML file, chosen by extension
//   - PROPTRACK_* environment variables
//
// A Watcher reloads the file when it changes on disk so theme and timing
// edits apply to a running host.
//
// Example file (TOML):
//
//	[theme]
//	opacity = 0.85
//	draw_frame = true
//
//	[theme.dark]
//	text = "#e8e8e8"
//	background = "#2b2d30"
//
//	[timing]
//	fade_ms = 150
//
//	[keys]
//	accept = "Enter"
//	next = "Tab"
package config
