// Package viz provides terminal-rendering primitives for the demo
// harness: a Braille-based pixel canvas for the heave trace and a set of
// lipgloss color themes and styles, all used by the live monitor in
// internal/tui.
package viz
