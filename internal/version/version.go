// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Session library (SQLite), sessions list/export/import commands
// 0.3.0 - Constellation quiz with hints, check command
// 0.2.0 - Save/load, undo/redo, erase mode, headless render
// 0.1.0 - Initial release: terminal sky map, clock modes, line drawing
