// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Texture preview view, PNG export, JSON config file with seed overrides
// 0.2.0 - Moon as a satellite of Earth, positions export, summary table
// 0.1.0 - Initial release: procedural body textures, Kepler orrery TUI
