// Package tui implements the interactive dashboard shown with --tui.
//
// The dashboard runs the same orchestration as the plain CLI and renders,
// while it runs, overall progress with ETA, the running win rate of each
// strategy, runtime memory statistics and system CPU/memory sparklines.
// Orchestration talks to the bubbletea program through the bridge types in
// bridge.go; every run is stamped with a generation so that messages from a
// restarted run are ignored.
package tui
