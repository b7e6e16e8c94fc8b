// Package logging wraps zerolog behind a small Logger interface with typed
// fields. Diagnostics go to stderr, as console text or JSON lines.
package logging
