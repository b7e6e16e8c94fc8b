// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// simulation, timeout) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that wrap a cause implement Unwrap() to support errors.Is()
// and errors.As().
//
// Invariant violations inside the trial kernel are not represented here: they
// are programming defects and surface as panics.
package apperrors
