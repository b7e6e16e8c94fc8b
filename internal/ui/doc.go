// Package ui holds the color themes shared by the plain-text output and the
// dashboard. Colors are looked up from the active theme on every call so that
// --no-color and NO_COLOR take effect everywhere.
package ui
