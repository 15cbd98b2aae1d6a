// Package viz renders methods, run summaries and method comparisons for the
// terminal using lipgloss.
package viz
