// Package display turns portal payloads into table rows and renders them.
//
// Projection (rows.go) canonicalizes subject names, labels event codes and
// sorts by date. Unknown subjects and codes pass through unchanged.
// Rendering (table.go) uses lipgloss tables: centered bold headers, body
// cells word-wrapped to the configured width, grade cells colored from the
// portal's own color hint. Averages (stats.go) use decimal arithmetic so
// 6.25 and 7.75 average to exactly 7.00.
package display
