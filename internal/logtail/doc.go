// Package logtail reads and colorizes spaggo's log file for the logs command.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays at
// O(maxLines) regardless of file size. A missing log file is not an error:
// it simply means nothing has been logged to disk yet.
//
// ColorizeLine understands zap's console encoding (tab-separated timestamp,
// level, optional logger name, message and JSON fields) and styles the
// columns with lipgloss. Anything else passes through untouched.
package logtail
