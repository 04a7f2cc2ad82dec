// Package app is spaggo's composition root.
//
// New loads the config, builds the zap logger, seeds the session state from
// the token file and wires the portal client into the request service. The
// command methods (Login, Grades, Absences, Agenda, Lessons, Watch, Logs) map
// one-to-one onto CLI commands and write tables to the configured writer, or
// to the pager when interactive mode is on.
//
// Errors are returned unchanged so the CLI can pick exit messages; a
// *service.LoginRejectedError means the token file has already been removed.
package app
