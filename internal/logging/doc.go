// Package logging builds spaggo's zap logger.
//
// Output is zap's console encoding on stderr, optionally duplicated to the
// configured log file so the logs command can tail it. Levels follow the
// config file or SPAGGO_LOG_LEVEL; --verbose forces debug.
package logging
