// Package watch re-fetches grades on a cron schedule and reports new ones.
//
// A Watcher runs one check immediately and then one per schedule tick
// (robfig/cron, standard five-field specs or descriptors like @hourly).
// Overlapping ticks are skipped while a check is still running.
//
// Each check fetches the full grade list, retrying transient failures with
// exponential backoff capped at 30s. A rejected login is never retried and
// stops the watcher.
//
// The Store is shared between the cron goroutine and readers. Its first
// successful update records every grade event id as the baseline; later
// updates return only ids not seen before. Failed checks keep the previous
// grades, record the error and count consecutive failures. Two failures in a
// row mark the snapshot as offline.
package watch
