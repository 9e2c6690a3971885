// Package filesystem watches the entry directory and feed file for changes.
//
// Watcher wraps fsnotify. Bursts of events (an editor saving, a fetch run
// writing many entries) are coalesced into one batch after a quiet period.
package filesystem
