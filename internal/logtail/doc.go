// Package logtail reads lexicon's own glog output.
//
// glog writes to files rather than the terminal so the TUI keeps a clean
// screen. It keeps a symlink per severity (lexicon.INFO, lexicon.WARNING, ...)
// in its log directory pointing at the newest file. Path builds that name,
// Read returns the last N lines using a ring buffer (one pass, O(N) memory),
// Filter keeps records at or above a severity and Colorize highlights
// warnings and errors for the terminal.
//
// A glog record starts with its severity letter and the date:
//
//	W0307 10:00:02.000000 1234 sync.go:190] Subscription to words failed
//
// Lines without that header belong to the record before them.
package logtail
