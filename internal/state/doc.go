// Package state shares the latest polled stock page between the background
// poller and the TUI.
//
// The poller is the single writer (Update); the UI reads copies (Snapshot).
// A failed poll keeps the previous page and records the error, so the UI can
// keep showing stock while reporting that the inventory API is unreachable.
// IsOffline turns true after two consecutive failures.
//
// The zero Store is ready to use.
package state
