// Package ui implements the Stockroom scanning station on Bubble Tea.
//
// The station has two views. The stock view is a table of the latest stock
// page, refreshed from state.Store on every tick. The shelf view shows the
// active shelf, its subshelves and the items on them.
//
// Scans are typed or fed by a keyboard-wedge barcode reader into the prompt
// opened with "s". Each submitted code is normalized (UPC-E codes expand to
// UPC-A), optionally resolved against the catalog lookup service, and then
// added to or removed from the active shelf depending on the scan mode ("m").
// The prompt stays open so consecutive scans need no extra keys.
//
// The active shelf and theme persist through the prefs package.
package ui
