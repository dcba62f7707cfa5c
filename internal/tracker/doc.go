// Package tracker implements the in-canvas property tracker.
//
// A Tracker owns an ordered list of field items, an overlay window that
// renders them next to the pointer, and an edit palette that hosts the live
// input control of the active item. It runs in one of two states:
//
//   - Running: items mirror their bound properties and the tracker follows
//     the pointer. Keys go to the running handler.
//   - Editing: exactly one item is active and owns a control in the palette.
//     Keys go to the in-edit handler and fall through to the control.
//
// The tracker is single-threaded. All methods must be called from the host
// UI loop, which also drives repaint (Draw), animation (Tick) and idle
// processing (Idle).
package tracker
