// Package mode implements the modal editing graph: the set of modes
// named by spec.md §3/§4.2 and the transitions between them.
//
//   - NORMAL: navigation and commands
//   - INSERT: text input
//   - VISUAL, VISUAL LINE, VISUAL BLOCK: character/line/block selection
//   - COMMAND: shared ':' ex-entry / '/'? search-entry readline line
//   - OPERATOR_PENDING, REPLACE: single-key waits layered on top of
//     NORMAL while vim.Parser holds StateOperator*/StateReplaceChar
//
// # Architecture
//
// Mode is the contract every mode implements: a name, a display name
// and cursor style for rendering, and Enter/Exit/HandleUnmapped for the
// mode graph to drive. Manager holds the registered modes, tracks which
// one is current, and runs Exit/Enter across a transition — but it does
// not decide when to switch, nor does it resolve key bindings.
//
// Binding resolution (spec.md §4.1's exact/prefix/none walk) belongs to
// vim.Parser, not to this package: a key either completes a
// vim.Command, extends a pending sequence, is rejected as invalid, or
// passes through. Passthrough is this package's entry point —
// app/dispatch.go calls the current mode's HandleUnmapped only once
// vim.Parser has said it has no opinion on a key, for the handful of
// things the grammar doesn't cover (typed text in INSERT, a cancel in
// COMMAND, mode-switch keys like 'i'/'v'/':' in NORMAL).
//
// OPERATOR_PENDING and REPLACE never receive a HandleUnmapped call in
// practice: every key that continues or resolves
// StateOperator/StateOperatorCount/StateTextObjectPrefix/
// StateReplaceChar is consumed by vim.Parser itself. app/dispatch.go
// pushes and pops these two modes purely so Manager.Current().
// CursorStyle() reflects the wait — see syncOperatorPendingMode and
// syncReplacePendingMode.
package mode
