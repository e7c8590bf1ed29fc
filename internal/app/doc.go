// Package app wires the mode graph, key parser, executor, and window
// registry into a runnable editor and drives the main loop: reading
// terminal events, feeding them through the active vim.Parser, running
// completed commands through exec.Executor, and reacting to the handful
// of mode-layer actions the parser leaves as passthrough (mode switches,
// window close, cursor nudges, jumplist/changelist navigation, search,
// ex-command evaluation, and macro recording/playback).
package app
