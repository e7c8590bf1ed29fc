// Package ui implements the app.Ui collaborator with a tcell-backed
// terminal: it turns tcell key/resize events into key.Event values for
// the mainloop's key reader and renders the one line of UI the core
// actually owns (the status line and the ':'/'/'/'?' prompt). Full
// buffer rendering, window layout, and syntax highlighting stay outside
// this package's job per spec.md's Non-goals.
package ui
