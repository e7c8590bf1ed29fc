// Package key defines the terminal key vocabulary the mode graph reads:
// Key names special and printable keys, Modifier is a Ctrl/Alt/Shift/Meta
// bitmask, and Event pairs the two into one key press. internal/ui's
// tcell backend is the only producer of Event values; everything
// downstream (vim.Parser, the mode package's HandleUnmapped methods)
// consumes them as an opaque, terminal-independent shape.
package key
