//go:build !unix

package main

import "errors"

// reopenControllingTTY has no equivalent outside unix-like platforms;
// the "-" stdin mode (spec.md §6) is unix-only.
func reopenControllingTTY() error {
	return errors.New("stdin mode ('-') is only supported on unix platforms")
}
