package app

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Application methods.
var (
	// ErrQuit names a user-requested quit (:q, :q!, ZZ, ZQ). Run does not
	// return it: a quit ends Run with a nil error. cmd/keystorm still
	// treats it as a clean exit.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called while already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called before SetBackend.
	ErrNoBackend = errors.New("no ui backend set")

	// ErrUnsavedChanges names a close/quit refused because the target
	// window's file has unsaved edits and the command did not force it
	// (":q" without "!"). closeActive does not return it; it logs a
	// warning and reports the window as still open.
	ErrUnsavedChanges = errors.New("unsaved changes")
)

// InitError wraps a failure to bring up a component during New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
