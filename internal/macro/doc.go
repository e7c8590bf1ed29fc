// Package macro implements spec.md §4.7's user recording: the q<reg>
// ... q keystream, stored by register and replayed with @<reg> or @@.
// Registers are a-z/0-9. internal/vim's RegisterStore for yank/delete
// registers accepts these names too, but the two are unrelated stores.
//
// # Recording
//
// StartRecording begins capturing to a register; Record appends each
// key event while recording is active; StopRecording saves the capture
// and ends it. Naming an uppercase register (A-Z) appends to the
// lowercase register of the same letter instead of replacing it.
//
// Example:
//
//	recorder := macro.NewRecorder()
//	recorder.StartRecording('a')
//	// ... user types keys, each passed to Record() ...
//	recorder.StopRecording()
//
// # Playback
//
// Player replays a register's events through a callback, optionally
// repeated count times.
//
// Example:
//
//	player := macro.NewPlayer(recorder)
//	player.Play('a', 5, func(event key.Event) {
//	    // Handle replayed event
//	})
//
// # Persistence
//
// Recorder's registers round-trip through persistence.go as a YAML
// sidecar file, so recorded macros survive across editor sessions.
//
// # Thread Safety
//
// Recorder and Player are safe for concurrent use; recording and
// playback can occur from different goroutines.
package macro
