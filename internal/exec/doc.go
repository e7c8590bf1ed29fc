// Package exec implements the action executor: given a parsed vim.Command,
// it resolves motions and text-objects into byte ranges against a Text
// collaborator, runs the matching operator, and updates the View's cursors
// and selections. The buffer itself — insertion, deletion, line/byte
// indexing — is consumed through the Buffer and Editor interfaces rather
// than a concrete type, so the executor can run against anything shaped
// like workspace.File.
package exec
