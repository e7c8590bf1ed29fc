// Package vim parses Vim-style normal-mode key sequences into commands.
//
// A sequence is built up one key.Event at a time by feeding each event to
// Parser.Parse. The grammar:
//
//	[count]["register][operator][count][motion|text-object]
//	[count]["register][operator][operator]  (line-wise: dd, yy, cc)
//	[count][motion]
//	[count]["register][simple-command]
//
// Examples: "5j" (move down 5), "d3w" (delete 3 words), "diw" (delete
// inner word), `"ayw` (yank word into register a), "5dd" (delete 5 lines).
//
// Parse returns a ParseResult on every call. StatusPending means the
// sequence is incomplete and the caller should wait for the next event;
// StatusComplete means result.Command is ready to dispatch; StatusInvalid
// means the sequence cannot be completed and the parser has reset itself.
//
//	parser := vim.NewParser()
//	result := parser.Parse(keyEvent)
//	switch result.Status {
//	case vim.StatusComplete:
//	    // dispatch result.Command
//	case vim.StatusPending:
//	    // wait for more input
//	case vim.StatusInvalid:
//	    // parser already reset; surface a bell or error
//	}
package vim
