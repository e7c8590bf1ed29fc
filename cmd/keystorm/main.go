// Command keystorm is the terminal entry point for the editor core: it
// parses the CLI surface spec.md §6 describes, wires a tcell-backed
// internal/ui.Terminal to internal/app.Application, and runs the main
// loop until the user quits or a fatal error forces an exit.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arjunrao/modaltext/internal/app"
	"github.com/arjunrao/modaltext/internal/ui"
)

// version and date are set via -ldflags at build time.
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, startupCmds, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if opts == nil {
		return 0 // -v handled and printed already
	}

	application, err := app.New(*opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keystorm: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	term, err := ui.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keystorm: terminal init: %v\n", err)
		return 1
	}
	application.SetBackend(term)

	for _, cmd := range startupCmds {
		application.RunStartupCommand(cmd)
	}

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "keystorm: %v\n", err)
		return application.ExitStatus()
	}
	return application.ExitStatus()
}

// parseArgs implements spec.md §6's CLI surface by hand rather than the
// stdlib flag package: `-v`, `--`, `+CMD`, a lone trailing `-` for stdin,
// and otherwise-bare filename arguments all need ordering and grouping
// flag.Parse doesn't give us.
func parseArgs(args []string) (*app.Options, []string, error) {
	opts := &app.Options{LogLevel: "info"}
	var startupCmds []string
	endOfOptions := false
	stdinMode := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !endOfOptions && arg == "--" {
			endOfOptions = true
			continue
		}
		if !endOfOptions && (arg == "-v" || arg == "--version") {
			fmt.Printf("keystorm %s (built %s)\n", version, buildDate)
			return nil, nil, nil
		}
		if !endOfOptions && len(arg) > 1 && arg[0] == '+' {
			startupCmds = append(startupCmds, arg[1:])
			continue
		}
		if arg == "-" && i == len(args)-1 {
			stdinMode = true
			continue
		}
		opts.Files = append(opts.Files, arg)
	}

	if stdinMode {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("keystorm: read stdin: %w", err)
		}
		opts.StdinBuffer = data
		if err := reopenControllingTTY(); err != nil {
			return nil, nil, fmt.Errorf("keystorm: reopen tty: %w", err)
		}
	}

	return opts, startupCmds, nil
}
