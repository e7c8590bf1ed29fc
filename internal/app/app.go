package app

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/arjunrao/modaltext/internal/config"
	"github.com/arjunrao/modaltext/internal/cursor"
	"github.com/arjunrao/modaltext/internal/exec"
	"github.com/arjunrao/modaltext/internal/macro"
	"github.com/arjunrao/modaltext/internal/mode"
	"github.com/arjunrao/modaltext/internal/vim"
	"github.com/arjunrao/modaltext/internal/workspace"
)

// Options configures the Application.
type Options struct {
	// ConfigPath is the path to an optional TOML settings file.
	ConfigPath string

	// WorkspacePath is the workspace/project directory. New stores it but
	// nothing reads it; relative file paths resolve against the process's
	// working directory.
	WorkspacePath string

	// Files are files to open on startup.
	Files []string

	// Debug enables debug-level logging.
	Debug bool

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string

	// ReadOnly opens every window read-only.
	ReadOnly bool

	// MacrosPath overrides where macro registers are persisted. Empty
	// uses macro.DefaultMacrosPath.
	MacrosPath string

	// StdinBuffer, when non-nil, seeds one scratch window with this
	// content instead of (or in addition to) opening Files: the "-"
	// trailing-argument case from spec.md §6.
	StdinBuffer []byte
}

// Application owns every core component and drives the main loop: the
// mode graph, the vim command parsers, the executor, the window
// registry, and macro recording/playback.
type Application struct {
	opts   Options
	cfg    config.Config
	logger *Logger

	registry *workspace.Registry
	windows  []*workspace.Window
	active   int
	readOnly map[*workspace.Window]bool

	modes        *mode.Manager
	cmdMode      *mode.CommandMode
	promptKind   rune
	normalParser *vim.Parser
	visualParser *vim.Parser
	registers    *vim.RegisterStore
	executor     *exec.Executor

	macros *macro.Recorder
	player *macro.Player

	repeat         repeatState
	search         searchState
	pending        pendingMacro
	lastVisualMode string

	ui       Ui
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	sigbus   atomic.Bool

	exitStatus int
}

// New creates an Application from opts: it loads configuration, wires the
// mode graph and executor, and opens the requested files (or a scratch
// buffer if none were given).
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	level := ParseLogLevel(opts.LogLevel)
	if opts.Debug {
		level = LogLevelDebug
	}
	a := &Application{
		opts:      opts,
		cfg:       cfg,
		logger:    NewLogger(level, nil),
		registry:  workspace.NewRegistry(cfg.Workspace.JumplistSize),
		readOnly:  make(map[*workspace.Window]bool),
		modes:     mode.NewManager(),
		registers: vim.NewRegisterStore(),
		macros:    macro.NewRecorder(),
		done:      make(chan struct{}),
	}
	a.player = macro.NewPlayer(a.macros)
	a.executor = exec.NewExecutor(a.registers)
	a.executor.TabWidth = cfg.Editor.TabWidth
	a.executor.ExpandTab = cfg.Editor.ExpandTab

	a.normalParser = vim.NewParser()
	a.visualParser = vim.NewVisualParser()

	a.registerModes()

	if path := a.opts.MacrosPath; path != "" {
		if err := macro.LoadOrCreate(a.macros, path); err != nil {
			a.logger.Warn("macros: %v", err)
		}
	} else if def, err := macro.DefaultMacrosPath(); err == nil {
		if err := macro.LoadOrCreate(a.macros, def); err != nil {
			a.logger.Warn("macros: %v", err)
		}
	}

	if err := a.openInitialFiles(); err != nil {
		return nil, &InitError{Component: "workspace", Err: err}
	}

	if err := a.modes.SetInitialMode(mode.ModeNormal); err != nil {
		return nil, &InitError{Component: "mode", Err: err}
	}

	return a, nil
}

// registerModes registers every mode the core exercises.
func (a *Application) registerModes() {
	a.modes.Register(mode.NewNormalMode())
	a.modes.Register(mode.NewInsertMode())
	a.modes.Register(mode.NewVisualMode())
	a.modes.Register(mode.NewVisualLineMode())
	a.modes.Register(mode.NewVisualBlockMode())
	a.modes.Register(mode.NewOperatorPendingMode())
	a.modes.Register(mode.NewReplaceMode())

	a.cmdMode = mode.NewCommandMode()
	a.modes.Register(a.cmdMode)
}

// openInitialFiles opens every requested file, falling back to a stdin
// buffer or an empty scratch window when none were given.
func (a *Application) openInitialFiles() error {
	if a.opts.StdinBuffer != nil {
		a.windows = append(a.windows, a.registry.OpenStdin(a.opts.StdinBuffer))
	}
	for _, path := range a.opts.Files {
		win, err := a.registry.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		if a.opts.ReadOnly {
			a.readOnly[win] = true
		}
		a.windows = append(a.windows, win)
	}
	if len(a.windows) == 0 {
		a.windows = append(a.windows, a.registry.OpenScratch())
	}
	a.active = 0
	return nil
}

// ExitStatus returns the process exit code vis_exit(status) or die()
// recorded, or 0 on a clean quit (spec.md §6).
func (a *Application) ExitStatus() int {
	return a.exitStatus
}

// Exit records the status Run's caller should exit with. A quit that
// hits no error path leaves this at its zero value.
func (a *Application) Exit(status int) {
	a.exitStatus = status
}

// RunStartupCommand executes one `+CMD` argument (spec.md §6) against
// the freshly opened active window: "/pat" or "?pat" search, ":cmd" ex
// command, or (bare) a line-number/ex-command passed straight to the
// evaluator.
func (a *Application) RunStartupCommand(cmd string) {
	if cmd == "" {
		return
	}
	switch cmd[0] {
	case '/':
		a.runSearch(cmd[1:], true)
	case '?':
		a.runSearch(cmd[1:], false)
	case ':':
		if _, err := a.evalEx(cmd[1:]); err != nil {
			a.logger.Warn("startup command %q: %v", cmd, err)
		}
	default:
		if _, err := a.evalEx(cmd); err != nil {
			a.logger.Warn("startup command %q: %v", cmd, err)
		}
	}
}

// activeWindow returns the window the mainloop currently targets.
func (a *Application) activeWindow() *workspace.Window {
	return a.windows[a.active]
}

// SetBackend attaches the terminal UI. Must be called before Run.
func (a *Application) SetBackend(ui Ui) {
	a.ui = ui
	for _, w := range a.windows {
		w.SetUI(ui)
	}
}

// Logger returns the application's logger.
func (a *Application) Logger() *Logger { return a.logger }

// context builds a mode.Context snapshot for the current window, used
// when switching modes or resolving an unmapped key.
func (a *Application) context() *mode.Context {
	ctx := mode.NewContext()
	win := a.activeWindow()
	ctx.Editor = windowEditorState{win: win}
	return ctx
}

// modeHint computes the exec.ModeHint for the current mode.
func (a *Application) modeHint() exec.ModeHint {
	switch a.modes.CurrentName() {
	case mode.ModeVisual:
		return exec.ModeHint{Visual: true}
	case mode.ModeVisualLine:
		return exec.ModeHint{Visual: true, VisualLine: true}
	case mode.ModeVisualBlock:
		return exec.ModeHint{Visual: true}
	default:
		return exec.ModeHint{}
	}
}

// runCommand executes a fully parsed vim.Command against the active
// window and applies the mode transitions its Result implies.
func (a *Application) runCommand(cmd *vim.Command, inOpMacro bool) exec.Result {
	win := a.activeWindow()
	if a.readOnly[win] && cmd.Operator != nil && cmd.Operator.ChangesText {
		a.logger.Warn("write blocked: window is read-only")
		return exec.Result{}
	}
	hint := a.modeHint()
	hint.InOperatorMacro = inOpMacro
	if hint.Visual {
		a.captureVisualMarks(win)
	}

	res := a.executor.Do(cmd, win.View, win.Editor(), win.Jumplist, hint)
	win.Redraw()

	if res.EntersInsert {
		_ = a.modes.SwitchWithContext(mode.ModeInsert, a.context())
	} else if hint.Visual && res.OperatorRan {
		_ = a.modes.SwitchWithContext(mode.ModeNormal, a.context())
	}
	return res
}

// activeCursor is a convenience accessor used by dispatch/search/ex code.
func (a *Application) activeCursor() *cursor.Cursor {
	return a.activeWindow().View.Primary()
}
