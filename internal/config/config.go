// Package config loads the editor's optional settings file.
//
// The format is a single TOML document; every field has a sane default so
// the file need not exist at all. This is intentionally a thin layer, not
// the layered/schema-validated/live-reloading configuration system a full
// editor would eventually grow into.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings that shape how the editor behaves, as opposed
// to what it displays (that's internal/ui's concern).
type Config struct {
	Editor    EditorSection    `toml:"editor"`
	Workspace WorkspaceSection `toml:"workspace"`
}

// EditorSection controls text-editing defaults.
type EditorSection struct {
	// TabWidth is the number of columns a tab character occupies.
	TabWidth int `toml:"tab_width"`

	// ExpandTab, when true, makes the <Tab> key insert spaces instead of
	// a tab character.
	ExpandTab bool `toml:"expand_tab"`

	// IdleTimeoutMS is how long (in milliseconds) the main loop waits for
	// input before running idle housekeeping, such as closing the
	// in-progress insert's undo group so the pause becomes an undo
	// boundary.
	IdleTimeoutMS int `toml:"idle_timeout_ms"`
}

// WorkspaceSection controls per-window history limits.
type WorkspaceSection struct {
	// JumplistSize caps how many positions a window's jumplist retains.
	JumplistSize int `toml:"jumplist_size"`
}

// Default returns the configuration used when no settings file is present
// or a setting is left unset in one.
func Default() Config {
	return Config{
		Editor: EditorSection{
			TabWidth:      8,
			ExpandTab:     false,
			IdleTimeoutMS: 250,
		},
		Workspace: WorkspaceSection{
			JumplistSize: 100,
		},
	}
}

// Load reads and parses the TOML settings file at path, layering its
// values over Default. A missing file is not an error: Load returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaultsForZero()
	return cfg, nil
}

// applyDefaultsForZero restores default values for any field a partial
// TOML document left at its zero value, so an omitted field never
// silently becomes 0 (an unusable tab width, for instance).
func (c *Config) applyDefaultsForZero() {
	d := Default()
	if c.Editor.TabWidth == 0 {
		c.Editor.TabWidth = d.Editor.TabWidth
	}
	if c.Editor.IdleTimeoutMS == 0 {
		c.Editor.IdleTimeoutMS = d.Editor.IdleTimeoutMS
	}
	if c.Workspace.JumplistSize == 0 {
		c.Workspace.JumplistSize = d.Workspace.JumplistSize
	}
}
