package config

import "github.com/1broseidon/termtile/internal/rules"

// RawWorkspace is one [[workspaces]] table.
type RawWorkspace struct {
	ID      int    `toml:"id"`
	Name    string `toml:"name"`
	Monitor int    `toml:"monitor"`
}

// RawKeybind is one [[keybinds]] table: a closed modifier set plus a key
// name, bound to a command from the executor's wire catalog.
type RawKeybind struct {
	Modifiers []string `toml:"modifiers"`
	Key       string   `toml:"key"`
	Command   string   `toml:"command"`
	Args      []string `toml:"args"`
}

// RawConfig is the TOML document shape read from disk, before defaults
// are applied and cross-references are validated.
type RawConfig struct {
	InnerGap      int             `toml:"inner_gap"`
	OuterGap      int             `toml:"outer_gap"`
	DefaultLayout string          `toml:"default_layout"`
	MasterCount   int             `toml:"master_count"`
	MasterFactor  float64         `toml:"master_factor"`
	LogLevel      string          `toml:"log_level"`
	Workspaces    []RawWorkspace  `toml:"workspaces"`
	Rules         []rules.RawRule `toml:"rules"`
	Keybinds      []RawKeybind    `toml:"keybinds"`
}
