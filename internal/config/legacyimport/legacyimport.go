// Package legacyimport translates the manager's old YAML configuration
// format into the current TOML RawConfig shape, for users upgrading
// from a pre-TOML install. It is a one-shot, best-effort conversion:
// fields the old format had no equivalent for (layout presets, agent
// autodetection, terminal-spawn templates) are dropped rather than
// mapped, since the current configuration surface has no place for
// them.
package legacyimport

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/wmerr"
)

// legacyRawConfig is the subset of the old YAML schema this importer
// understands. Fields the new configuration has no equivalent for are
// omitted; yaml.Unmarshal ignores the rest of the document.
type legacyRawConfig struct {
	Hotkey                   string `yaml:"hotkey"`
	CycleLayoutHotkey        string `yaml:"cycle_layout_hotkey"`
	CycleLayoutReverseHotkey string `yaml:"cycle_layout_reverse_hotkey"`
	UndoHotkey               string `yaml:"undo_hotkey"`
	GapSize                  int    `yaml:"gap_size"`
	DefaultLayout            string `yaml:"default_layout"`
	LogLevel                 string `yaml:"log_level"`
}

// legacyHotkeyAction names the command a named legacy hotkey field
// maps to in the new [[keybinds]] schema. The old format bound one
// fixed action per named field rather than an open keybind list, so
// the mapping is a closed table rather than a parse rule.
var legacyHotkeyAction = map[string]string{
	"hotkey":                      "toggle_floating",
	"cycle_layout_hotkey":         "layout_master",
	"cycle_layout_reverse_hotkey": "layout_dwindle",
	"undo_hotkey":                 "reload",
}

// legacyLayoutNames maps the old format's free-form default_layout
// preset names to the new closed layout.Kind spellings. Presets with
// no current equivalent (e.g. a custom fixed_grid layout) are left
// unmapped and fall back to the new format's own default.
var legacyLayoutNames = map[string]string{
	"dwindle":      "dwindle",
	"master-stack": "master-stack",
	"master":       "master-stack",
}

// ImportFile reads a legacy YAML configuration file and converts it to
// a RawConfig ready for config.Build.
func ImportFile(path string) (config.RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.RawConfig{}, wmerr.Wrap(wmerr.ConfigInvalid, path+": failed to read legacy config", err)
	}
	return Import(data)
}

// Import converts a legacy YAML configuration document to a RawConfig.
func Import(yamlDoc []byte) (config.RawConfig, error) {
	var legacy legacyRawConfig
	if err := yaml.Unmarshal(yamlDoc, &legacy); err != nil {
		return config.RawConfig{}, wmerr.Wrap(wmerr.ConfigInvalid, "failed to parse legacy config", err)
	}

	raw := config.RawConfig{
		OuterGap: legacy.GapSize,
		InnerGap: legacy.GapSize,
		LogLevel: legacy.LogLevel,
	}
	if mapped, ok := legacyLayoutNames[legacy.DefaultLayout]; ok {
		raw.DefaultLayout = mapped
	}

	for _, hk := range []struct{ field, command string }{
		{"hotkey", legacy.Hotkey},
		{"cycle_layout_hotkey", legacy.CycleLayoutHotkey},
		{"cycle_layout_reverse_hotkey", legacy.CycleLayoutReverseHotkey},
		{"undo_hotkey", legacy.UndoHotkey},
	} {
		if hk.command == "" {
			continue
		}
		kb, err := translateHotkey(hk.field, hk.command)
		if err != nil {
			return config.RawConfig{}, err
		}
		raw.Keybinds = append(raw.Keybinds, kb)
	}

	return raw, nil
}

// translateHotkey splits an xgbutil-style hyphen-joined hotkey string
// (e.g. "Mod4-Shift-q") into the new array-based [[keybinds]] fields,
// translating X11 modifier mask names to the closed Win/Ctrl/Alt/Shift
// set, and binds it to the fixed action the named legacy field always
// performed.
func translateHotkey(field, keySequence string) (config.RawKeybind, error) {
	parts := strings.Split(keySequence, "-")
	if len(parts) < 1 || parts[len(parts)-1] == "" {
		return config.RawKeybind{}, wmerr.New(wmerr.ConfigInvalid, fmt.Sprintf("%s: malformed legacy hotkey %q", field, keySequence))
	}

	key := parts[len(parts)-1]
	modifiers := make([]string, 0, len(parts)-1)
	for _, m := range parts[:len(parts)-1] {
		translated, ok := translateModifier(m)
		if !ok {
			return config.RawKeybind{}, wmerr.New(wmerr.ConfigInvalid, fmt.Sprintf("%s: unknown legacy modifier %q", field, m))
		}
		modifiers = append(modifiers, translated)
	}

	command, ok := legacyHotkeyAction[field]
	if !ok {
		return config.RawKeybind{}, wmerr.New(wmerr.ConfigInvalid, fmt.Sprintf("%s: no command mapping for legacy hotkey field", field))
	}

	return config.RawKeybind{Modifiers: modifiers, Key: key, Command: command}, nil
}

func translateModifier(m string) (string, bool) {
	switch m {
	case "Mod4", "Super", "Win":
		return "Win", true
	case "Mod1", "Alt":
		return "Alt", true
	case "Control", "Ctrl":
		return "Ctrl", true
	case "Shift":
		return "Shift", true
	default:
		return "", false
	}
}
