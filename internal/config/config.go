// Package config loads the TOML configuration file the manager and its
// CLI read: general layout settings, workspace definitions, admission
// rules, and keybinds.
package config

import (
	"log/slog"
	"strconv"

	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/rules"
	"github.com/1broseidon/termtile/internal/wmerr"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

const (
	defaultInnerGap = 4
	defaultOuterGap = 8
	defaultLogLevel = "info"
)

// Config is the effective, validated configuration ready for a daemon
// startup or reload.
type Config struct {
	Layout     wsmanager.LayoutState
	Workspaces []wsmanager.WorkspaceConfig
	Rules      []rules.RawRule
	Keybinds   []Keybind
	LogLevel   slog.Level
}

// Keybind is one compiled [[keybinds]] row: a closed modifier set plus a
// key name, bound to an executor command.
type Keybind struct {
	Modifiers []string
	Key       string
	Command   string
	Args      []string
}

// Build applies defaults to raw and validates it, producing an effective
// Config. It does not compile rules (internal/rules.Compile is a
// separate step the caller runs, so a rule-compile failure and a
// config-shape failure are reported with distinct wmerr kinds).
func Build(raw RawConfig) (*Config, error) {
	cfg := &Config{
		Layout: wsmanager.LayoutState{
			Kind: layout.Dwindle,
			Params: layout.Params{
				InnerGap:     defaultInnerGap,
				OuterGap:     defaultOuterGap,
				MasterCount:  1,
				MasterFactor: layout.DefaultMasterFactor,
			},
		},
		Rules: raw.Rules,
	}

	if raw.InnerGap != 0 {
		cfg.Layout.Params.InnerGap = raw.InnerGap
	}
	if raw.OuterGap != 0 {
		cfg.Layout.Params.OuterGap = raw.OuterGap
	}
	if raw.DefaultLayout != "" {
		switch layout.Kind(raw.DefaultLayout) {
		case layout.Dwindle, layout.MasterStack:
			cfg.Layout.Kind = layout.Kind(raw.DefaultLayout)
		default:
			return nil, wmerr.New(wmerr.ConfigInvalid, "default_layout must be \"dwindle\" or \"master-stack\", got "+raw.DefaultLayout)
		}
	}
	if raw.MasterCount != 0 {
		cfg.Layout.Params.MasterCount = raw.MasterCount
	}
	if raw.MasterFactor != 0 {
		cfg.Layout.Params.MasterFactor = layout.ClampMasterFactor(raw.MasterFactor)
	}

	level, err := parseLogLevel(raw.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	workspaces, err := buildWorkspaces(raw.Workspaces)
	if err != nil {
		return nil, err
	}
	cfg.Workspaces = workspaces

	keybinds, err := buildKeybinds(raw.Keybinds)
	if err != nil {
		return nil, err
	}
	cfg.Keybinds = keybinds

	return cfg, nil
}

func buildWorkspaces(raws []RawWorkspace) ([]wsmanager.WorkspaceConfig, error) {
	if len(raws) == 0 {
		return []wsmanager.WorkspaceConfig{{ID: 1, Name: "1", Monitor: 0}}, nil
	}

	seen := make(map[int]struct{}, len(raws))
	out := make([]wsmanager.WorkspaceConfig, 0, len(raws))
	for _, r := range raws {
		if _, dup := seen[r.ID]; dup {
			return nil, wmerr.New(wmerr.ConfigInvalid, "duplicate workspace id "+strconv.Itoa(r.ID))
		}
		seen[r.ID] = struct{}{}
		name := r.Name
		if name == "" {
			name = strconv.Itoa(r.ID)
		}
		out = append(out, wsmanager.WorkspaceConfig{ID: r.ID, Name: name, Monitor: r.Monitor})
	}
	return out, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		s = defaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, wmerr.Wrap(wmerr.ConfigInvalid, "invalid log_level "+s, err)
	}
	return level, nil
}
