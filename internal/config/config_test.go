package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/rules"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build(RawConfig{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Layout.Kind != layout.Dwindle {
		t.Errorf("default layout kind = %q, want dwindle", cfg.Layout.Kind)
	}
	if cfg.Layout.Params.InnerGap != defaultInnerGap || cfg.Layout.Params.OuterGap != defaultOuterGap {
		t.Errorf("gaps = %d/%d, want defaults %d/%d", cfg.Layout.Params.InnerGap, cfg.Layout.Params.OuterGap, defaultInnerGap, defaultOuterGap)
	}
	if len(cfg.Workspaces) != 1 || cfg.Workspaces[0].ID != 1 {
		t.Errorf("default workspaces = %+v, want single id-1 workspace", cfg.Workspaces)
	}
}

func TestBuildInvalidDefaultLayout(t *testing.T) {
	_, err := Build(RawConfig{DefaultLayout: "spiral"})
	if err == nil {
		t.Fatal("expected error for unknown default_layout")
	}
}

func TestBuildInvalidLogLevel(t *testing.T) {
	_, err := Build(RawConfig{LogLevel: "verbose"})
	if err == nil {
		t.Fatal("expected error for invalid log_level")
	}
}

func TestBuildWorkspacesDuplicateID(t *testing.T) {
	_, err := Build(RawConfig{Workspaces: []RawWorkspace{
		{ID: 1, Name: "a"},
		{ID: 1, Name: "b"},
	}})
	if err == nil {
		t.Fatal("expected error for duplicate workspace id")
	}
}

func TestBuildWorkspacesDefaultName(t *testing.T) {
	cfg, err := Build(RawConfig{Workspaces: []RawWorkspace{{ID: 3}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Workspaces[0].Name != "3" {
		t.Errorf("name = %q, want %q", cfg.Workspaces[0].Name, "3")
	}
}

func TestBuildKeybindValid(t *testing.T) {
	cfg, err := Build(RawConfig{Keybinds: []RawKeybind{
		{Modifiers: []string{"Win", "Shift"}, Key: "q", Command: "quit"},
	}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cfg.Keybinds) != 1 || cfg.Keybinds[0].Key != "q" {
		t.Errorf("keybinds = %+v", cfg.Keybinds)
	}
}

func TestBuildKeybindUnknownModifier(t *testing.T) {
	_, err := Build(RawConfig{Keybinds: []RawKeybind{
		{Modifiers: []string{"Super"}, Key: "q", Command: "quit"},
	}})
	if err == nil {
		t.Fatal("expected error for unknown modifier")
	}
}

func TestBuildKeybindMissingKey(t *testing.T) {
	_, err := Build(RawConfig{Keybinds: []RawKeybind{
		{Modifiers: []string{"Win"}, Command: "quit"},
	}})
	if err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestBuildKeybindUnknownCommand(t *testing.T) {
	_, err := Build(RawConfig{Keybinds: []RawKeybind{
		{Key: "q", Command: "launch_the_missiles"},
	}})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestBuildCarriesRules(t *testing.T) {
	cfg, err := Build(RawConfig{Rules: []rules.RawRule{
		{Class: "dock", Actions: []rules.RawAction{{Kind: "no_manage"}}},
	}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cfg.Rules) != 1 {
		t.Fatalf("rules = %+v, want 1", cfg.Rules)
	}
	if _, err := rules.Compile(cfg.Rules); err != nil {
		t.Errorf("rules.Compile: %v", err)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Layout.Kind != layout.Dwindle {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadFromPathParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	doc := `
inner_gap = 6
outer_gap = 10
default_layout = "master-stack"
master_count = 2

[[workspaces]]
id = 1
name = "code"

[[rules]]
class = "dock"
[[rules.actions]]
kind = "no_manage"

[[keybinds]]
modifiers = ["Win"]
key = "t"
command = "focus_next"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Layout.Kind != layout.MasterStack {
		t.Errorf("layout kind = %q, want master-stack", cfg.Layout.Kind)
	}
	if cfg.Layout.Params.MasterCount != 2 {
		t.Errorf("master_count = %d, want 2", cfg.Layout.Params.MasterCount)
	}
	if len(cfg.Workspaces) != 1 || cfg.Workspaces[0].Name != "code" {
		t.Errorf("workspaces = %+v", cfg.Workspaces)
	}
	if len(cfg.Rules) != 1 {
		t.Errorf("rules = %+v, want 1", cfg.Rules)
	}
	if len(cfg.Keybinds) != 1 || cfg.Keybinds[0].Command != "focus_next" {
		t.Errorf("keybinds = %+v", cfg.Keybinds)
	}
}

func TestLoadFromPathMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("inner_gap = [this is not toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error")
	}
}
