// Command wmd is the tiling window manager daemon: it owns the X11
// connection, the workspace/window state, and the IPC socket other
// tools talk to. It takes no positional arguments; WM_LOG controls log
// verbosity per spec.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rsc.io/getopt"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/executor"
	"github.com/1broseidon/termtile/internal/ipc"
	"github.com/1broseidon/termtile/internal/persist"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/platform/x11"
	"github.com/1broseidon/termtile/internal/reactor"
	"github.com/1broseidon/termtile/internal/rules"
	"github.com/1broseidon/termtile/internal/wmerr"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

// version is the manager's build identifier, surfaced over get_version
// alongside the wire protocol version.
const version = "0.1.0"

var (
	logLevelFlag = flag.String("log-level", "", "override WM_LOG for this run")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	configFlag   = flag.String("config", "", "config file path (default: ~/.config/termtile/config.toml)")
)

func init() {
	getopt.CommandLine.Init("wmd", flag.ContinueOnError)
	getopt.Alias("l", "log-level")
	getopt.Alias("v", "version")
	getopt.Alias("c", "config")
}

func main() {
	if err := getopt.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if getopt.CommandLine.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "wmd takes no positional arguments")
		os.Exit(2)
	}
	if *versionFlag {
		fmt.Println(version)
		os.Exit(0)
	}

	logger := newLogger()
	if err := run(logger); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	levelStr := *logLevelFlag
	if levelStr == "" {
		levelStr = os.Getenv("WM_LOG")
	}
	var level slog.Level
	if levelStr != "" {
		if err := level.UnmarshalText([]byte(levelStr)); err != nil {
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if os.Getenv("WM_LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func run(logger *slog.Logger) error {
	cfgPath := *configFlag
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Info("configuration loaded", "layout", cfg.Layout.Kind, "workspaces", len(cfg.Workspaces))

	ruleSet, err := rules.Compile(cfg.Rules)
	if err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}
	engine := rules.NewEngine(ruleSet)

	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("connect to X11: %w", err)
	}
	defer conn.Close()

	backend := x11.NewBackend(conn)
	source := x11.NewEventSource(conn)
	hotkeys := x11.NewHotkeyRegistrar(conn)

	manager := wsmanager.New(backend, logger)
	manager.LoadWorkspaces(cfg.Workspaces)
	manager.SetLayout(cfg.Layout)

	if snap, err := persist.Load(); err != nil {
		logger.Warn("failed to load persisted workspace state", "error", err)
	} else if len(snap.Workspaces) > 0 {
		manager.RestoreWorkspaceShells(snap)
	}

	if monitors, err := backend.EnumerateMonitors(); err != nil {
		return fmt.Errorf("enumerate monitors: %w", err)
	} else {
		manager.SetMonitors(monitors)
	}

	active := manager.ActiveWorkspace()
	if manager.Workspace(active) == nil && len(cfg.Workspaces) > 0 {
		active = cfg.Workspaces[0].ID
	}
	manager.SwitchTo(active)

	exec := executor.New(manager, backend, logger)

	server, err := ipc.NewServer(logger)
	if err != nil {
		return fmt.Errorf("create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}

	reactorCfg := reactor.Config{
		ManagerVersion: version,
		Hooks: reactor.Hooks{
			Reload: func() (*rules.Engine, error) {
				reloaded, err := loadConfig(cfgPath)
				if err != nil {
					return nil, err
				}
				compiled, err := rules.Compile(reloaded.Rules)
				if err != nil {
					return nil, wmerr.Wrap(wmerr.RuleCompileError, "reload: rule compile failed", err)
				}
				manager.SetLayout(reloaded.Layout)
				manager.RetileAllVisible()
				return rules.NewEngine(compiled), nil
			},
			Persist: persist.Save,
			GetConfig: func() any {
				return cfg
			},
		},
	}
	r := reactor.New(manager, engine, exec, backend, source, server, logger, reactorCfg)

	registerKeybinds(hotkeys, server, cfg.Keybinds, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	logger.Info("wmd started", "version", version)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("wmd stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// registerKeybinds binds every configured keybind to a hotkey sequence
// that submits the equivalent execute request through the same Job
// queue an IPC client would use. Registration failures are logged and
// skipped rather than aborting startup: a single bad keybind should not
// take down the daemon.
func registerKeybinds(hotkeys platform.HotkeyRegistrar, server *ipc.Server, keybinds []config.Keybind, logger *slog.Logger) {
	for _, kb := range keybinds {
		kb := kb
		seq := keySequence(kb)
		err := hotkeys.Register(seq, func() {
			go func() {
				reply := server.Submit(ipc.Request{Type: ipc.TypeExecute, Command: kb.Command, Args: kb.Args})
				if resp := <-reply; resp.Status == "error" {
					logger.Warn("keybind command failed", "keybind", seq, "command", kb.Command, "code", resp.Code, "message", resp.Message)
				}
			}()
		})
		if err != nil {
			logger.Warn("failed to register keybind", "keybind", seq, "error", err)
		}
	}
}

// xgbutilModifier maps the config's closed Win|Ctrl|Alt|Shift modifier
// set onto xgbutil's keybind grammar (github.com/BurntSushi/xgbutil/keybind),
// which names them Mod4/Control/Mod1/Shift.
var xgbutilModifier = map[string]string{
	"Win":   "Mod4",
	"Ctrl":  "Control",
	"Alt":   "Mod1",
	"Shift": "Shift",
}

func keySequence(kb config.Keybind) string {
	parts := make([]string, 0, len(kb.Modifiers)+1)
	for _, m := range kb.Modifiers {
		parts = append(parts, xgbutilModifier[m])
	}
	parts = append(parts, kb.Key)
	return strings.Join(parts, "-")
}
