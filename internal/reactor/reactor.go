// Package reactor runs the single cooperative loop that owns every piece
// of mutable state: it is the only goroutine that ever calls into
// wsmanager, the rule engine, or the executor. Everything else —
// OS event delivery, IPC connections, the broadcaster's subscriber
// pushes — hands work to the reactor across a channel and waits.
package reactor

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/termtile/internal/events"
	"github.com/1broseidon/termtile/internal/executor"
	"github.com/1broseidon/termtile/internal/ipc"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/rules"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

// Hooks are the reactor's only points of contact with packages it does
// not itself depend on (config, persistence), so that reload/quit wiring
// lives in cmd/wmd rather than creating an import cycle here.
type Hooks struct {
	// Reload re-reads configuration and returns a freshly compiled rule
	// set. A nil Reload makes the reload command a no-op besides emitting
	// ConfigReloaded.
	Reload func() (*rules.Engine, error)
	// Persist writes snap out. Called on the periodic timer and once more
	// during an orderly shutdown.
	Persist func(snap wsmanager.Snapshot) error
	// GetConfig returns the value a get_config request replies with.
	GetConfig func() any
}

// Config bundles the reactor's tunables and hooks.
type Config struct {
	PersistInterval time.Duration
	ManagerVersion  string
	Hooks           Hooks
}

// Reactor ties the workspace manager, rule engine, and command executor
// to the two sources of work the manager reacts to: OS events and IPC
// jobs.
type Reactor struct {
	manager *wsmanager.Manager
	rules   *rules.Engine
	exec    *executor.Executor
	backend platform.Backend
	source  platform.EventSource
	server  *ipc.Server
	logger  *slog.Logger

	persistInterval time.Duration
	managerVersion  string
	hooks           Hooks
}

func New(
	manager *wsmanager.Manager,
	engine *rules.Engine,
	exec *executor.Executor,
	backend platform.Backend,
	source platform.EventSource,
	server *ipc.Server,
	logger *slog.Logger,
	cfg Config,
) *Reactor {
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.PersistInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Reactor{
		manager:         manager,
		rules:           engine,
		exec:            exec,
		backend:         backend,
		source:          source,
		server:          server,
		logger:          logger,
		persistInterval: interval,
		managerVersion:  cfg.ManagerVersion,
		hooks:           cfg.Hooks,
	}
}

// Run drains OS events and IPC jobs in arrival order until ctx is
// cancelled, the event source dies, or a quit command is executed. It
// blocks; callers run it in the main goroutine.
func (r *Reactor) Run(ctx context.Context) error {
	srcCtx, cancelSrc := context.WithCancel(ctx)
	defer cancelSrc()

	srcErr := make(chan error, 1)
	go func() { srcErr <- r.source.Run(srcCtx) }()

	persistTicker := time.NewTicker(r.persistInterval)
	defer persistTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.shutdown()
			return ctx.Err()

		case err := <-srcErr:
			r.shutdown()
			return err

		case raw := <-r.source.Events():
			r.handleRaw(raw)

		case job := <-r.server.Jobs():
			if r.handleJob(job) {
				r.shutdown()
				return nil
			}

		case <-persistTicker.C:
			r.persist()
		}
	}
}

func (r *Reactor) emit(ev events.Event) {
	r.server.Broadcaster().Emit(ev)
}

// reload re-reads configuration via the Reload hook and swaps in the
// freshly compiled rule engine. On failure the previous rules stay in
// effect and the error is returned for the caller to report; it is not
// swallowed here.
func (r *Reactor) reload() error {
	if r.hooks.Reload == nil {
		r.emit(events.Event{Kind: events.ConfigReloaded})
		return nil
	}
	engine, err := r.hooks.Reload()
	if err != nil {
		r.logger.Error("config reload failed, keeping previous rules", "error", err)
		return err
	}
	r.rules = engine
	r.emit(events.Event{Kind: events.ConfigReloaded})
	return nil
}

func (r *Reactor) persist() {
	if r.hooks.Persist == nil {
		return
	}
	if err := r.hooks.Persist(r.manager.Snapshot()); err != nil {
		r.logger.Warn("periodic persistence failed", "error", err)
	}
}

func (r *Reactor) shutdown() {
	r.persist()
	r.server.Stop()
}
