package reactor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/termtile/internal/executor"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/ipc"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/rules"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

type fakeBackend struct {
	windows  []platform.WindowInfo
	monitors []platform.MonitorInfo
}

func (f *fakeBackend) EnumerateWindows() ([]platform.WindowInfo, error)   { return f.windows, nil }
func (f *fakeBackend) EnumerateMonitors() ([]platform.MonitorInfo, error) { return f.monitors, nil }
func (f *fakeBackend) MoveResize(platform.Handle, geometry.Rect) error    { return nil }
func (f *fakeBackend) Show(platform.Handle) error                        { return nil }
func (f *fakeBackend) Hide(platform.Handle) error                        { return nil }
func (f *fakeBackend) Focus(platform.Handle) error                       { return nil }
func (f *fakeBackend) Close(platform.Handle) error                       { return nil }
func (f *fakeBackend) Minimize(platform.Handle) error                    { return nil }
func (f *fakeBackend) Restore(platform.Handle) error                     { return nil }
func (f *fakeBackend) ActiveWindow() (platform.Handle, bool, error)       { return 0, false, nil }
func (f *fakeBackend) WindowDesktop(platform.Handle) (string, bool)       { return "", false }
func (f *fakeBackend) SetWindowDesktop(platform.Handle, string) error     { return nil }

type fakeEventSource struct {
	ch chan platform.RawEvent
}

func newFakeEventSource() *fakeEventSource {
	return &fakeEventSource{ch: make(chan platform.RawEvent, 8)}
}

func (f *fakeEventSource) Events() <-chan platform.RawEvent { return f.ch }

func (f *fakeEventSource) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func newTestReactor(t *testing.T) (*Reactor, *wsmanager.Manager, *fakeBackend, *fakeEventSource, *ipc.Server) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	backend := &fakeBackend{
		monitors: []platform.MonitorInfo{{Token: "a", FullRect: geometry.Rect{Width: 1000, Height: 1000}, WorkArea: geometry.Rect{Width: 1000, Height: 1000}}},
	}
	manager := wsmanager.New(backend, nil)
	manager.LoadWorkspaces([]wsmanager.WorkspaceConfig{{ID: 1, Name: "one", Monitor: 0}})
	manager.SetMonitors(backend.monitors)
	manager.SwitchTo(1)

	engine := rules.NewEngine(nil)
	exec := executor.New(manager, backend, nil)
	source := newFakeEventSource()

	server, err := ipc.NewServer(nil)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("server.Start: %v", err)
	}
	t.Cleanup(server.Stop)

	r := New(manager, engine, exec, backend, source, server, nil, Config{ManagerVersion: "test"})
	return r, manager, backend, source, server
}

func TestReactorAdmitsWindowCreated(t *testing.T) {
	r, manager, backend, source, _ := newTestReactor(t)
	backend.windows = []platform.WindowInfo{
		{Handle: 42, Visible: true, Class: "xterm", Bounds: geometry.Rect{Width: 100, Height: 100}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	source.ch <- platform.WindowCreated{Handle: 42}

	deadline := time.After(time.Second)
	for manager.Window(42) == nil {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for admission")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	<-done
}

func TestReactorSkipsUnmanageableWindow(t *testing.T) {
	r, manager, backend, source, _ := newTestReactor(t)
	backend.windows = []platform.WindowInfo{
		{Handle: 7, Visible: true, Class: "dock", Bounds: geometry.Rect{Width: 100, Height: 100}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	source.ch <- platform.WindowCreated{Handle: 7}
	time.Sleep(20 * time.Millisecond)

	cancel()
	<-done

	if manager.Window(7) != nil {
		t.Fatalf("expected the dock-class window to stay unmanaged")
	}
}

func TestReactorHandlesIPCGetVersion(t *testing.T) {
	r, _, _, _, _ := newTestReactor(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	client := ipc.NewClient()
	resp, err := client.Call(ipc.Request{Type: ipc.TypeGetVersion})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("status = %q, want ok", resp.Status)
	}

	cancel()
	<-done
}

func TestReactorQuitCommandStopsRun(t *testing.T) {
	r, _, _, _, _ := newTestReactor(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	client := ipc.NewClient()
	resp, err := client.Call(ipc.Request{Type: ipc.TypeExecute, Command: "quit"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("status = %q, want ok", resp.Status)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after a quit command")
	}
}

func TestReactorReloadFailureReportsError(t *testing.T) {
	r, _, _, _, _ := newTestReactor(t)
	r.hooks.Reload = func() (*rules.Engine, error) {
		return nil, errors.New("config file is invalid")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	client := ipc.NewClient()
	resp, err := client.Call(ipc.Request{Type: ipc.TypeExecute, Command: "reload"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Status != "error" {
		t.Fatalf("status = %q, want error", resp.Status)
	}

	cancel()
	<-done
}

func TestReactorRetilesOnDivergedMove(t *testing.T) {
	r, manager, backend, source, _ := newTestReactor(t)
	backend.windows = []platform.WindowInfo{
		{Handle: 1, Visible: true, Class: "xterm", Bounds: geometry.Rect{Width: 1000, Height: 1000}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	source.ch <- platform.WindowCreated{Handle: 1}
	deadline := time.After(time.Second)
	for manager.Window(1) == nil {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for admission")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	tiled := manager.Window(1).Bounds
	diverged := tiled
	diverged.X += 500

	source.ch <- platform.WindowMoved{Handle: 1, Bounds: diverged}
	time.Sleep(20 * time.Millisecond)

	cancel()
	<-done

	if got := manager.Window(1).Bounds; got != tiled {
		t.Fatalf("Bounds = %+v, want retile to restore %+v", got, tiled)
	}
}
