package executor

import (
	"testing"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

type fakeBackend struct {
	closed []platform.Handle
}

func (f *fakeBackend) EnumerateWindows() ([]platform.WindowInfo, error)   { return nil, nil }
func (f *fakeBackend) EnumerateMonitors() ([]platform.MonitorInfo, error) { return nil, nil }
func (f *fakeBackend) MoveResize(platform.Handle, geometry.Rect) error    { return nil }
func (f *fakeBackend) Show(platform.Handle) error                        { return nil }
func (f *fakeBackend) Hide(platform.Handle) error                        { return nil }
func (f *fakeBackend) Focus(platform.Handle) error                       { return nil }
func (f *fakeBackend) Close(h platform.Handle) error                     { f.closed = append(f.closed, h); return nil }
func (f *fakeBackend) Minimize(platform.Handle) error                    { return nil }
func (f *fakeBackend) Restore(platform.Handle) error                     { return nil }
func (f *fakeBackend) ActiveWindow() (platform.Handle, bool, error)      { return 0, false, nil }
func (f *fakeBackend) WindowDesktop(platform.Handle) (string, bool)      { return "", false }
func (f *fakeBackend) SetWindowDesktop(platform.Handle, string) error    { return nil }

func newTestSetup(t *testing.T) (*Executor, *wsmanager.Manager) {
	t.Helper()
	backend := &fakeBackend{}
	m := wsmanager.New(backend, nil)
	m.LoadWorkspaces([]wsmanager.WorkspaceConfig{{ID: 1, Name: "one", Monitor: 0}, {ID: 2, Name: "two", Monitor: 0}})
	m.SetMonitors([]platform.MonitorInfo{{Token: "a", FullRect: geometry.Rect{Width: 1000, Height: 1000}, WorkArea: geometry.Rect{Width: 1000, Height: 1000}}})
	m.SwitchTo(1)
	return New(m, backend, nil), m
}

func TestParseUnknownCommand(t *testing.T) {
	if _, err := Parse("banana", nil); err == nil {
		t.Fatalf("expected an error for an unknown command")
	}
}

func TestParseSwitchWorkspaceRequiresIntArg(t *testing.T) {
	if _, err := Parse("switch_workspace", []string{"not-a-number"}); err == nil {
		t.Fatalf("expected an error for a non-numeric workspace id")
	}
	cmd, err := Parse("switch_workspace", []string{"2"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.WorkspaceID != 2 {
		t.Fatalf("WorkspaceID = %d, want 2", cmd.WorkspaceID)
	}
}

func TestSwitchWorkspaceEmitsEvent(t *testing.T) {
	ex, _ := newTestSetup(t)
	cmd, _ := Parse("switch_workspace", []string{"2"})
	result, err := ex.Run(cmd, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
}

func TestCloseActiveWithNoFocusedWindowErrors(t *testing.T) {
	ex, _ := newTestSetup(t)
	cmd, _ := Parse("close", nil)
	if _, err := ex.Run(cmd, 1); err == nil {
		t.Fatalf("expected NoFocusedWindow error")
	}
}

func TestCloseActiveCallsBackend(t *testing.T) {
	ex, m := newTestSetup(t)
	m.Admit(platform.WindowInfo{Handle: 7, Visible: true, Bounds: geometry.Rect{Width: 100, Height: 100}}, wsmanager.AdmissionDecision{Workspace: 1})

	backend := ex.backend.(*fakeBackend)
	cmd, _ := Parse("close", nil)
	if _, err := ex.Run(cmd, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(backend.closed) != 1 || backend.closed[0] != 7 {
		t.Fatalf("expected backend.Close(7), got %v", backend.closed)
	}
}

func TestReloadAndQuitReturnSignalsOnly(t *testing.T) {
	ex, _ := newTestSetup(t)

	cmd, _ := Parse("reload", nil)
	result, err := ex.Run(cmd, 1)
	if err != nil || result.Signal != DoReload {
		t.Fatalf("reload: result=%+v err=%v", result, err)
	}

	cmd, _ = Parse("quit", nil)
	result, err = ex.Run(cmd, 1)
	if err != nil || result.Signal != DoQuit {
		t.Fatalf("quit: result=%+v err=%v", result, err)
	}
}
