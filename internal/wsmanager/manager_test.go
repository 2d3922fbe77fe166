package wsmanager

import (
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
)

// fakeBackend is a no-op platform.Backend recording every call it sees,
// used to assert the manager's OS-call side effects without touching X11.
type fakeBackend struct {
	calls []string
}

var _ platform.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) EnumerateWindows() ([]platform.WindowInfo, error)   { return nil, nil }
func (f *fakeBackend) EnumerateMonitors() ([]platform.MonitorInfo, error) { return nil, nil }

func (f *fakeBackend) MoveResize(h platform.Handle, bounds geometry.Rect) error {
	f.calls = append(f.calls, "move_resize")
	return nil
}
func (f *fakeBackend) Show(h platform.Handle) error {
	f.calls = append(f.calls, "show")
	return nil
}
func (f *fakeBackend) Hide(h platform.Handle) error {
	f.calls = append(f.calls, "hide")
	return nil
}
func (f *fakeBackend) Focus(h platform.Handle) error {
	f.calls = append(f.calls, "focus")
	return nil
}
func (f *fakeBackend) Close(h platform.Handle) error {
	f.calls = append(f.calls, "close")
	return nil
}
func (f *fakeBackend) Minimize(h platform.Handle) error {
	f.calls = append(f.calls, "minimize")
	return nil
}
func (f *fakeBackend) Restore(h platform.Handle) error {
	f.calls = append(f.calls, "restore")
	return nil
}
func (f *fakeBackend) ActiveWindow() (platform.Handle, bool, error) { return 0, false, nil }
func (f *fakeBackend) WindowDesktop(h platform.Handle) (string, bool) { return "", false }
func (f *fakeBackend) SetWindowDesktop(h platform.Handle, token string) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager() (*Manager, *fakeBackend) {
	backend := &fakeBackend{}
	m := New(backend, testLogger())
	m.LoadWorkspaces([]WorkspaceConfig{
		{ID: 1, Name: "one", Monitor: 0},
		{ID: 2, Name: "two", Monitor: 0},
	})
	m.SetMonitors([]platform.MonitorInfo{
		{Token: "m0", WorkArea: geometry.New(0, 0, 1000, 1000), FullRect: geometry.New(0, 0, 1000, 1000)},
	})
	m.SwitchTo(1)
	return m, backend
}

func TestAdmissionIsIdempotent(t *testing.T) {
	m, _ := newTestManager()
	info := platform.WindowInfo{Handle: 10, Title: "a", Visible: true, Bounds: geometry.New(0, 0, 100, 100)}

	m.Admit(info, AdmissionDecision{})
	m.Admit(info, AdmissionDecision{})

	if n := len(m.Windows(-1)); n != 1 {
		t.Fatalf("expected exactly one record after double admission, got %d", n)
	}
	ws := m.Workspace(1)
	count := 0
	for _, h := range ws.Tiles {
		if h == 10 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected handle to appear exactly once in tile list, got %d", count)
	}
}

func TestSwitchToAlreadyVisibleIsNoOp(t *testing.T) {
	m, backend := newTestManager()
	backend.calls = nil

	from, ok := m.SwitchTo(1)
	if !ok || from != 1 {
		t.Fatalf("SwitchTo(1) = %d, %v; want 1, true", from, ok)
	}
	if len(backend.calls) != 0 {
		t.Fatalf("expected no OS calls switching to the already-visible workspace, got %v", backend.calls)
	}
}

func TestSwitchWorkspaceHidesAndShows(t *testing.T) {
	m, backend := newTestManager()
	m.Admit(platform.WindowInfo{Handle: 1, Visible: true, Bounds: geometry.New(0, 0, 10, 10)}, AdmissionDecision{Workspace: 1})
	m.Admit(platform.WindowInfo{Handle: 2, Visible: true, Bounds: geometry.New(0, 0, 10, 10)}, AdmissionDecision{Workspace: 2})

	backend.calls = nil
	from, ok := m.SwitchTo(2)
	if !ok || from != 1 {
		t.Fatalf("SwitchTo(2) = %d, %v; want 1, true", from, ok)
	}
	if m.ActiveWorkspace() != 2 {
		t.Fatalf("ActiveWorkspace() = %d, want 2", m.ActiveWorkspace())
	}

	hasHide, hasShow := false, false
	for _, c := range backend.calls {
		if c == "hide" {
			hasHide = true
		}
		if c == "show" {
			hasShow = true
		}
	}
	if !hasHide || !hasShow {
		t.Fatalf("expected both hide and show calls, got %v", backend.calls)
	}
}

func TestMoveToWorkspaceAndBackPreservesComposition(t *testing.T) {
	m, _ := newTestManager()
	m.Admit(platform.WindowInfo{Handle: 1, Visible: true, Bounds: geometry.New(0, 0, 10, 10)}, AdmissionDecision{Workspace: 1})
	m.Admit(platform.WindowInfo{Handle: 2, Visible: true, Bounds: geometry.New(0, 0, 10, 10)}, AdmissionDecision{Workspace: 1})

	before := tileSet(m.Workspace(1))

	if ok := m.MoveToWorkspace(1, 2); !ok {
		t.Fatalf("MoveToWorkspace(1, 2) failed")
	}
	if ok := m.MoveToWorkspace(1, 1); !ok {
		t.Fatalf("MoveToWorkspace(1, 1) failed")
	}

	after := tileSet(m.Workspace(1))
	if len(before) != len(after) {
		t.Fatalf("tile list composition changed: before %v after %v", before, after)
	}
	for h := range before {
		if _, ok := after[h]; !ok {
			t.Fatalf("handle %v missing after move-and-back", h)
		}
	}
}

func TestMonitorRemovalReparentsToZero(t *testing.T) {
	backend := &fakeBackend{}
	m := New(backend, testLogger())
	m.LoadWorkspaces([]WorkspaceConfig{
		{ID: 1, Name: "one", Monitor: 0},
		{ID: 2, Name: "two", Monitor: 1},
	})
	m.SetMonitors([]platform.MonitorInfo{
		{Token: "m0", WorkArea: geometry.New(0, 0, 1000, 1000)},
		{Token: "m1", WorkArea: geometry.New(1000, 0, 1000, 1000)},
	})

	if got := m.Workspace(2).Monitor; got != 1 {
		t.Fatalf("setup: workspace 2 monitor = %d, want 1", got)
	}

	// Enumerate again with only one monitor: monitor 1 no longer exists.
	m.SetMonitors([]platform.MonitorInfo{
		{Token: "m0", WorkArea: geometry.New(0, 0, 1000, 1000)},
	})

	if got := m.Workspace(2).Monitor; got != 0 {
		t.Fatalf("workspace 2 monitor after removal = %d, want 0", got)
	}
}

func tileSet(ws *Workspace) map[platform.Handle]struct{} {
	out := make(map[platform.Handle]struct{}, len(ws.Tiles))
	for _, h := range ws.Tiles {
		out[h] = struct{}{}
	}
	return out
}
