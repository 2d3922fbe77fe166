package wsmanager

import (
	"log/slog"

	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/registry"
)

// defaultExcludedClasses lists window classes the admission predicate
// rejects outright, before rules ever run: shell chrome and ephemeral
// widgets that should never be tiled or tracked.
var defaultExcludedClasses = map[string]struct{}{
	"desktop_window": {},
	"panel":          {},
	"dock":           {},
	"tooltip":        {},
	"notification":   {},
}

// Manager owns every ManagedWindow, every Workspace and the current
// Monitor set. It is built to be driven exclusively by a single-threaded
// reactor (internal/reactor): none of its methods take a lock, because
// nothing outside the reactor goroutine ever calls them.
type Manager struct {
	backend platform.Backend
	reg     *registry.Registry
	logger  *slog.Logger

	windows         map[platform.Handle]*ManagedWindow
	workspaces      map[int]*Workspace
	monitors        map[int]*Monitor
	activeWorkspace int

	layout LayoutState
}

// WorkspaceConfig is the startup/configuration-time shape of a workspace,
// before it has a monitor assignment resolved.
type WorkspaceConfig struct {
	ID      int
	Name    string
	Monitor int
}

// New creates an empty manager bound to backend. Call LoadWorkspaces,
// SetMonitors and SwitchTo before admitting any windows: Admit places
// windows without a rule-assigned workspace on the active workspace.
func New(backend platform.Backend, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend:    backend,
		reg:        registry.New(),
		logger:     logger,
		windows:    make(map[platform.Handle]*ManagedWindow),
		workspaces: make(map[int]*Workspace),
		monitors:   make(map[int]*Monitor),
		layout: LayoutState{
			Kind:   layout.Dwindle,
			Params: layout.Params{MasterCount: 1, MasterFactor: layout.DefaultMasterFactor},
		},
	}
}

// LoadWorkspaces creates the workspace shells named in cfgs. It is only
// ever called at startup or snapshot restoration: workspaces are created
// once and never destroyed during a session.
func (m *Manager) LoadWorkspaces(cfgs []WorkspaceConfig) {
	for _, c := range cfgs {
		m.workspaces[c.ID] = newWorkspace(c.ID, c.Name, c.Monitor)
	}
}

// SetLayout installs kind/params as the active layout without retiling;
// callers that want the retile side effect should use the executor's
// SetLayoutDwindle or SetLayoutMaster command, which calls this then
// RetileAllVisible.
func (m *Manager) SetLayout(state LayoutState) {
	m.layout = state
}

// Layout returns the manager's current globally-active layout.
func (m *Manager) Layout() LayoutState {
	return m.layout
}

// ActiveWorkspace returns the id of the last workspace switched to.
func (m *Manager) ActiveWorkspace() int {
	return m.activeWorkspace
}

// Workspace returns a copy of the workspace record for id, or nil.
func (m *Manager) Workspace(id int) *Workspace {
	ws, ok := m.workspaces[id]
	if !ok {
		return nil
	}
	cp := *ws
	cp.Tiles = append([]platform.Handle(nil), ws.Tiles...)
	cp.Floating = make(map[platform.Handle]struct{}, len(ws.Floating))
	for h := range ws.Floating {
		cp.Floating[h] = struct{}{}
	}
	return &cp
}

// Workspaces returns a copy of every workspace, keyed by id.
func (m *Manager) Workspaces() map[int]*Workspace {
	out := make(map[int]*Workspace, len(m.workspaces))
	for id := range m.workspaces {
		out[id] = m.Workspace(id)
	}
	return out
}

// Monitors returns a copy of every monitor, keyed by id.
func (m *Manager) Monitors() map[int]*Monitor {
	out := make(map[int]*Monitor, len(m.monitors))
	for id, mon := range m.monitors {
		cp := *mon
		cp.Workspaces = append([]int(nil), mon.Workspaces...)
		out[id] = &cp
	}
	return out
}

// Window returns a copy of the managed window record for h, or nil.
func (m *Manager) Window(h platform.Handle) *ManagedWindow {
	w, ok := m.windows[h]
	if !ok {
		return nil
	}
	cp := *w
	return &cp
}

// Windows returns a copy of every managed window, optionally filtered to
// a single workspace (workspaceFilter < 0 means no filter).
func (m *Manager) Windows(workspaceFilter int) []*ManagedWindow {
	out := make([]*ManagedWindow, 0, len(m.windows))
	for _, w := range m.windows {
		if workspaceFilter >= 0 && w.Workspace != workspaceFilter {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	return out
}

// ShouldManage is the admission predicate applied before rules ever run:
// visible, non-zero area, and not a hard-excluded class. Window ownership
// is not checked.
func (m *Manager) ShouldManage(info platform.WindowInfo) bool {
	if !info.Visible {
		return false
	}
	if info.Bounds.Width <= 0 || info.Bounds.Height <= 0 {
		return false
	}
	if _, excluded := defaultExcludedClasses[info.Class]; excluded {
		return false
	}
	return true
}

// Admit creates a ManagedWindow for info under decision, or does nothing
// if decision.NoManage is set (admission aborts with no side effects). It
// returns the resolved handle's workspace id, or -1 if not admitted.
func (m *Manager) Admit(info platform.WindowInfo, decision AdmissionDecision) int {
	if decision.NoManage {
		m.logger.Debug("admission skipped: rule matched NoManage", "handle", info.Handle, "class", info.Class)
		return -1
	}

	if _, exists := m.windows[info.Handle]; exists {
		// Idempotent: a handle already admitted is left untouched.
		wsID, _ := m.reg.WorkspaceOf(info.Handle)
		return wsID
	}

	targetWorkspace := decision.Workspace
	if targetWorkspace == 0 {
		targetWorkspace = m.activeWorkspace
	}
	ws, ok := m.workspaces[targetWorkspace]
	if !ok {
		m.logger.Warn("admission target workspace unknown, using active", "workspace", targetWorkspace)
		targetWorkspace = m.activeWorkspace
		ws = m.workspaces[targetWorkspace]
	}

	win := &ManagedWindow{
		Handle:      info.Handle,
		Workspace:   targetWorkspace,
		Monitor:     ws.Monitor,
		Title:       info.Title,
		Class:       info.Class,
		ProcessName: info.ProcessName,
		Bounds:      info.Bounds,
		Managed:     true,
	}

	switch {
	case decision.Fullscreen:
		win.State = Fullscreen
		win.priorState = Tiled
		rect := win.Bounds
		win.OriginalRect = &rect
	case decision.Float:
		win.State = Floating
		win.UserFloating = true
	default:
		win.State = Tiled
	}

	m.windows[info.Handle] = win
	m.reg.Set(info.Handle, targetWorkspace)

	addToState(ws, win, win.State)

	if decision.Monitor != 0 {
		win.Monitor = decision.Monitor
	}

	if decision.NoFocus {
		m.logger.Debug("rule matched NoFocus: not focusing new window", "handle", info.Handle)
	} else {
		ws.Focused = &info.Handle
	}
	if decision.Opacity != nil {
		m.logger.Debug("rule matched Opacity: no OS mechanism wired, logging only", "handle", info.Handle, "opacity", *decision.Opacity)
	}
	if decision.Pin {
		m.logger.Debug("rule matched Pin: no OS mechanism wired, logging only", "handle", info.Handle)
	}

	if ws.Visible {
		m.Retile(ws.ID)
	}

	return targetWorkspace
}

// Remove unmanages h: drop it from its workspace's tile list or floating
// set, clear the secondary index, and retile if that workspace is
// visible.
func (m *Manager) Remove(h platform.Handle) {
	win, ok := m.windows[h]
	if !ok {
		return
	}

	ws := m.workspaces[win.Workspace]
	if ws != nil {
		ws.Tiles = removeHandle(ws.Tiles, h)
		delete(ws.Floating, h)
		if ws.Focused != nil && *ws.Focused == h {
			ws.Focused = nil
		}
	}

	delete(m.windows, h)
	m.reg.Remove(h)

	if ws != nil && ws.Visible {
		m.Retile(ws.ID)
	}
}

// MoveToWorkspace moves h from its current workspace to target's tail,
// updates the secondary index, and shows/hides h according to whether
// target is the visible workspace of its monitor.
func (m *Manager) MoveToWorkspace(h platform.Handle, target int) bool {
	win, ok := m.windows[h]
	if !ok {
		return false
	}
	targetWs, ok := m.workspaces[target]
	if !ok {
		return false
	}
	if win.Workspace == target {
		return true
	}

	sourceWs := m.workspaces[win.Workspace]
	if sourceWs != nil {
		sourceWs.Tiles = removeHandle(sourceWs.Tiles, h)
		delete(sourceWs.Floating, h)
		if sourceWs.Focused != nil && *sourceWs.Focused == h {
			sourceWs.Focused = nil
		}
	}

	win.Workspace = target
	win.Monitor = targetWs.Monitor
	m.reg.Set(h, target)

	addToState(targetWs, win, win.State)

	if targetWs.Visible {
		m.osCall("show", h, m.backend.Show(h))
	} else {
		m.osCall("hide", h, m.backend.Hide(h))
	}

	if sourceWs != nil && sourceWs.Visible {
		m.Retile(sourceWs.ID)
	}
	if targetWs.Visible {
		m.Retile(targetWs.ID)
	}
	return true
}

// SwitchTo hides the previously visible workspace of the target's
// monitor, shows the target, and updates activeWorkspace. A no-op (no OS
// calls) if ws is already visible.
func (m *Manager) SwitchTo(id int) (from int, ok bool) {
	target, exists := m.workspaces[id]
	if !exists {
		return 0, false
	}
	if target.Visible {
		return m.activeWorkspace, true
	}

	fromID := 0
	for _, ws := range m.workspaces {
		if ws.Monitor == target.Monitor && ws.Visible {
			fromID = ws.ID
			ws.Visible = false
			for h := range ws.Floating {
				m.osCall("hide", h, m.backend.Hide(h))
			}
			for _, h := range ws.Tiles {
				m.osCall("hide", h, m.backend.Hide(h))
			}
			break
		}
	}

	target.Visible = true
	for h := range target.Floating {
		m.osCall("show", h, m.backend.Show(h))
	}
	for _, h := range target.Tiles {
		m.osCall("show", h, m.backend.Show(h))
	}

	m.activeWorkspace = id
	m.Retile(id)
	return fromID, true
}

func (m *Manager) osCall(op string, h platform.Handle, err error) {
	if err != nil {
		m.logger.Warn("os call failed, skipping", "op", op, "handle", h, "error", err)
	}
}

func removeHandle(list []platform.Handle, h platform.Handle) []platform.Handle {
	for i, v := range list {
		if v == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
