package wsmanager

import "strconv"

// Snapshot is the persisted-state shape: restoration recreates workspace
// shells and ignores saved handle values, since handles are not stable
// across OS sessions.
type Snapshot struct {
	ActiveWorkspace int                 `json:"active_workspace"`
	Workspaces      []WorkspaceSnapshot `json:"workspaces"`
	Windows         []WindowSnapshot    `json:"windows"`
}

// WorkspaceSnapshot is one workspace's persisted metadata.
type WorkspaceSnapshot struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Monitor             int    `json:"monitor"`
	VirtualDesktopToken string `json:"virtual_desktop_token,omitempty"`
}

// WindowSnapshot is one window's persisted identity, informational only.
type WindowSnapshot struct {
	Handle      string `json:"handle"`
	ProcessName string `json:"process_name"`
	Title       string `json:"title"`
	Class       string `json:"class"`
	Workspace   int    `json:"workspace"`
}

// Snapshot captures the manager's current state for persistence.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{ActiveWorkspace: m.activeWorkspace}
	for _, ws := range m.workspaces {
		s.Workspaces = append(s.Workspaces, WorkspaceSnapshot{
			ID:                  ws.ID,
			Name:                ws.Name,
			Monitor:             ws.Monitor,
			VirtualDesktopToken: ws.VirtualDesktopToken,
		})
	}
	for h, win := range m.windows {
		s.Windows = append(s.Windows, WindowSnapshot{
			Handle:      strconv.FormatUint(uint64(h), 10),
			ProcessName: win.ProcessName,
			Title:       win.Title,
			Class:       win.Class,
			Workspace:   win.Workspace,
		})
	}
	return s
}

// RestoreWorkspaceShells recreates workspace shells from a snapshot,
// ignoring saved handle values: subsequent admissions remap windows to
// these workspaces by rule evaluation, not by the snapshot's window list.
func (m *Manager) RestoreWorkspaceShells(s Snapshot) {
	cfgs := make([]WorkspaceConfig, 0, len(s.Workspaces))
	for _, ws := range s.Workspaces {
		cfgs = append(cfgs, WorkspaceConfig{ID: ws.ID, Name: ws.Name, Monitor: ws.Monitor})
	}
	m.LoadWorkspaces(cfgs)
	for _, ws := range s.Workspaces {
		if target, ok := m.workspaces[ws.ID]; ok {
			target.VirtualDesktopToken = ws.VirtualDesktopToken
		}
	}
	m.activeWorkspace = s.ActiveWorkspace
}
