package wsmanager

import (
	"sort"

	"github.com/1broseidon/termtile/internal/platform"
)

// SetMonitors replaces the monitor set from a fresh backend enumeration.
// Monitors are sorted by (work_area.x, work_area.y) and re-indexed from 0
// on every call; any workspace whose monitor id is no longer present is
// reparented to monitor 0 and its work area refreshed. It does not
// retile; the reactor calls RetileAllVisible afterward.
func (m *Manager) SetMonitors(infos []platform.MonitorInfo) {
	sorted := append([]platform.MonitorInfo(nil), infos...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].WorkArea, sorted[j].WorkArea
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	fresh := make(map[int]*Monitor, len(sorted))
	for i, info := range sorted {
		fresh[i] = &Monitor{
			ID:         i,
			Token:      info.Token,
			DeviceName: info.DeviceName,
			WorkArea:   info.WorkArea,
			FullRect:   info.FullRect,
			DPIScale:   info.DPIScale,
		}
	}
	if len(fresh) == 0 {
		fresh[0] = &Monitor{ID: 0}
	}
	m.monitors = fresh

	for _, ws := range m.workspaces {
		if _, ok := m.monitors[ws.Monitor]; !ok {
			ws.Monitor = 0
		}
		if mon, ok := m.monitors[ws.Monitor]; ok {
			ws.WorkArea = mon.WorkArea
		}
	}

	for _, win := range m.windows {
		if _, ok := m.monitors[win.Monitor]; !ok {
			win.Monitor = 0
		}
	}

	for id, mon := range m.monitors {
		for _, ws := range m.workspaces {
			if ws.Monitor != id {
				continue
			}
			mon.Workspaces = append(mon.Workspaces, ws.ID)
			if ws.Visible {
				wsID := ws.ID
				mon.ActiveWorkspace = &wsID
			}
		}
		sort.Ints(mon.Workspaces)
	}
}
