package wsmanager

import "github.com/1broseidon/termtile/internal/layout"

// Retile recomputes geometry for id's tile list with the active layout
// and the owning monitor's work area, then issues OS move/resize calls
// in the emitted order. Floating windows are never retiled.
func (m *Manager) Retile(id int) {
	ws, ok := m.workspaces[id]
	if !ok || !ws.Visible || len(ws.Tiles) == 0 {
		return
	}

	placements := layout.Compute(m.layout.Kind, ws.WorkArea, ws.Tiles, m.layout.Params)
	for _, p := range placements {
		win, ok := m.windows[p.Handle]
		if !ok {
			continue
		}
		win.Bounds = p.Rect
		m.osCall("move_resize", p.Handle, m.backend.MoveResize(p.Handle, p.Rect))
	}
}

// RetileAllVisible retiles every currently visible workspace across every
// monitor; used after a layout-wide change (SetLayoutDwindle/Master,
// master-count/factor adjustments).
func (m *Manager) RetileAllVisible() {
	for id, ws := range m.workspaces {
		if ws.Visible {
			m.Retile(id)
		}
	}
}

// AdjustMasterCount clamps and applies a relative change to the active
// layout's master count, then retiles every visible workspace.
func (m *Manager) AdjustMasterCount(delta int) {
	n := m.layout.Params.MasterCount + delta
	if n < 1 {
		n = 1
	}
	m.layout.Params.MasterCount = n
	m.RetileAllVisible()
}

// AdjustMasterFactor applies a relative change (clamped to
// [layout.MinMasterFactor, layout.MaxMasterFactor]) to the active
// layout's master factor, then retiles every visible workspace.
func (m *Manager) AdjustMasterFactor(delta float64) {
	f := m.layout.Params.MasterFactor
	if f == 0 {
		f = layout.DefaultMasterFactor
	}
	m.layout.Params.MasterFactor = layout.ClampMasterFactor(f + delta)
	m.RetileAllVisible()
}
