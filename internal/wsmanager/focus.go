package wsmanager

import "github.com/1broseidon/termtile/internal/platform"

// Direction is one of the four spatial/cyclic focus directions.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// FocusedHandle returns workspace id's focused handle, if any.
func (m *Manager) FocusedHandle(workspaceID int) (platform.Handle, bool) {
	ws := m.workspaces[workspaceID]
	if ws == nil || ws.Focused == nil {
		return 0, false
	}
	return *ws.Focused, true
}

// SetFocused sets workspace id's focused handle and asks the backend to
// focus it.
func (m *Manager) SetFocused(workspaceID int, h platform.Handle) {
	ws := m.workspaces[workspaceID]
	if ws == nil {
		return
	}
	ws.Focused = &h
	m.osCall("focus", h, m.backend.Focus(h))
}

// NoteFocused records that the OS reports h as focused, without issuing
// an OS focus call of its own (unlike SetFocused, which a command uses
// to actively move focus).
func (m *Manager) NoteFocused(workspaceID int, h platform.Handle) {
	ws := m.workspaces[workspaceID]
	if ws == nil {
		return
	}
	ws.Focused = &h
}

// FocusDirection moves focus to the tiled window in dir from the
// workspace's currently focused window, using an Euclidean half-plane
// rule. No-op if there is no focused window or no candidate.
func (m *Manager) FocusDirection(workspaceID int, dir Direction) {
	ws := m.workspaces[workspaceID]
	if ws == nil || ws.Focused == nil {
		return
	}
	if target, ok := m.spatialNeighbor(ws, *ws.Focused, dir); ok {
		m.SetFocused(workspaceID, target)
	}
}

// MoveDirection swaps the focused window's tile-list position with its
// spatial neighbor in dir, then retiles. No-op if there is no candidate.
func (m *Manager) MoveDirection(workspaceID int, dir Direction) {
	ws := m.workspaces[workspaceID]
	if ws == nil || ws.Focused == nil {
		return
	}
	target, ok := m.spatialNeighbor(ws, *ws.Focused, dir)
	if !ok {
		return
	}
	swapInTileList(ws, *ws.Focused, target)
	if ws.Visible {
		m.Retile(ws.ID)
	}
}

// SwapWithMaster swaps the focused window with tile-list position 0, then
// retiles.
func (m *Manager) SwapWithMaster(workspaceID int) {
	ws := m.workspaces[workspaceID]
	if ws == nil || ws.Focused == nil || len(ws.Tiles) == 0 {
		return
	}
	swapInTileList(ws, *ws.Focused, ws.Tiles[0])
	if ws.Visible {
		m.Retile(ws.ID)
	}
}

// FocusCycle moves focus forward (delta=1) or backward (delta=-1) through
// the visible workspace's tile list.
func (m *Manager) FocusCycle(workspaceID int, delta int) {
	ws := m.workspaces[workspaceID]
	if ws == nil || len(ws.Tiles) == 0 {
		return
	}

	idx := 0
	if ws.Focused != nil {
		for i, h := range ws.Tiles {
			if h == *ws.Focused {
				idx = i
				break
			}
		}
	}

	n := len(ws.Tiles)
	next := ((idx+delta)%n + n) % n
	m.SetFocused(workspaceID, ws.Tiles[next])
}

func (m *Manager) spatialNeighbor(ws *Workspace, focused platform.Handle, dir Direction) (platform.Handle, bool) {
	focusedWin, ok := m.windows[focused]
	if !ok {
		return 0, false
	}
	fx, fy := focusedWin.Bounds.Center()

	var best platform.Handle
	found := false
	bestDist := 0.0
	bestAxisDist := 0

	for _, h := range ws.Tiles {
		if h == focused {
			continue
		}
		win, ok := m.windows[h]
		if !ok {
			continue
		}
		cx, cy := win.Bounds.Center()

		switch dir {
		case Left:
			if cx >= fx {
				continue
			}
		case Right:
			if cx <= fx {
				continue
			}
		case Up:
			if cy >= fy {
				continue
			}
		case Down:
			if cy <= fy {
				continue
			}
		}

		dx, dy := float64(cx-fx), float64(cy-fy)
		dist := dx*dx + dy*dy
		axisDist := abs(cx - fx)
		if dir == Up || dir == Down {
			axisDist = abs(cy - fy)
		}

		if !found || dist < bestDist || (dist == bestDist && axisDist < bestAxisDist) {
			best = h
			found = true
			bestDist = dist
			bestAxisDist = axisDist
		}
	}

	return best, found
}

func swapInTileList(ws *Workspace, a, b platform.Handle) {
	ia, ib := -1, -1
	for i, h := range ws.Tiles {
		if h == a {
			ia = i
		}
		if h == b {
			ib = i
		}
	}
	if ia == -1 || ib == -1 {
		return
	}
	ws.Tiles[ia], ws.Tiles[ib] = ws.Tiles[ib], ws.Tiles[ia]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
