package wsmanager

import "github.com/1broseidon/termtile/internal/platform"

// removeFromCurrentSet detaches win from whatever list/set its current
// state places it in (tile list for Tiled, floating set for Floating;
// Fullscreen and Minimized windows are in neither).
func removeFromCurrentSet(ws *Workspace, win *ManagedWindow) {
	switch win.State {
	case Tiled:
		ws.Tiles = removeHandle(ws.Tiles, win.Handle)
	case Floating:
		delete(ws.Floating, win.Handle)
	}
}

// addToState places win into the list/set appropriate for state.
func addToState(ws *Workspace, win *ManagedWindow, state State) {
	switch state {
	case Tiled:
		ws.Tiles = append(ws.Tiles, win.Handle)
	case Floating:
		ws.Floating[win.Handle] = struct{}{}
	}
}

// ToggleFloating switches a window between Tiled and Floating: leaving
// Tiled saves the current rect into OriginalRect; returning to Tiled
// appends at the tile list's tail and lets the next retile compute its
// geometry. A no-op on Fullscreen or Minimized windows.
func (m *Manager) ToggleFloating(h platform.Handle) {
	win, ok := m.windows[h]
	if !ok {
		return
	}
	ws := m.workspaces[win.Workspace]
	if ws == nil {
		return
	}

	switch win.State {
	case Tiled:
		rect := win.Bounds
		win.OriginalRect = &rect
		removeFromCurrentSet(ws, win)
		win.State = Floating
		win.UserFloating = true
		addToState(ws, win, Floating)
		if ws.Visible {
			m.Retile(ws.ID)
		}
	case Floating:
		removeFromCurrentSet(ws, win)
		win.State = Tiled
		win.UserFloating = false
		win.OriginalRect = nil
		addToState(ws, win, Tiled)
		if ws.Visible {
			m.Retile(ws.ID)
		}
	}
}

// ToggleFullscreen switches a Tiled or Floating window into Fullscreen
// and back: entering saves the current rect and resizes to the owning
// monitor's full rect; leaving restores the prior state and rect.
func (m *Manager) ToggleFullscreen(h platform.Handle) {
	win, ok := m.windows[h]
	if !ok {
		return
	}
	ws := m.workspaces[win.Workspace]
	if ws == nil {
		return
	}

	if win.State == Fullscreen {
		prior := win.priorState
		if win.OriginalRect != nil {
			m.osCall("move_resize", h, m.backend.MoveResize(h, *win.OriginalRect))
			win.Bounds = *win.OriginalRect
		}
		win.OriginalRect = nil
		win.State = prior
		addToState(ws, win, prior)
		if prior == Tiled && ws.Visible {
			m.Retile(ws.ID)
		}
		return
	}

	if win.State != Tiled && win.State != Floating {
		return
	}

	rect := win.Bounds
	win.OriginalRect = &rect
	win.priorState = win.State
	removeFromCurrentSet(ws, win)
	win.State = Fullscreen

	if mon, ok := m.monitors[win.Monitor]; ok {
		m.osCall("move_resize", h, m.backend.MoveResize(h, mon.FullRect))
		win.Bounds = mon.FullRect
	}
	if win.priorState == Tiled && ws.Visible {
		m.Retile(ws.ID)
	}
}

// Minimize transitions any state to Minimized, remembering the prior
// state so Restore can undo it.
func (m *Manager) Minimize(h platform.Handle) {
	win, ok := m.windows[h]
	if !ok || win.State == Minimized {
		return
	}
	ws := m.workspaces[win.Workspace]
	if ws == nil {
		return
	}

	win.priorState = win.State
	removeFromCurrentSet(ws, win)
	win.State = Minimized
	if ws.Focused != nil && *ws.Focused == h {
		ws.Focused = nil
	}

	m.osCall("minimize", h, m.backend.Minimize(h))
	if win.priorState == Tiled && ws.Visible {
		m.Retile(ws.ID)
	}
}

// Restore transitions a Minimized window back to the state it had before
// minimizing.
func (m *Manager) Restore(h platform.Handle) {
	win, ok := m.windows[h]
	if !ok || win.State != Minimized {
		return
	}
	ws := m.workspaces[win.Workspace]
	if ws == nil {
		return
	}

	win.State = win.priorState
	addToState(ws, win, win.State)

	m.osCall("restore", h, m.backend.Restore(h))
	if win.State == Tiled && ws.Visible {
		m.Retile(ws.ID)
	}
}
