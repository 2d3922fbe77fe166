package reactor

import (
	"github.com/1broseidon/termtile/internal/events"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

// moveTolerancePx is how far a tiled window's reported bounds may drift
// from the layout's last computed placement before the reactor snaps it
// back with a retile. Below this, a spurious ConfigureNotify from the
// window manager itself is ignored.
const moveTolerancePx = 2

func (r *Reactor) handleRaw(raw platform.RawEvent) {
	switch e := raw.(type) {
	case platform.WindowCreated:
		r.handleCreated(e.Handle)
	case platform.WindowDestroyed:
		r.handleDestroyed(e.Handle)
	case platform.WindowFocused:
		r.handleFocused(e.Handle)
	case platform.WindowMoved:
		r.handleMoved(e)
	case platform.WindowMinimized:
		r.handleMinimized(e.Handle)
	case platform.WindowRestored:
		r.handleRestored(e.Handle)
	case platform.MonitorsChanged:
		r.handleMonitorsChanged()
	}
}

func (r *Reactor) handleCreated(h platform.Handle) {
	info, ok := r.windowInfo(h)
	if !ok || !r.manager.ShouldManage(info) {
		return
	}

	decision := r.rules.Resolve(info.ProcessName, info.Title, info.Class)
	ws := r.manager.Admit(info, decision)
	if ws < 0 {
		return
	}
	r.emit(events.Event{Kind: events.WindowCreated, Data: events.WindowData{Handle: h, Workspace: ws}})
}

func (r *Reactor) handleDestroyed(h platform.Handle) {
	if r.manager.Window(h) == nil {
		return
	}
	r.manager.Remove(h)
	r.emit(events.Event{Kind: events.WindowDestroyed, Data: events.WindowData{Handle: h}})
}

func (r *Reactor) handleFocused(h platform.Handle) {
	win := r.manager.Window(h)
	if win == nil {
		return
	}
	r.manager.NoteFocused(win.Workspace, h)
	r.emit(events.Event{Kind: events.WindowFocused, Data: events.WindowData{Handle: h, Workspace: win.Workspace}})
}

// handleMoved ignores floating/fullscreen/minimized windows outright —
// their geometry is theirs to own — and for a tiled window only retiles
// when the reported bounds diverge from the layout's placement by more
// than moveTolerancePx, snapping a drag-resized tile back into line.
func (r *Reactor) handleMoved(e platform.WindowMoved) {
	win := r.manager.Window(e.Handle)
	if win == nil || win.State != wsmanager.Tiled {
		return
	}
	if diverges(win.Bounds, e.Bounds, moveTolerancePx) {
		r.manager.Retile(win.Workspace)
	}
}

func (r *Reactor) handleMinimized(h platform.Handle) {
	win := r.manager.Window(h)
	if win == nil {
		return
	}
	r.manager.Minimize(h)
	r.emit(events.Event{Kind: events.WindowStateChanged, Data: events.WindowStateData{Handle: h, State: string(wsmanager.Minimized)}})
}

func (r *Reactor) handleRestored(h platform.Handle) {
	r.manager.Restore(h)
	win := r.manager.Window(h)
	if win == nil {
		return
	}
	r.emit(events.Event{Kind: events.WindowStateChanged, Data: events.WindowStateData{Handle: h, State: string(win.State)}})
}

func (r *Reactor) handleMonitorsChanged() {
	infos, err := r.backend.EnumerateMonitors()
	if err != nil {
		r.logger.Warn("os call failed, skipping", "op", "enumerate_monitors", "error", err)
		return
	}
	r.manager.SetMonitors(infos)
	r.manager.RetileAllVisible()
	r.emit(events.Event{Kind: events.MonitorChanged, Data: events.MonitorChangedData{Count: len(infos)}})
}

// windowInfo looks up h's current metadata by re-enumerating: the raw
// event carries only a handle, and admission needs the process
// name/title/class the rule engine matches on.
func (r *Reactor) windowInfo(h platform.Handle) (platform.WindowInfo, bool) {
	infos, err := r.backend.EnumerateWindows()
	if err != nil {
		r.logger.Warn("os call failed, skipping", "op", "enumerate_windows", "error", err)
		return platform.WindowInfo{}, false
	}
	for _, info := range infos {
		if info.Handle == h {
			return info, true
		}
	}
	return platform.WindowInfo{}, false
}

func diverges(a, b geometry.Rect, tolerance int) bool {
	return absInt(a.X-b.X) > tolerance ||
		absInt(a.Y-b.Y) > tolerance ||
		absInt(a.Width-b.Width) > tolerance ||
		absInt(a.Height-b.Height) > tolerance
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
