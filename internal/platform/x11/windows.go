//go:build linux

package x11

import (
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// Backend implements platform.Backend over a single X11 connection.
type Backend struct {
	conn *Connection
}

var _ platform.Backend = (*Backend)(nil)

// NewBackend wraps an existing connection.
func NewBackend(conn *Connection) *Backend {
	return &Backend{conn: conn}
}

// XUtil exposes the underlying xgbutil connection for the hotkey registrar
// and event source, which need raw X11 access the platform.Backend
// interface intentionally does not.
func (b *Backend) XUtil() *xgbutil.XUtil { return b.conn.XUtil }

// RootWindow returns the X11 root window.
func (b *Backend) RootWindow() xproto.Window { return b.conn.Root }

// EnumerateWindows lists every EWMH client-list window whose geometry can
// be read, and reports the visibility/type checks in each entry's Visible
// field instead of filtering on them. Admission is decided by the caller;
// this layer only reports what the OS has to offer.
func (b *Backend) EnumerateWindows() ([]platform.WindowInfo, error) {
	clients, err := ewmh.ClientListGet(b.conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("get client list: %w", err)
	}

	out := make([]platform.WindowInfo, 0, len(clients))
	for _, win := range clients {
		rect, ok := b.windowRect(win)
		if !ok {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(b.conn.XUtil, win); err == nil {
			pid = int(p)
		}

		out = append(out, platform.WindowInfo{
			Handle:      platform.Handle(win),
			PID:         pid,
			ProcessName: processName(pid),
			Title:       b.windowTitle(win),
			Class:       b.windowClass(win),
			Bounds:      rect,
			Visible:     b.isNormalWindow(win) && !b.isHiddenOrFullscreen(win),
		})
	}

	return out, nil
}

// EnumerateMonitors is implemented in monitors.go.

// MoveResize implements platform.Backend.
func (b *Backend) MoveResize(h platform.Handle, bounds geometry.Rect) error {
	win := xproto.Window(h)
	b.unmaximize(win)

	if err := ewmh.MoveresizeWindow(b.conn.XUtil, win, bounds.X, bounds.Y, bounds.Width, bounds.Height); err != nil {
		return xproto.ConfigureWindow(b.conn.XUtil.Conn(), win,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(bounds.X), uint32(bounds.Y), uint32(bounds.Width), uint32(bounds.Height)},
		).Check()
	}
	return nil
}

// Show maps the window.
func (b *Backend) Show(h platform.Handle) error {
	return xproto.MapWindowChecked(b.conn.XUtil.Conn(), xproto.Window(h)).Check()
}

// Hide unmaps the window.
func (b *Backend) Hide(h platform.Handle) error {
	return xproto.UnmapWindowChecked(b.conn.XUtil.Conn(), xproto.Window(h)).Check()
}

// Focus activates and raises the window via _NET_ACTIVE_WINDOW.
func (b *Backend) Focus(h platform.Handle) error {
	return b.sendRootClientMessage(xproto.Window(h), "_NET_ACTIVE_WINDOW", []uint32{2, 0, 0, 0, 0})
}

// Close requests a graceful close via WM_DELETE_WINDOW.
func (b *Backend) Close(h platform.Handle) error {
	win := xproto.Window(h)
	deleteAtom, err := internAtom(b.conn, "WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	protocolsAtom, err := internAtom(b.conn, "WM_PROTOCOLS")
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocolsAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(b.conn.XUtil.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// Minimize sends WM_CHANGE_STATE(IconicState).
func (b *Backend) Minimize(h platform.Handle) error {
	const iconicState = 3
	return b.sendRootClientMessageWithAtom(xproto.Window(h), "WM_CHANGE_STATE", []uint32{iconicState, 0, 0, 0, 0})
}

// Restore maps the window (the same call as Show); no EWMH state is changed.
func (b *Backend) Restore(h platform.Handle) error {
	return b.Show(h)
}

// ActiveWindow returns the currently focused window.
func (b *Backend) ActiveWindow() (platform.Handle, bool, error) {
	win, err := ewmh.ActiveWindowGet(b.conn.XUtil)
	if err != nil {
		return 0, false, err
	}
	if win == 0 {
		return 0, false, nil
	}
	return platform.Handle(win), true, nil
}

// WindowDesktop reads _NET_WM_DESKTOP.
func (b *Backend) WindowDesktop(h platform.Handle) (string, bool) {
	desktop, err := ewmh.WmDesktopGet(b.conn.XUtil, xproto.Window(h))
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%d", desktop), true
}

// SetWindowDesktop sends a _NET_WM_DESKTOP client message.
func (b *Backend) SetWindowDesktop(h platform.Handle, token string) error {
	var desktop uint32
	if _, err := fmt.Sscanf(token, "%d", &desktop); err != nil {
		return fmt.Errorf("invalid desktop token %q: %w", token, err)
	}
	return b.sendRootClientMessageWithAtom(xproto.Window(h), "_NET_WM_DESKTOP", []uint32{desktop, 2, 0, 0, 0})
}

func (b *Backend) unmaximize(win xproto.Window) {
	states, err := ewmh.WmStateGet(b.conn.XUtil, win)
	if err != nil {
		return
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" {
			ewmh.WmStateReq(b.conn.XUtil, win, 0, "_NET_WM_STATE_MAXIMIZED_HORZ")
		}
		if state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(b.conn.XUtil, win, 0, "_NET_WM_STATE_MAXIMIZED_VERT")
		}
	}
}

func (b *Backend) isNormalWindow(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(b.conn.XUtil, win)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP", "_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP":
			return false
		}
	}
	return len(types) == 0
}

func (b *Backend) isHiddenOrFullscreen(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.conn.XUtil, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

func (b *Backend) windowRect(win xproto.Window) (geometry.Rect, bool) {
	geom, err := xproto.GetGeometry(b.conn.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}
	translate, err := xproto.TranslateCoordinates(b.conn.XUtil.Conn(), win, b.conn.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}
	return geometry.New(int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height)), true
}

func (b *Backend) windowClass(win xproto.Window) string {
	class, err := icccm.WmClassGet(b.conn.XUtil, win)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(class.Class)
}

func (b *Backend) windowTitle(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(b.conn.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(b.conn.XUtil, win); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

func (b *Backend) sendRootClientMessage(win xproto.Window, atomName string, data []uint32) error {
	return b.sendRootClientMessageWithAtom(win, atomName, data)
}

func (b *Backend) sendRootClientMessageWithAtom(win xproto.Window, atomName string, data []uint32) error {
	atom, err := internAtom(b.conn, atomName)
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	return xproto.SendEventChecked(
		b.conn.XUtil.Conn(), false, b.conn.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func internAtom(c *Connection, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

// processName reads /proc/<pid>/comm for a human-readable process name,
// used by the rule engine's process-name matcher. Returns "" on failure
// (e.g. non-Linux /proc, already-exited process).
func processName(pid int) string {
	if pid <= 0 {
		return ""
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
