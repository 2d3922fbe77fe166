//go:build linux

// Package x11 implements platform.Backend, platform.HotkeyRegistrar and
// platform.EventSource on top of the X Window System via xgb/xgbutil.
package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection owns the X11 socket and the root window.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X server and initializes
// the keybind module required for global hotkeys. EWMH needs no setup here,
// and EnumerateMonitors initializes RandR itself on each call.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// RunEventLoop blocks, dispatching X events through xgbutil's callback
// registry until Quit is called on the connection's xevent loop.
func (c *Connection) RunEventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running RunEventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}
