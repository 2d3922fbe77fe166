//go:build linux

package x11

import (
	"context"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventSource turns X11 structure/property notifications into
// platform.RawEvent values for the reactor. It listens only on the root
// window, with the SubstructureNotify and PropertyChange masks, and reacts
// to the handful of root properties the reactor cares about.
type EventSource struct {
	conn   *Connection
	events chan platform.RawEvent
}

var _ platform.EventSource = (*EventSource)(nil)

// NewEventSource creates an event source bound to conn. The reactor
// drains this channel every tick, so a modest buffer absorbs bursts
// without blocking X11 callback delivery.
func NewEventSource(conn *Connection) *EventSource {
	return &EventSource{conn: conn, events: make(chan platform.RawEvent, 256)}
}

func (s *EventSource) Events() <-chan platform.RawEvent { return s.events }

// Run registers xgbutil callbacks and blocks in the X11 event loop until
// ctx is cancelled.
func (s *EventSource) Run(ctx context.Context) error {
	root := xwindow.New(s.conn.XUtil, s.conn.Root)
	if err := root.Listen(xproto.EventMaskSubstructureNotify | xproto.EventMaskPropertyChange); err != nil {
		return err
	}

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		s.push(platform.WindowCreated{Handle: platform.Handle(ev.Window)})
	}).Connect(s.conn.XUtil, s.conn.Root)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		s.push(platform.WindowMinimized{Handle: platform.Handle(ev.Window)})
	}).Connect(s.conn.XUtil, s.conn.Root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		s.push(platform.WindowDestroyed{Handle: platform.Handle(ev.Window)})
	}).Connect(s.conn.XUtil, s.conn.Root)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		s.push(platform.WindowMoved{
			Handle: platform.Handle(ev.Window),
			Bounds: rectFromConfigure(ev),
		})
	}).Connect(s.conn.XUtil, s.conn.Root)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		atomName, err := xproto.GetAtomName(xu.Conn(), ev.Atom).Reply()
		if err != nil {
			return
		}
		switch atomName.Name {
		case "_NET_ACTIVE_WINDOW":
			if active, err := ewmh.ActiveWindowGet(xu); err == nil && active != 0 {
				s.push(platform.WindowFocused{Handle: platform.Handle(active)})
			}
		case "_NET_CURRENT_DESKTOP", "_NET_DESKTOP_GEOMETRY":
			s.push(platform.MonitorsChanged{})
		}
	}).Connect(s.conn.XUtil, s.conn.Root)

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.conn.Quit()
		close(done)
	}()

	s.conn.RunEventLoop()
	<-done
	close(s.events)
	return ctx.Err()
}

func (s *EventSource) push(ev platform.RawEvent) {
	select {
	case s.events <- ev:
	default:
		// Queue full: drop rather than block the X11 callback dispatcher.
		// The dropped event is not replayed.
	}
}

func rectFromConfigure(ev xevent.ConfigureNotifyEvent) geometry.Rect {
	return geometry.New(int(ev.X), int(ev.Y), int(ev.Width), int(ev.Height))
}
