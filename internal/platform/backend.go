// Package platform declares the window-system interfaces the core consumes.
// Implementations (internal/platform/x11) own the actual OS calls; nothing
// in the core packages imports an X11 type directly.
package platform

import (
	"context"

	"github.com/1broseidon/termtile/internal/geometry"
)

// Handle is an opaque, platform-neutral window identifier. Equality is
// identity: two handles are the same window iff they compare equal. It is
// borrowed, never owned, by the manager.
type Handle uint32

// WindowInfo describes a top-level window as reported by the OS.
type WindowInfo struct {
	Handle      Handle
	PID         int
	ProcessName string
	Title       string
	Class       string
	Bounds      geometry.Rect
	Visible     bool
}

// MonitorInfo describes a physical display as reported by the OS. Token is
// an opaque OS monitor identifier; it is not stable across enumerations
// and must not be compared across calls to EnumerateMonitors.
type MonitorInfo struct {
	Token      string
	DeviceName string
	FullRect   geometry.Rect
	WorkArea   geometry.Rect
	DPIScale   float64
}

// Backend abstracts the OS window-handle API: enumeration, geometry
// control, visibility, focus, and the metadata queries the rule engine
// matches on. It does not decide policy; it only executes it.
type Backend interface {
	// EnumerateWindows lists current top-level windows.
	EnumerateWindows() ([]WindowInfo, error)
	// EnumerateMonitors lists current physical displays. Callers must not
	// assume monitor Token values survive across calls.
	EnumerateMonitors() ([]MonitorInfo, error)

	MoveResize(h Handle, bounds geometry.Rect) error
	Show(h Handle) error
	Hide(h Handle) error
	Focus(h Handle) error
	Close(h Handle) error
	Minimize(h Handle) error
	Restore(h Handle) error

	ActiveWindow() (Handle, bool, error)

	// WindowDesktop returns the opaque virtual-desktop token for h, if the
	// underlying OS facility exposes one.
	WindowDesktop(h Handle) (token string, ok bool)
	// SetWindowDesktop assigns h to the given virtual-desktop token, best
	// effort; an unsupported backend returns nil without acting.
	SetWindowDesktop(h Handle, token string) error
}

// HotkeyRegistrar abstracts the OS global-hotkey facility.
type HotkeyRegistrar interface {
	// Register binds keySequence (e.g. "Mod4-Return") to callback. The
	// callback runs on the backend's event-delivery goroutine; it must not
	// block and must not call back into the registrar synchronously.
	Register(keySequence string, callback func()) error
}

// RawEvent is the closed set of OS-originated notifications the event
// reactor consumes.
type RawEvent interface{ isRawEvent() }

type WindowCreated struct{ Handle Handle }
type WindowDestroyed struct{ Handle Handle }
type WindowFocused struct{ Handle Handle }
type WindowMoved struct {
	Handle Handle
	Bounds geometry.Rect
}
type WindowMinimized struct{ Handle Handle }
type WindowRestored struct{ Handle Handle }
type MonitorsChanged struct{}

func (WindowCreated) isRawEvent()   {}
func (WindowDestroyed) isRawEvent() {}
func (WindowFocused) isRawEvent()   {}
func (WindowMoved) isRawEvent()     {}
func (WindowMinimized) isRawEvent() {}
func (WindowRestored) isRawEvent()  {}
func (MonitorsChanged) isRawEvent() {}

// EventSource abstracts the OS event-delivery mechanism. Run blocks,
// pushing RawEvents to the returned channel until ctx is cancelled or the
// connection dies; it is the only suspension point between the backend and
// the reactor.
type EventSource interface {
	Events() <-chan RawEvent
	Run(ctx context.Context) error
}
