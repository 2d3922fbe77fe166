//go:build linux

package x11

import (
	"sync"

	"github.com/1broseidon/termtile/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// HotkeyRegistrar implements platform.HotkeyRegistrar over xgbutil's
// keybind package, grabbing the requested key sequence on the root window.
type HotkeyRegistrar struct {
	conn *Connection
	once sync.Once
}

var _ platform.HotkeyRegistrar = (*HotkeyRegistrar)(nil)

// NewHotkeyRegistrar creates a registrar bound to conn.
func NewHotkeyRegistrar(conn *Connection) *HotkeyRegistrar {
	return &HotkeyRegistrar{conn: conn}
}

// Register grabs keySequence (xgbutil key-string syntax, e.g.
// "Mod4-Shift-q") on the root window and invokes callback on every press.
// The first call configures which modifiers (CapsLock/NumLock/ScrollLock)
// are ignored when matching, so locks held during a grab don't break it.
func (r *HotkeyRegistrar) Register(keySequence string, callback func()) error {
	r.once.Do(func() { configureIgnoredMods(r.conn.XUtil) })

	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(r.conn.XUtil, r.conn.Root, keySequence, true)
}

func configureIgnoredMods(xu *xgbutil.XUtil) {
	capsLock := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{capsLock}
	if numLock != 0 && numLock != capsLock {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != capsLock && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	seen := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		seen[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(seen))
	for mask := range seen {
		ignore = append(ignore, mask)
	}
	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
