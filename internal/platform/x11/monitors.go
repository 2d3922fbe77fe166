//go:build linux

package x11

import (
	"fmt"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// EnumerateMonitors implements platform.Backend using RandR CRTC queries,
// with EWMH strut/workarea data subtracted to produce each monitor's work
// area. Monitors are returned in enumeration order; callers sort and
// re-index them.
func (b *Backend) EnumerateMonitors() ([]platform.MonitorInfo, error) {
	if err := randr.Init(b.conn.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init: %w", err)
	}

	resources, err := randr.GetScreenResources(b.conn.XUtil.Conn(), b.conn.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}

	rootGeom, err := xproto.GetGeometry(b.conn.XUtil.Conn(), xproto.Drawable(b.conn.Root)).Reply()
	var rootWidth, rootHeight int
	if err == nil {
		rootWidth, rootHeight = int(rootGeom.Width), int(rootGeom.Height)
	}

	var monitors []platform.MonitorInfo
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(b.conn.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("monitor-%d", i)
		if outInfo, err := randr.GetOutputInfo(b.conn.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outInfo.Name)
		}

		full := geometry.New(int(crtcInfo.X), int(crtcInfo.Y), int(crtcInfo.Width), int(crtcInfo.Height))
		work := full
		if rootWidth > 0 && rootHeight > 0 {
			work = applyStruts(b.conn, full, rootWidth, rootHeight)
		}

		monitors = append(monitors, platform.MonitorInfo{
			Token:      fmt.Sprintf("crtc-%d", crtc),
			DeviceName: name,
			FullRect:   full,
			WorkArea:   work,
			DPIScale:   1.0,
		})
	}

	return monitors, nil
}

// applyStruts subtracts the reserved-edge strips (taskbars, docks) that
// intersect monitor from its work area, using _NET_WM_STRUT_PARTIAL (or the
// older _NET_WM_STRUT) advertised by dock/panel windows.
func applyStruts(c *Connection, monitor geometry.Rect, rootWidth, rootHeight int) geometry.Rect {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return monitor
	}

	var left, right, top, bottom int
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			accumulateStrut(monitor, rootWidth, rootHeight, sp, &left, &right, &top, &bottom)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY: uint(rootHeight - 1), RightEndY: uint(rootHeight - 1),
				TopEndX: uint(rootWidth - 1), BottomEndX: uint(rootWidth - 1),
			}
			accumulateStrut(monitor, rootWidth, rootHeight, sp, &left, &right, &top, &bottom)
		}
	}

	if left == 0 && right == 0 && top == 0 && bottom == 0 {
		return monitor
	}

	out := geometry.New(monitor.X+left, monitor.Y+top, monitor.Width-left-right, monitor.Height-top-bottom)
	return out
}

func accumulateStrut(monitor geometry.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, left, right, top, bottom *int) {
	monRect := monitor

	if sp.Top > 0 {
		strut := geometry.New(int(sp.TopStartX), 0, int(sp.TopEndX)-int(sp.TopStartX)+1, int(sp.Top))
		if monRect.Intersects(strut) {
			*top = maxInt(*top, strut.Y+strut.Height-monRect.Y)
		}
	}
	if sp.Bottom > 0 {
		y1 := rootHeight - int(sp.Bottom)
		strut := geometry.New(int(sp.BottomStartX), y1, int(sp.BottomEndX)-int(sp.BottomStartX)+1, int(sp.Bottom))
		if monRect.Intersects(strut) {
			*bottom = maxInt(*bottom, monRect.Y+monRect.Height-strut.Y)
		}
	}
	if sp.Left > 0 {
		strut := geometry.New(0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)-int(sp.LeftStartY)+1)
		if monRect.Intersects(strut) {
			*left = maxInt(*left, strut.X+strut.Width-monRect.X)
		}
	}
	if sp.Right > 0 {
		x1 := rootWidth - int(sp.Right)
		strut := geometry.New(x1, int(sp.RightStartY), int(sp.Right), int(sp.RightEndY)-int(sp.RightStartY)+1)
		if monRect.Intersects(strut) {
			*right = maxInt(*right, monRect.X+monRect.Width-strut.X)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
