package executor

import (
	"log/slog"

	"github.com/1broseidon/termtile/internal/events"
	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/wmerr"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

// Signal is a control action the reactor must carry out itself: Reload
// re-reads configuration and recompiles rules; Quit stops the reactor,
// the IPC server, and persists state before exiting. Executor does not
// perform either directly since it owns neither configuration nor the
// reactor's lifecycle.
type Signal int

const (
	None Signal = iota
	DoReload
	DoQuit
)

// Result is what running a Command produced: zero or more events to
// broadcast, and an optional control Signal for the reactor.
type Result struct {
	Events []events.Event
	Signal Signal
}

// Executor runs Commands against a single wsmanager.Manager. Every
// method assumes it is called from the reactor goroutine: like Manager,
// it takes no lock.
type Executor struct {
	manager *wsmanager.Manager
	backend platform.Backend
	logger  *slog.Logger
}

func New(manager *wsmanager.Manager, backend platform.Backend, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{manager: manager, backend: backend, logger: logger}
}

// Run executes cmd against the workspace manager bound to active
// workspace activeWS (the focused-window commands apply to the visible
// workspace's focused handle; workspace-targeted commands ignore it).
func (e *Executor) Run(cmd Command, activeWS int) (Result, error) {
	switch cmd.Name {
	case CloseActiveWindow:
		return e.closeActive(activeWS)
	case ToggleFloating:
		return e.onFocused(activeWS, func(h platform.Handle) {
			e.manager.ToggleFloating(h)
		}, events.WindowStateChanged)
	case ToggleFullscreen:
		return e.onFocused(activeWS, func(h platform.Handle) {
			e.manager.ToggleFullscreen(h)
		}, events.WindowStateChanged)
	case MinimizeActive:
		return e.onFocused(activeWS, func(h platform.Handle) {
			e.manager.Minimize(h)
		}, events.WindowStateChanged)
	case RestoreActive:
		return e.onFocused(activeWS, func(h platform.Handle) {
			e.manager.Restore(h)
		}, events.WindowStateChanged)
	case FocusLeft:
		e.manager.FocusDirection(activeWS, wsmanager.Left)
		return e.focusResult(activeWS), nil
	case FocusRight:
		e.manager.FocusDirection(activeWS, wsmanager.Right)
		return e.focusResult(activeWS), nil
	case FocusUp:
		e.manager.FocusDirection(activeWS, wsmanager.Up)
		return e.focusResult(activeWS), nil
	case FocusDown:
		e.manager.FocusDirection(activeWS, wsmanager.Down)
		return e.focusResult(activeWS), nil
	case FocusPrevious:
		e.manager.FocusCycle(activeWS, -1)
		return e.focusResult(activeWS), nil
	case FocusNext:
		e.manager.FocusCycle(activeWS, 1)
		return e.focusResult(activeWS), nil
	case MoveWindowLeft:
		e.manager.MoveDirection(activeWS, wsmanager.Left)
		return Result{}, nil
	case MoveWindowRight:
		e.manager.MoveDirection(activeWS, wsmanager.Right)
		return Result{}, nil
	case MoveWindowUp:
		e.manager.MoveDirection(activeWS, wsmanager.Up)
		return Result{}, nil
	case MoveWindowDown:
		e.manager.MoveDirection(activeWS, wsmanager.Down)
		return Result{}, nil
	case SwapWithMaster:
		e.manager.SwapWithMaster(activeWS)
		return Result{}, nil
	case SetLayoutDwindle:
		return e.setLayout(layout.Dwindle), nil
	case SetLayoutMaster:
		return e.setLayout(layout.MasterStack), nil
	case IncreaseMasterCount:
		e.manager.AdjustMasterCount(1)
		return Result{}, nil
	case DecreaseMasterCount:
		e.manager.AdjustMasterCount(-1)
		return Result{}, nil
	case IncreaseMasterFactor:
		e.manager.AdjustMasterFactor(layout.MasterFactorStep)
		return Result{}, nil
	case DecreaseMasterFactor:
		e.manager.AdjustMasterFactor(-layout.MasterFactorStep)
		return Result{}, nil
	case SwitchWorkspace:
		return e.switchWorkspace(cmd.WorkspaceID)
	case MoveToWorkspace:
		return e.moveToWorkspace(activeWS, cmd.WorkspaceID, false)
	case MoveToWorkspaceAndFollow:
		return e.moveToWorkspace(activeWS, cmd.WorkspaceID, true)
	case Reload:
		return Result{Signal: DoReload}, nil
	case Quit:
		return Result{Signal: DoQuit}, nil
	default:
		return Result{}, wmerr.New(wmerr.UnknownCommand, "unhandled command: "+string(cmd.Name))
	}
}

func (e *Executor) onFocused(ws int, fn func(platform.Handle), kind events.Kind) (Result, error) {
	h, ok := e.manager.FocusedHandle(ws)
	if !ok {
		return Result{}, wmerr.New(wmerr.NoFocusedWindow, "no focused window on workspace")
	}
	fn(h)
	win := e.manager.Window(h)
	state := ""
	if win != nil {
		state = string(win.State)
	}
	return Result{Events: []events.Event{{Kind: kind, Data: events.WindowStateData{Handle: h, State: state}}}}, nil
}

func (e *Executor) closeActive(ws int) (Result, error) {
	h, ok := e.manager.FocusedHandle(ws)
	if !ok {
		return Result{}, wmerr.New(wmerr.NoFocusedWindow, "no focused window on workspace")
	}
	if err := e.backend.Close(h); err != nil {
		e.logger.Warn("os call failed, skipping", "op", "close", "handle", h, "error", err)
	}
	return Result{}, nil
}

func (e *Executor) focusResult(ws int) Result {
	h, ok := e.manager.FocusedHandle(ws)
	if !ok {
		return Result{}
	}
	return Result{Events: []events.Event{{Kind: events.WindowFocused, Data: events.WindowData{Handle: h, Workspace: ws}}}}
}

func (e *Executor) setLayout(kind layout.Kind) Result {
	state := e.manager.Layout()
	state.Kind = kind
	e.manager.SetLayout(state)
	e.manager.RetileAllVisible()
	return Result{Events: []events.Event{{Kind: events.LayoutChanged, Data: events.LayoutChangedData{Kind: string(kind)}}}}
}

func (e *Executor) switchWorkspace(id int) (Result, error) {
	from, ok := e.manager.SwitchTo(id)
	if !ok {
		return Result{}, wmerr.New(wmerr.UnknownWorkspace, "unknown workspace")
	}
	return Result{Events: []events.Event{{Kind: events.WorkspaceChanged, Data: events.WorkspaceChangedData{From: from, To: id}}}}, nil
}

func (e *Executor) moveToWorkspace(activeWS, target int, follow bool) (Result, error) {
	h, ok := e.manager.FocusedHandle(activeWS)
	if !ok {
		return Result{}, wmerr.New(wmerr.NoFocusedWindow, "no focused window on workspace")
	}
	if !e.manager.MoveToWorkspace(h, target) {
		return Result{}, wmerr.New(wmerr.UnknownWorkspace, "unknown workspace")
	}
	result := Result{Events: []events.Event{{Kind: events.WindowStateChanged, Data: events.WindowData{Handle: h, Workspace: target}}}}
	if follow {
		r, err := e.switchWorkspace(target)
		if err != nil {
			return result, err
		}
		result.Events = append(result.Events, r.Events...)
	}
	return result, nil
}
