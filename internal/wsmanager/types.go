// Package wsmanager owns the window registry's actual records and the
// workspace/monitor model: admission, removal, workspace switching,
// retiling and the per-window state machine. It is the only package that
// holds a ManagedWindow by pointer; everything else addresses windows by
// platform.Handle and asks the manager for a read-only snapshot.
package wsmanager

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/platform"
)

// State is one of a ManagedWindow's four tiling states.
type State string

const (
	Tiled      State = "tiled"
	Floating   State = "floating"
	Fullscreen State = "fullscreen"
	Minimized  State = "minimized"
)

// ManagedWindow is one admitted window. The manager is its sole owner;
// callers only ever see copies via Manager.Window / Manager.Snapshot.
type ManagedWindow struct {
	Handle       platform.Handle
	State        State
	Workspace    int
	Monitor      int
	Title        string
	Class        string
	ProcessName  string
	Bounds       geometry.Rect
	OriginalRect *geometry.Rect
	Managed      bool
	UserFloating bool

	priorState State // state to return to when leaving Fullscreen/Minimized
}

// Workspace groups a tile list and a floating set under one monitor.
type Workspace struct {
	ID                  int
	Name                string
	Monitor             int
	WorkArea            geometry.Rect
	Tiles               []platform.Handle
	Floating            map[platform.Handle]struct{}
	Focused             *platform.Handle
	Visible             bool
	VirtualDesktopToken string
}

func newWorkspace(id int, name string, monitor int) *Workspace {
	return &Workspace{
		ID:       id,
		Name:     name,
		Monitor:  monitor,
		Floating: make(map[platform.Handle]struct{}),
	}
}

// Monitor is a physical output as enumerated by the platform backend.
type Monitor struct {
	ID              int
	Token           string
	DeviceName      string
	WorkArea        geometry.Rect
	FullRect        geometry.Rect
	DPIScale        float64
	Workspaces      []int
	ActiveWorkspace *int
}

// AdmissionDecision is the resolved outcome of running the rule engine
// (internal/rules) over a newly discovered window. Zero values mean "no
// override": Workspace 0 keeps the window on whatever workspace would
// otherwise host it (the manager's active workspace), Monitor 0
// leaves the monitor chosen by the caller alone.
type AdmissionDecision struct {
	Workspace  int
	Monitor    int
	Float      bool
	Fullscreen bool
	NoManage   bool
	NoFocus    bool
	Opacity    *float64
	Pin        bool
}

// LayoutState is the manager's single globally-active layout selection;
// SetLayoutDwindle/Master and the master-count/factor commands mutate
// this and retile every visible workspace.
type LayoutState struct {
	Kind   layout.Kind
	Params layout.Params
}
