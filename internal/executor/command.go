// Package executor dispatches the closed command set onto a
// wsmanager.Manager, translating wire-level command strings into the
// manager calls and events an execute request or keybind produces.
package executor

import (
	"strconv"

	"github.com/1broseidon/termtile/internal/wmerr"
)

type Name string

const (
	CloseActiveWindow       Name = "close"
	ToggleFloating          Name = "toggle_floating"
	ToggleFullscreen        Name = "toggle_fullscreen"
	MinimizeActive          Name = "minimize"
	RestoreActive           Name = "restore"
	FocusLeft               Name = "focus_left"
	FocusRight              Name = "focus_right"
	FocusUp                 Name = "focus_up"
	FocusDown               Name = "focus_down"
	FocusPrevious           Name = "focus_previous"
	FocusNext               Name = "focus_next"
	MoveWindowLeft          Name = "move_left"
	MoveWindowRight         Name = "move_right"
	MoveWindowUp            Name = "move_up"
	MoveWindowDown          Name = "move_down"
	SwapWithMaster          Name = "swap_master"
	SetLayoutDwindle        Name = "layout_dwindle"
	SetLayoutMaster         Name = "layout_master"
	IncreaseMasterCount     Name = "increase_master_count"
	DecreaseMasterCount     Name = "decrease_master_count"
	IncreaseMasterFactor    Name = "increase_master_factor"
	DecreaseMasterFactor    Name = "decrease_master_factor"
	SwitchWorkspace         Name = "switch_workspace"
	MoveToWorkspace         Name = "move_to_workspace"
	MoveToWorkspaceAndFollow Name = "move_to_workspace_follow"
	Reload                  Name = "reload"
	Quit                    Name = "quit"
)

// takesWorkspaceArg is the set of commands whose sole argument is a
// workspace id.
var takesWorkspaceArg = map[Name]bool{
	SwitchWorkspace:          true,
	MoveToWorkspace:          true,
	MoveToWorkspaceAndFollow: true,
}

var known = map[Name]bool{
	CloseActiveWindow: true, ToggleFloating: true, ToggleFullscreen: true,
	MinimizeActive: true, RestoreActive: true,
	FocusLeft: true, FocusRight: true, FocusUp: true, FocusDown: true,
	FocusPrevious: true, FocusNext: true,
	MoveWindowLeft: true, MoveWindowRight: true, MoveWindowUp: true, MoveWindowDown: true,
	SwapWithMaster: true,
	SetLayoutDwindle: true, SetLayoutMaster: true,
	IncreaseMasterCount: true, DecreaseMasterCount: true,
	IncreaseMasterFactor: true, DecreaseMasterFactor: true,
	SwitchWorkspace: true, MoveToWorkspace: true, MoveToWorkspaceAndFollow: true,
	Reload: true, Quit: true,
}

// Command is a parsed, ready-to-run intent: a name from the closed set
// plus its decoded workspace id argument, when the command takes one.
type Command struct {
	Name        Name
	WorkspaceID int
}

// Parse validates command/args against the wire string catalog, decoding
// the workspace-id argument for the three commands that take one.
func Parse(command string, args []string) (Command, error) {
	name := Name(command)
	if !known[name] {
		return Command{}, wmerr.New(wmerr.UnknownCommand, "unknown command: "+command)
	}

	cmd := Command{Name: name}
	if takesWorkspaceArg[name] {
		if len(args) != 1 {
			return Command{}, wmerr.New(wmerr.ProtocolError, command+" requires exactly one argument")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, wmerr.Wrap(wmerr.ProtocolError, command+": invalid workspace id", err)
		}
		cmd.WorkspaceID = id
	}
	return cmd, nil
}
