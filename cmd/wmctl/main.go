// Command wmctl is the CLI/IPC client for wmd: it issues get_* queries,
// runs execute commands, and streams subscribed events, all over the
// same length-prefixed JSON socket protocol wmd's connections speak.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/termtile/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "windows":
		os.Exit(runGetWindows(os.Args[2:]))
	case "workspaces":
		os.Exit(runSimpleQuery(ipc.TypeGetWorkspaces))
	case "monitors":
		os.Exit(runSimpleQuery(ipc.TypeGetMonitors))
	case "config":
		os.Exit(runSimpleQuery(ipc.TypeGetConfig))
	case "version":
		os.Exit(runSimpleQuery(ipc.TypeGetVersion))
	case "exec":
		os.Exit(runExec(os.Args[2:]))
	case "subscribe":
		os.Exit(runSubscribe(os.Args[2:]))
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wmctl <command> [args...]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  windows [workspace]        List managed windows, optionally filtered")
	fmt.Fprintln(w, "  workspaces                 List workspaces")
	fmt.Fprintln(w, "  monitors                   List monitors")
	fmt.Fprintln(w, "  config                     Print the daemon's effective config")
	fmt.Fprintln(w, "  version                    Print protocol/manager version")
	fmt.Fprintln(w, "  exec <command> [args...]   Run a command from the execute catalog")
	fmt.Fprintln(w, "  subscribe <kind> [kind...] Stream events until interrupted")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "exec catalog: close, toggle_floating, toggle_fullscreen, minimize,")
	fmt.Fprintln(w, "restore, focus_{left,right,up,down,previous,next},")
	fmt.Fprintln(w, "move_{left,right,up,down}, swap_master, layout_{dwindle,master},")
	fmt.Fprintln(w, "{increase,decrease}_master_{count,factor}, switch_workspace <id>,")
	fmt.Fprintln(w, "move_to_workspace <id>, move_to_workspace_follow <id>, reload, quit")
}

func runSimpleQuery(reqType string) int {
	client := ipc.NewClient()
	resp, err := client.Call(ipc.Request{Type: reqType})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResponse(resp)
}

func runGetWindows(args []string) int {
	req := ipc.Request{Type: ipc.TypeGetWindows}
	if len(args) > 0 {
		ws, err := parseWorkspaceArg(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		req.Workspace = &ws
	}
	client := ipc.NewClient()
	resp, err := client.Call(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResponse(resp)
}

func parseWorkspaceArg(s string) (int, error) {
	var ws int
	if _, err := fmt.Sscanf(s, "%d", &ws); err != nil {
		return 0, fmt.Errorf("invalid workspace id %q", s)
	}
	return ws, nil
}

func runExec(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "exec requires a command name")
		return 2
	}
	client := ipc.NewClient()
	resp, err := client.Call(ipc.Request{Type: ipc.TypeExecute, Command: args[0], Args: args[1:]})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printResponse(resp)
}

func runSubscribe(kinds []string) int {
	client := ipc.NewClient()
	events, stop, err := client.Subscribe(kinds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer stop()

	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Println(string(data))
	}
	return 0
}

// printResponse renders resp to stdout, colorizing the status line when
// stdout is a terminal and falling back to plain text/JSON otherwise
// (piped output, e.g. into a status bar, should never carry escape
// codes).
func printResponse(resp ipc.Response) int {
	if resp.Status == "error" {
		if isTTY() {
			fmt.Fprintf(os.Stderr, "\033[31merror\033[0m [%s]: %s\n", resp.Code, resp.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error [%s]: %s\n", resp.Code, resp.Message)
		}
		return 1
	}
	if resp.Data == nil {
		return 0
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp.Data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
