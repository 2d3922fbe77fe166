package reactor

import (
	"github.com/1broseidon/termtile/internal/executor"
	"github.com/1broseidon/termtile/internal/ipc"
	"github.com/1broseidon/termtile/internal/wmerr"
)

// handleJob answers one IPC job and acts on any control signal its
// execute command produced. A reload runs before the reply is sent so a
// failing reload is reported as the reply's error rather than a silent
// "ok" followed by a log line nobody issuing the command will see. It
// reports whether the reactor should stop.
func (r *Reactor) handleJob(job ipc.Job) (quit bool) {
	resp, sig := r.dispatch(job.Req)

	switch sig {
	case executor.DoReload:
		if err := r.reload(); err != nil {
			resp = ipc.ErrorResponse(err)
		}
	case executor.DoQuit:
		job.Reply <- resp
		return true
	}

	job.Reply <- resp
	return false
}

func (r *Reactor) dispatch(req ipc.Request) (ipc.Response, executor.Signal) {
	switch req.Type {
	case ipc.TypeGetWindows:
		filter := -1
		if req.Workspace != nil {
			filter = *req.Workspace
		}
		return ipc.OK(r.manager.Windows(filter)), executor.None

	case ipc.TypeGetWorkspaces:
		return ipc.OK(r.manager.Workspaces()), executor.None

	case ipc.TypeGetMonitors:
		return ipc.OK(r.manager.Monitors()), executor.None

	case ipc.TypeGetConfig:
		if r.hooks.GetConfig == nil {
			return ipc.OK(nil), executor.None
		}
		return ipc.OK(r.hooks.GetConfig()), executor.None

	case ipc.TypeGetVersion:
		return ipc.OK(ipc.CurrentProtocolVersion(r.managerVersion)), executor.None

	case ipc.TypeExecute:
		return r.dispatchExecute(req)

	default:
		err := wmerr.New(wmerr.ProtocolError, "unknown request type: "+req.Type)
		return ipc.ErrorResponse(err), executor.None
	}
}

func (r *Reactor) dispatchExecute(req ipc.Request) (ipc.Response, executor.Signal) {
	cmd, err := executor.Parse(req.Command, req.Args)
	if err != nil {
		return ipc.ErrorResponse(err), executor.None
	}

	result, err := r.exec.Run(cmd, r.manager.ActiveWorkspace())
	if err != nil {
		return ipc.ErrorResponse(err), executor.None
	}

	for _, ev := range result.Events {
		r.emit(ev)
	}
	return ipc.OK(nil), result.Signal
}
