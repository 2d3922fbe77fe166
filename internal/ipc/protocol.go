// Package ipc implements the length-prefixed JSON protocol the manager
// exposes to local clients: one listener, many concurrent connections,
// each message a 4-byte little-endian length prefix followed by that
// many bytes of UTF-8 JSON.
package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/1broseidon/termtile/internal/wmerr"
)

// MaxMessageSize is the largest accepted message body, in bytes.
const MaxMessageSize = 1 << 20 // 1,048,576

// ProtocolVersion is returned by get_version and checked by clients at
// connect time.
type ProtocolVersion struct {
	ProtocolMajor  int    `json:"protocol_major"`
	ProtocolMinor  int    `json:"protocol_minor"`
	ManagerVersion string `json:"manager_version"`
}

const (
	protocolMajor = 1
	protocolMinor = 0
)

// CurrentProtocolVersion reports this build's wire protocol version
// alongside managerVersion, for get_version responses.
func CurrentProtocolVersion(managerVersion string) ProtocolVersion {
	return ProtocolVersion{
		ProtocolMajor:  protocolMajor,
		ProtocolMinor:  protocolMinor,
		ManagerVersion: managerVersion,
	}
}

// Request is one decoded client message. Type selects which of the
// remaining fields are meaningful.
type Request struct {
	Type      string   `json:"type"`
	Workspace *int     `json:"workspace,omitempty"`
	Command   string   `json:"command,omitempty"`
	Args      []string `json:"args,omitempty"`
	Events    []string `json:"events,omitempty"`
}

const (
	TypeGetWindows    = "get_windows"
	TypeGetWorkspaces = "get_workspaces"
	TypeGetMonitors   = "get_monitors"
	TypeGetConfig     = "get_config"
	TypeGetVersion    = "get_version"
	TypeExecute       = "execute"
	TypeSubscribe     = "subscribe"
)

// Response is one server reply, or one broadcast push when Status is
// "event".
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Event   string `json:"event,omitempty"`
}

func OK(data any) Response { return Response{Status: "ok", Data: data} }

func ErrorResponse(err error) Response {
	return Response{Status: "error", Message: wmerr.MessageOf(err), Code: wmerr.CodeOf(err)}
}

// ReadMessage reads one length-prefixed JSON body from r and unmarshals
// it into v. It returns a *wmerr.Error of kind MessageTooLarge or
// ProtocolError on any framing/decoding failure.
func ReadMessage(r io.Reader, v any) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return wmerr.Wrap(wmerr.ProtocolError, "failed to read length prefix", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n == 0 || n > MaxMessageSize {
		return wmerr.New(wmerr.MessageTooLarge, fmt.Sprintf("message length %d out of bounds", n))
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return wmerr.Wrap(wmerr.ProtocolError, "failed to read message body", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return wmerr.Wrap(wmerr.ProtocolError, "failed to parse message", err)
	}
	return nil
}

// WriteMessage frames v as a length-prefixed JSON body and writes it to w.
func WriteMessage(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return wmerr.Wrap(wmerr.ProtocolError, "failed to marshal message", err)
	}
	if len(body) > MaxMessageSize {
		return wmerr.New(wmerr.MessageTooLarge, fmt.Sprintf("message length %d exceeds limit", len(body)))
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}
