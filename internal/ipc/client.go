package ipc

import (
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/termtile/internal/runtimepath"
)

// Client is a short-lived connection to the manager's IPC socket, used
// by cmd/wmctl for one request/response round trip at a time.
type Client struct {
	socketPath string
	timeout    time.Duration
}

func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		socketPath = ""
	}
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

// Call sends req and returns the single response.
func (c *Client) Call(req Request) (Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return Response{}, fmt.Errorf("failed to connect to manager: %w (is it running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := WriteMessage(conn, req); err != nil {
		return Response{}, err
	}
	var resp Response
	if err := ReadMessage(conn, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Subscribe sends a subscribe request and streams every pushed event to
// the returned channel until the connection drops or the returned stop
// func is called.
func (c *Client) Subscribe(kinds []string) (<-chan Response, func(), error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to manager: %w (is it running?)", err)
	}
	if err := WriteMessage(conn, Request{Type: TypeSubscribe, Events: kinds}); err != nil {
		conn.Close()
		return nil, nil, err
	}

	out := make(chan Response)
	go func() {
		defer close(out)
		defer conn.Close()
		for {
			var resp Response
			if err := ReadMessage(conn, &resp); err != nil {
				return
			}
			out <- resp
		}
	}()

	return out, func() { conn.Close() }, nil
}
