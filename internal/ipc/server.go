package ipc

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/termtile/internal/runtimepath"
)

// Server accepts local connections and turns framed requests into Jobs
// for the reactor, or (for subscribe requests) registers the connection
// with the Broadcaster directly.
type Server struct {
	socketPath string
	listener   net.Listener
	logger     *slog.Logger

	broadcaster *Broadcaster
	jobs        chan Job

	shutdownOnce sync.Once
}

func NewServer(logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, err
	}
	os.Remove(socketPath)

	return &Server{
		socketPath:  socketPath,
		logger:      logger,
		broadcaster: NewBroadcaster(),
		jobs:        make(chan Job, 64),
	}, nil
}

// Jobs returns the channel the reactor drains every tick.
func (s *Server) Jobs() <-chan Job { return s.jobs }

// Broadcaster exposes the event sink the reactor calls Emit on.
func (s *Server) Broadcaster() *Broadcaster { return s.broadcaster }

// Submit enqueues req as a Job the same way an accepted connection would
// and returns the channel the reactor's reply arrives on. It lets
// in-process producers (the global hotkey registrar) reach the reactor
// through the same single queue an IPC connection uses, rather than a
// second mutation path into wsmanager state.
func (s *Server) Submit(req Request) <-chan Response {
	reply := make(chan Response, 1)
	s.jobs <- Job{Req: req, Reply: reply}
	return reply
}

// Start opens the listening socket and begins accepting connections in
// the background. It does not block.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}
	s.listener = listener
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return err
	}
	s.logger.Info("ipc server listening", "socket", s.socketPath)

	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return // listener closed by Stop
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	for {
		var req Request
		if err := ReadMessage(conn, &req); err != nil {
			return
		}

		if req.Type == TypeSubscribe {
			s.runSubscriber(conn, req)
			return
		}

		reply := make(chan Response, 1)
		s.jobs <- Job{Req: req, Reply: reply}
		resp := <-reply
		if err := WriteMessage(conn, resp); err != nil {
			return
		}
	}
}

// runSubscriber transitions conn into broadcast mode: it sends no
// response and instead pumps every admitted event until the connection
// drops or it is evicted as a slow consumer.
func (s *Server) runSubscriber(conn net.Conn, req Request) {
	outbox, unsubscribe := s.broadcaster.Subscribe(req.Events)
	defer unsubscribe()

	// Detect client disconnect without blocking the write pump: a read
	// returning any error (including EOF) means the connection is gone.
	disconnected := make(chan struct{})
	go func() {
		buf := make([]byte, 1)
		conn.Read(buf)
		close(disconnected)
	}()

	for {
		select {
		case resp, ok := <-outbox:
			if !ok {
				return // evicted as a slow consumer
			}
			if err := WriteMessage(conn, resp); err != nil {
				return
			}
		case <-disconnected:
			return
		}
	}
}

// Stop closes the listener and removes the socket file. In-flight jobs
// are left for the reactor to drain or discard on its own shutdown path.
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		if s.listener != nil {
			s.listener.Close()
		}
		os.Remove(s.socketPath)
	})
}
