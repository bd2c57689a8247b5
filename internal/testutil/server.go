// Package testutil provides an in-process chat server for integration tests.
package testutil

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/transport"
)

// Server is a minimal chat server speaking the line protocol. Every client
// is logged in as Username on accept and sees the configured rooms. Join,
// leave, and message commands are echoed back as events the way a real
// server broadcasts them.
type Server struct {
	Username string
	Rooms    []protocol.RoomInfo

	ln       net.Listener
	commands chan protocol.Command

	mu      sync.Mutex
	clients map[transport.Conn]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// StartServer listens on a loopback port and stops when the test ends.
func StartServer(t *testing.T, rooms ...protocol.RoomInfo) *Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping: unable to listen on loopback: %v", err)
	}
	s := &Server{
		Username: "alice",
		Rooms:    rooms,
		ln:       ln,
		commands: make(chan protocol.Command, 64),
		clients:  make(map[transport.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.accept()
	t.Cleanup(s.Close)
	return s
}

// Addr returns the host:port clients should dial.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Commands delivers every command the server has received, in order.
func (s *Server) Commands() <-chan protocol.Command {
	return s.commands
}

// NextCommand waits up to timeout for the next received command.
func (s *Server) NextCommand(t *testing.T, timeout time.Duration) protocol.Command {
	t.Helper()
	select {
	case cmd := <-s.commands:
		return cmd
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for a command")
	}
	return nil
}

// Broadcast sends ev to every connected client.
func (s *Server) Broadcast(ev protocol.Event) error {
	frame, err := protocol.EncodeEvent(ev)
	if err != nil {
		return err
	}
	return s.broadcastFrame(frame)
}

// BroadcastRaw sends an arbitrary frame, e.g. one that does not decode.
func (s *Server) BroadcastRaw(frame string) error {
	return s.broadcastFrame([]byte(frame))
}

func (s *Server) broadcastFrame(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for c := range s.clients {
		if err := c.WriteFrame(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DisconnectClients closes every client connection cleanly.
func (s *Server) DisconnectClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.Close()
		delete(s.clients, c)
	}
}

// Close stops accepting and disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	_ = s.ln.Close()
	s.DisconnectClients()
	s.wg.Wait()
}

func (s *Server) accept() {
	defer s.wg.Done()
	for {
		nc, err := s.ln.Accept()
		if err != nil {
			return
		}
		conn := transport.NewLineConn(nc)
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.clients[conn] = struct{}{}
		s.mu.Unlock()
		if frame, err := protocol.EncodeEvent(protocol.LoginSuccessful{Username: s.Username, Rooms: s.Rooms}); err == nil {
			_ = conn.WriteFrame(frame)
		}
		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Server) serve(conn transport.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()
	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			return
		}
		cmd, err := protocol.DecodeCommand(frame)
		if err != nil {
			continue
		}
		select {
		case s.commands <- cmd:
		default:
		}
		switch c := cmd.(type) {
		case protocol.JoinRoom:
			_ = s.Broadcast(protocol.RoomParticipation{Room: c.Room, Username: s.Username, Status: protocol.Joined})
		case protocol.LeaveRoom:
			_ = s.Broadcast(protocol.RoomParticipation{Room: c.Room, Username: s.Username, Status: protocol.Left})
		case protocol.SendMessage:
			_ = s.Broadcast(protocol.UserMessage{Room: c.Room, Username: s.Username, Content: c.Content})
		case protocol.Quit:
			return
		}
	}
}
