package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/chat-tui/internal/logging/events"
	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/transport"
)

// ErrSenderClosed is returned by Send after Close.
var ErrSenderClosed = errors.New("command sender closed")

// Sender encodes commands onto a connection.
type Sender struct {
	conn transport.Conn

	mu     sync.Mutex
	closed bool
}

func NewSender(conn transport.Conn) *Sender {
	return &Sender{conn: conn}
}

// Send writes cmd as one frame.
func (s *Sender) Send(cmd protocol.Command) error {
	frame, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSenderClosed
	}
	if err := s.conn.WriteFrame(frame); err != nil {
		return fmt.Errorf("send %s: %w", cmd.Type(), err)
	}
	events.Transport.Sent(string(cmd.Type()))
	return nil
}

// Close tells the server the client is leaving and refuses further sends.
// The quit frame is best effort; the connection itself is owned by the
// Source and closed there.
func (s *Sender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if frame, err := protocol.EncodeCommand(protocol.Quit{}); err == nil {
		_ = s.conn.WriteFrame(frame)
	}
	s.closed = true
}
