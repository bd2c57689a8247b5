// Package backend connects a transport connection to the state store: the
// Source turns frames into events, the Sender turns commands into frames,
// and the Loop merges events, ticks, and shutdown into ordered mutations.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atomicstack/chat-tui/internal/logging/events"
	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/transport"
)

// Event is one item of the inbound sequence: a decoded server event, or the
// fault that ended the sequence. The channel closes after a clean EOF.
type Event struct {
	Event protocol.Event
	Err   error
}

// Source reads frames from a connection on its own goroutine and publishes
// decoded events in arrival order.
type Source struct {
	conn transport.Conn

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewSource starts reading from conn immediately.
func NewSource(conn transport.Conn) *Source {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Source{
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}
	s.wg.Add(1)
	go s.read()
	go func() {
		s.wg.Wait()
		close(s.events)
	}()
	return s
}

// Events returns the inbound event channel.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Stop cancels the reader and closes the connection to unblock a pending
// read. Use Wait if a clean drain is required (e.g. in tests).
func (s *Source) Stop() {
	s.cancel()
	_ = s.conn.Close()
}

// Wait blocks until the reader has exited and the events channel is closed.
func (s *Source) Wait() {
	s.wg.Wait()
}

func (s *Source) read() {
	defer s.wg.Done()
	for {
		frame, err := s.conn.ReadFrame()
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) {
				events.Transport.Closed(s.conn.RemoteAddr())
				return
			}
			if errors.Is(err, transport.ErrFrameTooLarge) {
				// an oversized frame is the server breaking the protocol
				s.emit(Event{Err: &protocol.DecodeError{Err: err}})
				return
			}
			s.emit(Event{Err: fmt.Errorf("read from %s: %w", s.conn.RemoteAddr(), err)})
			return
		}
		ev, err := protocol.DecodeEvent(frame)
		if err != nil {
			s.emit(Event{Err: err})
			return
		}
		events.Transport.Received(string(ev.Type()))
		if !s.emit(Event{Event: ev}) {
			return
		}
	}
}

func (s *Source) emit(evt Event) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.events <- evt:
		return true
	}
}
