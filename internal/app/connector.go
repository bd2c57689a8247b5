package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/chat-tui/internal/backend"
	"github.com/atomicstack/chat-tui/internal/logging"
	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/shutdown"
	"github.com/atomicstack/chat-tui/internal/state"
	"github.com/atomicstack/chat-tui/internal/transport"
)

var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
	ErrNoActiveRoom     = errors.New("no active room")
	ErrUnknownRoom      = errors.New("unknown room")
	// ErrServerClosed ends a session the server closed cleanly.
	ErrServerClosed = errors.New("server closed the connection")
)

// Connector executes UI intents: it owns the connection, the command sender,
// and the lifetime of the merge loop for one session.
type Connector struct {
	ctx    context.Context
	store  *state.Store
	term   *shutdown.Terminator
	dialer *transport.Dialer
	tick   time.Duration
	spawn  func(func() error)

	mu      sync.Mutex
	active  bool
	sender  *backend.Sender
	sendErr error
	notify  func()
	stopped chan struct{}
}

// NewConnector wires a connector. spawn runs long-lived tasks; errgroup's Go
// in production, a plain goroutine launcher in tests.
func NewConnector(ctx context.Context, store *state.Store, term *shutdown.Terminator, dialer *transport.Dialer, tick time.Duration, spawn func(func() error)) *Connector {
	if tick <= 0 {
		tick = time.Second
	}
	return &Connector{
		ctx:     ctx,
		store:   store,
		term:    term,
		dialer:  dialer,
		tick:    tick,
		spawn:   spawn,
		stopped: make(chan struct{}),
	}
}

// SetNotify installs the observer called after every state change the
// connector or its merge loop makes.
func (c *Connector) SetNotify(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

func (c *Connector) changed() {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Connect dials addr and, on success, starts the event reader and the merge
// loop. Failures leave the store in the Errored status.
func (c *Connector) Connect(addr string) error {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.active = true
	c.mu.Unlock()

	c.store.SetConnectionStatus(state.StatusConnecting(addr))
	c.changed()

	conn, err := c.dialer.Dial(c.ctx, addr)
	if err != nil {
		c.mu.Lock()
		c.active = false
		c.mu.Unlock()
		c.store.SetConnectionStatus(state.StatusErrored(addr, err))
		return err
	}
	c.start(addr, conn)
	return nil
}

// start runs a session over an established connection.
func (c *Connector) start(addr string, conn transport.Conn) {
	source := backend.NewSource(conn)
	sender := backend.NewSender(conn)
	c.mu.Lock()
	c.sender = sender
	c.mu.Unlock()
	c.store.SetConnectionStatus(state.StatusConnected(addr))

	stop := c.term.Subscribe()
	c.spawn(func() error {
		source.Wait()
		return nil
	})
	c.spawn(func() error {
		return c.run(addr, source, sender, stop)
	})
}

func (c *Connector) run(addr string, source *backend.Source, sender *backend.Sender, stop <-chan shutdown.Reason) error {
	defer close(c.stopped)
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	loop := backend.NewLoop(c.store)
	loop.OnApply = c.changed
	reason, err := loop.Run(source.Events(), ticker.C, stop)
	c.mu.Lock()
	if err == nil && reason == shutdown.ConnectionLost {
		err = c.sendErr
	}
	c.mu.Unlock()

	sender.Close()
	source.Stop()
	c.mu.Lock()
	c.sender = nil
	c.mu.Unlock()

	switch {
	case err != nil:
		logging.Errorf("session with %s: %w", addr, err)
		c.store.SetConnectionStatus(state.StatusErrored(addr, err))
	case reason == shutdown.ServerClosed:
		c.store.SetConnectionStatus(state.StatusDisconnected())
	}
	c.term.Terminate(reason)

	if err != nil {
		return fmt.Errorf("session ended (%s): %w", reason, err)
	}
	if reason == shutdown.ServerClosed {
		return ErrServerClosed
	}
	return nil
}

// Stopped is closed once a started session's merge loop has exited.
func (c *Connector) Stopped() <-chan struct{} {
	return c.stopped
}

func (c *Connector) currentSender() (*backend.Sender, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sender == nil {
		return nil, ErrNotConnected
	}
	return c.sender, nil
}

// send delivers cmd. A failed write marks the connection Errored and ends
// the session with ConnectionLost; the command is never dropped silently.
func (c *Connector) send(cmd protocol.Command) error {
	sender, err := c.currentSender()
	if err != nil {
		return err
	}
	if err := sender.Send(cmd); err != nil {
		snap := c.store.Snapshot()
		c.store.SetConnectionStatus(state.StatusErrored(snap.Connection.Addr, err))
		c.mu.Lock()
		if c.sendErr == nil {
			c.sendErr = err
		}
		c.mu.Unlock()
		c.term.Terminate(shutdown.ConnectionLost)
		return err
	}
	return nil
}

// SendMessage posts content to the active room.
func (c *Connector) SendMessage(content string) error {
	room := c.store.Snapshot().ActiveRoom
	if room == "" {
		return ErrNoActiveRoom
	}
	return c.send(protocol.SendMessage{Room: room, Content: content})
}

// SelectRoom makes room active, joining it first when needed. Membership
// itself changes only when the server confirms the join.
func (c *Connector) SelectRoom(room string) error {
	r, ok := c.store.Snapshot().Room(room)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownRoom, room)
	}
	if !r.Joined {
		if err := c.send(protocol.JoinRoom{Room: room}); err != nil {
			return err
		}
	}
	c.store.SelectRoom(room)
	return nil
}

// LeaveRoom asks the server to remove the user from room.
func (c *Connector) LeaveRoom(room string) error {
	return c.send(protocol.LeaveRoom{Room: room})
}

// Exit ends the session at the user's request.
func (c *Connector) Exit() {
	c.term.Terminate(shutdown.UserRequested)
}
