// Package shutdown broadcasts why the application is stopping. Every
// long-lived task subscribes once and watches its channel at each of its
// suspension points; nothing is ever interrupted forcibly.
package shutdown

import (
	"fmt"
	"sync"

	"github.com/atomicstack/chat-tui/internal/logging/events"
)

// Reason describes why the application is terminating.
type Reason int

const (
	UserRequested Reason = iota + 1
	ConnectionLost
	ServerClosed
	ProtocolViolation
	Interrupted
)

func (r Reason) String() string {
	switch r {
	case UserRequested:
		return "user requested"
	case ConnectionLost:
		return "connection lost"
	case ServerClosed:
		return "server closed the connection"
	case ProtocolViolation:
		return "protocol violation"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Terminator fans a single Reason out to every subscriber. The first call
// to Terminate wins; later calls are ignored.
type Terminator struct {
	mu     sync.Mutex
	fired  bool
	reason Reason
	subs   []chan Reason
}

func New() *Terminator {
	return &Terminator{}
}

// Subscribe returns a channel that receives the termination reason exactly
// once. Subscribing after termination yields an already-filled channel.
func (t *Terminator) Subscribe() <-chan Reason {
	ch := make(chan Reason, 1)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		ch <- t.reason
		return ch
	}
	t.subs = append(t.subs, ch)
	return ch
}

// Terminate publishes r to all subscribers. It reports whether this call
// was the one that fired.
func (t *Terminator) Terminate(r Reason) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		return false
	}
	t.fired = true
	t.reason = r
	for _, ch := range t.subs {
		ch <- r
	}
	t.subs = nil
	events.App.Terminate(r.String())
	return true
}

// Reason returns the published reason, if any.
func (t *Terminator) Reason() (Reason, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason, t.fired
}
