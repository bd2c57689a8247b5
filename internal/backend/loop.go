package backend

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/chat-tui/internal/data/dispatcher"
	"github.com/atomicstack/chat-tui/internal/logging/events"
	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/shutdown"
	"github.com/atomicstack/chat-tui/internal/state"
)

// Loop is the single writer of server-driven state. Each iteration waits on
// exactly three sources (the next event, the next tick, the shutdown
// signal) and applies whichever becomes ready first.
type Loop struct {
	store      *state.Store
	dispatcher *dispatcher.Dispatcher

	// OnApply, when set, runs after every applied event or tick, outside
	// any store lock. The UI uses it to schedule a redraw.
	OnApply func()
}

func NewLoop(store *state.Store) *Loop {
	return &Loop{store: store, dispatcher: dispatcher.New(store)}
}

// Run applies events until stop delivers a reason or the source ends.
//
// A source that closes cleanly ends the loop with ServerClosed. A transport
// fault ends it with ConnectionLost and an undecodable frame with
// ProtocolViolation. An event naming an unknown room is a broken protocol
// contract: the store panics with *state.ContractViolation, which Run
// recovers into ProtocolViolation rather than continuing on state it can no
// longer trust. Nothing is retried here.
func (l *Loop) Run(source <-chan Event, tick <-chan time.Time, stop <-chan shutdown.Reason) (shutdown.Reason, error) {
	events.Loop.Start()
	for {
		select {
		case reason := <-stop:
			events.Loop.Stop(reason.String())
			return reason, nil
		case evt, ok := <-source:
			if !ok {
				events.Loop.Stop(shutdown.ServerClosed.String())
				return shutdown.ServerClosed, nil
			}
			if reason, err := l.apply(evt); err != nil {
				events.Loop.Fault(reason.String(), err)
				return reason, err
			}
		case <-tick:
			events.Loop.Tick(l.store.AdvanceTimer())
			l.notify()
		}
	}
}

func (l *Loop) apply(evt Event) (reason shutdown.Reason, err error) {
	if evt.Err != nil {
		var decodeErr *protocol.DecodeError
		if errors.As(evt.Err, &decodeErr) {
			return shutdown.ProtocolViolation, evt.Err
		}
		return shutdown.ConnectionLost, evt.Err
	}
	if evt.Event == nil {
		return 0, nil
	}
	defer func() {
		if r := recover(); r != nil {
			violation, ok := r.(*state.ContractViolation)
			if !ok {
				panic(r)
			}
			reason = shutdown.ProtocolViolation
			err = fmt.Errorf("apply %s: %w", evt.Event.Type(), violation)
		}
	}()
	res := l.dispatcher.Handle(evt.Event)
	events.Loop.Applied(string(res.Kind), res.Room)
	l.notify()
	return 0, nil
}

func (l *Loop) notify() {
	if l.OnApply != nil {
		l.OnApply()
	}
}
