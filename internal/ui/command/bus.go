// Package command turns UI intents into asynchronous work. Screens only
// produce intents; the bus hands them to a Handler off the update loop and
// reports the outcome back as a ResultMsg.
package command

import (
	"github.com/atomicstack/chat-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Intent is the value a screen produces in response to a key press.
type Intent interface {
	Kind() string
}

type None struct{}

type ConnectRequest struct {
	Addr string
}

type SendMessage struct {
	Content string
}

type SelectRoom struct {
	Room string
}

type LeaveRoom struct {
	Room string
}

type Exit struct{}

func (None) Kind() string           { return "none" }
func (ConnectRequest) Kind() string { return "connect" }
func (SendMessage) Kind() string    { return "send_message" }
func (SelectRoom) Kind() string     { return "select_room" }
func (LeaveRoom) Kind() string      { return "leave_room" }
func (Exit) Kind() string           { return "exit" }

// Handler performs intents against the session.
type Handler interface {
	Connect(addr string) error
	SendMessage(content string) error
	SelectRoom(room string) error
	LeaveRoom(room string) error
	Exit()
}

// ResultMsg reports a finished intent to the UI.
type ResultMsg struct {
	Intent Intent
	Err    error
}

// Bus coordinates the execution of intents.
type Bus struct {
	handler Handler
}

// New initialises a command bus. A nil handler makes every intent a no-op.
func New(handler Handler) *Bus {
	return &Bus{handler: handler}
}

// Execute wraps an intent into a Bubble Tea command while emitting trace logs.
// None and unknown intents produce no command.
func (b *Bus) Execute(intent Intent) tea.Cmd {
	if intent == nil {
		return nil
	}
	if _, ok := intent.(None); ok {
		return nil
	}
	events.Intent.Queue(intent.Kind(), detail(intent))
	if b == nil || b.handler == nil {
		events.Intent.Skip(intent.Kind())
		return nil
	}
	h := b.handler
	return func() tea.Msg {
		var err error
		switch in := intent.(type) {
		case ConnectRequest:
			err = h.Connect(in.Addr)
		case SendMessage:
			err = h.SendMessage(in.Content)
		case SelectRoom:
			err = h.SelectRoom(in.Room)
		case LeaveRoom:
			err = h.LeaveRoom(in.Room)
		case Exit:
			h.Exit()
		default:
			events.Intent.Skip(intent.Kind())
			return nil
		}
		events.Intent.Result(intent.Kind(), err)
		return ResultMsg{Intent: intent, Err: err}
	}
}

func detail(intent Intent) string {
	switch in := intent.(type) {
	case ConnectRequest:
		return in.Addr
	case SelectRoom:
		return in.Room
	case LeaveRoom:
		return in.Room
	}
	return ""
}
