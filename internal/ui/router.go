package ui

import (
	"github.com/atomicstack/chat-tui/internal/logging/events"
	"github.com/atomicstack/chat-tui/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// screenKind is the closed set of screens. Each capability (naming, key
// handling, rendering) is one switch over the set, so adding a screen is a
// compile-visible change in every capability.
type screenKind int

const (
	screenConnect screenKind = iota
	screenChat
)

// screenFor selects the screen for a connection status: only an established
// connection shows the chat screen.
func screenFor(status state.ConnectionStatus) screenKind {
	if status.Kind == state.Connected {
		return screenChat
	}
	return screenConnect
}

func screenName(kind screenKind) string {
	switch kind {
	case screenChat:
		return "chat"
	default:
		return "connect"
	}
}

func (m *Model) handleScreenKey(kind screenKind, msg tea.KeyMsg, snap state.State) Intent {
	switch kind {
	case screenChat:
		return m.handleChatKey(msg, snap)
	default:
		return m.handleConnectKey(msg, snap)
	}
}

func (m *Model) renderScreen(kind screenKind, snap state.State) []styledLine {
	switch kind {
	case screenChat:
		return m.renderChat(snap)
	default:
		return m.renderConnect(snap)
	}
}

// enterScreen records a screen change and resets the per-screen state the
// previous screen left behind.
func (m *Model) enterScreen(kind screenKind) {
	if kind == m.screen {
		return
	}
	m.screen = kind
	events.UI.Screen(screenName(kind))
	m.message.Reset()
	m.rooms.ClearFilter()
	m.focus = focusRooms
	m.errMsg = ""
}
