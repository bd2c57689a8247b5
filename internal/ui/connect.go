package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/chat-tui/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

const connectPrompt = "server › "

func (m *Model) handleConnectKey(msg tea.KeyMsg, snap state.State) Intent {
	switch msg.Type {
	case tea.KeyEsc:
		return Exit{}
	case tea.KeyEnter:
		if snap.Connection.Kind == state.Connecting {
			return None{}
		}
		addr := strings.TrimSpace(m.addr.Text())
		if addr == "" {
			return None{}
		}
		m.errMsg = ""
		return ConnectRequest{Addr: addr}
	}
	m.editInput(m.addr, "address", msg)
	return None{}
}

func (m *Model) renderConnect(snap state.State) []styledLine {
	lines := []styledLine{
		{text: "chat-tui", style: styles.Title},
		{},
		{text: "Connect to a chat server", style: styles.Header},
		{text: m.renderInputLine(connectPrompt, styles.InputPrompt, m.addr, DefaultServerAddr, true), raw: true},
		{},
	}
	status := snap.Connection
	switch status.Kind {
	case state.Connecting:
		lines = append(lines, styledLine{text: fmt.Sprintf("Connecting to %s…", status.Addr), style: styles.StatusPending})
	case state.Errored:
		lines = append(lines, styledLine{text: fmt.Sprintf("Connection to %s failed: %s", status.Addr, status.Err), style: styles.Error})
	default:
		lines = append(lines, styledLine{text: "Press enter to connect, esc to quit.", style: styles.Info})
	}
	if m.errMsg != "" && status.Kind != state.Errored {
		lines = append(lines, styledLine{text: m.errMsg, style: styles.Error})
	}
	return lines
}
