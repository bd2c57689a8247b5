package ui

import (
	"time"

	"github.com/atomicstack/chat-tui/internal/shutdown"
	"github.com/atomicstack/chat-tui/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// StateChangedMsg tells the model the store changed outside the update
// loop. The merge loop's observer sends it through tea.Program.Send.
type StateChangedMsg struct{}

type tickMsg time.Time

type terminatedMsg struct {
	reason shutdown.Reason
}

func waitForTermination(ch <-chan shutdown.Reason) tea.Cmd {
	return func() tea.Msg {
		reason, ok := <-ch
		if !ok {
			return terminatedMsg{reason: shutdown.UserRequested}
		}
		return terminatedMsg{reason: reason}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sync pulls a snapshot and refreshes everything derived from it: the
// active screen, the room list, and the message log.
func (m *Model) sync() {
	snap := m.store.Snapshot()
	m.enterScreen(screenFor(snap.Connection))
	m.syncRooms(snap)
	m.syncLog(snap)
}

func (m *Model) handleStateChangedMsg(tea.Msg) tea.Cmd {
	m.sync()
	return nil
}

func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	if m.quitting {
		return nil
	}
	m.sync()
	return m.tickCmd()
}

func (m *Model) handleTerminatedMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(terminatedMsg)
	if !ok {
		return nil
	}
	m.exitReason = done.reason
	m.quitting = true
	return tea.Quit
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.quitting {
		return nil
	}
	if key.Type == tea.KeyCtrlC {
		return m.bus.Execute(Exit{})
	}
	snap := m.store.Snapshot()
	kind := screenFor(snap.Connection)
	m.enterScreen(kind)
	intent := m.handleScreenKey(kind, key, snap)
	return m.bus.Execute(intent)
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	if res.Err != nil {
		m.errMsg = res.Err.Error()
		m.sync()
		return nil
	}
	m.errMsg = ""
	switch in := res.Intent.(type) {
	case SelectRoom:
		m.sync()
		m.setFocus(focusInput)
	case LeaveRoom:
		if m.verbose {
			m.setInfo("left #" + in.Room)
		} else {
			m.clearInfo()
		}
		m.sync()
	default:
		m.sync()
	}
	return nil
}
