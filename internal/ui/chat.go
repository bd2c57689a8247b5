package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/chat-tui/internal/format/table"
	"github.com/atomicstack/chat-tui/internal/logging/events"
	"github.com/atomicstack/chat-tui/internal/state"
	uistate "github.com/atomicstack/chat-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	messagePrompt  = "› "
	filterPrompt   = "» "
	roomIndicator  = "▌"
	minRoomRows    = 3
	minLogRows     = 1
	headerSepGlyph = " · "
)

func (m *Model) handleChatKey(msg tea.KeyMsg, snap state.State) Intent {
	if msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab {
		if m.focus == focusRooms {
			m.setFocus(focusInput)
		} else {
			m.setFocus(focusRooms)
		}
		return None{}
	}
	if m.focus == focusInput {
		return m.handleMessageKey(msg, snap)
	}
	return m.handleRoomKey(msg)
}

func (m *Model) setFocus(f focusSection) {
	if m.focus == f {
		return
	}
	m.focus = f
	m.caretDirty = true
	events.UI.Focus(f.String())
}

func (m *Model) handleRoomKey(msg tea.KeyMsg) Intent {
	moved := false
	switch msg.Type {
	case tea.KeyUp:
		moved = m.rooms.MoveCursorUp()
	case tea.KeyDown:
		moved = m.rooms.MoveCursorDown()
	case tea.KeyPgUp:
		moved = m.rooms.MoveCursorPageUp(m.roomRows())
	case tea.KeyPgDown:
		moved = m.rooms.MoveCursorPageDown(m.roomRows())
	case tea.KeyHome:
		moved = m.rooms.MoveCursorHome()
	case tea.KeyEnd:
		moved = m.rooms.MoveCursorEnd()
	case tea.KeyEnter:
		item, ok := m.rooms.Selected()
		if !ok {
			return None{}
		}
		return SelectRoom{Room: item.Name}
	case tea.KeyCtrlL:
		item, ok := m.rooms.Selected()
		if !ok || !item.Joined {
			return None{}
		}
		return LeaveRoom{Room: item.Name}
	case tea.KeyEsc:
		if m.rooms.ClearFilter() {
			m.caretDirty = true
			return None{}
		}
		return Exit{}
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.caretDirty = m.rooms.DeleteFilterBackward() || m.caretDirty
	case tea.KeyCtrlW:
		m.caretDirty = m.rooms.DeleteFilterWordBackward() || m.caretDirty
	case tea.KeyCtrlU:
		m.caretDirty = m.rooms.ClearFilter() || m.caretDirty
	case tea.KeySpace:
		m.caretDirty = m.rooms.InsertFilterText(" ") || m.caretDirty
	case tea.KeyRunes:
		if text := printableText(msg); text != "" {
			m.caretDirty = m.rooms.InsertFilterText(text) || m.caretDirty
		}
	}
	if moved {
		if item, ok := m.rooms.Selected(); ok {
			events.UI.RoomCursor(m.rooms.Cursor, item.Name)
		}
	}
	m.rooms.EnsureCursorVisible(m.roomRows())
	return None{}
}

func (m *Model) handleMessageKey(msg tea.KeyMsg, snap state.State) Intent {
	switch msg.Type {
	case tea.KeyEsc:
		if !m.message.Empty() {
			events.Input.Reset("message")
		}
		m.message.Reset()
		m.setFocus(focusRooms)
		return None{}
	case tea.KeyEnter:
		if snap.ActiveRoom == "" || m.message.Empty() {
			return None{}
		}
		content := m.message.Text()
		m.message.Reset()
		m.caretDirty = true
		return SendMessage{Content: content}
	case tea.KeyPgUp:
		m.log.ViewUp()
		return None{}
	case tea.KeyPgDown:
		m.log.ViewDown()
		return None{}
	}
	if snap.ActiveRoom == "" {
		return None{}
	}
	m.editInput(m.message, "message", msg)
	return None{}
}

// syncRooms projects the store's rooms onto the room list, keeping the
// highlighted room where possible.
func (m *Model) syncRooms(snap state.State) {
	items := make([]uistate.RoomItem, len(snap.Rooms))
	for i, r := range snap.Rooms {
		items[i] = uistate.RoomItem{
			Name:        r.Name,
			Description: r.Description,
			Joined:      r.Joined,
			Active:      r.Name == snap.ActiveRoom,
		}
	}
	m.rooms.UpdateItems(items)
	m.rooms.EnsureCursorVisible(m.roomRows())
	if snap.ActiveRoom == "" && m.focus == focusInput && !m.message.Empty() {
		m.message.Reset()
	}
}

// syncLog re-renders the active room's log into the viewport when it has
// changed, following new entries only if the view was already at the bottom.
func (m *Model) syncLog(snap state.State) {
	m.layout(snap)
	entries := snap.Messages[snap.ActiveRoom]
	roomChanged := snap.ActiveRoom != m.logRoom
	if !roomChanged && len(entries) == m.logCount && m.log.Width == m.logWidth() {
		return
	}
	follow := roomChanged || m.log.AtBottom()
	m.logRoom = snap.ActiveRoom
	m.logCount = len(entries)
	lines := m.renderLog(snap.Username, entries)
	if m.height <= 0 {
		m.log.Height = len(lines)
		if m.log.Height < minLogRows {
			m.log.Height = minLogRows
		}
	}
	m.log.SetContent(strings.Join(lines, "\n"))
	if follow {
		m.log.GotoBottom()
	}
}

func (m *Model) renderLog(self string, entries []state.Entry) []string {
	width := m.logWidth()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		var text string
		switch entry.Kind {
		case state.EntryNotification:
			text = render(styles.Notification, "-- "+entry.Content)
		default:
			nameStyle := styles.Username
			if entry.Username == self {
				nameStyle = styles.OwnUsername
			}
			text = render(nameStyle, entry.Username) + ": " + render(styles.Message, entry.Content)
		}
		if width > 0 {
			text = wrap.String(wordwrap.String(text, width), width)
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}
	return lines
}

func (m *Model) logWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width
}

// chatChromeRows counts the chat screen rows that are not room rows or log
// rows: header, two section titles, the blank separator, the input line,
// the status line, and the optional footer.
func (m *Model) chatChromeRows() int {
	used := 6
	if m.rooms.FilterText() != "" || m.focus == focusRooms {
		used++
	}
	if m.showFooter {
		used += 2
	}
	return used
}

// roomRows is how many room rows fit; -1 means unlimited.
func (m *Model) roomRows() int {
	if m.height <= 0 {
		return -1
	}
	count := len(m.rooms.Items)
	if count == 0 {
		count = 1
	}
	limit := (m.height - m.chatChromeRows()) / 3
	if limit < minRoomRows {
		limit = minRoomRows
	}
	if count > limit {
		return limit
	}
	return count
}

func (m *Model) layout(snap state.State) {
	m.log.Width = m.logWidth()
	if m.height <= 0 {
		return
	}
	rows := m.roomRows()
	h := m.height - m.chatChromeRows() - rows
	if h < minLogRows {
		h = minLogRows
	}
	m.log.Height = h
}

func (m *Model) renderChat(snap state.State) []styledLine {
	m.layout(snap)
	lines := []styledLine{{text: m.chatHeader(snap), style: styles.Header}}

	roomsTitle := fmt.Sprintf("Rooms (%d)", len(snap.Rooms))
	lines = append(lines, m.sectionTitle(roomsTitle, m.focus == focusRooms))
	if m.rooms.FilterText() != "" || m.focus == focusRooms {
		lines = append(lines, styledLine{
			text: m.renderInputLine(filterPrompt, styles.FilterPrompt, m.rooms.Filter, "type to filter", m.focus == focusRooms),
			raw:  true,
		})
	}
	lines = append(lines, m.roomLines()...)
	lines = append(lines, styledLine{})

	logTitle := "No room selected"
	if snap.ActiveRoom != "" {
		logTitle = "#" + snap.ActiveRoom
	}
	lines = append(lines, m.sectionTitle(logTitle, m.focus == focusInput))
	for _, row := range strings.Split(m.log.View(), "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}

	placeholder := "select a room to start chatting"
	if snap.ActiveRoom != "" {
		placeholder = "message #" + snap.ActiveRoom
	}
	lines = append(lines, styledLine{
		text: m.renderInputLine(messagePrompt, styles.InputPrompt, m.message, placeholder, m.focus == focusInput),
		raw:  true,
	})
	lines = append(lines, m.statusLine())
	return lines
}

func (m *Model) chatHeader(snap state.State) string {
	parts := []string{"chat-tui"}
	if snap.Username != "" {
		parts = append(parts, snap.Username)
	}
	if snap.Connection.Addr != "" {
		parts = append(parts, snap.Connection.Addr)
	}
	parts = append(parts, formatElapsed(time.Duration(snap.Timer)*m.tick))
	return strings.Join(parts, headerSepGlyph)
}

func (m *Model) sectionTitle(title string, focused bool) styledLine {
	style := styles.Section
	if focused {
		style = styles.FocusedSection
	}
	return styledLine{text: title, style: style}
}

func (m *Model) roomLines() []styledLine {
	if len(m.rooms.Items) == 0 {
		msg := "(no rooms)"
		if q := m.rooms.FilterText(); q != "" {
			msg = fmt.Sprintf("No rooms match %q", q)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	rows := make([][]string, len(m.rooms.Items))
	for i, item := range m.rooms.Items {
		mark := " "
		switch {
		case item.Active:
			mark = "*"
		case item.Joined:
			mark = "+"
		}
		rows[i] = []string{mark, item.Name, item.Description}
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	start, end := 0, len(formatted)
	if limit := m.roomRows(); limit > 0 && len(formatted) > limit {
		start = m.rooms.ViewportOffset
		if start+limit > len(formatted) {
			start = len(formatted) - limit
		}
		if start < 0 {
			start = 0
		}
		end = start + limit
	}
	lines := make([]styledLine, 0, end-start)
	for idx := start; idx < end; idx++ {
		lineStyle := styles.Item
		indicatorStyle := styles.ItemIndicator
		if idx == m.rooms.Cursor {
			lineStyle = styles.SelectedItem
			indicatorStyle = styles.SelectedItemIndicator
		}
		lines = append(lines, styledLine{
			text:          roomIndicator + " " + formatted[idx],
			style:         lineStyle,
			prefixStyle:   indicatorStyle,
			highlightFrom: 1,
		})
	}
	return lines
}

func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	h, rem := total/3600, total%3600
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, rem/60, rem%60)
	}
	return fmt.Sprintf("%02d:%02d", rem/60, rem%60)
}
