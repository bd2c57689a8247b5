package ui

import (
	"strings"
	"unicode"

	"github.com/atomicstack/chat-tui/internal/logging/events"
	uistate "github.com/atomicstack/chat-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

// editInput applies one editing key to in and reports whether the key was an
// editing key at all. Keys it does not recognise are left to the caller.
func (m *Model) editInput(in *uistate.Input, field string, msg tea.KeyMsg) bool {
	before := in.Cursor()
	beforeText := in.Text()
	handled := true
	switch msg.String() {
	case "ctrl+u":
		if !in.Empty() {
			in.Reset()
			events.Input.Reset(field)
		}
	case "ctrl+w":
		if in.DeleteWordBeforeCursor() {
			events.Input.Edit(field, "delete_word", in.Text())
		}
	case "ctrl+a", "home":
		in.MoveStart()
	case "ctrl+e", "end":
		in.MoveEnd()
	case "alt+b", "ctrl+left":
		in.MoveWordBackward()
	case "alt+f", "ctrl+right":
		in.MoveWordForward()
	default:
		handled = false
	}
	if !handled {
		handled = true
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			if in.DeleteBeforeCursor() {
				events.Input.Edit(field, "delete", in.Text())
			}
		case tea.KeyLeft:
			in.MoveCursor(-1)
		case tea.KeyRight:
			in.MoveCursor(1)
		case tea.KeySpace:
			if in.Insert(' ') {
				events.Input.Edit(field, "insert", in.Text())
			}
		case tea.KeyRunes:
			text := printableText(msg)
			if text == "" {
				return false
			}
			if in.InsertText(text) {
				events.Input.Edit(field, "insert", in.Text())
			}
		default:
			handled = false
		}
	}
	if before != in.Cursor() || beforeText != in.Text() {
		m.caretDirty = true
		if beforeText == in.Text() {
			events.Input.Cursor(field, in.Cursor())
		}
	}
	return handled
}

// printableText returns the insertable part of a rune key. Alt chords are
// commands, not text; control characters in pasted text are dropped and
// line breaks become spaces.
func printableText(msg tea.KeyMsg) string {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range msg.Runes {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			if msg.Paste {
				b.WriteRune(' ')
			}
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderInputLine draws prompt followed by the buffer. When focused, the
// grapheme under the cursor is drawn with the caret; when the buffer is
// wider than the line, the start is clipped so the caret stays visible.
func (m *Model) renderInputLine(prompt string, promptStyle *lipgloss.Style, in *uistate.Input, placeholder string, focused bool) string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	head := render(promptStyle, prompt)
	if in.Empty() {
		if !focused {
			return head + render(styles.Placeholder, placeholder)
		}
		caretChar, rest := " ", ""
		if placeholder != "" {
			clusters := splitClusters(placeholder)
			caretChar = clusters[0]
			rest = strings.Join(clusters[1:], "")
		}
		m.caret.TextStyle = styleOrEmpty(styles.Placeholder)
		return head + m.renderCaret(caretChar) + render(styles.Placeholder, rest)
	}
	before, at, after := in.Split()
	if !focused {
		return head + render(styles.Input, before+at+after)
	}
	if at == "" {
		at = " "
	}
	if m.width > 0 {
		avail := m.width - runewidth.StringWidth(prompt) - runewidth.StringWidth(at)
		before = clipLeft(before, avail)
	}
	m.caret.TextStyle = styleOrEmpty(styles.Input)
	return head + render(styles.Input, before) + m.renderCaret(at) + render(styles.Input, after)
}

func (m *Model) renderCaret(char string) string {
	if char == "" {
		char = " "
	}
	if styles.Cursor != nil {
		m.caret.Style = styles.Cursor.Copy()
	}
	m.caret.SetChar(char)

	base := m.caret.TextStyle.Copy()
	base = base.Inline(true)

	if m.caret.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}

func styleOrEmpty(style *lipgloss.Style) lipgloss.Style {
	if style == nil {
		return lipgloss.Style{}
	}
	return style.Copy()
}

// clipLeft drops leading grapheme clusters until s fits in maxCells,
// marking the cut with an ellipsis.
func clipLeft(s string, maxCells int) string {
	if maxCells <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxCells {
		return s
	}
	clusters := splitClusters(s)
	width := 0
	i := len(clusters)
	for i > 0 {
		w := runewidth.StringWidth(clusters[i-1])
		if width+w > maxCells-1 {
			break
		}
		width += w
		i--
	}
	return "…" + strings.Join(clusters[i:], "")
}

func splitClusters(s string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}
