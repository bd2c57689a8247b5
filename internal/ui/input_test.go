package ui

import (
	"testing"

	uistate "github.com/atomicstack/chat-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestEditInputKeys(t *testing.T) {
	m := NewModel(Options{})
	in := uistate.NewInput()
	send := func(msg tea.KeyMsg) {
		t.Helper()
		if !m.editInput(in, "test", msg) {
			t.Fatalf("expected %q to be an editing key", msg.String())
		}
	}

	send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo")})
	send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wörld")})
	if got := in.Text(); got != "héllo wörld" {
		t.Fatalf("expected text, got %q", got)
	}
	send(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := in.Text(); got != "héllo wörl" {
		t.Fatalf("expected one character removed, got %q", got)
	}
	send(tea.KeyMsg{Type: tea.KeyCtrlA})
	if in.Cursor() != 0 {
		t.Fatalf("expected cursor at start, got %d", in.Cursor())
	}
	send(tea.KeyMsg{Type: tea.KeyRight})
	send(tea.KeyMsg{Type: tea.KeyRight})
	send(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := in.Text(); got != "hllo wörl" {
		t.Fatalf("expected é removed, got %q", got)
	}
	send(tea.KeyMsg{Type: tea.KeyCtrlE})
	send(tea.KeyMsg{Type: tea.KeyCtrlW})
	if got := in.Text(); got != "hllo " {
		t.Fatalf("expected word removed, got %q", got)
	}
	send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if !in.Empty() {
		t.Fatalf("expected empty buffer, got %q", in.Text())
	}
	if m.editInput(in, "test", tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Fatalf("expected enter to be left to the caller")
	}
}

func TestPrintableTextDropsControlCharacters(t *testing.T) {
	if got := printableText(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\x01b")}); got != "ab" {
		t.Fatalf("expected control character dropped, got %q", got)
	}
	if got := printableText(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\ntwo"), Paste: true}); got != "one two" {
		t.Fatalf("expected pasted newline as space, got %q", got)
	}
	if got := printableText(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true}); got != "" {
		t.Fatalf("expected alt chord to produce no text, got %q", got)
	}
}

func TestClipLeftKeepsTail(t *testing.T) {
	if got := clipLeft("abcdef", 4); got != "…def" {
		t.Fatalf("expected clipped text, got %q", got)
	}
	if got := clipLeft("abc", 4); got != "abc" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	if got := clipLeft("日本語", 5); got != "…本語" {
		t.Fatalf("expected wide clusters kept whole, got %q", got)
	}
}
