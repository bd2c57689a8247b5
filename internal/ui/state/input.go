package state

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Input is a cursor-aware text buffer. Positions count grapheme clusters,
// not bytes or runes, so "é" written as e+U+0301 or "👍🏽" is a single
// character for cursor movement and deletion.
//
// Every method keeps 0 <= Cursor() <= Len().
type Input struct {
	clusters []string
	cursor   int
}

func NewInput() *Input {
	return &Input{}
}

// Text returns the buffer contents.
func (b *Input) Text() string {
	return strings.Join(b.clusters, "")
}

// Len returns the number of characters in the buffer.
func (b *Input) Len() int {
	return len(b.clusters)
}

// Cursor returns the character offset of the cursor.
func (b *Input) Cursor() int {
	return b.cursor
}

func (b *Input) Empty() bool {
	return len(b.clusters) == 0
}

// Insert inserts r at the cursor and advances the cursor past it. A
// combining mark joins the character before it, in which case the cursor
// stays after the combined character.
func (b *Input) Insert(r rune) bool {
	return b.InsertText(string(r))
}

// InsertText inserts text at the cursor, leaving the cursor after it.
func (b *Input) InsertText(text string) bool {
	if text == "" {
		return false
	}
	before := b.join(0, b.cursor) + text
	b.rebuild(before, b.join(b.cursor, len(b.clusters)))
	return true
}

// DeleteBeforeCursor removes the character preceding the cursor. It is a
// no-op at the start of the buffer.
func (b *Input) DeleteBeforeCursor() bool {
	if b.cursor == 0 {
		return false
	}
	b.rebuild(b.join(0, b.cursor-1), b.join(b.cursor, len(b.clusters)))
	return true
}

// DeleteWordBeforeCursor removes the word preceding the cursor along with
// any whitespace between it and the cursor.
func (b *Input) DeleteWordBeforeCursor() bool {
	if b.cursor == 0 {
		return false
	}
	i := b.wordStartBefore(b.cursor)
	b.rebuild(b.join(0, i), b.join(b.cursor, len(b.clusters)))
	return true
}

// MoveCursor shifts the cursor by delta, clamped to the buffer bounds.
func (b *Input) MoveCursor(delta int) bool {
	return b.setCursor(b.cursor + delta)
}

func (b *Input) MoveStart() bool {
	return b.setCursor(0)
}

func (b *Input) MoveEnd() bool {
	return b.setCursor(len(b.clusters))
}

// MoveWordBackward moves to the start of the previous word.
func (b *Input) MoveWordBackward() bool {
	if b.cursor == 0 {
		return false
	}
	return b.setCursor(b.wordStartBefore(b.cursor))
}

// MoveWordForward moves past the next word and its trailing whitespace.
func (b *Input) MoveWordForward() bool {
	i := b.cursor
	for i < len(b.clusters) && !isSpace(b.clusters[i]) {
		i++
	}
	for i < len(b.clusters) && isSpace(b.clusters[i]) {
		i++
	}
	return b.setCursor(i)
}

// Reset empties the buffer. Resetting an empty buffer is a no-op.
func (b *Input) Reset() {
	b.clusters = nil
	b.cursor = 0
}

// SetText replaces the contents with s and moves the cursor to the end, so
// pre-filled values are edited from where typing would continue.
func (b *Input) SetText(s string) {
	b.clusters = segment(s)
	b.cursor = len(b.clusters)
}

// Split returns the text before the cursor, the character under it (empty
// at the end of the buffer), and the text after it.
func (b *Input) Split() (before, at, after string) {
	before = b.join(0, b.cursor)
	if b.cursor < len(b.clusters) {
		at = b.clusters[b.cursor]
		after = b.join(b.cursor+1, len(b.clusters))
	}
	return before, at, after
}

// Width returns the display width of the contents in terminal cells.
func (b *Input) Width() int {
	return runewidth.StringWidth(b.Text())
}

// CursorColumn returns the terminal cell the cursor sits on.
func (b *Input) CursorColumn() int {
	return runewidth.StringWidth(b.join(0, b.cursor))
}

func (b *Input) join(from, to int) string {
	if from >= to {
		return ""
	}
	return strings.Join(b.clusters[from:to], "")
}

// rebuild re-segments before+after and places the cursor at the boundary
// between them. Segmentation can merge characters across the boundary
// (a combining mark after the cursor, for example), so the cursor is
// clamped to the new length.
func (b *Input) rebuild(before, after string) {
	b.clusters = segment(before + after)
	b.cursor = len(segment(before))
	if b.cursor > len(b.clusters) {
		b.cursor = len(b.clusters)
	}
}

func (b *Input) setCursor(pos int) bool {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.clusters) {
		pos = len(b.clusters)
	}
	if pos == b.cursor {
		return false
	}
	b.cursor = pos
	return true
}

func (b *Input) wordStartBefore(pos int) int {
	i := pos
	for i > 0 && isSpace(b.clusters[i-1]) {
		i--
	}
	for i > 0 && !isSpace(b.clusters[i-1]) {
		i--
	}
	return i
}

func segment(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func isSpace(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return cluster != ""
}
