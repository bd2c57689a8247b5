package state

import "testing"

func newTestList(names ...string) *RoomList {
	items := make([]RoomItem, len(names))
	for i, name := range names {
		items[i] = RoomItem{Name: name}
	}
	l := NewRoomList()
	l.UpdateItems(items)
	return l
}

func TestMoveCursorHomeEnd(t *testing.T) {
	l := newTestList("general", "random", "rust")
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if l.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorHome() || empty.Cursor != 0 {
		t.Fatalf("expected empty list cursor reset to 0, got %d", empty.Cursor)
	}
	if empty.MoveCursorDown() {
		t.Fatalf("expected no movement for empty list")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
	if l.MoveCursorUp() {
		t.Fatalf("expected no movement above the first row")
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}
}

func TestUpdateItemsKeepsHighlightOnSameRoom(t *testing.T) {
	l := newTestList("general", "random", "rust")
	l.Cursor = 1
	l.UpdateItems([]RoomItem{{Name: "announcements"}, {Name: "general"}, {Name: "random", Joined: true}})
	selected, ok := l.Selected()
	if !ok || selected.Name != "random" {
		t.Fatalf("expected highlight to stay on random, got %#v", selected)
	}
	if !selected.Joined {
		t.Fatalf("expected refreshed item data")
	}
}

func TestFilterNarrowsAndRestores(t *testing.T) {
	l := newTestList("general", "random", "rust", "gaming")
	l.Cursor = 3
	if !l.InsertFilterText("ru") {
		t.Fatalf("expected filter insert to be handled")
	}
	if len(l.Items) != 1 || l.Items[0].Name != "rust" {
		t.Fatalf("expected only rust to match, got %#v", l.Items)
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor on best match, got %d", l.Cursor)
	}
	if !l.DeleteFilterBackward() || l.FilterText() != "r" {
		t.Fatalf("expected filter \"r\", got %q", l.FilterText())
	}
	if !l.ClearFilter() {
		t.Fatalf("expected clear to be handled")
	}
	if len(l.Items) != 4 {
		t.Fatalf("expected full list restored, got %d", len(l.Items))
	}
	if l.Cursor != 3 {
		t.Fatalf("expected highlight restored to 3, got %d", l.Cursor)
	}
	if l.ClearFilter() {
		t.Fatalf("expected clearing an empty filter to be a no-op")
	}
}

func TestFilterMatchesDescriptions(t *testing.T) {
	items := []RoomItem{
		{Name: "general", Description: "everything else"},
		{Name: "ops", Description: "Incidents and deploys"},
	}
	got := FilterItems(items, "deploy")
	if len(got) != 1 || got[0].Name != "ops" {
		t.Fatalf("expected description match, got %#v", got)
	}
	if got := FilterItems(items, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}

func TestBestMatchIndexPrefersExactThenPrefix(t *testing.T) {
	items := []RoomItem{{Name: "general-chat"}, {Name: "gen"}, {Name: "generic"}}
	if idx := BestMatchIndex(items, "GEN"); idx != 1 {
		t.Fatalf("expected exact match 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "generi"); idx != 2 {
		t.Fatalf("expected prefix match 2, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty items, got %d", idx)
	}
}
