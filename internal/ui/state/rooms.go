package state

// RoomItem is one row of the room list.
type RoomItem struct {
	Name        string
	Description string
	Joined      bool
	Active      bool
}

// RoomList tracks the chat screen's room selector: the full room set, the
// filtered view of it, the highlighted row, and the scroll offset.
type RoomList struct {
	Items          []RoomItem
	Full           []RoomItem
	Filter         *Input
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

func NewRoomList() *RoomList {
	return &RoomList{
		Filter:     NewInput(),
		LastCursor: -1,
	}
}

// IndexOf returns the position of the named room among the visible items.
func (l *RoomList) IndexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// Selected returns the highlighted room.
func (l *RoomList) Selected() (RoomItem, bool) {
	if len(l.Items) == 0 || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return RoomItem{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the room set, keeping the highlight on the same room
// when it is still visible.
func (l *RoomList) UpdateItems(items []RoomItem) {
	prevOffset := l.ViewportOffset
	current, hadCurrent := l.Selected()
	l.Full = CloneItems(items)
	l.applyFilter()
	if hadCurrent {
		if idx := l.IndexOf(current.Name); idx >= 0 {
			l.Cursor = idx
		}
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// CloneItems produces a shallow copy of the provided room items.
func CloneItems(items []RoomItem) []RoomItem {
	dup := make([]RoomItem, len(items))
	copy(dup, items)
	return dup
}
