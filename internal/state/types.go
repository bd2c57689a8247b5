package state

import "fmt"

// StatusKind enumerates the connection lifecycle.
type StatusKind int

const (
	Disconnected StatusKind = iota
	Connecting
	Connected
	Errored
)

func (k StatusKind) String() string {
	switch k {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("status(%d)", int(k))
	}
}

// ConnectionStatus is the server connection state. Err is only set for
// Errored; Addr is the server the status refers to, when known.
type ConnectionStatus struct {
	Kind StatusKind
	Addr string
	Err  string
}

func StatusDisconnected() ConnectionStatus { return ConnectionStatus{Kind: Disconnected} }

func StatusConnecting(addr string) ConnectionStatus {
	return ConnectionStatus{Kind: Connecting, Addr: addr}
}

func StatusConnected(addr string) ConnectionStatus {
	return ConnectionStatus{Kind: Connected, Addr: addr}
}

// StatusErrored records a failure. A nil err still produces an Errored
// status with a generic reason so the connect screen has something to show.
func StatusErrored(addr string, err error) ConnectionStatus {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return ConnectionStatus{Kind: Errored, Addr: addr, Err: reason}
}

// Room is a chat room known to the client.
type Room struct {
	Name        string
	Description string
	Joined      bool
}

// RoomInfo is the name/description pair delivered on login.
type RoomInfo struct {
	Name        string
	Description string
}

// EntryKind distinguishes message log entries.
type EntryKind int

const (
	EntryUserMessage EntryKind = iota
	EntryNotification
)

// Entry is one line of a room's message log. Notifications keep their text
// in Content and leave Username empty.
type Entry struct {
	Kind     EntryKind
	Username string
	Content  string
}

func UserMessageEntry(username, content string) Entry {
	return Entry{Kind: EntryUserMessage, Username: username, Content: content}
}

func NotificationEntry(text string) Entry {
	return Entry{Kind: EntryNotification, Content: text}
}

// State is the canonical application state. Values handed out by the Store
// are deep copies; mutating them has no effect on the store.
type State struct {
	Username   string
	Rooms      []Room
	ActiveRoom string
	Messages   map[string][]Entry
	Connection ConnectionStatus
	Timer      int
}

// Room returns the named room from the snapshot.
func (s State) Room(name string) (Room, bool) {
	for _, r := range s.Rooms {
		if r.Name == name {
			return r, true
		}
	}
	return Room{}, false
}

func (s State) clone() State {
	dup := s
	if s.Rooms != nil {
		dup.Rooms = make([]Room, len(s.Rooms))
		copy(dup.Rooms, s.Rooms)
	}
	if s.Messages != nil {
		dup.Messages = make(map[string][]Entry, len(s.Messages))
		for name, log := range s.Messages {
			entries := make([]Entry, len(log))
			copy(entries, log)
			dup.Messages[name] = entries
		}
	}
	return dup
}
