// Package state owns the canonical chat application state.
//
// Every write goes through a named Store operation that holds the write lock
// for that single mutation only. Reads are point-in-time snapshots, so the
// render path never holds the read lock while it formats output.
package state

import (
	"fmt"
	"sync"

	"github.com/atomicstack/chat-tui/internal/logging/events"
)

// Store guards State behind a reader/writer lock.
type Store struct {
	mu    sync.RWMutex
	state State
	index map[string]int
}

func NewStore() *Store {
	return &Store{
		state: State{Messages: map[string][]Entry{}},
		index: map[string]int{},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// ApplyLogin sets the username and replaces the room set wholesale, giving
// every room an empty log. A second call resets all room state; callers
// invoke it at most once per session.
func (s *Store) ApplyLogin(username string, rooms []RoomInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Username = username
	s.state.ActiveRoom = ""
	s.state.Rooms = make([]Room, 0, len(rooms))
	s.state.Messages = make(map[string][]Entry, len(rooms))
	s.index = make(map[string]int, len(rooms))
	for _, info := range rooms {
		if _, dup := s.index[info.Name]; dup {
			continue
		}
		s.index[info.Name] = len(s.state.Rooms)
		s.state.Rooms = append(s.state.Rooms, Room{Name: info.Name, Description: info.Description})
		s.state.Messages[info.Name] = []Entry{}
	}
	events.Store.Login(username, len(s.state.Rooms))
}

// ApplyParticipation records a user entering or leaving room. Only the
// current user's own participation flips the room's Joined flag; every
// participation is logged as a notification.
func (s *Store) ApplyParticipation(room, username string, joined bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.mustRoom("applyParticipation", room)
	if username == s.state.Username {
		s.state.Rooms[idx].Joined = joined
		if !joined && s.state.ActiveRoom == room {
			s.state.ActiveRoom = ""
		}
	}
	verb := "left"
	if joined {
		verb = "joined"
	}
	text := fmt.Sprintf("%s has %s the room", username, verb)
	s.state.Messages[room] = append(s.state.Messages[room], NotificationEntry(text))
	events.Store.Participation(room, username, joined)
}

// ApplyUserMessage appends a chat line to room's log.
func (s *Store) ApplyUserMessage(room, username, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustRoom("applyUserMessage", room)
	s.state.Messages[room] = append(s.state.Messages[room], UserMessageEntry(username, content))
	events.Store.Message(room, username)
}

// AdvanceTimer increments the tick counter and returns the updated value.
// The counter only drives refresh cadence.
func (s *Store) AdvanceTimer() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Timer++
	return s.state.Timer
}

// SetConnectionStatus overwrites the connection status.
func (s *Store) SetConnectionStatus(status ConnectionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Connection = status
	events.Store.Connection(status.Kind.String(), status.Addr, status.Err)
}

// SelectRoom makes room the active room.
func (s *Store) SelectRoom(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustRoom("selectRoom", room)
	s.state.ActiveRoom = room
	events.Store.Select(room)
}

// mustRoom must be called with the write lock held. The panic unwinds
// through the deferred Unlock, leaving the store consistent.
func (s *Store) mustRoom(op, room string) int {
	idx, ok := s.index[room]
	if !ok {
		events.Store.Violation(op, room)
		panic(&ContractViolation{Op: op, Room: room})
	}
	return idx
}
