package dispatcher

import (
	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/state"
)

// Store is the subset of state.Store mutations driven by server events.
type Store interface {
	ApplyLogin(username string, rooms []state.RoomInfo)
	ApplyParticipation(room, username string, joined bool)
	ApplyUserMessage(room, username, content string)
}

// Result names what an event changed.
type Result struct {
	Kind    protocol.EventType
	Room    string
	Handled bool
}

type Dispatcher struct {
	store Store
}

func New(store Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle applies ev to the store through exactly one named operation.
func (d *Dispatcher) Handle(ev protocol.Event) Result {
	var res Result
	switch e := ev.(type) {
	case protocol.LoginSuccessful:
		rooms := make([]state.RoomInfo, 0, len(e.Rooms))
		for _, r := range e.Rooms {
			rooms = append(rooms, state.RoomInfo{Name: r.Name, Description: r.Description})
		}
		d.store.ApplyLogin(e.Username, rooms)
		res = Result{Kind: e.Type(), Handled: true}
	case protocol.RoomParticipation:
		d.store.ApplyParticipation(e.Room, e.Username, e.Status == protocol.Joined)
		res = Result{Kind: e.Type(), Room: e.Room, Handled: true}
	case protocol.UserMessage:
		d.store.ApplyUserMessage(e.Room, e.Username, e.Content)
		res = Result{Kind: e.Type(), Room: e.Room, Handled: true}
	}
	return res
}
