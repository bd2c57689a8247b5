package dispatcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/chat-tui/internal/protocol"
	"github.com/atomicstack/chat-tui/internal/state"
)

type call struct {
	Op   string
	Args []string
}

type recordingStore struct {
	calls []call
}

func (r *recordingStore) ApplyLogin(username string, rooms []state.RoomInfo) {
	args := []string{username}
	for _, room := range rooms {
		args = append(args, room.Name+"="+room.Description)
	}
	r.calls = append(r.calls, call{Op: "login", Args: args})
}

func (r *recordingStore) ApplyParticipation(room, username string, joined bool) {
	status := "left"
	if joined {
		status = "joined"
	}
	r.calls = append(r.calls, call{Op: "participation", Args: []string{room, username, status}})
}

func (r *recordingStore) ApplyUserMessage(room, username, content string) {
	r.calls = append(r.calls, call{Op: "message", Args: []string{room, username, content}})
}

func TestHandleRoutesEachEventToOneOperation(t *testing.T) {
	store := &recordingStore{}
	d := New(store)

	results := []Result{
		d.Handle(protocol.LoginSuccessful{Username: "alice", Rooms: []protocol.RoomInfo{{Name: "general", Description: "main"}}}),
		d.Handle(protocol.RoomParticipation{Room: "general", Username: "alice", Status: protocol.Joined}),
		d.Handle(protocol.RoomParticipation{Room: "general", Username: "bob", Status: protocol.Left}),
		d.Handle(protocol.UserMessage{Room: "general", Username: "bob", Content: "hi"}),
	}

	want := []call{
		{Op: "login", Args: []string{"alice", "general=main"}},
		{Op: "participation", Args: []string{"general", "alice", "joined"}},
		{Op: "participation", Args: []string{"general", "bob", "left"}},
		{Op: "message", Args: []string{"general", "bob", "hi"}},
	}
	if diff := cmp.Diff(want, store.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	for i, res := range results {
		if !res.Handled {
			t.Fatalf("expected result %d to be handled", i)
		}
	}
	if results[3].Room != "general" || results[3].Kind != protocol.EventUserMessage {
		t.Fatalf("unexpected result %#v", results[3])
	}
}

type unknownEvent struct{}

func (unknownEvent) Type() protocol.EventType { return "typing" }

func TestHandleIgnoresUnknownEvents(t *testing.T) {
	store := &recordingStore{}
	if res := New(store).Handle(unknownEvent{}); res.Handled {
		t.Fatalf("expected unknown event to be ignored")
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no store calls, got %#v", store.calls)
	}
}
