package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func loggedIn(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.ApplyLogin("alice", []RoomInfo{{Name: "general"}, {Name: "random"}})
	return s
}

func expectViolation(t *testing.T, room string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected a contract violation panic, got %v", r)
		}
		var violation *ContractViolation
		if !errors.As(err, &violation) {
			t.Fatalf("expected ContractViolation, got %T", err)
		}
		if violation.Room != room {
			t.Fatalf("expected violation for %q, got %q", room, violation.Room)
		}
	}()
	fn()
}

func TestApplyLoginCreatesRoomsWithEmptyLogs(t *testing.T) {
	s := loggedIn(t)
	got := s.Snapshot()
	want := State{
		Username: "alice",
		Rooms: []Room{
			{Name: "general"},
			{Name: "random"},
		},
		Messages: map[string][]Entry{
			"general": {},
			"random":  {},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyLoginResetsPreviousSession(t *testing.T) {
	s := loggedIn(t)
	s.ApplyParticipation("general", "alice", true)
	s.SelectRoom("general")
	s.ApplyLogin("alice", []RoomInfo{{Name: "general"}, {Name: "general"}})
	got := s.Snapshot()
	if len(got.Rooms) != 1 {
		t.Fatalf("expected duplicate room names collapsed, got %#v", got.Rooms)
	}
	if got.Rooms[0].Joined {
		t.Fatalf("expected joined flag reset by login")
	}
	if len(got.Messages["general"]) != 0 {
		t.Fatalf("expected log reset, got %#v", got.Messages["general"])
	}
	if got.ActiveRoom != "" {
		t.Fatalf("expected no active room, got %q", got.ActiveRoom)
	}
	if _, ok := got.Messages["random"]; ok {
		t.Fatalf("expected random to be dropped from the room set")
	}
}

func TestApplyParticipationSelfJoin(t *testing.T) {
	s := loggedIn(t)
	s.ApplyParticipation("general", "alice", true)
	got := s.Snapshot()
	general, _ := got.Room("general")
	if !general.Joined {
		t.Fatalf("expected general to be joined")
	}
	want := []Entry{NotificationEntry("alice has joined the room")}
	if diff := cmp.Diff(want, got.Messages["general"]); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	if random, _ := got.Room("random"); random.Joined {
		t.Fatalf("expected random untouched")
	}
}

func TestApplyParticipationOtherUserOnlyNotifies(t *testing.T) {
	s := loggedIn(t)
	s.ApplyParticipation("general", "bob", true)
	s.ApplyParticipation("general", "bob", false)
	got := s.Snapshot()
	if general, _ := got.Room("general"); general.Joined {
		t.Fatalf("expected joined flag to follow only the current user")
	}
	want := []Entry{
		NotificationEntry("bob has joined the room"),
		NotificationEntry("bob has left the room"),
	}
	if diff := cmp.Diff(want, got.Messages["general"]); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyParticipationSelfLeaveClearsActiveRoom(t *testing.T) {
	s := loggedIn(t)
	s.ApplyParticipation("general", "alice", true)
	s.SelectRoom("general")
	s.ApplyParticipation("general", "alice", false)
	got := s.Snapshot()
	if got.ActiveRoom != "" {
		t.Fatalf("expected active room cleared after leaving, got %q", got.ActiveRoom)
	}
}

func TestApplyUserMessageAppendsWithoutTouchingJoined(t *testing.T) {
	s := loggedIn(t)
	s.ApplyUserMessage("general", "bob", "hi")
	got := s.Snapshot()
	want := []Entry{UserMessageEntry("bob", "hi")}
	if diff := cmp.Diff(want, got.Messages["general"]); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	for _, room := range got.Rooms {
		if room.Joined {
			t.Fatalf("expected %s to stay unjoined", room.Name)
		}
	}
}

func TestUnknownRoomIsContractViolation(t *testing.T) {
	s := loggedIn(t)
	expectViolation(t, "lobby", func() { s.ApplyUserMessage("lobby", "bob", "hi") })
	expectViolation(t, "lobby", func() { s.ApplyParticipation("lobby", "bob", true) })
	expectViolation(t, "lobby", func() { s.SelectRoom("lobby") })

	// The write lock must have been released by the unwinding panic.
	s.ApplyUserMessage("general", "bob", "still alive")
	if n := len(s.Snapshot().Messages["general"]); n != 1 {
		t.Fatalf("expected store usable after violation, got %d entries", n)
	}
}

func TestAdvanceTimerCounts(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 3; i++ {
		if got := s.AdvanceTimer(); got != i {
			t.Fatalf("expected timer %d, got %d", i, got)
		}
	}
	if s.Snapshot().Timer != 3 {
		t.Fatalf("expected snapshot timer 3")
	}
}

func TestSetConnectionStatus(t *testing.T) {
	s := NewStore()
	if got := s.Snapshot().Connection.Kind; got != Disconnected {
		t.Fatalf("expected initial status disconnected, got %s", got)
	}
	s.SetConnectionStatus(StatusErrored("localhost:8080", errors.New("connection refused")))
	got := s.Snapshot().Connection
	if got.Kind != Errored || got.Err != "connection refused" {
		t.Fatalf("unexpected status %#v", got)
	}
	if StatusErrored("x", nil).Err == "" {
		t.Fatalf("expected a fallback reason for nil errors")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := loggedIn(t)
	s.ApplyUserMessage("general", "bob", "hi")
	snap := s.Snapshot()
	snap.Rooms[0].Joined = true
	snap.Messages["general"][0].Content = "tampered"
	snap.Messages["general"] = append(snap.Messages["general"], NotificationEntry("extra"))

	again := s.Snapshot()
	if again.Rooms[0].Joined {
		t.Fatalf("expected room copy to be isolated")
	}
	if got := again.Messages["general"]; len(got) != 1 || got[0].Content != "hi" {
		t.Fatalf("expected log copy to be isolated, got %#v", got)
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	s := loggedIn(t)
	const writes = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			s.ApplyUserMessage("general", "bob", "x")
			s.AdvanceTimer()
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				snap := s.Snapshot()
				if len(snap.Messages["general"]) > writes {
					t.Errorf("log grew past writes: %d", len(snap.Messages["general"]))
					return
				}
			}
		}()
	}
	wg.Wait()
	got := s.Snapshot()
	if len(got.Messages["general"]) != writes || got.Timer != writes {
		t.Fatalf("expected %d messages and ticks, got %d and %d", writes, len(got.Messages["general"]), got.Timer)
	}
}
