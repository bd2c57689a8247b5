package shutdown

import (
	"sync"
	"testing"
	"time"
)

func TestTerminateReachesEverySubscriber(t *testing.T) {
	term := New()
	subs := []<-chan Reason{term.Subscribe(), term.Subscribe(), term.Subscribe()}
	if !term.Terminate(ConnectionLost) {
		t.Fatalf("expected first terminate to fire")
	}
	for i, sub := range subs {
		select {
		case got := <-sub:
			if got != ConnectionLost {
				t.Fatalf("subscriber %d: expected %s, got %s", i, ConnectionLost, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the reason", i)
		}
	}
}

func TestFirstReasonWins(t *testing.T) {
	term := New()
	sub := term.Subscribe()
	term.Terminate(UserRequested)
	if term.Terminate(ServerClosed) {
		t.Fatalf("expected second terminate to be ignored")
	}
	if got := <-sub; got != UserRequested {
		t.Fatalf("expected %s, got %s", UserRequested, got)
	}
	select {
	case extra := <-sub:
		t.Fatalf("expected a single delivery, got extra %s", extra)
	default:
	}
	reason, ok := term.Reason()
	if !ok || reason != UserRequested {
		t.Fatalf("expected recorded reason %s, got %s (fired=%v)", UserRequested, reason, ok)
	}
}

func TestLateSubscriberSeesReason(t *testing.T) {
	term := New()
	term.Terminate(Interrupted)
	select {
	case got := <-term.Subscribe():
		if got != Interrupted {
			t.Fatalf("expected %s, got %s", Interrupted, got)
		}
	default:
		t.Fatalf("expected late subscriber channel to be pre-filled")
	}
}

func TestConcurrentTerminateFiresOnce(t *testing.T) {
	term := New()
	sub := term.Subscribe()
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fired int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(r Reason) {
			defer wg.Done()
			if term.Terminate(r) {
				mu.Lock()
				fired++
				mu.Unlock()
			}
		}(Reason(i%5 + 1))
	}
	wg.Wait()
	if fired != 1 {
		t.Fatalf("expected exactly one firing, got %d", fired)
	}
	got := <-sub
	if recorded, _ := term.Reason(); recorded != got {
		t.Fatalf("expected subscriber reason %s to match recorded %s", got, recorded)
	}
}

func TestReasonString(t *testing.T) {
	if ServerClosed.String() != "server closed the connection" {
		t.Fatalf("unexpected string %q", ServerClosed.String())
	}
	if Reason(42).String() != "reason(42)" {
		t.Fatalf("unexpected fallback %q", Reason(42).String())
	}
}
