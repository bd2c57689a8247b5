package events

import "github.com/atomicstack/chat-tui/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Login(username string, rooms int) {
	logging.Trace("store.login", map[string]interface{}{"username": username, "rooms": rooms})
}

func (StoreTracer) Participation(room, username string, joined bool) {
	logging.Trace("store.participation", map[string]interface{}{"room": room, "username": username, "joined": joined})
}

func (StoreTracer) Message(room, username string) {
	logging.Trace("store.message", map[string]interface{}{"room": room, "username": username})
}

func (StoreTracer) Connection(kind, addr, err string) {
	payload := map[string]interface{}{"kind": kind, "addr": addr}
	if err != "" {
		payload["error"] = err
	}
	logging.Trace("store.connection", payload)
}

func (StoreTracer) Select(room string) {
	logging.Trace("store.select", map[string]interface{}{"room": room})
}

func (StoreTracer) Violation(op, room string) {
	logging.Trace("store.violation", map[string]interface{}{"op": op, "room": room})
}
