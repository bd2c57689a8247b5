package events

import "github.com/atomicstack/chat-tui/internal/logging"

type LoopTracer struct{}

var Loop = LoopTracer{}

func (LoopTracer) Start() {
	logging.Trace("loop.start", nil)
}

func (LoopTracer) Stop(reason string) {
	logging.Trace("loop.stop", map[string]interface{}{"reason": reason})
}

func (LoopTracer) Fault(reason string, err error) {
	logging.Trace("loop.fault", map[string]interface{}{"reason": reason, "error": err.Error()})
}

func (LoopTracer) Tick(timer int) {
	logging.Trace("loop.tick", map[string]interface{}{"timer": timer})
}

func (LoopTracer) Applied(kind, room string) {
	logging.Trace("loop.applied", map[string]interface{}{"kind": kind, "room": room})
}
