package events

import "github.com/atomicstack/chat-tui/internal/logging"

type InputTracer struct{}

var Input = InputTracer{}

func (InputTracer) Edit(field, op, text string) {
	logging.Trace("input.edit", map[string]interface{}{"field": field, "op": op, "text": text})
}

func (InputTracer) Cursor(field string, position int) {
	logging.Trace("input.cursor", map[string]interface{}{"field": field, "position": position})
}

func (InputTracer) Reset(field string) {
	logging.Trace("input.reset", map[string]interface{}{"field": field})
}
