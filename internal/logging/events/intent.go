package events

import "github.com/atomicstack/chat-tui/internal/logging"

type IntentTracer struct{}

var Intent = IntentTracer{}

func (IntentTracer) Queue(kind, detail string) {
	logging.Trace("intent.queue", map[string]interface{}{"kind": kind, "detail": detail})
}

func (IntentTracer) Skip(kind string) {
	logging.Trace("intent.skip", map[string]interface{}{"kind": kind})
}

func (IntentTracer) Result(kind string, err error) {
	payload := map[string]interface{}{"kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("intent.result", payload)
}
