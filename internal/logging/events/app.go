package events

import "github.com/atomicstack/chat-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Terminate(reason string) {
	logging.Trace("app.terminate", map[string]interface{}{"reason": reason})
}

func (AppTracer) Exit(reason string, err error) {
	payload := map[string]interface{}{"reason": reason}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
