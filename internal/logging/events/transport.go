package events

import "github.com/atomicstack/chat-tui/internal/logging"

type TransportTracer struct{}

var Transport = TransportTracer{}

func (TransportTracer) Dial(scheme, target string) {
	logging.Trace("transport.dial", map[string]interface{}{"scheme": scheme, "target": target})
}

func (TransportTracer) DialFailed(target string, err error) {
	logging.Trace("transport.dial.failed", map[string]interface{}{"target": target, "error": err.Error()})
}

func (TransportTracer) Closed(remote string) {
	logging.Trace("transport.closed", map[string]interface{}{"remote": remote})
}

func (TransportTracer) Received(kind string) {
	logging.Trace("transport.received", map[string]interface{}{"kind": kind})
}

func (TransportTracer) Sent(kind string) {
	logging.Trace("transport.sent", map[string]interface{}{"kind": kind})
}
