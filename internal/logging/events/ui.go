package events

import "github.com/atomicstack/chat-tui/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Screen(name string) {
	logging.Trace("ui.screen", map[string]interface{}{"screen": name})
}

func (UITracer) Focus(section string) {
	logging.Trace("ui.focus", map[string]interface{}{"section": section})
}

func (UITracer) RoomCursor(index int, room string) {
	logging.Trace("ui.rooms.cursor", map[string]interface{}{"index": index, "room": room})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}
