package ui

import "github.com/atomicstack/chat-tui/internal/ui/command"

// Intent is what a screen asks for in response to a key press. Screens never
// touch the store; the model hands intents to the command bus.
type Intent = command.Intent

type (
	None           = command.None
	ConnectRequest = command.ConnectRequest
	SendMessage    = command.SendMessage
	SelectRoom     = command.SelectRoom
	LeaveRoom      = command.LeaveRoom
	Exit           = command.Exit
)
