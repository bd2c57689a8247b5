// Package ui contains the Bubble Tea program for the chat client.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a
//     focused function.
//   - Key presses go to the active screen. The screen is derived from the
//     connection status on every key press and every render (see router.go):
//     a connected session shows the chat screen, anything else the connect
//     screen. A screen edits its own local buffers (address, filter,
//     message) and returns an Intent.
//   - Intents are executed by internal/ui/command.Bus off the update loop;
//     the outcome comes back as a command.ResultMsg.
//
// State ownership:
//   - Application state lives in internal/state.Store. The model never
//     writes to it; it reads snapshots in View and when syncing derived
//     state (room list, message log viewport).
//   - The merge loop applies server events and sends StateChangedMsg so the
//     model refreshes. A fixed-period tick also refreshes the clock.
//   - The termination broadcast is awaited as a command; when it fires the
//     model quits the program.
package ui
