// Package protocol defines the chat wire vocabulary: events pushed by the
// server and commands sent by the client, framed as one JSON object per line.
package protocol

// EventType discriminates inbound server events on the wire.
type EventType string

const (
	EventLoginSuccessful   EventType = "login_successful"
	EventRoomParticipation EventType = "room_participation"
	EventUserMessage       EventType = "user_message"
)

// Event is implemented by every server-originated event.
type Event interface {
	Type() EventType
}

// RoomInfo describes a room announced on login.
type RoomInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoginSuccessful completes the username handshake and lists the rooms the
// user may participate in.
type LoginSuccessful struct {
	Username string     `json:"username"`
	Rooms    []RoomInfo `json:"rooms"`
}

// ParticipationStatus reports whether a user entered or left a room.
type ParticipationStatus string

const (
	Joined ParticipationStatus = "joined"
	Left   ParticipationStatus = "left"
)

// RoomParticipation is broadcast when any user joins or leaves a room.
type RoomParticipation struct {
	Room     string              `json:"room"`
	Username string              `json:"username"`
	Status   ParticipationStatus `json:"status"`
}

// UserMessage carries a chat line posted to a room.
type UserMessage struct {
	Room     string `json:"room"`
	Username string `json:"username"`
	Content  string `json:"content"`
}

func (LoginSuccessful) Type() EventType   { return EventLoginSuccessful }
func (RoomParticipation) Type() EventType { return EventRoomParticipation }
func (UserMessage) Type() EventType       { return EventUserMessage }
