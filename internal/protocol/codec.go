package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownEvent is returned when a frame names an event type this
	// client does not understand.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrUnknownCommand is the command-side counterpart of ErrUnknownEvent.
	ErrUnknownCommand = errors.New("unknown command type")
)

// DecodeError reports a frame that could not be turned into a typed value.
type DecodeError struct {
	Frame string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode frame %q: %v", e.Frame, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type header struct {
	Type string `json:"type"`
}

// EncodeEvent renders ev as a single JSON object without a trailing newline.
func EncodeEvent(ev Event) ([]byte, error) {
	switch e := ev.(type) {
	case LoginSuccessful:
		return json.Marshal(struct {
			Type EventType `json:"type"`
			LoginSuccessful
		}{e.Type(), e})
	case RoomParticipation:
		return json.Marshal(struct {
			Type EventType `json:"type"`
			RoomParticipation
		}{e.Type(), e})
	case UserMessage:
		return json.Marshal(struct {
			Type EventType `json:"type"`
			UserMessage
		}{e.Type(), e})
	default:
		return nil, fmt.Errorf("encode event %T: %w", ev, ErrUnknownEvent)
	}
}

// DecodeEvent parses one frame. Failures are always *DecodeError.
func DecodeEvent(frame []byte) (Event, error) {
	var h header
	if err := json.Unmarshal(frame, &h); err != nil {
		return nil, &DecodeError{Frame: string(frame), Err: err}
	}
	var (
		ev  Event
		err error
	)
	switch EventType(h.Type) {
	case EventLoginSuccessful:
		var v LoginSuccessful
		err = json.Unmarshal(frame, &v)
		ev = v
	case EventRoomParticipation:
		var v RoomParticipation
		err = json.Unmarshal(frame, &v)
		if err == nil && v.Status != Joined && v.Status != Left {
			err = fmt.Errorf("invalid participation status %q", v.Status)
		}
		ev = v
	case EventUserMessage:
		var v UserMessage
		err = json.Unmarshal(frame, &v)
		ev = v
	default:
		err = fmt.Errorf("%w %q", ErrUnknownEvent, h.Type)
	}
	if err != nil {
		return nil, &DecodeError{Frame: string(frame), Err: err}
	}
	return ev, nil
}

// EncodeCommand renders cmd as a single JSON object without a trailing newline.
func EncodeCommand(cmd Command) ([]byte, error) {
	switch c := cmd.(type) {
	case SendMessage:
		return json.Marshal(struct {
			Type CommandType `json:"type"`
			SendMessage
		}{c.Type(), c})
	case JoinRoom:
		return json.Marshal(struct {
			Type CommandType `json:"type"`
			JoinRoom
		}{c.Type(), c})
	case LeaveRoom:
		return json.Marshal(struct {
			Type CommandType `json:"type"`
			LeaveRoom
		}{c.Type(), c})
	case Quit:
		return json.Marshal(header{Type: string(c.Type())})
	default:
		return nil, fmt.Errorf("encode command %T: %w", cmd, ErrUnknownCommand)
	}
}

// DecodeCommand parses one command frame. The client never receives
// commands; servers and tests do.
func DecodeCommand(frame []byte) (Command, error) {
	var h header
	if err := json.Unmarshal(frame, &h); err != nil {
		return nil, &DecodeError{Frame: string(frame), Err: err}
	}
	var (
		cmd Command
		err error
	)
	switch CommandType(h.Type) {
	case CommandSendMessage:
		var v SendMessage
		err = json.Unmarshal(frame, &v)
		cmd = v
	case CommandJoinRoom:
		var v JoinRoom
		err = json.Unmarshal(frame, &v)
		cmd = v
	case CommandLeaveRoom:
		var v LeaveRoom
		err = json.Unmarshal(frame, &v)
		cmd = v
	case CommandQuit:
		cmd = Quit{}
	default:
		err = fmt.Errorf("%w %q", ErrUnknownCommand, h.Type)
	}
	if err != nil {
		return nil, &DecodeError{Frame: string(frame), Err: err}
	}
	return cmd, nil
}
