package protocol

// CommandType discriminates outbound client commands on the wire.
type CommandType string

const (
	CommandSendMessage CommandType = "send_message"
	CommandJoinRoom    CommandType = "join_room"
	CommandLeaveRoom   CommandType = "leave_room"
	CommandQuit        CommandType = "quit"
)

// Command is implemented by every client-originated command.
type Command interface {
	Type() CommandType
}

type SendMessage struct {
	Room    string `json:"room"`
	Content string `json:"content"`
}

type JoinRoom struct {
	Room string `json:"room"`
}

type LeaveRoom struct {
	Room string `json:"room"`
}

type Quit struct{}

func (SendMessage) Type() CommandType { return CommandSendMessage }
func (JoinRoom) Type() CommandType    { return CommandJoinRoom }
func (LeaveRoom) Type() CommandType   { return CommandLeaveRoom }
func (Quit) Type() CommandType        { return CommandQuit }
