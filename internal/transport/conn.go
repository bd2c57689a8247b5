// Package transport moves protocol frames between the client and a chat
// server. It knows nothing about what the frames mean.
package transport

import (
	"errors"
	"net"

	"github.com/gorilla/websocket"
)

// MaxFrameSize bounds a single inbound frame in bytes.
const MaxFrameSize = 1 << 20

// ErrFrameTooLarge is returned by ReadFrame when a frame exceeds
// MaxFrameSize. The connection is unusable afterwards.
var ErrFrameTooLarge = errors.New("frame exceeds size limit")

// Conn is a bidirectional, frame-oriented connection.
type Conn interface {
	// ReadFrame blocks for the next frame. It returns io.EOF once the
	// server has closed the connection cleanly.
	ReadFrame() ([]byte, error)
	// WriteFrame sends one frame. Safe for concurrent use.
	WriteFrame(frame []byte) error
	// Close releases the connection and unblocks a pending ReadFrame.
	Close() error
	RemoteAddr() string
}

// NewLineConn wraps an established stream connection with newline framing.
// Servers use it for accepted connections.
func NewLineConn(conn net.Conn) Conn {
	return newTCPConn(conn)
}

// NewWebSocketConn wraps an established WebSocket connection.
func NewWebSocketConn(conn *websocket.Conn) Conn {
	return newWSConn(conn)
}
