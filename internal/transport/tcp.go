package transport

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
)

// tcpConn frames each message as a single newline-terminated line.
type tcpConn struct {
	conn    net.Conn
	scanner *bufio.Scanner

	wmu sync.Mutex
}

func newTCPConn(conn net.Conn) *tcpConn {
	scanner := bufio.NewScanner(conn)
	// room for the frame plus its "\r\n" terminator
	scanner.Buffer(make([]byte, 0, 4096), MaxFrameSize+2)
	return &tcpConn{conn: conn, scanner: scanner}
}

func (c *tcpConn) ReadFrame() ([]byte, error) {
	for c.scanner.Scan() {
		line := c.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		frame := make([]byte, len(line))
		copy(frame, line)
		return frame, nil
	}
	err := c.scanner.Err()
	switch {
	case err == nil:
		return nil, io.EOF
	case errors.Is(err, bufio.ErrTooLong):
		return nil, ErrFrameTooLarge
	default:
		return nil, err
	}
}

func (c *tcpConn) WriteFrame(frame []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	buf := make([]byte, 0, len(frame)+1)
	buf = append(buf, frame...)
	buf = append(buf, '\n')
	_, err := c.conn.Write(buf)
	return err
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}

func (c *tcpConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
