package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atomicstack/chat-tui/internal/logging/events"
)

// ErrUnsupportedScheme is returned for addresses whose scheme has no transport.
var ErrUnsupportedScheme = errors.New("unsupported address scheme")

const (
	SchemeTCP = "tcp"
	SchemeWS  = "ws"
	SchemeWSS = "wss"
)

// Dialer opens server connections. Bare host:port addresses use TCP.
type Dialer struct {
	Timeout  time.Duration
	throttle *throttle
}

// NewDialer returns a dialer that waits at least minInterval between
// attempts and gives each attempt timeout to complete.
func NewDialer(timeout, minInterval time.Duration) *Dialer {
	return &Dialer{Timeout: timeout, throttle: newThrottle(minInterval)}
}

// ParseAddress splits addr into a scheme and the remainder. Addresses
// without a scheme are treated as tcp.
func ParseAddress(addr string) (scheme, target string, err error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", "", errors.New("empty server address")
	}
	scheme, rest, found := strings.Cut(addr, "://")
	if !found {
		return SchemeTCP, addr, nil
	}
	scheme = strings.ToLower(scheme)
	switch scheme {
	case SchemeTCP:
		return scheme, rest, nil
	case SchemeWS, SchemeWSS:
		return scheme, addr, nil
	default:
		return "", "", fmt.Errorf("%w %q", ErrUnsupportedScheme, scheme)
	}
}

// Dial connects to addr.
func (d *Dialer) Dial(ctx context.Context, addr string) (Conn, error) {
	scheme, target, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	if err := d.throttle.wait(ctx); err != nil {
		return nil, err
	}
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	events.Transport.Dial(scheme, target)

	switch scheme {
	case SchemeWS, SchemeWSS:
		dialer := &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: d.Timeout,
		}
		conn, resp, err := dialer.DialContext(ctx, target, nil)
		if err != nil {
			if resp != nil {
				err = fmt.Errorf("connect %s (HTTP %d): %w", target, resp.StatusCode, err)
			} else {
				err = fmt.Errorf("connect %s: %w", target, err)
			}
			events.Transport.DialFailed(target, err)
			return nil, err
		}
		return newWSConn(conn), nil
	default:
		var nd net.Dialer
		conn, err := nd.DialContext(ctx, "tcp", target)
		if err != nil {
			err = fmt.Errorf("connect %s: %w", target, err)
			events.Transport.DialFailed(target, err)
			return nil, err
		}
		return newTCPConn(conn), nil
	}
}
