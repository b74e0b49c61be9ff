package session

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/emalab/ema8314/internal/logging"
	"github.com/emalab/ema8314/internal/protocol"
)

// DefaultTimeout is the receive timeout observed by the device protocol.
const DefaultTimeout = 5 * time.Second

// Session owns one UDP socket bound to a local endpoint and targeting one
// EMA8314 device. It performs strictly half-duplex request/response
// exchanges: one datagram out, one datagram in, with a bounded wait.
//
// A Session is not safe for concurrent SendReceive calls; the protocol
// allows only one outstanding request per socket. Independent Sessions to
// different devices share no state.
type Session struct {
	conn    *net.UDPConn
	remote  *net.UDPAddr
	timeout time.Duration

	mu       sync.Mutex
	password string
}

// Open binds a UDP socket to localAddr (address-reuse enabled) and targets
// remoteAddr. An empty password selects the factory default.
func Open(localAddr, remoteAddr, password string) (*Session, error) {
	if password == "" {
		password = protocol.DefaultPassword
	}

	remote, err := net.ResolveUDPAddr("udp4", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve remote endpoint %q: %w", remoteAddr, err)
	}

	lc := net.ListenConfig{Control: reuseAddr}
	pc, err := lc.ListenPacket(context.Background(), "udp4", localAddr)
	if err != nil {
		return nil, fmt.Errorf("bind local endpoint %q: %w", localAddr, err)
	}

	logging.Debug("session opened",
		zap.String("local", pc.LocalAddr().String()),
		zap.String("remote", remote.String()),
	)

	return &Session{
		conn:     pc.(*net.UDPConn),
		remote:   remote,
		timeout:  DefaultTimeout,
		password: password,
	}, nil
}

// SetTimeout overrides the receive timeout for subsequent exchanges.
func (s *Session) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Password returns the password currently used in request headers.
func (s *Session) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password
}

// SetPassword updates the cached password. Called after the device accepts a
// password change so subsequent requests stay well-formed.
func (s *Session) SetPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
}

// SetRemotePort retargets the remote endpoint's port. Called after the
// device accepts a socket-port change.
func (s *Session) SetRemotePort(port uint16) {
	s.remote.Port = int(port)
}

// SetRemoteIP retargets the remote endpoint's address. Called after the
// device accepts an IP change.
func (s *Session) SetRemoteIP(ip net.IP) {
	s.remote.IP = ip
}

// RemoteAddr returns the current remote endpoint.
func (s *Session) RemoteAddr() string {
	return s.remote.String()
}

// SendReceive sends one request datagram and blocks for one reply or the
// timeout. It never retries; transient stalls are recovered at the caller
// through the probe-and-retry idiom. A missing reply yields a Timeout error,
// a reply that is not exactly 34 bytes yields a ShortRead error.
func (s *Session) SendReceive(request []byte) ([]byte, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	logging.LogFrame("request", request)

	if _, err := s.conn.WriteToUDP(request, s.remote); err != nil {
		return nil, fmt.Errorf("send to %s: %w", s.remote, err)
	}

	buf := make([]byte, 64)
	n, _, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, protocol.NewTimeout(
				fmt.Sprintf("no reply from %s within %s", s.remote, s.timeout), err)
		}
		return nil, fmt.Errorf("receive from %s: %w", s.remote, err)
	}

	logging.LogFrame("reply", buf[:n])

	if n != protocol.ResponseSize {
		return nil, protocol.NewShortRead(n)
	}
	return buf[:n], nil
}

// Close releases the socket. A Close from another goroutine aborts a
// SendReceive blocked in its receive wait; that is the only cancellation
// the protocol offers.
func (s *Session) Close() error {
	logging.Debug("session closed", zap.String("remote", s.remote.String()))
	return s.conn.Close()
}
