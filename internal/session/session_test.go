package session

import (
	"net"
	"testing"
	"time"

	"github.com/emalab/ema8314/internal/protocol"
)

// fakePeer is a loopback UDP endpoint standing in for the device. Each
// received request is answered by calling reply; a nil reply drops the
// request on the floor.
type fakePeer struct {
	t    *testing.T
	conn net.PacketConn
}

func newFakePeer(t *testing.T, reply func(req []byte) []byte) *fakePeer {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("fake peer listen: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		buf := make([]byte, 128)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			if out := reply(append([]byte(nil), buf[:n]...)); out != nil {
				_, _ = conn.WriteTo(out, addr)
			}
		}
	}()

	return &fakePeer{t: t, conn: conn}
}

func (p *fakePeer) addr() string {
	return p.conn.LocalAddr().String()
}

func openTestSession(t *testing.T, peer *fakePeer) *Session {
	t.Helper()
	s, err := Open("127.0.0.1:0", peer.addr(), "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSendReceiveRoundTrip(t *testing.T) {
	var gotReq []byte
	peer := newFakePeer(t, func(req []byte) []byte {
		gotReq = req
		reply := make([]byte, protocol.ResponseSize)
		reply[protocol.FlagOffset] = protocol.FlagSuccess
		return reply
	})

	s := openTestSession(t, peer)

	req, err := protocol.EncodeRequest(s.Password(), protocol.CmdFirmwareVersion, nil)
	if err != nil {
		t.Fatalf("EncodeRequest() error = %v", err)
	}

	reply, err := s.SendReceive(req)
	if err != nil {
		t.Fatalf("SendReceive() error = %v", err)
	}
	if len(reply) != protocol.ResponseSize {
		t.Errorf("reply length = %d, want %d", len(reply), protocol.ResponseSize)
	}
	if reply[protocol.FlagOffset] != protocol.FlagSuccess {
		t.Errorf("flag = %d, want success", reply[protocol.FlagOffset])
	}
	if string(gotReq[:7]) != protocol.CardID {
		t.Errorf("peer saw card ID %q", gotReq[:7])
	}
}

func TestSendReceiveTimeout(t *testing.T) {
	peer := newFakePeer(t, func(req []byte) []byte {
		return nil // never reply
	})

	s := openTestSession(t, peer)
	s.SetTimeout(200 * time.Millisecond)

	start := time.Now()
	_, err := s.SendReceive([]byte{0x00})
	elapsed := time.Since(start)

	if !protocol.IsTimeout(err) {
		t.Fatalf("SendReceive() error = %v, want timeout", err)
	}
	if !protocol.IsRetryable(err) {
		t.Error("timeout should be retryable")
	}
	if elapsed < 200*time.Millisecond {
		t.Errorf("returned after %s, before the deadline", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("blocked for %s, deadline not honored", elapsed)
	}
}

func TestSendReceiveShortReply(t *testing.T) {
	peer := newFakePeer(t, func(req []byte) []byte {
		return make([]byte, 10)
	})

	s := openTestSession(t, peer)
	s.SetTimeout(time.Second)

	_, err := s.SendReceive([]byte{0x00})
	if !protocol.IsShortRead(err) {
		t.Fatalf("SendReceive() error = %v, want short read", err)
	}
}

func TestSendReceiveOversizedReply(t *testing.T) {
	peer := newFakePeer(t, func(req []byte) []byte {
		return make([]byte, 40)
	})

	s := openTestSession(t, peer)
	s.SetTimeout(time.Second)

	_, err := s.SendReceive([]byte{0x00})
	if !protocol.IsShortRead(err) {
		t.Fatalf("SendReceive() error = %v, want short read", err)
	}
}

func TestSessionFieldUpdates(t *testing.T) {
	peer := newFakePeer(t, func(req []byte) []byte { return nil })
	s := openTestSession(t, peer)

	if s.Password() != protocol.DefaultPassword {
		t.Errorf("default password = %q", s.Password())
	}

	s.SetPassword("secret")
	if s.Password() != "secret" {
		t.Errorf("password = %q after update", s.Password())
	}

	s.SetRemotePort(7000)
	s.SetRemoteIP(net.IPv4(10, 1, 2, 3))
	if got := s.RemoteAddr(); got != "10.1.2.3:7000" {
		t.Errorf("remote = %q after update", got)
	}
}

func TestCloseAbortsBlockedReceive(t *testing.T) {
	peer := newFakePeer(t, func(req []byte) []byte { return nil })

	s, err := Open("127.0.0.1:0", peer.addr(), "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.SetTimeout(10 * time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := s.SendReceive([]byte{0x00})
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	_ = s.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Error("SendReceive() returned nil after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SendReceive() still blocked after Close")
	}
}
