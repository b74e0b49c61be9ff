package device

import (
	"context"
	"encoding/binary"
	"math"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emalab/ema8314/internal/protocol"
	"github.com/emalab/ema8314/internal/session"
)

// fakeDevice is a loopback UDP peer that answers per command code. Handlers
// receive the full request frame and return a 34-byte reply; a nil handler
// or nil reply drops the request.
type fakeDevice struct {
	conn     net.PacketConn
	handlers map[byte]func(req []byte) []byte
}

func newFakeDevice(t *testing.T, handlers map[byte]func(req []byte) []byte) *fakeDevice {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("fake device listen: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	d := &fakeDevice{conn: conn, handlers: handlers}
	go func() {
		buf := make([]byte, 128)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			if n < protocol.HeaderSize {
				continue
			}
			req := append([]byte(nil), buf[:n]...)
			if h := d.handlers[req[15]]; h != nil {
				if reply := h(req); reply != nil {
					_, _ = conn.WriteTo(reply, addr)
				}
			}
		}
	}()
	return d
}

// ok builds a 34-byte success reply and lets fill set payload bytes.
func ok(fill func(f []byte)) []byte {
	f := make([]byte, protocol.ResponseSize)
	f[protocol.FlagOffset] = protocol.FlagSuccess
	if fill != nil {
		fill(f)
	}
	return f
}

// rejected builds a 34-byte reply with the given failure flag.
func rejected(flag byte) []byte {
	f := make([]byte, protocol.ResponseSize)
	f[protocol.FlagOffset] = flag
	return f
}

func newTestClient(t *testing.T, d *fakeDevice) *Client {
	t.Helper()
	s, err := session.Open("127.0.0.1:0", d.conn.LocalAddr().String(), "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.SetTimeout(time.Second)
	t.Cleanup(func() { _ = s.Close() })
	return NewClient(s)
}

func TestTemperatureEndToEnd(t *testing.T) {
	var gotChannel byte
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdTemperatureRead: func(req []byte) []byte {
			gotChannel = req[19]
			return ok(func(f []byte) {
				binary.LittleEndian.PutUint32(f[4:8], math.Float32bits(23.5))
				f[20] = byte(protocol.Celsius)
			})
		},
	})

	c := newTestClient(t, d)
	m, err := c.Temperature(2)
	if err != nil {
		t.Fatalf("Temperature() error = %v", err)
	}
	if m.Value != 23.5 || m.Unit != protocol.Celsius {
		t.Errorf("Temperature() = %v, want 23.5 C", m)
	}
	if gotChannel != 2 {
		t.Errorf("device saw channel %d, want 2", gotChannel)
	}
}

func TestTemperatureRejectedFlag(t *testing.T) {
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdTemperatureRead: func(req []byte) []byte {
			return rejected(0)
		},
	})

	c := newTestClient(t, d)
	_, err := c.Temperature(0)
	if !protocol.IsDeviceRejected(err) {
		t.Fatalf("Temperature() error = %v, want device rejection", err)
	}
	var pe *protocol.ProtoError
	if !asProto(err, &pe) {
		t.Fatal("error is not a ProtoError")
	}
	if pe.Flag != 0 {
		t.Errorf("rejection flag = %d, want 0", pe.Flag)
	}
}

func asProto(err error, target **protocol.ProtoError) bool {
	pe, ok := err.(*protocol.ProtoError)
	if ok {
		*target = pe
	}
	return ok
}

func TestTemperatureInvalidChannel(t *testing.T) {
	d := newFakeDevice(t, nil)
	c := newTestClient(t, d)
	if _, err := c.Temperature(4); err == nil {
		t.Error("Temperature(4) expected range error")
	}
	if _, err := c.Temperature(-1); err == nil {
		t.Error("Temperature(-1) expected range error")
	}
}

func TestFirmwareVersion(t *testing.T) {
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdFirmwareVersion: func(req []byte) []byte {
			return ok(func(f []byte) {
				f[1] = 2
				f[2] = 5
			})
		},
	})

	c := newTestClient(t, d)
	v, err := c.FirmwareVersion()
	if err != nil {
		t.Fatalf("FirmwareVersion() error = %v", err)
	}
	if v != "2.5" {
		t.Errorf("FirmwareVersion() = %q, want \"2.5\"", v)
	}
}

func TestAllTemperaturesUnrecognizedUnit(t *testing.T) {
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdAllTemperatures: func(req []byte) []byte {
			return ok(func(f []byte) {
				f[20], f[21], f[22] = 0x01, 0x01, 0x01
				f[23] = 0x07 // undocumented unit byte
			})
		},
	})

	c := newTestClient(t, d)
	_, err := c.AllTemperatures()
	if !protocol.IsUnrecognizedEnum(err) {
		t.Fatalf("AllTemperatures() error = %v, want unrecognized enum", err)
	}
}

func TestAllLimitsPairComposition(t *testing.T) {
	var selectors [][]byte
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdAllLimitsRead: func(req []byte) []byte {
			sel := append([]byte(nil), req[16:20]...)
			selectors = append(selectors, sel)
			pair := sel[1]
			return ok(func(f []byte) {
				base := float32(10 * (pair + 1)) // pair 0: 10/11..., pair 1: 20/21...
				binary.LittleEndian.PutUint32(f[4:], math.Float32bits(base))
				binary.LittleEndian.PutUint32(f[8:], math.Float32bits(base+1))
				binary.LittleEndian.PutUint32(f[12:], math.Float32bits(base+2))
				binary.LittleEndian.PutUint32(f[16:], math.Float32bits(base+3))
				f[20] = byte(protocol.Celsius)
				f[21] = byte(protocol.Fahrenheit)
			})
		},
	})

	c := newTestClient(t, d)
	all, err := c.AllLimits()
	if err != nil {
		t.Fatalf("AllLimits() error = %v", err)
	}

	if len(selectors) != 2 {
		t.Fatalf("device saw %d round trips, want 2", len(selectors))
	}
	if selectors[0][1] != 0 || selectors[0][3] != 0 {
		t.Errorf("first selector = % X, want pair 0", selectors[0])
	}
	if selectors[1][1] != 1 || selectors[1][3] != 1 {
		t.Errorf("second selector = % X, want pair 1", selectors[1])
	}

	want := [4]Limits{
		{Low: 10, High: 11, Unit: protocol.Celsius},
		{Low: 12, High: 13, Unit: protocol.Fahrenheit},
		{Low: 20, High: 21, Unit: protocol.Celsius},
		{Low: 22, High: 23, Unit: protocol.Fahrenheit},
	}
	if all != want {
		t.Errorf("AllLimits() = %+v, want %+v", all, want)
	}
}

func TestChangePasswordUpdatesSession(t *testing.T) {
	var lastPassword string
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdChangePassword: func(req []byte) []byte {
			return ok(nil)
		},
		protocol.CmdFirmwareVersion: func(req []byte) []byte {
			lastPassword = string(req[7:15])
			return ok(func(f []byte) { f[1] = 1 })
		},
	})

	c := newTestClient(t, d)
	if err := c.ChangePassword("topsecr"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if err := c.Probe(); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if lastPassword != "topsecr\x00" {
		t.Errorf("header password = %q, want padded \"topsecr\"", lastPassword)
	}
}

func TestSensorStatus(t *testing.T) {
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdSensorStatusRead: func(req []byte) []byte {
			return ok(func(f []byte) { f[24] = 0b0100 })
		},
	})

	c := newTestClient(t, d)
	broken, err := c.SensorStatus()
	if err != nil {
		t.Fatalf("SensorStatus() error = %v", err)
	}
	if broken != [4]bool{false, false, true, false} {
		t.Errorf("SensorStatus() = %v", broken)
	}
}

func TestWatchdogRoundTrip(t *testing.T) {
	var gotWait int16
	var gotMask byte
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdWatchdogSet: func(req []byte) []byte {
			gotWait = int16(binary.LittleEndian.Uint16(req[16:18]))
			gotMask = req[18]
			return ok(nil)
		},
		protocol.CmdWatchdogRead: func(req []byte) []byte {
			return ok(func(f []byte) {
				binary.LittleEndian.PutUint16(f[0:2], 300)
				f[2] = 0b1001
				f[3] = 2
			})
		},
	})

	c := newTestClient(t, d)
	if err := c.ConfigureWatchdog(300, [4]bool{true, false, false, true}); err != nil {
		t.Fatalf("ConfigureWatchdog() error = %v", err)
	}
	if gotWait != 300 || gotMask != 0b1001 {
		t.Errorf("device saw wait=%d mask=%04b", gotWait, gotMask)
	}

	cfg, err := c.Watchdog()
	if err != nil {
		t.Fatalf("Watchdog() error = %v", err)
	}
	if cfg.WaitTenths != 300 || !cfg.Enabled {
		t.Errorf("Watchdog() = %+v", cfg)
	}
	if cfg.Wait() != 30*time.Second {
		t.Errorf("Wait() = %s, want 30s", cfg.Wait())
	}
}

func TestConfigureWatchdogRange(t *testing.T) {
	d := newFakeDevice(t, nil)
	c := newTestClient(t, d)
	if err := c.ConfigureWatchdog(5, [4]bool{}); err == nil {
		t.Error("ConfigureWatchdog(5) expected range error")
	}
	if err := c.ConfigureWatchdog(10001, [4]bool{}); err == nil {
		t.Error("ConfigureWatchdog(10001) expected range error")
	}
}

func TestWaitForDeviceRecovers(t *testing.T) {
	var calls atomic.Int32
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdFirmwareVersion: func(req []byte) []byte {
			if calls.Add(1) < 3 {
				return nil // stall: no reply
			}
			return ok(func(f []byte) { f[1] = 1 })
		},
	})

	c := newTestClient(t, d)
	c.sess.SetTimeout(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.waitForDevice(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("waitForDevice() error = %v", err)
	}
	if n := calls.Load(); n < 3 {
		t.Errorf("device saw %d probes, want at least 3", n)
	}
}

func TestWaitForDeviceRejectionIsPermanent(t *testing.T) {
	d := newFakeDevice(t, map[byte]func([]byte) []byte{
		protocol.CmdFirmwareVersion: func(req []byte) []byte {
			return rejected(7)
		},
	})

	c := newTestClient(t, d)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.waitForDevice(ctx, 10*time.Millisecond)
	if !protocol.IsDeviceRejected(err) {
		t.Fatalf("waitForDevice() error = %v, want device rejection", err)
	}
}
