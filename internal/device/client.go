package device

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/emalab/ema8314/internal/logging"
	"github.com/emalab/ema8314/internal/protocol"
	"github.com/emalab/ema8314/internal/session"
)

// Measurement is one channel's temperature reading.
type Measurement struct {
	Value float32
	Unit  protocol.Unit
}

// String formats the reading as "23.5 C".
func (m Measurement) String() string {
	return fmt.Sprintf("%g %s", m.Value, m.Unit)
}

// Limits is one channel's temperature threshold pair.
type Limits struct {
	Low  float32
	High float32
	Unit protocol.Unit
}

// WatchdogConfig is the communication watchdog state: which outputs it
// drives when the host goes quiet, and the wait time in 0.1 s units.
type WatchdogConfig struct {
	WaitTenths int16
	Outputs    [protocol.NumChannels]bool
	Enabled    bool
}

// Wait returns the wait time as a duration.
func (w WatchdogConfig) Wait() time.Duration {
	return time.Duration(w.WaitTenths) * 100 * time.Millisecond
}

// Client exposes one typed method per EMA8314 operation on top of a
// transport Session. Like the Session it wraps, a Client supports one
// request at a time.
type Client struct {
	sess *session.Session
}

// NewClient wraps an open Session.
func NewClient(sess *session.Session) *Client {
	return &Client{sess: sess}
}

// Close releases the underlying Session.
func (c *Client) Close() error {
	return c.sess.Close()
}

// exchange runs one encode/send/decode cycle and converts a non-success
// status flag into a DeviceRejected error.
func (c *Client) exchange(code byte, req protocol.Values) (protocol.Values, error) {
	frame, err := protocol.EncodeRequest(c.sess.Password(), code, req)
	if err != nil {
		return nil, err
	}

	reply, err := c.sess.SendReceive(frame)
	if err != nil {
		return nil, err
	}

	values, flag, err := protocol.DecodeResponse(code, reply)
	if err != nil {
		return nil, err
	}
	if flag != protocol.FlagSuccess {
		logging.Warn("device rejected command",
			zap.Uint8("code", code),
			zap.Uint8("flag", flag),
		)
		return values, protocol.NewDeviceRejected(code, flag)
	}
	return values, nil
}

func checkChannel(ch protocol.Channel) error {
	if !ch.Valid() {
		return fmt.Errorf("channel %d out of range 0-%d", ch, protocol.NumChannels-1)
	}
	return nil
}

// --- configuration commands ---

// Reboot restarts the device. The socket stays valid; the device answers
// again once it is back up.
func (c *Client) Reboot() error {
	_, err := c.exchange(protocol.CmdReboot, nil)
	return err
}

// ChangePort moves the device's UDP socket to a new port and retargets the
// Session accordingly.
func (c *Client) ChangePort(port uint16) error {
	_, err := c.exchange(protocol.CmdChangePort, protocol.Values{"port": port})
	if err != nil {
		return err
	}
	c.sess.SetRemotePort(port)
	return nil
}

// ChangePassword sets a new device password (up to 8 ASCII bytes) and
// updates the Session's cached copy so subsequent requests authenticate.
func (c *Client) ChangePassword(password string) error {
	if len(password) > protocol.PasswordSize {
		return fmt.Errorf("password longer than %d bytes", protocol.PasswordSize)
	}
	_, err := c.exchange(protocol.CmdChangePassword, protocol.Values{"password": password})
	if err != nil {
		return err
	}
	c.sess.SetPassword(password)
	return nil
}

// ResetPassword restores the factory password.
func (c *Client) ResetPassword() error {
	_, err := c.exchange(protocol.CmdResetPassword, nil)
	if err != nil {
		return err
	}
	c.sess.SetPassword(protocol.DefaultPassword)
	return nil
}

// ChangeIP moves the device to a new IPv4 address and retargets the Session.
func (c *Client) ChangeIP(ip net.IP) error {
	v4 := ip.To4()
	if v4 == nil {
		return fmt.Errorf("%s is not an IPv4 address", ip)
	}
	_, err := c.exchange(protocol.CmdChangeIP, protocol.Values{"ip": []byte(v4)})
	if err != nil {
		return err
	}
	c.sess.SetRemoteIP(v4)
	return nil
}

// FirmwareVersion reads the firmware version as "major.minor".
func (c *Client) FirmwareVersion() (string, error) {
	values, err := c.exchange(protocol.CmdFirmwareVersion, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", values.U8("major"), values.U8("minor")), nil
}

// Probe is the lightweight reachability check used by the reconnect idiom:
// a firmware-version read, result discarded.
func (c *Client) Probe() error {
	_, err := c.FirmwareVersion()
	return err
}

// --- output commands ---

// SetOutputs drives the four general-purpose outputs. Only outputs in
// general-purpose mode react; control-mode outputs are owned by the
// comparison logic.
func (c *Client) SetOutputs(on [protocol.NumChannels]bool) error {
	_, err := c.exchange(protocol.CmdOutputSet, protocol.Values{
		"mask": protocol.PackChannelBits(on),
	})
	return err
}

// Outputs reads the four output states.
func (c *Client) Outputs() ([protocol.NumChannels]bool, error) {
	values, err := c.exchange(protocol.CmdOutputRead, nil)
	if err != nil {
		return [protocol.NumChannels]bool{}, err
	}
	return protocol.UnpackChannelBits(values.U8("mask")), nil
}

// SetOutputModes switches each output between general purpose (false) and
// temperature control (true).
func (c *Client) SetOutputModes(control [protocol.NumChannels]bool) error {
	_, err := c.exchange(protocol.CmdOutputModeSet, protocol.Values{
		"mask": protocol.PackChannelBits(control),
	})
	return err
}

// OutputModes reads each output's mode; true means temperature control.
func (c *Client) OutputModes() ([protocol.NumChannels]bool, error) {
	values, err := c.exchange(protocol.CmdOutputModeRead, nil)
	if err != nil {
		return [protocol.NumChannels]bool{}, err
	}
	return protocol.UnpackChannelBits(values.U8("mask")), nil
}

// --- measurement commands ---

// Temperature reads one channel's temperature and unit.
func (c *Client) Temperature(ch protocol.Channel) (Measurement, error) {
	if err := checkChannel(ch); err != nil {
		return Measurement{}, err
	}
	values, err := c.exchange(protocol.CmdTemperatureRead, protocol.Values{
		"channel": byte(ch),
	})
	if err != nil {
		return Measurement{}, err
	}
	unit, err := protocol.ParseUnit(values.U8("unit"))
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: values.F32("temp"), Unit: unit}, nil
}

// AllTemperatures reads all four channels in one round trip.
func (c *Client) AllTemperatures() ([protocol.NumChannels]Measurement, error) {
	var out [protocol.NumChannels]Measurement

	values, err := c.exchange(protocol.CmdAllTemperatures, nil)
	if err != nil {
		return out, err
	}
	for i := range out {
		unit, err := protocol.ParseUnit(values.U8(fmt.Sprintf("unit%d", i)))
		if err != nil {
			return out, err
		}
		out[i] = Measurement{
			Value: values.F32(fmt.Sprintf("temp%d", i)),
			Unit:  unit,
		}
	}
	return out, nil
}

// --- limit commands ---

// SetLimits sets one channel's temperature thresholds.
func (c *Client) SetLimits(ch protocol.Channel, l Limits) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	_, err := c.exchange(protocol.CmdLimitSet, protocol.Values{
		"channel": byte(ch),
		"low":     l.Low,
		"high":    l.High,
		"unit":    byte(l.Unit),
	})
	return err
}

// Limits reads one channel's temperature thresholds.
func (c *Client) Limits(ch protocol.Channel) (Limits, error) {
	if err := checkChannel(ch); err != nil {
		return Limits{}, err
	}
	values, err := c.exchange(protocol.CmdLimitRead, protocol.Values{
		"channel": byte(ch),
	})
	if err != nil {
		return Limits{}, err
	}
	unit, err := protocol.ParseUnit(values.U8("unit"))
	if err != nil {
		return Limits{}, err
	}
	return Limits{Low: values.F32("low"), High: values.F32("high"), Unit: unit}, nil
}

// SetAllLimits sets all four channels' thresholds. The wire protocol
// addresses channel pairs, so this issues two round trips: pair 0 covers
// channels 0-1, pair 1 covers channels 2-3. A failure on the second pair
// leaves the first pair applied.
func (c *Client) SetAllLimits(all [protocol.NumChannels]Limits) error {
	for pair := 0; pair < 2; pair++ {
		a, b := all[2*pair], all[2*pair+1]
		_, err := c.exchange(protocol.CmdAllLimitsSet, protocol.Values{
			"selector": protocol.PairSelector(pair),
			"low_a":    a.Low,
			"high_a":   a.High,
			"low_b":    b.Low,
			"high_b":   b.High,
			"unit_a":   byte(a.Unit),
			"unit_b":   byte(b.Unit),
		})
		if err != nil {
			return fmt.Errorf("channel pair %d: %w", pair, err)
		}
	}
	return nil
}

// AllLimits reads all four channels' thresholds, two channels per round
// trip.
func (c *Client) AllLimits() ([protocol.NumChannels]Limits, error) {
	var out [protocol.NumChannels]Limits

	for pair := 0; pair < 2; pair++ {
		values, err := c.exchange(protocol.CmdAllLimitsRead, protocol.Values{
			"selector": protocol.PairSelector(pair),
		})
		if err != nil {
			return out, fmt.Errorf("channel pair %d: %w", pair, err)
		}
		unitA, err := protocol.ParseUnit(values.U8("unit_a"))
		if err != nil {
			return out, err
		}
		unitB, err := protocol.ParseUnit(values.U8("unit_b"))
		if err != nil {
			return out, err
		}
		out[2*pair] = Limits{
			Low: values.F32("low_a"), High: values.F32("high_a"), Unit: unitA,
		}
		out[2*pair+1] = Limits{
			Low: values.F32("low_b"), High: values.F32("high_b"), Unit: unitB,
		}
	}
	return out, nil
}

// --- sensor commands ---

// SetSensorType configures one channel's RTD probe type.
func (c *Client) SetSensorType(ch protocol.Channel, st protocol.SensorType) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	_, err := c.exchange(protocol.CmdSensorTypeSet, protocol.Values{
		"channel": byte(ch),
		"sensor":  byte(st),
	})
	return err
}

// SensorType reads one channel's RTD probe type.
func (c *Client) SensorType(ch protocol.Channel) (protocol.SensorType, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	values, err := c.exchange(protocol.CmdSensorTypeRead, protocol.Values{
		"channel": byte(ch),
	})
	if err != nil {
		return 0, err
	}
	return protocol.ParseSensorType(values.U8("sensor"))
}

// SetAllSensorTypes configures all four probe types in one round trip.
func (c *Client) SetAllSensorTypes(types [protocol.NumChannels]protocol.SensorType) error {
	req := make(protocol.Values, protocol.NumChannels)
	for i, st := range types {
		req[fmt.Sprintf("sensor%d", i)] = byte(st)
	}
	_, err := c.exchange(protocol.CmdAllSensorTypesSet, req)
	return err
}

// AllSensorTypes reads all four probe types in one round trip.
func (c *Client) AllSensorTypes() ([protocol.NumChannels]protocol.SensorType, error) {
	var out [protocol.NumChannels]protocol.SensorType

	values, err := c.exchange(protocol.CmdAllSensorTypesRd, nil)
	if err != nil {
		return out, err
	}
	for i := range out {
		st, err := protocol.ParseSensorType(values.U8(fmt.Sprintf("sensor%d", i)))
		if err != nil {
			return out, err
		}
		out[i] = st
	}
	return out, nil
}

// SensorStatus reads the broken-probe flags; true means the channel's
// sensor is broken or disconnected.
func (c *Client) SensorStatus() ([protocol.NumChannels]bool, error) {
	values, err := c.exchange(protocol.CmdSensorStatusRead, nil)
	if err != nil {
		return [protocol.NumChannels]bool{}, err
	}
	return protocol.UnpackChannelBits(values.U8("mask")), nil
}

// --- control comparison commands ---

// ControlEnabled reads whether temperature comparison is running.
func (c *Client) ControlEnabled() (bool, error) {
	values, err := c.exchange(protocol.CmdControlStatusRead, nil)
	if err != nil {
		return false, err
	}
	return protocol.ParseEnabled(values.U8("status"))
}

// EnableControl starts temperature comparison on the masked channels.
func (c *Client) EnableControl() error {
	_, err := c.exchange(protocol.CmdControlEnable, nil)
	return err
}

// DisableControl stops temperature comparison.
func (c *Client) DisableControl() error {
	_, err := c.exchange(protocol.CmdControlDisable, nil)
	return err
}

// SetControlMask selects which channels take part in comparison; true masks
// the channel in.
func (c *Client) SetControlMask(masked [protocol.NumChannels]bool) error {
	_, err := c.exchange(protocol.CmdControlMaskSet, protocol.Values{
		"mask": protocol.PackChannelBits(masked),
	})
	return err
}

// ControlMask reads the comparison mask.
func (c *Client) ControlMask() ([protocol.NumChannels]bool, error) {
	values, err := c.exchange(protocol.CmdControlMaskRead, nil)
	if err != nil {
		return [protocol.NumChannels]bool{}, err
	}
	return protocol.UnpackChannelBits(values.U8("mask")), nil
}

// SetControlMode sets how one channel's output reacts to its limits.
func (c *Client) SetControlMode(ch protocol.Channel, mode protocol.ControlMode) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	_, err := c.exchange(protocol.CmdControlModeSet, protocol.Values{
		"channel": byte(ch),
		"mode":    byte(mode),
	})
	return err
}

// ControlMode reads one channel's control mode.
func (c *Client) ControlMode(ch protocol.Channel) (protocol.ControlMode, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	values, err := c.exchange(protocol.CmdControlModeRead, protocol.Values{
		"channel": byte(ch),
	})
	if err != nil {
		return 0, err
	}
	return protocol.ParseControlMode(values.U8("mode"))
}

// --- watchdog commands ---

// EnableWatchdog starts the communication watchdog.
func (c *Client) EnableWatchdog() error {
	_, err := c.exchange(protocol.CmdWatchdogEnable, nil)
	return err
}

// DisableWatchdog stops the communication watchdog.
func (c *Client) DisableWatchdog() error {
	_, err := c.exchange(protocol.CmdWatchdogDisable, nil)
	return err
}

// ConfigureWatchdog sets the wait time (10-10000, in 0.1 s units) and which
// outputs the watchdog drives on expiry.
func (c *Client) ConfigureWatchdog(waitTenths int16, outputs [protocol.NumChannels]bool) error {
	if waitTenths < 10 || waitTenths > 10000 {
		return fmt.Errorf("watchdog wait time %d out of range 10-10000", waitTenths)
	}
	_, err := c.exchange(protocol.CmdWatchdogSet, protocol.Values{
		"wait": waitTenths,
		"mask": protocol.PackChannelBits(outputs),
	})
	return err
}

// Watchdog reads the watchdog configuration and state.
func (c *Client) Watchdog() (WatchdogConfig, error) {
	values, err := c.exchange(protocol.CmdWatchdogRead, nil)
	if err != nil {
		return WatchdogConfig{}, err
	}
	enabled, err := protocol.ParseEnabled(values.U8("status"))
	if err != nil {
		return WatchdogConfig{}, err
	}
	return WatchdogConfig{
		WaitTenths: values.I16("wait"),
		Outputs:    protocol.UnpackChannelBits(values.U8("mask")),
		Enabled:    enabled,
	}, nil
}
