package protocol

import "fmt"

// NumChannels is the number of measurement/control channels on the module.
const NumChannels = 4

// Channel identifies one of the module's four sensor/output lines (0-3).
type Channel int

// Valid reports whether the channel number is in range.
func (c Channel) Valid() bool {
	return c >= 0 && c < NumChannels
}

// Unit is the temperature unit reported and accepted by the device.
type Unit byte

const (
	Celsius    Unit = 0x01
	Fahrenheit Unit = 0x02
)

// ParseUnit maps a wire byte to a Unit. Any byte outside the documented set
// is surfaced as an unrecognized enum error, never silently defaulted.
func ParseUnit(b byte) (Unit, error) {
	switch Unit(b) {
	case Celsius, Fahrenheit:
		return Unit(b), nil
	default:
		return 0, NewUnrecognizedEnum("unit", b)
	}
}

// String returns the conventional single-letter unit symbol.
func (u Unit) String() string {
	switch u {
	case Celsius:
		return "C"
	case Fahrenheit:
		return "F"
	default:
		return fmt.Sprintf("Unit(0x%02X)", byte(u))
	}
}

// SensorType is the RTD probe type configured per channel.
type SensorType byte

const (
	Pt1000 SensorType = 0x01
	Pt100  SensorType = 0x02
)

// ParseSensorType maps a wire byte to a SensorType.
func ParseSensorType(b byte) (SensorType, error) {
	switch SensorType(b) {
	case Pt1000, Pt100:
		return SensorType(b), nil
	default:
		return 0, NewUnrecognizedEnum("sensor type", b)
	}
}

// String returns the probe designation.
func (s SensorType) String() string {
	switch s {
	case Pt1000:
		return "Pt-1000"
	case Pt100:
		return "Pt-100"
	default:
		return fmt.Sprintf("SensorType(0x%02X)", byte(s))
	}
}

// ControlMode selects how a channel's output reacts to its temperature
// limits.
type ControlMode byte

const (
	// AboveHighOn drives the output on above the high limit, off below the low limit.
	AboveHighOn ControlMode = 0
	// AboveHighOff drives the output off above the high limit, on below the low limit.
	AboveHighOff ControlMode = 1
	// WithinRangeOn drives the output on between the limits, off outside.
	WithinRangeOn ControlMode = 2
	// WithinRangeOff drives the output off between the limits, on outside.
	WithinRangeOff ControlMode = 3
)

// ParseControlMode maps a wire byte to a ControlMode.
func ParseControlMode(b byte) (ControlMode, error) {
	if b > 3 {
		return 0, NewUnrecognizedEnum("control mode", b)
	}
	return ControlMode(b), nil
}

// String returns a short description of the mode.
func (m ControlMode) String() string {
	switch m {
	case AboveHighOn:
		return "above-high-on"
	case AboveHighOff:
		return "above-high-off"
	case WithinRangeOn:
		return "within-range-on"
	case WithinRangeOff:
		return "within-range-off"
	default:
		return fmt.Sprintf("ControlMode(%d)", byte(m))
	}
}

// PackChannelBits folds four per-channel booleans into one bitmask byte,
// bit i = channel i.
func PackChannelBits(bits [NumChannels]bool) byte {
	var mask byte
	for i, on := range bits {
		if on {
			mask |= 1 << i
		}
	}
	return mask
}

// UnpackChannelBits expands a bitmask byte into per-channel booleans.
// Bits 4-7 are not used by the device and are ignored.
func UnpackChannelBits(mask byte) [NumChannels]bool {
	var bits [NumChannels]bool
	for i := range bits {
		bits[i] = mask&(1<<i) != 0
	}
	return bits
}

// ParseEnabled decodes the device's off-by-one status bytes (control
// comparison status, watchdog status): raw 1 means disabled, raw 2 means
// enabled. The subtraction comes straight from the vendor documentation;
// anything else is out of range.
func ParseEnabled(b byte) (bool, error) {
	switch b {
	case 1:
		return false, nil
	case 2:
		return true, nil
	default:
		return false, NewUnrecognizedEnum("status", b)
	}
}
