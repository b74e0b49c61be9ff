package protocol

// Command codes understood by the EMA8314. The code byte at offset 15 of the
// request header selects the operation; the same code must be used to pick
// the response schema, since replies carry no type tag of their own.
const (
	CmdReboot            = 0x02
	CmdChangePort        = 0x03
	CmdChangePassword    = 0x04
	CmdResetPassword     = 0x05
	CmdChangeIP          = 0x06
	CmdFirmwareVersion   = 0x07
	CmdOutputSet         = 0x30
	CmdOutputRead        = 0x31
	CmdOutputModeSet     = 0x32
	CmdOutputModeRead    = 0x33
	CmdTemperatureRead   = 0x50
	CmdAllTemperatures   = 0x51
	CmdLimitSet          = 0x52
	CmdLimitRead         = 0x53
	CmdAllLimitsSet      = 0x54
	CmdAllLimitsRead     = 0x55
	CmdSensorTypeSet     = 0x56
	CmdSensorTypeRead    = 0x57
	CmdAllSensorTypesSet = 0x58
	CmdAllSensorTypesRd  = 0x59
	CmdSensorStatusRead  = 0x5A
	CmdControlStatusRead = 0x5B
	CmdControlEnable     = 0x5C
	CmdControlDisable    = 0x5D
	CmdControlMaskSet    = 0x5E
	CmdControlMaskRead   = 0x5F
	CmdWatchdogEnable    = 0x60
	CmdWatchdogDisable   = 0x61
	CmdWatchdogSet       = 0x62
	CmdWatchdogRead      = 0x63
	CmdControlModeSet    = 0x64
	CmdControlModeRead   = 0x65
)

// FieldType is the wire encoding of a single schema field. The protocol
// mixes conventions: multi-byte integers are little-endian, temperatures are
// IEEE-754 single precision, enums and channel numbers are single raw bytes.
// Each field declares its own encoding rather than assuming one global rule.
type FieldType int

const (
	// FieldPad is reserved space: zeros on encode, skipped on decode.
	FieldPad FieldType = iota
	// FieldU8 is a single raw byte (channel numbers, bitmasks, enum bytes).
	FieldU8
	// FieldU16 is an unsigned 16-bit little-endian integer.
	FieldU16
	// FieldI16 is a signed 16-bit little-endian integer.
	FieldI16
	// FieldF32 is an IEEE-754 single-precision little-endian float.
	FieldF32
	// FieldString is fixed-width ASCII, zero-padded or truncated to Width.
	FieldString
	// FieldBytes is a fixed-width raw byte run.
	FieldBytes
)

// Field is one entry in a request or response layout. Name is empty for
// padding. Width is only consulted for pad, string, and byte-run fields.
type Field struct {
	Name  string
	Type  FieldType
	Width int
}

// size returns the number of wire bytes the field occupies.
func (f Field) size() int {
	switch f.Type {
	case FieldPad, FieldString, FieldBytes:
		return f.Width
	case FieldU8:
		return 1
	case FieldU16, FieldI16:
		return 2
	case FieldF32:
		return 4
	default:
		return 0
	}
}

// Schema is an ordered field layout. Offsets are implied by field order, the
// same way the device firmware walks its buffers.
type Schema []Field

// Size returns the total wire length of the layout in bytes.
func (s Schema) Size() int {
	n := 0
	for _, f := range s {
		n += f.size()
	}
	return n
}

// Command binds a code to its fixed request and response layouts. Response
// layouts cover only the leading meaningful bytes of the 34-byte reply; the
// remainder up to the status flag is padding.
type Command struct {
	Code     byte
	Name     string
	Request  Schema
	Response Schema
}

// Shorthand constructors keep the catalog table readable.
func pad(n int) Field       { return Field{Type: FieldPad, Width: n} }
func u8(name string) Field  { return Field{Name: name, Type: FieldU8} }
func u16(name string) Field { return Field{Name: name, Type: FieldU16} }
func i16(name string) Field { return Field{Name: name, Type: FieldI16} }
func f32(name string) Field { return Field{Name: name, Type: FieldF32} }

func str(name string, w int) Field {
	return Field{Name: name, Type: FieldString, Width: w}
}

func raw(name string, w int) Field {
	return Field{Name: name, Type: FieldBytes, Width: w}
}

// catalog is the full command table. It is the single source of truth for
// per-command byte layouts; encode and decode both walk these schemas.
//
// Note on 0x32: the vendor's reference implementation puts code 0x30 on the
// wire when setting output modes, which collides with the output value
// command. The protocol manual lists 0x32 as a distinct code, so 0x32 is
// what we send. Verified layouts match the manual either way.
var catalog = map[byte]Command{
	CmdReboot: {
		Code: CmdReboot, Name: "reboot",
	},
	CmdChangePort: {
		Code: CmdChangePort, Name: "change_port",
		Request: Schema{u16("port")},
	},
	CmdChangePassword: {
		Code: CmdChangePassword, Name: "change_password",
		Request: Schema{str("password", PasswordSize)},
	},
	CmdResetPassword: {
		Code: CmdResetPassword, Name: "reset_password",
	},
	CmdChangeIP: {
		Code: CmdChangeIP, Name: "change_ip",
		Request: Schema{raw("ip", 4)},
	},
	CmdFirmwareVersion: {
		Code: CmdFirmwareVersion, Name: "firmware_version",
		Response: Schema{pad(1), u8("major"), u8("minor")},
	},
	CmdOutputSet: {
		Code: CmdOutputSet, Name: "output_set",
		Request: Schema{pad(1), u8("mask")},
	},
	CmdOutputRead: {
		Code: CmdOutputRead, Name: "output_read",
		Response: Schema{pad(1), u8("mask")},
	},
	CmdOutputModeSet: {
		Code: CmdOutputModeSet, Name: "output_mode_set",
		Request: Schema{pad(1), u8("mask")},
	},
	CmdOutputModeRead: {
		Code: CmdOutputModeRead, Name: "output_mode_read",
		Response: Schema{pad(1), u8("mask")},
	},
	CmdTemperatureRead: {
		Code: CmdTemperatureRead, Name: "temperature_read",
		Request:  Schema{pad(3), u8("channel")},
		Response: Schema{pad(4), f32("temp"), pad(12), u8("unit")},
	},
	CmdAllTemperatures: {
		Code: CmdAllTemperatures, Name: "all_temperatures_read",
		Response: Schema{
			pad(4),
			f32("temp0"), f32("temp1"), f32("temp2"), f32("temp3"),
			u8("unit0"), u8("unit1"), u8("unit2"), u8("unit3"),
		},
	},
	CmdLimitSet: {
		Code: CmdLimitSet, Name: "limit_set",
		Request: Schema{
			pad(3), u8("channel"), f32("low"), f32("high"), pad(8), u8("unit"),
		},
	},
	CmdLimitRead: {
		Code: CmdLimitRead, Name: "limit_read",
		Request:  Schema{pad(3), u8("channel")},
		Response: Schema{pad(4), f32("low"), f32("high"), pad(8), u8("unit")},
	},
	CmdAllLimitsSet: {
		Code: CmdAllLimitsSet, Name: "all_limits_set",
		// One request per channel pair; the selector repeats the pair index
		// at bytes 1 and 3.
		Request: Schema{
			raw("selector", 4),
			f32("low_a"), f32("high_a"), f32("low_b"), f32("high_b"),
			u8("unit_a"), u8("unit_b"),
		},
	},
	CmdAllLimitsRead: {
		Code: CmdAllLimitsRead, Name: "all_limits_read",
		Request: Schema{raw("selector", 4)},
		Response: Schema{
			pad(4),
			f32("low_a"), f32("high_a"), f32("low_b"), f32("high_b"),
			u8("unit_a"), u8("unit_b"),
		},
	},
	CmdSensorTypeSet: {
		Code: CmdSensorTypeSet, Name: "sensor_type_set",
		Request: Schema{pad(3), u8("channel"), pad(16), u8("sensor")},
	},
	CmdSensorTypeRead: {
		Code: CmdSensorTypeRead, Name: "sensor_type_read",
		Request:  Schema{pad(3), u8("channel")},
		Response: Schema{pad(20), u8("sensor")},
	},
	CmdAllSensorTypesSet: {
		Code: CmdAllSensorTypesSet, Name: "all_sensor_types_set",
		Request: Schema{
			pad(20),
			u8("sensor0"), u8("sensor1"), u8("sensor2"), u8("sensor3"),
		},
	},
	CmdAllSensorTypesRd: {
		Code: CmdAllSensorTypesRd, Name: "all_sensor_types_read",
		Response: Schema{
			pad(20),
			u8("sensor0"), u8("sensor1"), u8("sensor2"), u8("sensor3"),
		},
	},
	CmdSensorStatusRead: {
		Code: CmdSensorStatusRead, Name: "sensor_status_read",
		Response: Schema{pad(24), u8("mask")},
	},
	CmdControlStatusRead: {
		Code: CmdControlStatusRead, Name: "control_status_read",
		Response: Schema{pad(24), u8("status")},
	},
	CmdControlEnable: {
		Code: CmdControlEnable, Name: "control_enable",
	},
	CmdControlDisable: {
		Code: CmdControlDisable, Name: "control_disable",
	},
	CmdControlMaskSet: {
		Code: CmdControlMaskSet, Name: "control_mask_set",
		Request: Schema{pad(1), u8("mask")},
	},
	CmdControlMaskRead: {
		Code: CmdControlMaskRead, Name: "control_mask_read",
		Response: Schema{pad(1), u8("mask")},
	},
	CmdWatchdogEnable: {
		Code: CmdWatchdogEnable, Name: "watchdog_enable",
	},
	CmdWatchdogDisable: {
		Code: CmdWatchdogDisable, Name: "watchdog_disable",
	},
	CmdWatchdogSet: {
		Code: CmdWatchdogSet, Name: "watchdog_set",
		Request: Schema{i16("wait"), u8("mask")},
	},
	CmdWatchdogRead: {
		Code: CmdWatchdogRead, Name: "watchdog_read",
		Response: Schema{i16("wait"), u8("mask"), u8("status")},
	},
	CmdControlModeSet: {
		Code: CmdControlModeSet, Name: "control_mode_set",
		Request: Schema{pad(1), u8("channel"), u8("mode")},
	},
	CmdControlModeRead: {
		Code: CmdControlModeRead, Name: "control_mode_read",
		Request:  Schema{pad(1), u8("channel")},
		Response: Schema{pad(2), u8("mode")},
	},
}

// Lookup returns the catalog entry for a command code.
func Lookup(code byte) (Command, error) {
	cmd, ok := catalog[code]
	if !ok {
		return Command{}, NewUnknownCommand(code)
	}
	return cmd, nil
}

// Commands returns every catalog entry. Intended for tests and tooling.
func Commands() []Command {
	out := make([]Command, 0, len(catalog))
	for _, cmd := range catalog {
		out = append(out, cmd)
	}
	return out
}

// PairSelector builds the 4-byte channel-pair selector used by the
// all-limits commands (0x54/0x55). Pair 0 addresses channels 0 and 1,
// pair 1 addresses channels 2 and 3.
func PairSelector(pair int) []byte {
	p := byte(pair)
	return []byte{0x00, p, 0x00, p}
}
