// Package protocol implements the EMA8314 binary command/response protocol.
//
// This package handles encoding of request frames, decoding of reply frames,
// and the static command catalog for the EMA-8314 4-channel temperature I/O
// module. The device is controlled over UDP with fixed-layout binary frames.
//
// # Protocol Overview
//
// Every request starts with a 16-byte header:
//   - Card identifier: 7 bytes, "EMA8314"
//   - Password: 8 bytes, ASCII, zero-padded
//   - Command code: 1 byte
//
// followed by a payload whose length and field layout are fixed per command
// code. Every reply is exactly 34 bytes; the status flag sits at offset 32
// (second-to-last byte) and 99 (0x63) means success. Any other flag value
// means the device rejected the command, and the remaining reply fields may
// be zeroed.
//
// # Encoding Conventions
//
// The wire format is not uniform, and the catalog records each field's own
// encoding:
//   - Multi-byte integers (ports, watchdog wait time): little-endian
//   - Temperatures: IEEE-754 single precision, little-endian
//   - Enums, channel numbers, bitmasks: single raw bytes
//   - Bitmask fields: bit i = channel i, bits 0-3
//
// Replies carry no length or type tag, so the command code used to decode a
// reply must match the code that was sent. The catalog is the single place
// where layouts live; encode and decode both walk the same schemas.
//
// # Usage Example
//
//	frame, err := protocol.EncodeRequest(password, protocol.CmdTemperatureRead,
//	    protocol.Values{"channel": byte(2)})
//	if err != nil {
//	    return err
//	}
//
//	reply, err := sess.SendReceive(frame)
//	if err != nil {
//	    return err
//	}
//
//	values, flag, err := protocol.DecodeResponse(protocol.CmdTemperatureRead, reply)
//	if err != nil {
//	    return err
//	}
//	if flag != protocol.FlagSuccess {
//	    return protocol.NewDeviceRejected(protocol.CmdTemperatureRead, flag)
//	}
//	unit, err := protocol.ParseUnit(values.U8("unit"))
//
// # Error Handling
//
// The package distinguishes between:
//   - Malformed frames: wrong reply length or schema violations
//   - Unknown commands: codes missing from the catalog (programmer error)
//   - Device rejections: status flag other than 99, with the raw flag attached
//   - Unrecognized enum bytes: values outside the documented enum sets
//
// All of these are recoverable *ProtoError values; nothing in this package
// panics on hostile input.
//
// # Thread Safety
//
// The catalog is immutable after init and all encode/decode functions are
// stateless, so everything here is safe for concurrent use.
package protocol
