package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// CardID is the fixed 7-byte identifier opening every request frame.
	CardID = "EMA8314"

	// CardIDSize is the width of the card identifier field.
	CardIDSize = 7

	// PasswordSize is the width of the password field. Shorter passwords are
	// zero-padded, longer ones truncated.
	PasswordSize = 8

	// HeaderSize is the fixed request header: card ID, password, command code.
	HeaderSize = CardIDSize + PasswordSize + 1

	// ResponseSize is the fixed length of every reply datagram.
	ResponseSize = 34

	// FlagOffset is where the status flag sits in every reply
	// (second-to-last byte).
	FlagOffset = ResponseSize - 2

	// FlagSuccess is the status flag value signalling success.
	FlagSuccess = 99

	// DefaultPassword is the factory password of the module.
	DefaultPassword = "12345678"
)

// Values carries named field values into EncodeRequest and out of
// DecodeResponse. Value types per field kind: byte (FieldU8), uint16
// (FieldU16), int16 (FieldI16), float32 (FieldF32), string (FieldString),
// []byte (FieldBytes).
type Values map[string]any

// padString fits s into a fixed-width zero-padded field.
func padString(s string, width int) []byte {
	buf := make([]byte, width)
	copy(buf, s)
	return buf
}

// EncodeRequest builds a complete request frame for the given command code:
// the 16-byte header followed by the command's fixed payload. Every field in
// the command's request schema (padding excepted) must be present in values
// with the matching Go type.
func EncodeRequest(password string, code byte, values Values) ([]byte, error) {
	cmd, err := Lookup(code)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, HeaderSize+cmd.Request.Size())
	frame = append(frame, padString(CardID, CardIDSize)...)
	frame = append(frame, padString(password, PasswordSize)...)
	frame = append(frame, code)

	for _, f := range cmd.Request {
		if f.Type == FieldPad {
			frame = append(frame, make([]byte, f.Width)...)
			continue
		}
		v, ok := values[f.Name]
		if !ok {
			return nil, NewMalformedFrame(
				fmt.Sprintf("command %s: missing value for field %q", cmd.Name, f.Name))
		}
		frame, err = appendField(frame, cmd.Name, f, v)
		if err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// appendField encodes one typed field at the current end of the frame.
func appendField(frame []byte, cmdName string, f Field, v any) ([]byte, error) {
	mismatch := func(want string) *ProtoError {
		return NewMalformedFrame(fmt.Sprintf(
			"command %s: field %q wants %s, got %T", cmdName, f.Name, want, v))
	}

	switch f.Type {
	case FieldU8:
		b, ok := v.(byte)
		if !ok {
			return nil, mismatch("byte")
		}
		return append(frame, b), nil

	case FieldU16:
		n, ok := v.(uint16)
		if !ok {
			return nil, mismatch("uint16")
		}
		return binary.LittleEndian.AppendUint16(frame, n), nil

	case FieldI16:
		n, ok := v.(int16)
		if !ok {
			return nil, mismatch("int16")
		}
		return binary.LittleEndian.AppendUint16(frame, uint16(n)), nil

	case FieldF32:
		x, ok := v.(float32)
		if !ok {
			return nil, mismatch("float32")
		}
		return binary.LittleEndian.AppendUint32(frame, math.Float32bits(x)), nil

	case FieldString:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch("string")
		}
		return append(frame, padString(s, f.Width)...), nil

	case FieldBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, mismatch("[]byte")
		}
		if len(b) != f.Width {
			return nil, NewMalformedFrame(fmt.Sprintf(
				"command %s: field %q wants %d bytes, got %d",
				cmdName, f.Name, f.Width, len(b)))
		}
		return append(frame, b...), nil

	default:
		return nil, NewMalformedFrame(fmt.Sprintf(
			"command %s: field %q has unsupported type", cmdName, f.Name))
	}
}

// DecodeResponse interprets a 34-byte reply using the command's response
// schema and returns the decoded fields plus the raw status flag. Enum bytes
// are returned raw; callers map them through ParseUnit and friends so that
// undocumented values surface as unrecognized-enum errors instead of
// defaults. Interpretation of the fields is only guaranteed when the flag
// equals FlagSuccess; on rejection the device may leave them zeroed.
func DecodeResponse(code byte, frame []byte) (Values, byte, error) {
	cmd, err := Lookup(code)
	if err != nil {
		return nil, 0, err
	}
	if len(frame) != ResponseSize {
		return nil, 0, NewMalformedFrame(fmt.Sprintf(
			"command %s: reply is %d bytes, want %d", cmd.Name, len(frame), ResponseSize))
	}

	flag := frame[FlagOffset]
	values := make(Values, len(cmd.Response))

	off := 0
	for _, f := range cmd.Response {
		size := f.size()
		if off+size > ResponseSize {
			return nil, 0, NewMalformedFrame(fmt.Sprintf(
				"command %s: schema overruns reply at field %q", cmd.Name, f.Name))
		}
		switch f.Type {
		case FieldPad:
			// skip-padding: consume but discard
		case FieldU8:
			values[f.Name] = frame[off]
		case FieldU16:
			values[f.Name] = binary.LittleEndian.Uint16(frame[off:])
		case FieldI16:
			values[f.Name] = int16(binary.LittleEndian.Uint16(frame[off:]))
		case FieldF32:
			values[f.Name] = math.Float32frombits(binary.LittleEndian.Uint32(frame[off:]))
		case FieldString:
			values[f.Name] = string(frame[off : off+size])
		case FieldBytes:
			values[f.Name] = append([]byte(nil), frame[off:off+size]...)
		}
		off += size
	}

	return values, flag, nil
}

// U8 fetches a raw byte field from decoded values.
func (v Values) U8(name string) byte {
	b, _ := v[name].(byte)
	return b
}

// I16 fetches a signed 16-bit field from decoded values.
func (v Values) I16(name string) int16 {
	n, _ := v[name].(int16)
	return n
}

// F32 fetches a float field from decoded values.
func (v Values) F32(name string) float32 {
	x, _ := v[name].(float32)
	return x
}
