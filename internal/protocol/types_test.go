package protocol

import "testing"

func TestParseUnit(t *testing.T) {
	tests := []struct {
		name    string
		raw     byte
		want    Unit
		wantErr bool
	}{
		{"celsius", 0x01, Celsius, false},
		{"fahrenheit", 0x02, Fahrenheit, false},
		{"zero", 0x00, 0, true},
		{"undocumented", 0x03, 0, true},
		{"high byte", 0xFF, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnit(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnit(0x%02X) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsUnrecognizedEnum(err) {
					t.Errorf("error %v is not an unrecognized-enum error", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseUnit(0x%02X) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSensorType(t *testing.T) {
	if st, err := ParseSensorType(0x01); err != nil || st != Pt1000 {
		t.Errorf("ParseSensorType(0x01) = %v, %v", st, err)
	}
	if st, err := ParseSensorType(0x02); err != nil || st != Pt100 {
		t.Errorf("ParseSensorType(0x02) = %v, %v", st, err)
	}
	if _, err := ParseSensorType(0x07); !IsUnrecognizedEnum(err) {
		t.Errorf("ParseSensorType(0x07) error = %v, want unrecognized enum", err)
	}
}

func TestParseControlMode(t *testing.T) {
	for b := byte(0); b < 4; b++ {
		mode, err := ParseControlMode(b)
		if err != nil {
			t.Errorf("ParseControlMode(%d) error = %v", b, err)
		}
		if byte(mode) != b {
			t.Errorf("ParseControlMode(%d) = %v", b, mode)
		}
	}
	if _, err := ParseControlMode(4); !IsUnrecognizedEnum(err) {
		t.Errorf("ParseControlMode(4) error = %v, want unrecognized enum", err)
	}
}

func TestParseEnabled(t *testing.T) {
	if on, err := ParseEnabled(1); err != nil || on {
		t.Errorf("ParseEnabled(1) = %v, %v, want false", on, err)
	}
	if on, err := ParseEnabled(2); err != nil || !on {
		t.Errorf("ParseEnabled(2) = %v, %v, want true", on, err)
	}
	for _, b := range []byte{0, 3, 99} {
		if _, err := ParseEnabled(b); !IsUnrecognizedEnum(err) {
			t.Errorf("ParseEnabled(%d) error = %v, want unrecognized enum", b, err)
		}
	}
}

// Every 4-bit pattern survives a pack/unpack round trip.
func TestChannelBitsRoundTrip(t *testing.T) {
	for pattern := 0; pattern < 16; pattern++ {
		var bits [NumChannels]bool
		for i := range bits {
			bits[i] = pattern&(1<<i) != 0
		}
		mask := PackChannelBits(bits)
		if int(mask) != pattern {
			t.Errorf("PackChannelBits(%v) = %d, want %d", bits, mask, pattern)
		}
		if got := UnpackChannelBits(mask); got != bits {
			t.Errorf("UnpackChannelBits(%d) = %v, want %v", mask, got, bits)
		}
	}
}

func TestUnpackChannelBitsIgnoresHighBits(t *testing.T) {
	if got := UnpackChannelBits(0xF5); got != [4]bool{true, false, true, false} {
		t.Errorf("UnpackChannelBits(0xF5) = %v", got)
	}
}

func TestChannelValid(t *testing.T) {
	for ch := Channel(0); ch < 4; ch++ {
		if !ch.Valid() {
			t.Errorf("Channel(%d).Valid() = false", ch)
		}
	}
	if Channel(-1).Valid() || Channel(4).Valid() {
		t.Error("out-of-range channel reported valid")
	}
}

func TestEnumStrings(t *testing.T) {
	if Celsius.String() != "C" || Fahrenheit.String() != "F" {
		t.Error("unit symbols wrong")
	}
	if Pt1000.String() != "Pt-1000" || Pt100.String() != "Pt-100" {
		t.Error("sensor type names wrong")
	}
}
