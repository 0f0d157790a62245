package ble

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// UUID identifies a GATT service or characteristic. Exactly one form is
// authoritative per instance: a 16-bit Bluetooth SIG assigned number, or
// a full 128-bit UUID. The zero value is the invalid UUID.
type UUID struct {
	short uint16
	long  uuid.UUID
}

// UUID16 returns the short form of a Bluetooth SIG assigned number.
func UUID16(v uint16) UUID {
	return UUID{short: v}
}

// UUID128 returns the long form from raw big-endian bytes.
func UUID128(b [16]byte) UUID {
	return UUID{long: uuid.UUID(b)}
}

// ParseUUID parses either a 4-digit hex short UUID ("180f") or a
// canonical 128-bit UUID string.
func ParseUUID(s string) (UUID, error) {
	if len(s) == 4 {
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return UUID{}, fmt.Errorf("ble: invalid 16-bit uuid %q", s)
		}
		return UUID16(uint16(v)), nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("ble: invalid uuid %q: %w", s, err)
	}
	return UUID{long: u}, nil
}

// Is16Bit reports whether the short form is authoritative.
func (u UUID) Is16Bit() bool {
	return u.short != 0
}

// Short returns the 16-bit form; zero when the long form is authoritative.
func (u UUID) Short() uint16 {
	return u.short
}

// Long returns the 128-bit form as raw big-endian bytes.
func (u UUID) Long() [16]byte {
	return [16]byte(u.long)
}

func (u UUID) String() string {
	if u.short != 0 {
		return fmt.Sprintf("%04x", u.short)
	}
	return u.long.String()
}
