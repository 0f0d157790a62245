package ble

import "testing"

func TestUUID16(t *testing.T) {
	u := UUID16(0x180f)
	if !u.Is16Bit() {
		t.Error("Is16Bit() = false, want true")
	}
	if u.Short() != 0x180f {
		t.Errorf("Short() = %#04x, want 0x180f", u.Short())
	}
	if got := u.String(); got != "180f" {
		t.Errorf("String() = %q, want %q", got, "180f")
	}
}

func TestUUID128(t *testing.T) {
	raw := [16]byte{0x19, 0xb1, 0x00, 0x00, 0xe8, 0xf2, 0x53, 0x7e, 0x4f, 0x6c, 0xd1, 0x04, 0x76, 0x8a, 0x12, 0x14}
	u := UUID128(raw)
	if u.Is16Bit() {
		t.Error("Is16Bit() = true, want false")
	}
	if u.Long() != raw {
		t.Errorf("Long() = %v, want %v", u.Long(), raw)
	}
	if got := u.String(); got != "19b10000-e8f2-537e-4f6c-d104768a1214" {
		t.Errorf("String() = %q, want %q", got, "19b10000-e8f2-537e-4f6c-d104768a1214")
	}
}

func TestParseUUIDShort(t *testing.T) {
	u, err := ParseUUID("1800")
	if err != nil {
		t.Fatalf("ParseUUID() error = %v", err)
	}
	if !u.Is16Bit() || u.Short() != 0x1800 {
		t.Errorf("ParseUUID(\"1800\") = %v, want 16-bit 0x1800", u)
	}
}

func TestParseUUIDLong(t *testing.T) {
	s := "19b10000-e8f2-537e-4f6c-d104768a1214"
	u, err := ParseUUID(s)
	if err != nil {
		t.Fatalf("ParseUUID() error = %v", err)
	}
	if u.Is16Bit() {
		t.Error("Is16Bit() = true, want false for 128-bit uuid")
	}
	if u.String() != s {
		t.Errorf("String() = %q, want %q", u.String(), s)
	}
}

func TestParseUUIDInvalid(t *testing.T) {
	for _, s := range []string{"", "18", "xyzw", "not-a-uuid"} {
		if _, err := ParseUUID(s); err == nil {
			t.Errorf("ParseUUID(%q) should fail", s)
		}
	}
}
