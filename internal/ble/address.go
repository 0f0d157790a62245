package ble

import (
	"fmt"
	"strconv"
	"strings"
)

// AddressType distinguishes public from random device addresses, as
// reported in advertisements and required by connect requests.
type AddressType uint8

const (
	AddressTypePublic AddressType = 0
	AddressTypeRandom AddressType = 1
)

// Address is a 48-bit Bluetooth device address.
type Address [6]byte

// ParseAddress parses an address in aa:bb:cc:dd:ee:ff form. Both upper
// and lower case hex digits are accepted.
func ParseAddress(s string) (Address, error) {
	var a Address
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return a, fmt.Errorf("ble: invalid address %q", s)
	}
	for i, part := range parts {
		if len(part) != 2 {
			return Address{}, fmt.Errorf("ble: invalid address %q", s)
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return Address{}, fmt.Errorf("ble: invalid address %q", s)
		}
		a[i] = byte(v)
	}
	return a, nil
}

func (a Address) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}
