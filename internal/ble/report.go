package ble

import (
	"encoding/hex"
	"fmt"
)

// Human-readable reporting of discovery progress. Everything here goes
// to Options.Out; lifecycle logging stays on slog.

func (b *Browser) reportAdvertisement(r AdvertisingReport) {
	fmt.Fprintf(b.opts.Out, "    * adv. event: evt-type %d, addr-type %d, addr %s, rssi %d, length adv %d, data: %s\n",
		r.EventType, r.AddressType, r.Address, r.RSSI, len(r.Data), hex.EncodeToString(r.Data))
}

func (b *Browser) reportService(s ServiceDescriptor) {
	fmt.Fprintf(b.opts.Out, "    * service: [0x%04x-0x%04x], uuid %s\n",
		s.StartHandle, s.EndHandle, s.UUID)
}

func (b *Browser) reportCharacteristic(c CharacteristicDescriptor) {
	fmt.Fprintf(b.opts.Out, "    * characteristic: [0x%04x-0x%04x-0x%04x], properties 0x%02x, uuid %s\n",
		c.StartHandle, c.ValueHandle, c.EndHandle, c.Properties, c.UUID)
}
