package ble

import (
	"fmt"
	"log/slog"
)

// Discovery is strictly sequential: at most one discover request is
// outstanding at any instant, and the next one is issued only inside
// the handler of the prior request's QueryComplete. The ATT transport
// does not support concurrent transactions on a single link.

// onServiceResult appends one primary service to the session. Results
// arriving after teardown began (for example after an overflow) are
// dropped.
func (b *Browser) onServiceResult(ev ServiceQueryResult) error {
	if b.session.Phase() != PhaseDiscoveringServices {
		return nil
	}
	b.reportService(ev.Service)
	if err := b.session.appendService(ev.Service); err != nil {
		// Surface the overflow instead of corrupting the list, then
		// tear the link down.
		slog.Error("[BLE] service list full, aborting discovery", "capacity", cap(b.session.Services))
		b.err = err
		return b.disconnect()
	}
	return nil
}

// onQueryComplete advances the enumeration: after the service query it
// starts characteristic discovery for the first service (or disconnects
// when the peer has none); after each characteristic query it moves to
// the next service or disconnects when all are done.
func (b *Browser) onQueryComplete(ev QueryComplete) error {
	if ev.Status != 0 {
		// The completion is still treated as success; the status is
		// reported so failures are no longer invisible.
		slog.Warn("[BLE] query completed with non-zero ATT status", "status", ev.Status)
	}
	switch b.session.Phase() {
	case PhaseDiscoveringServices:
		b.session.Index = 0
		if len(b.session.Services) == 0 {
			slog.Info("[BLE] peer has no primary services")
			return b.disconnect()
		}
		b.session.advance(PhaseDiscoveringCharacteristics)
		return b.discoverCharacteristics()
	case PhaseDiscoveringCharacteristics:
		if b.session.Index+1 < len(b.session.Services) {
			b.session.Index++
			return b.discoverCharacteristics()
		}
		b.session.Index = 0
		return b.disconnect()
	default:
		// Completion of a query cut short by disconnect.
		return nil
	}
}

// discoverCharacteristics issues the query for the service at the
// current cursor position.
func (b *Browser) discoverCharacteristics() error {
	svc := b.session.Services[b.session.Index]
	fmt.Fprintf(b.opts.Out, "\nGATT browser - CHARACTERISTIC for SERVICE %s, [0x%04x-0x%04x]\n",
		svc.UUID, svc.StartHandle, svc.EndHandle)
	return b.stack.DiscoverCharacteristics(b.session.Handle, svc)
}

// disconnect ends the session on the active link.
func (b *Browser) disconnect() error {
	b.session.advance(PhaseDisconnecting)
	slog.Info("[BLE] discovery finished, disconnecting", "services", len(b.session.Services))
	return b.stack.Disconnect(b.session.Handle)
}
