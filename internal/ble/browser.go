// Package ble implements a BLE central-role GATT discovery client: it
// scans for advertising peripherals (or connects directly to a
// configured address), connects, enumerates the peer's primary services
// and each service's characteristics in turn, then disconnects.
//
// The package is split along the same line as the underlying protocol:
// the Browser's connection handling reacts to readiness, advertising
// and (dis)connection events, and its discovery handling reacts to
// query results. Both share one Session and are driven by a single
// dispatch goroutine, which is the only synchronization mechanism.
package ble

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Options configures a Browser.
type Options struct {
	// Target is the peripheral to connect to directly. Nil means scan
	// and commit to the first advertiser seen.
	Target     *Address
	TargetType AddressType

	// Scan interval and window in 0.625 ms units.
	ScanInterval uint16
	ScanWindow   uint16

	// MaxServices bounds the per-session service list. Exceeding it
	// surfaces ErrDiscoveryOverflow.
	MaxServices int

	// Out receives the human-readable discovery report.
	Out io.Writer
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		ScanInterval: 0x0030,
		ScanWindow:   0x0030,
		MaxServices:  40,
		Out:          os.Stdout,
	}
}

// Browser drives one scan/connect/discover/disconnect cycle against a
// Stack. Stacks may deliver events from any goroutine; the Browser
// funnels them through a buffered channel drained by Run, so state
// transitions never overlap and the session needs no locks.
type Browser struct {
	stack   Stack
	opts    Options
	session *Session
	events  chan Event

	// connecting is set once a connect request is issued; advertising
	// reports seen afterwards are ignored (first-seen commitment).
	connecting bool

	// err records a surfaced failure (such as a discovery overflow)
	// while the link is being torn down; Run returns it after the
	// DisconnectionComplete.
	err error
}

// NewBrowser creates a Browser and registers its event handler with the
// stack. Zero option fields fall back to defaults.
func NewBrowser(stack Stack, opts Options) *Browser {
	if opts.ScanInterval == 0 {
		opts.ScanInterval = 0x0030
	}
	if opts.ScanWindow == 0 {
		opts.ScanWindow = 0x0030
	}
	if opts.MaxServices <= 0 {
		opts.MaxServices = 40
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	b := &Browser{
		stack:   stack,
		opts:    opts,
		session: newSession(opts.MaxServices),
		events:  make(chan Event, 64),
	}
	stack.RegisterEventHandler(b.deliver)
	return b
}

// deliver enqueues one stack event for the dispatch loop.
func (b *Browser) deliver(ev Event) {
	b.events <- ev
}

// Run powers on the stack and processes events until the link is torn
// down. It returns nil on a clean disconnect, ctx.Err() on
// cancellation, and the first surfaced failure otherwise.
func (b *Browser) Run(ctx context.Context) error {
	if err := b.stack.PowerOn(); err != nil {
		return fmt.Errorf("ble: power on: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-b.events:
			done, err := b.handle(ev)
			if err != nil {
				return err
			}
			if done {
				return b.err
			}
		}
	}
}

// handle applies one event to the session state machines. It returns
// done when the process reached its sole normal termination point, the
// disconnection-complete event.
func (b *Browser) handle(ev Event) (done bool, err error) {
	switch ev := ev.(type) {
	case StackReady:
		return false, b.onReady()
	case AdvertisingReport:
		return false, b.onAdvertisingReport(ev)
	case ConnectionComplete:
		return false, b.onConnectionComplete(ev)
	case DisconnectionComplete:
		slog.Info("[BLE] disconnected")
		fmt.Fprintf(b.opts.Out, "\nGATT browser - DISCONNECTED\n")
		return true, nil
	case ServiceQueryResult:
		return false, b.onServiceResult(ev)
	case CharacteristicQueryResult:
		b.reportCharacteristic(ev.Characteristic)
		return false, nil
	case QueryComplete:
		return false, b.onQueryComplete(ev)
	case StackError:
		return false, fmt.Errorf("ble: %s: %w", ev.Op, ev.Err)
	}
	return false, nil
}

// onReady starts the session: direct connect when a target address was
// configured, otherwise scan for the first advertiser.
func (b *Browser) onReady() error {
	if b.opts.Target != nil {
		fmt.Fprintf(b.opts.Out, "Trying to connect to %s\n", b.opts.Target)
		slog.Info("[BLE] stack ready, connecting", "address", b.opts.Target, "type", b.opts.TargetType)
		b.connecting = true
		return b.stack.Connect(*b.opts.Target, b.opts.TargetType)
	}
	fmt.Fprintln(b.opts.Out, "Stack ready, start scanning!")
	slog.Info("[BLE] stack ready, scanning", "interval", b.opts.ScanInterval, "window", b.opts.ScanWindow)
	return b.stack.StartScan(b.opts.ScanInterval, b.opts.ScanWindow)
}

// onAdvertisingReport commits to the first advertiser seen. No
// filtering by UUID, name or signal strength: later reports are only
// printed.
func (b *Browser) onAdvertisingReport(r AdvertisingReport) error {
	b.reportAdvertisement(r)
	if b.connecting {
		return nil
	}
	b.connecting = true
	if err := b.stack.StopScan(); err != nil {
		return fmt.Errorf("ble: stop scan: %w", err)
	}
	slog.Info("[BLE] connecting", "address", r.Address, "type", r.AddressType)
	return b.stack.Connect(r.Address, r.AddressType)
}

// onConnectionComplete captures the link and hands control to service
// discovery.
func (b *Browser) onConnectionComplete(ev ConnectionComplete) error {
	b.session.begin(ev.Handle)
	b.session.advance(PhaseDiscoveringServices)
	slog.Info("[BLE] connected", "handle", ev.Handle)
	return b.stack.DiscoverPrimaryServices(ev.Handle)
}
