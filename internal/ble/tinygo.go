package ble

import (
	"fmt"
	"log/slog"
	"sync"

	"tinygo.org/x/bluetooth"
)

// TinyGoStack adapts the central-role API of tinygo.org/x/bluetooth to
// the Stack interface. The tinygo API is call-return based, so each
// request runs on its own goroutine and reports its outcome as events,
// keeping the Browser's dispatch loop unblocked.
type TinyGoStack struct {
	adapter *bluetooth.Adapter

	mu        sync.Mutex
	handler   EventHandler
	device    bluetooth.Device
	services  []bluetooth.DeviceService
	connected bool
	handle    ConnHandle
}

// NewTinyGoStack creates a stack over the platform's default adapter
// (BlueZ on Linux, CoreBluetooth on macOS, WinRT on Windows).
func NewTinyGoStack() *TinyGoStack {
	return &TinyGoStack{adapter: bluetooth.DefaultAdapter}
}

// Compile-time check that TinyGoStack implements Stack.
var _ Stack = (*TinyGoStack)(nil)

func (s *TinyGoStack) RegisterEventHandler(h EventHandler) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

func (s *TinyGoStack) post(ev Event) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		h(ev)
	}
}

func (s *TinyGoStack) fail(op string, err error) {
	s.post(StackError{Op: op, Err: err})
}

func (s *TinyGoStack) PowerOn() error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable adapter: %w", err)
	}
	// The connect handler is the only disconnect signal tinygo exposes;
	// it also covers remote-initiated teardown.
	s.adapter.SetConnectHandler(func(_ bluetooth.Device, connected bool) {
		if connected {
			return
		}
		s.mu.Lock()
		wasConnected := s.connected
		s.connected = false
		s.mu.Unlock()
		if wasConnected {
			s.post(DisconnectionComplete{})
		}
	})
	s.post(StackReady{})
	return nil
}

// StartScan begins scanning. The platform stack owns the actual scan
// timing; the interval and window values are accepted for interface
// compatibility and logged.
func (s *TinyGoStack) StartScan(interval, window uint16) error {
	slog.Debug("[BLE] scan parameters", "interval", interval, "window", window)
	go func() {
		err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			s.post(advertisingReport(result))
		})
		if err != nil {
			s.fail("scan", err)
		}
	}()
	return nil
}

func (s *TinyGoStack) StopScan() error {
	if err := s.adapter.StopScan(); err != nil {
		return fmt.Errorf("ble: stop scan: %w", err)
	}
	return nil
}

func (s *TinyGoStack) Connect(addr Address, addrType AddressType) error {
	var target bluetooth.Address
	target.Set(addr.String())
	go func() {
		device, err := s.adapter.Connect(target, bluetooth.ConnectionParams{})
		if err != nil {
			s.fail("connect", err)
			return
		}
		s.mu.Lock()
		s.device = device
		s.connected = true
		s.handle++
		handle := s.handle
		s.mu.Unlock()
		s.post(ConnectionComplete{Handle: handle})
	}()
	return nil
}

func (s *TinyGoStack) DiscoverPrimaryServices(conn ConnHandle) error {
	go func() {
		s.mu.Lock()
		device := s.device
		s.mu.Unlock()
		svcs, err := device.DiscoverServices(nil)
		if err != nil {
			s.fail("discover services", err)
			return
		}
		s.mu.Lock()
		s.services = svcs
		s.mu.Unlock()
		for _, svc := range svcs {
			s.post(ServiceQueryResult{Service: ServiceDescriptor{
				// Attribute handles are not exposed by the portable
				// tinygo API; the UUID alone identifies the service.
				UUID: fromTinyGoUUID(svc.UUID()),
			}})
		}
		s.post(QueryComplete{})
	}()
	return nil
}

func (s *TinyGoStack) DiscoverCharacteristics(conn ConnHandle, svc ServiceDescriptor) error {
	go func() {
		target, ok := s.lookupService(svc.UUID)
		if !ok {
			s.fail("discover characteristics", fmt.Errorf("ble: unknown service %s", svc.UUID))
			return
		}
		chars, err := target.DiscoverCharacteristics(nil)
		if err != nil {
			s.fail("discover characteristics", err)
			return
		}
		for _, c := range chars {
			s.post(CharacteristicQueryResult{Characteristic: CharacteristicDescriptor{
				UUID: fromTinyGoUUID(c.UUID()),
			}})
		}
		s.post(QueryComplete{})
	}()
	return nil
}

func (s *TinyGoStack) Disconnect(conn ConnHandle) error {
	go func() {
		s.mu.Lock()
		device := s.device
		wasConnected := s.connected
		s.connected = false
		s.mu.Unlock()
		if !wasConnected {
			return
		}
		if err := device.Disconnect(); err != nil {
			s.fail("disconnect", err)
			return
		}
		s.post(DisconnectionComplete{})
	}()
	return nil
}

// lookupService finds the previously discovered tinygo service matching
// the descriptor's UUID.
func (s *TinyGoStack) lookupService(u UUID) (bluetooth.DeviceService, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range s.services {
		if fromTinyGoUUID(svc.UUID()) == u {
			return svc, true
		}
	}
	return bluetooth.DeviceService{}, false
}

// advertisingReport converts a tinygo scan result. The portable API
// does not expose the advertising event type or address type; those
// fields stay at their public/zero defaults.
func advertisingReport(result bluetooth.ScanResult) AdvertisingReport {
	addr, err := ParseAddress(result.Address.String())
	if err != nil {
		// macOS reports CoreBluetooth UUIDs instead of MAC addresses;
		// those sightings carry a zero address in the report.
		slog.Debug("[BLE] non-MAC device address", "address", result.Address.String())
	}
	rssi := result.RSSI
	if rssi < -128 {
		rssi = -128
	}
	return AdvertisingReport{
		AddressType: AddressTypePublic,
		Address:     addr,
		RSSI:        int8(rssi),
		Data:        result.AdvertisementPayload.Bytes(),
	}
}

// fromTinyGoUUID converts a tinygo UUID, preserving the authoritative
// short form for SIG-assigned numbers.
func fromTinyGoUUID(tu bluetooth.UUID) UUID {
	if tu.Is16Bit() {
		return UUID16(tu.Get16Bit())
	}
	u, err := ParseUUID(tu.String())
	if err != nil {
		return UUID{}
	}
	return u
}
