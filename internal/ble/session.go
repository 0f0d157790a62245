package ble

import (
	"errors"
	"fmt"
)

// ErrDiscoveryOverflow is returned when a peer advertises more primary
// services than the session capacity allows.
var ErrDiscoveryOverflow = errors.New("ble: discovered services exceed session capacity")

// ConnHandle identifies the single active link. Opaque to the core; its
// value is assigned by the stack. At most one connection exists at any
// time for the life of the process.
type ConnHandle uint16

// ServiceDescriptor describes one discovered GATT primary service.
// Descriptors are persisted in session order for the lifetime of the
// discovery session.
type ServiceDescriptor struct {
	StartHandle uint16
	EndHandle   uint16
	UUID        UUID
}

// CharacteristicDescriptor describes one discovered characteristic.
// Reported and discarded, never retained.
type CharacteristicDescriptor struct {
	StartHandle uint16
	ValueHandle uint16
	EndHandle   uint16
	Properties  uint8
	UUID        UUID
}

// Phase tags the lifecycle position of the discovery session. Phases
// only ever move forward.
type Phase int

const (
	PhaseScanningOrConnecting Phase = iota
	PhaseConnected
	PhaseDiscoveringServices
	PhaseDiscoveringCharacteristics
	PhaseDisconnecting
)

func (p Phase) String() string {
	switch p {
	case PhaseScanningOrConnecting:
		return "scanning-or-connecting"
	case PhaseConnected:
		return "connected"
	case PhaseDiscoveringServices:
		return "discovering-services"
	case PhaseDiscoveringCharacteristics:
		return "discovering-characteristics"
	case PhaseDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the shared context of one discovery session: the active
// connection, the ordered service list, and the enumeration cursor. All
// access happens on the Browser's dispatch goroutine, so no locking is
// needed.
type Session struct {
	Handle   ConnHandle
	Services []ServiceDescriptor
	Index    int

	phase    Phase
	capacity int
}

func newSession(capacity int) *Session {
	return &Session{
		Services: make([]ServiceDescriptor, 0, capacity),
		capacity: capacity,
	}
}

// begin resets per-connection state when a link is established.
func (s *Session) begin(h ConnHandle) {
	s.Handle = h
	s.Services = s.Services[:0]
	s.Index = 0
}

// appendService adds one discovered service, enforcing the capacity
// bound instead of growing without limit.
func (s *Session) appendService(svc ServiceDescriptor) error {
	if len(s.Services) >= s.capacity {
		return fmt.Errorf("%w (capacity %d)", ErrDiscoveryOverflow, s.capacity)
	}
	s.Services = append(s.Services, svc)
	return nil
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// advance moves the phase forward. A regression is a programming error:
// every legal transition in the lifecycle is monotonic.
func (s *Session) advance(to Phase) {
	if to < s.phase {
		panic(fmt.Sprintf("ble: phase regression %s -> %s", s.phase, to))
	}
	s.phase = to
}
