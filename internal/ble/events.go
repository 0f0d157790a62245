package ble

// Event is a notification delivered by the Stack to its registered
// handler. The set of implementations is closed; the Browser dispatches
// with a type switch. Every request's outcome arrives as one of these,
// never as a return value at the call site.
type Event interface {
	event()
}

// EventHandler consumes stack events. The Browser's handler only enqueues
// the event, so stacks may call it from any goroutine.
type EventHandler func(Event)

// StackReady signals that the stack finished powering on and accepts
// requests.
type StackReady struct{}

// AdvertisingReport carries one decoded advertisement. Reports are
// ephemeral: constructed per event and never retained.
type AdvertisingReport struct {
	EventType   uint8
	AddressType AddressType
	Address     Address
	RSSI        int8
	Data        []byte
}

// ConnectionComplete signals that an earlier connect request established
// a link.
type ConnectionComplete struct {
	Handle ConnHandle
}

// DisconnectionComplete signals that the active link was torn down,
// whether locally requested or remote-initiated.
type DisconnectionComplete struct{}

// ServiceQueryResult delivers one primary service during a
// discover-primary-services query.
type ServiceQueryResult struct {
	Service ServiceDescriptor
}

// CharacteristicQueryResult delivers one characteristic during a
// discover-characteristics query.
type CharacteristicQueryResult struct {
	Characteristic CharacteristicDescriptor
}

// QueryComplete ends a discovery query. Status is the ATT status byte;
// zero means success.
type QueryComplete struct {
	Status uint8
}

// StackError reports a request the stack accepted but could not carry
// out. Without it such failures would stall the state machine forever.
type StackError struct {
	Op  string
	Err error
}

func (StackReady) event()                {}
func (AdvertisingReport) event()         {}
func (ConnectionComplete) event()        {}
func (DisconnectionComplete) event()     {}
func (ServiceQueryResult) event()        {}
func (CharacteristicQueryResult) event() {}
func (QueryComplete) event()             {}
func (StackError) event()                {}
