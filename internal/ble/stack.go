package ble

// Stack is the narrow asynchronous interface to the underlying BLE
// stack. Everything below it (radio control, link layer, ATT framing,
// pairing) belongs to the implementation.
//
// Requests are fire-and-forget: a nil return means the request was
// accepted, and its outcome arrives later as an Event on the registered
// handler. An error return means the request could not even be issued.
type Stack interface {
	// RegisterEventHandler sets the handler receiving all stack events.
	// Must be called before PowerOn.
	RegisterEventHandler(EventHandler)
	// PowerOn brings the stack up; a StackReady event follows.
	PowerOn() error
	// StartScan begins passive scanning. Interval and window are in
	// 0.625 ms units. Each sighting arrives as an AdvertisingReport.
	StartScan(interval, window uint16) error
	// StopScan halts an in-progress scan.
	StopScan() error
	// Connect initiates a connection; a ConnectionComplete event follows.
	Connect(addr Address, addrType AddressType) error
	// DiscoverPrimaryServices enumerates the peer's primary services as
	// ServiceQueryResult events terminated by a QueryComplete.
	DiscoverPrimaryServices(conn ConnHandle) error
	// DiscoverCharacteristics enumerates a service's characteristics as
	// CharacteristicQueryResult events terminated by a QueryComplete.
	// The underlying ATT transport supports one transaction per link, so
	// callers must not overlap discovery requests.
	DiscoverCharacteristics(conn ConnHandle, svc ServiceDescriptor) error
	// Disconnect tears the link down; a DisconnectionComplete follows.
	Disconnect(conn ConnHandle) error
}
