package wol

import "errors"

// Service errors.
var (
	// ErrNoBroadcaster is returned by New when no broadcaster is configured.
	ErrNoBroadcaster = errors.New("wol: broadcaster is required")

	// ErrUnknownDevice is returned when the argument is neither a registered
	// device name nor a valid MAC address.
	ErrUnknownDevice = errors.New("wol: unknown device")

	// ErrNoRegistry is returned by device operations on a Service created
	// without a registry.
	ErrNoRegistry = errors.New("wol: no device registry configured")
)
