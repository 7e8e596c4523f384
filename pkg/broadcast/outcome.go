package broadcast

// Outcome is the single result of a send.
type Outcome struct {
	// Success reports whether a transport handed the packet to the network.
	// It does not mean the target woke up.
	Success bool

	// Transport names the transport that delivered the packet. It is empty
	// unless Success is set.
	Transport string

	// Message is a human-readable summary suitable for a notification.
	Message string

	// Err is nil on success. Otherwise it wraps magic.ErrInvalidLength,
	// magic.ErrInvalidHex, ErrTimeout, a context error or the transport
	// errors, for callers that need to branch with errors.Is.
	Err error
}

// attempt records one transport call within a send.
type attempt struct {
	transport string
	ok        bool
	err       error
}

func (a attempt) detail() string {
	if a.ok {
		return "sent via " + a.transport
	}
	return a.err.Error()
}
