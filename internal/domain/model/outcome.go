package model

// Protocol identifies which address family an update call targets.
type Protocol string

const (
	ProtocolIPv4 Protocol = "ipv4"
	ProtocolIPv6 Protocol = "ipv6"
)

// Outcome is the result of one update attempt for one (profile, protocol)
// pair. Outcomes are produced and consumed within a single dispatch call and
// are never persisted.
type Outcome struct {
	MasterID string
	Protocol Protocol
	Endpoint string

	// OK is true when the endpoint answered with a 2xx status.
	OK bool

	// StatusCode is the HTTP status received; 0 when the request never
	// produced a response (DNS, TLS, timeout, connection refused).
	StatusCode int

	// Reason is a human-readable failure description; empty on success.
	Reason string
}
