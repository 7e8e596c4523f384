// Package broadcast delivers Wake-on-LAN magic packets with a primary
// transport, a single fallback, and bounded time.
//
// A send proceeds through a fixed sequence:
//
//	parse MAC ──fail──▶ Outcome{false, "invalid MAC address format"}
//	    │
//	primary attempt (AttemptTimeout) ──ok──▶ Outcome{true, ...}
//	    │ fail or timeout
//	secondary attempt (remaining Timeout) ──ok──▶ Outcome{true, ...}
//	    │ fail
//	Outcome{false, <secondary failure>}
//
// The whole operation is bounded by Timeout. When it elapses the caller gets
// a failure Outcome immediately; the in-flight attempt's context is cancelled
// and its late result is discarded. Attempts are never raced and never
// retried beyond the one fallback.
//
// A Broadcaster holds no mutable state and may be used from multiple
// goroutines; each send owns its sockets and packet buffer.
package broadcast
