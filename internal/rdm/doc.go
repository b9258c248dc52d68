// Package rdm implements the responder side of RDM (Remote Device
// Management, ANSI E1.20) plus the E1.37-1 and E1.37-2 extensions.
//
// This includes the wire codec, the PID dispatcher (ResponderOps), the
// canonical parameter handlers (ResponderHelper), the per-responder state
// models, and the AckTimer queued-message subsystem. A responder answers
// a decoded request synchronously and returns before its caller's
// transport can deliver another — the package requires no goroutines,
// no atomics, and no mutexes.
package rdm
