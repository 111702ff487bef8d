// Package pe200 drives a Perkin Elmer 200-series quaternary LC pump
// over its ASCII serial protocol. It programs multi-step flow methods,
// tracks the pump's run state, and recovers from transient protocol
// errors during method upload with a single bounded retry.
//
// The protocol is synchronous and half duplex: one command line out,
// one response line back. A Controller owns its Transport exclusively
// and must not be shared across goroutines.
package pe200
