// Package session owns the UDP transport for one EMA8314 device.
//
// A Session wraps a single datagram socket bound to a local endpoint with
// address reuse enabled and a fixed 5-second receive timeout. SendReceive
// performs exactly one request/response round trip and surfaces timeouts and
// short replies as typed protocol errors; it performs no retries of its own.
//
// The device occasionally stops answering for a few seconds. The sanctioned
// recovery is the probe-and-retry idiom implemented by the device package:
// issue firmware-version reads on a fixed back-off until one succeeds, then
// resume. Nothing in this package hides that behavior.
//
// Commands that change the device's port, IP, or password also mutate the
// Session's cached copy of the affected field, so later requests keep
// matching what the device expects.
package session
