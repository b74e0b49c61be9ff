// Package device provides the typed client for EMA8314 temperature I/O
// modules.
//
// A Client pairs a transport Session with the command catalog and exposes
// one method per device operation: temperature and limit reads/writes,
// output and output-mode control, sensor type configuration, the comparison
// (control) engine, the communication watchdog, and device administration
// (reboot, port/IP/password changes).
//
// Commands that move the device's endpoint or password also update the
// Session's cached copies, so the Client keeps working across a successful
// ChangePort, ChangeIP, or ChangePassword.
//
// The all-channel limit operations (set and read) address channel pairs on
// the wire and therefore cost two round trips each; the Client concatenates
// the pairs into a single four-channel result.
//
// WaitForDevice implements the probe-and-retry reconnect idiom for the
// device's transient receive stalls; see the session package docs.
package device
