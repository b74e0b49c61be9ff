// Package poller implements the measurement logging loop for ema-log.
//
// Each tick reads the sensor status and whichever columns the configuration
// selects (per-channel temperatures, sensor connectivity, output states),
// then appends one RFC3339-stamped, separator-delimited line to a
// date-rotated log file. A broken sensor logs NaN for its temperature.
//
// Transport failures do not kill the loop: the poller drops into the
// probe-and-retry idiom (device.WaitForDevice) and carries on once the
// module answers again. Only context cancellation and log sink write errors
// stop it.
package poller
