// Package logging provides shared zap-based diagnostics for the EMA8314
// tools.
//
// Logging is silent by default so CLI output stays clean; set EMA_LOG_LEVEL
// to debug/info/warn/error to enable it. Debug level additionally dumps raw
// request and reply frames in hex and ASCII.
//
// This is diagnostic logging only; the measurement log written by ema-log is
// a separate, plain-text data file.
package logging
