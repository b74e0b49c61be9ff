package protocol

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of protocol error that occurred.
type ErrorType int

const (
	// ErrTypeTimeout indicates no reply arrived within the receive timeout.
	ErrTypeTimeout ErrorType = iota
	// ErrTypeShortRead indicates a reply datagram that is not exactly 34 bytes.
	ErrTypeShortRead
	// ErrTypeMalformedFrame indicates a frame that fails the command's fixed schema.
	ErrTypeMalformedFrame
	// ErrTypeUnknownCommand indicates a command code missing from the catalog.
	// This is a programmer error, not a device condition.
	ErrTypeUnknownCommand
	// ErrTypeDeviceRejected indicates the device answered with a status flag
	// other than 99. The raw flag is carried on the error.
	ErrTypeDeviceRejected
	// ErrTypeUnrecognizedEnum indicates a decoded enum byte outside the
	// documented value set.
	ErrTypeUnrecognizedEnum
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeShortRead:
		return "Short Read"
	case ErrTypeMalformedFrame:
		return "Malformed Frame"
	case ErrTypeUnknownCommand:
		return "Unknown Command"
	case ErrTypeDeviceRejected:
		return "Device Rejected"
	case ErrTypeUnrecognizedEnum:
		return "Unrecognized Enum Byte"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// ProtoError represents an error raised during an EMA8314 exchange.
// All protocol failures are recoverable; none should terminate the caller.
type ProtoError struct {
	Type      ErrorType // Category of error
	Message   string    // Human-readable error message
	Code      byte      // Command code involved (if applicable)
	Flag      byte      // Raw status flag (DeviceRejected only)
	Raw       byte      // Offending byte (UnrecognizedEnum only)
	Err       error     // Underlying error (if any)
	Retryable bool      // Whether the probe-and-retry idiom applies
}

// Error implements the error interface.
func (e *ProtoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ProtoError) Unwrap() error {
	return e.Err
}

// NewTimeout creates a timeout error. Timeouts are the primary trigger for
// the probe-and-retry idiom, so they are always retryable.
func NewTimeout(message string, err error) *ProtoError {
	return &ProtoError{
		Type:      ErrTypeTimeout,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewShortRead creates an error for a reply that is not exactly 34 bytes.
func NewShortRead(got int) *ProtoError {
	return &ProtoError{
		Type:      ErrTypeShortRead,
		Message:   fmt.Sprintf("reply is %d bytes, want %d", got, ResponseSize),
		Retryable: true,
	}
}

// NewMalformedFrame creates an error for a frame that violates a command's
// fixed layout.
func NewMalformedFrame(message string) *ProtoError {
	return &ProtoError{
		Type:    ErrTypeMalformedFrame,
		Message: message,
	}
}

// NewUnknownCommand creates an error for a code missing from the catalog.
func NewUnknownCommand(code byte) *ProtoError {
	return &ProtoError{
		Type:    ErrTypeUnknownCommand,
		Message: fmt.Sprintf("command 0x%02X is not in the catalog", code),
		Code:    code,
	}
}

// NewDeviceRejected creates an error carrying the raw status flag of a
// rejected command. The protocol does not classify why the device refused;
// only the flag value is surfaced.
func NewDeviceRejected(code byte, flag byte) *ProtoError {
	return &ProtoError{
		Type:    ErrTypeDeviceRejected,
		Message: fmt.Sprintf("command 0x%02X rejected with flag %d", code, flag),
		Code:    code,
		Flag:    flag,
	}
}

// NewUnrecognizedEnum creates an error for an enum byte outside the
// documented set. Decoding never silently defaults such values.
func NewUnrecognizedEnum(field string, raw byte) *ProtoError {
	return &ProtoError{
		Type:    ErrTypeUnrecognizedEnum,
		Message: fmt.Sprintf("%s byte 0x%02X is not a documented value", field, raw),
		Raw:     raw,
	}
}

// asProtoError extracts a *ProtoError from an error chain.
func asProtoError(err error) (*ProtoError, bool) {
	var pe *ProtoError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsTimeout checks whether an error is a receive timeout.
func IsTimeout(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Type == ErrTypeTimeout
}

// IsShortRead checks whether an error is a short or oversized reply.
func IsShortRead(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Type == ErrTypeShortRead
}

// IsMalformedFrame checks whether an error is a schema violation.
func IsMalformedFrame(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Type == ErrTypeMalformedFrame
}

// IsUnknownCommand checks whether an error is a catalog miss.
func IsUnknownCommand(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Type == ErrTypeUnknownCommand
}

// IsDeviceRejected checks whether the device refused a command.
func IsDeviceRejected(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Type == ErrTypeDeviceRejected
}

// IsUnrecognizedEnum checks whether an enum byte fell outside the known set.
func IsUnrecognizedEnum(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Type == ErrTypeUnrecognizedEnum
}

// IsRetryable reports whether the probe-and-retry idiom is the sanctioned
// recovery for this error. Device rejections and programmer errors are not
// retryable; transport stalls are.
func IsRetryable(err error) bool {
	pe, ok := asProtoError(err)
	return ok && pe.Retryable
}
