package security

import "errors"

// ErrInvalidArgument indicates a required input is missing or empty.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrCommonNameNotFound indicates the leaf certificate subject has no CN component.
var ErrCommonNameNotFound = errors.New("CN name could not be found")

// ErrUnsupported indicates an operation this provider intentionally does not implement.
var ErrUnsupported = errors.New("operation not supported")

// CertParseError indicates a PEM certificate or key could not be decoded.
// It wraps the underlying decode error.
type CertParseError struct {
	// What describes the input that failed to decode, eg "leaf certificate"
	What string
	Err  error
}

func (e *CertParseError) Error() string {
	return "cannot parse " + e.What + ": " + e.Err.Error()
}
func (e *CertParseError) Unwrap() error {
	return e.Err
}
