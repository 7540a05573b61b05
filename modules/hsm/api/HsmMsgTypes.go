// Package api with message types returned by an HSM style workload service
package api

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// MalformedResponseError indicates an HSM response could not be decoded.
// It wraps the underlying decode error.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return "malformed HSM response: " + e.Err.Error()
}
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// trustBundleJson is the wire format of the trust bundle response.
// The certificate field is a pointer so a missing field can be told apart
// from an empty one.
type trustBundleJson struct {
	Certificates *string `json:"certificate"`
}

// TrustBundleResponse holds the certificates an HSM dictates to trust.
// This type is receive-only, it is never serialized back to the service.
//
// The certificate value can contain one to many concatenated PEM blocks.
// This type does not split or validate them, use utils.X509CertsFromPEM.
type TrustBundleResponse struct {
	certificates string
}

// Certificates returns the concatenated PEM certificate string to trust,
// exactly as received.
func (r *TrustBundleResponse) Certificates() string {
	return r.certificates
}

// NewTrustBundleResponse decodes a trust bundle from its JSON representation.
//
// Only the 'certificate' field is read, other fields are ignored.
// This fails with a MalformedResponseError when the JSON does not parse,
// when the certificate field is absent, or when it is not a string.
func NewTrustBundleResponse(jsonText string) (*TrustBundleResponse, error) {
	var wire trustBundleJson
	err := jsoniter.UnmarshalFromString(jsonText, &wire)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if wire.Certificates == nil {
		return nil, &MalformedResponseError{
			Err: fmt.Errorf("response has no 'certificate' field")}
	}
	resp := &TrustBundleResponse{
		certificates: *wire.Certificates,
	}
	return resp, nil
}
