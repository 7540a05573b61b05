// Package security with the X509 security provider used during device provisioning.
//
// The provider simulates a hardware security module: it holds the device leaf
// certificate, its private key and the signer certificate chain that were
// issued out-of-band, and hands them to the provisioning client as typed
// objects. It does not talk to real HSM or TPM hardware and it does not
// create, verify or store certificates.
package security

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
)

// DefaultSecurityModuleID is the default module ID of the security module.
const DefaultSecurityModuleID = "security"

// Default file names of the device identity PEMs in the certs directory.
const DefaultLeafCertName = "leafCert.pem"
const DefaultLeafKeyName = "leafKey.pem"

// ISecurityProviderX509 is the interface of an X509 certificate based
// security provider.
//
// All accessors are reads of state set at construction. Instances are
// immutable and safe for concurrent use.
type ISecurityProviderX509 interface {

	// CommonName returns the common name of the leaf certificate subject.
	// Devices register under this name.
	CommonName() string

	// LeafCertificate returns the parsed device leaf certificate.
	LeafCertificate() *x509.Certificate

	// LeafPrivateKey returns the parsed private key of the leaf certificate.
	LeafPrivateKey() crypto.PrivateKey

	// SignerCertificates returns the parsed signer chain in the order it
	// was supplied. The chain can be empty.
	SignerCertificates() []*x509.Certificate

	// LeafCertificatePEM returns the leaf certificate PEM text exactly as
	// it was supplied.
	LeafCertificatePEM() string

	// SignerCertificatesPEM returns the signer chain PEM texts exactly as
	// they were supplied.
	SignerCertificatesPEM() []string

	// TLSCertificate returns the device identity as a TLS certificate with
	// the leaf first, followed by the signer chain, and the private key.
	TLSCertificate() *tls.Certificate

	// GenerateLeafCert would generate a leaf certificate with the unique ID
	// as the common name.
	//
	// This provider does not generate certificates; the leaf must be issued
	// by an external mechanism. An empty uniqueID fails with
	// ErrInvalidArgument, any other input fails with ErrUnsupported so
	// callers can tell bad input from a missing capability.
	GenerateLeafCert(uniqueID string) (string, error)
}
