package module

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/iotkit/provkit/modules/security"
	"github.com/iotkit/provkit/utils"
)

// X509SecurityProvider holds a device identity built from PEM text:
// the leaf certificate, its private key and the signer certificate chain.
// This implements the ISecurityProviderX509 interface.
//
// All fields are set at construction. Construction either succeeds with a
// fully parsed identity or fails without leaving a partial provider.
type X509SecurityProvider struct {
	commonName string

	leafCert    *x509.Certificate
	leafKey     crypto.PrivateKey
	signerCerts []*x509.Certificate

	// the PEM texts as supplied by the caller
	leafCertPEM    string
	leafKeyPEM     string
	signerCertsPEM []string
}

// CommonName returns the common name of the leaf certificate subject
func (p *X509SecurityProvider) CommonName() string {
	return p.commonName
}

// LeafCertificate returns the parsed device leaf certificate
func (p *X509SecurityProvider) LeafCertificate() *x509.Certificate {
	return p.leafCert
}

// LeafPrivateKey returns the parsed private key of the leaf certificate
func (p *X509SecurityProvider) LeafPrivateKey() crypto.PrivateKey {
	return p.leafKey
}

// SignerCertificates returns the parsed signer chain in supplied order
func (p *X509SecurityProvider) SignerCertificates() []*x509.Certificate {
	return p.signerCerts
}

// LeafCertificatePEM returns the leaf certificate PEM exactly as supplied
func (p *X509SecurityProvider) LeafCertificatePEM() string {
	return p.leafCertPEM
}

// SignerCertificatesPEM returns the signer chain PEMs exactly as supplied
func (p *X509SecurityProvider) SignerCertificatesPEM() []string {
	return p.signerCertsPEM
}

// TLSCertificate returns the device identity as a TLS certificate.
// The leaf DER is first, followed by the signer chain in supplied order.
func (p *X509SecurityProvider) TLSCertificate() *tls.Certificate {
	return utils.X509CertToTLS(p.leafCert, p.signerCerts, p.leafKey)
}

// GenerateLeafCert would generate a leaf certificate with the unique ID as
// the common name.
// This provider never generates certificates. Use an external mechanism to
// issue the leaf. See ISecurityProviderX509 for the error contract.
func (p *X509SecurityProvider) GenerateLeafCert(uniqueID string) (string, error) {
	if uniqueID == "" {
		return "", fmt.Errorf("%w: unique ID cannot be empty", security.ErrInvalidArgument)
	}
	return "", fmt.Errorf(
		"%w: use other means to create the leaf certificate", security.ErrUnsupported)
}

// extractCommonName returns the CN component of the certificate subject DN.
// Expected format: CN=<name>,O=<org>,C=<country>
// The last '=' separated segment of the CN token is the name, so a '=' inside
// the value is tolerated.
func extractCommonName(cert *x509.Certificate) (string, error) {
	subjectDN := cert.Subject.String()
	tokens := strings.Split(subjectDN, ",")
	for _, token := range tokens {
		if strings.Contains(token, "CN=") {
			cn := strings.Split(token, "=")
			return cn[len(cn)-1], nil
		}
	}
	return "", security.ErrCommonNameNotFound
}

// NewX509SecurityProvider creates a security provider from PEM text.
//
// leafCertPEM is the PEM encoded device leaf certificate. Required.
// leafKeyPEM is the PEM encoded private key of the leaf. Required.
// signerCertsPEM is the PEM encoded signer chain in chain order. Can be empty.
//
// This fails with ErrInvalidArgument when a required PEM is empty, with a
// CertParseError when a PEM cannot be decoded, and with ErrCommonNameNotFound
// when the leaf subject has no CN component.
func NewX509SecurityProvider(
	leafCertPEM string, leafKeyPEM string, signerCertsPEM []string) (
	*X509SecurityProvider, error) {

	if leafCertPEM == "" {
		return nil, fmt.Errorf(
			"%w: leaf certificate PEM cannot be empty", security.ErrInvalidArgument)
	}
	if leafKeyPEM == "" {
		return nil, fmt.Errorf(
			"%w: leaf private key PEM cannot be empty", security.ErrInvalidArgument)
	}

	leafCert, err := utils.X509CertFromPEM(leafCertPEM)
	if err != nil {
		return nil, &security.CertParseError{What: "leaf certificate", Err: err}
	}
	leafKey, err := utils.PrivateKeyFromPEM(leafKeyPEM)
	if err != nil {
		return nil, &security.CertParseError{What: "leaf private key", Err: err}
	}
	signerCerts := make([]*x509.Certificate, 0, len(signerCertsPEM))
	for i, signerPEM := range signerCertsPEM {
		signerCert, err := utils.X509CertFromPEM(signerPEM)
		if err != nil {
			return nil, &security.CertParseError{
				What: fmt.Sprintf("signer certificate %d", i), Err: err}
		}
		signerCerts = append(signerCerts, signerCert)
	}
	commonName, err := extractCommonName(leafCert)
	if err != nil {
		return nil, err
	}

	p := &X509SecurityProvider{
		commonName:     commonName,
		leafCert:       leafCert,
		leafKey:        leafKey,
		signerCerts:    signerCerts,
		leafCertPEM:    leafCertPEM,
		leafKeyPEM:     leafKeyPEM,
		signerCertsPEM: signerCertsPEM,
	}
	var _ security.ISecurityProviderX509 = p // interface check
	return p, nil
}
