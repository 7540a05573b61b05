package utils

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// X509CertFromPEM parses an x509 certificate from exactly one PEM block.
// The block content is decoded as X.509 DER.
func X509CertFromPEM(certPEM string) (*x509.Certificate, error) {
	derBytes, err := PemToDer(certPEM)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(derBytes)
}

// X509CertsFromPEM parses all certificates from one or more concatenated
// PEM blocks, in the order they appear.
// Trust bundles are distributed in this format.
// This returns an error if the text contains no PEM block or a block does
// not hold a certificate.
func X509CertsFromPEM(certsPEM string) (certs []*x509.Certificate, err error) {
	rest := []byte(certsPEM)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, fmt.Errorf("no PEM certificate blocks found")
	}
	return certs, nil
}

// X509CertToPEM converts the x509 certificate to PEM text
func X509CertToPEM(cert *x509.Certificate) string {
	block := &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: cert.Raw,
	}
	return string(pem.EncodeToMemory(block))
}

// X509CertToTLS combines a certificate, its signer chain and its private key
// into a TLS certificate for use in client or server auth.
// The leaf is placed first, followed by the signers in the given order.
func X509CertToTLS(cert *x509.Certificate, signers []*x509.Certificate,
	privKey crypto.PrivateKey) *tls.Certificate {

	chain := [][]byte{cert.Raw}
	for _, signerCert := range signers {
		chain = append(chain, signerCert.Raw)
	}
	return &tls.Certificate{
		Certificate: chain,
		PrivateKey:  privKey,
		Leaf:        cert,
	}
}

// PublicKeyFromCert returns the public key included in the certificate
func PublicKeyFromCert(cert *x509.Certificate) crypto.PublicKey {
	return cert.PublicKey
}
