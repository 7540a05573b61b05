// Package selfsigned with creating test certificate chains for device provisioning
package selfsigned

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"log/slog"
	"math/big"
	"time"

	"github.com/iotkit/provkit/utils"
)

// CreateTestCA creates a self-signed root CA certificate with a private key
// for issuing test signer and device certificates.
//
// cn is the common name of the CA subject.
// validityDays is the CA's validity in days.
func CreateTestCA(country, orgName, cn string, validityDays int, keyType utils.KeyType) (
	caCert *x509.Certificate, caPrivKey crypto.PrivateKey, caPubKey crypto.PublicKey, err error) {

	// generate a unique serial based on timestamp so test chains don't collide
	serial := time.Now().Unix() - 1
	rootTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(serial),
		Subject: pkix.Name{
			Country:      []string{country},
			Organization: []string{orgName},
			CommonName:   cn,
		},
		NotBefore: time.Now().Add(-3 * time.Second),
		NotAfter:  time.Now().AddDate(0, 0, validityDays),
		// CA cert can be used to sign certificates and revocation lists
		KeyUsage: x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature | x509.KeyUsageCRLSign,

		BasicConstraintsValid: true,
		IsCA:                  true,
		// allow one level of intermediate signer certificates
		MaxPathLen: 1,
	}

	caPrivKey, caPubKey = utils.NewKey(keyType)

	caCertDer, err := x509.CreateCertificate(
		rand.Reader, rootTemplate, rootTemplate, caPubKey, caPrivKey)
	if err != nil {
		// normally this never happens
		slog.Error("unable to create CA cert", "err", err)
		return nil, nil, nil, err
	}
	caCert, err = x509.ParseCertificate(caCertDer)
	return caCert, caPrivKey, caPubKey, err
}
