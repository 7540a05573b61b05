package selfsigned

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"time"
)

// DefaultCertValidityDays with the validity of generated test certificates
const DefaultCertValidityDays = 30

// CreateSignerCert creates an intermediate signer certificate, signed by the
// given CA, for signing device leaf certificates.
//
//   - cn is the common name of the signer
//   - validityDays is the duration the cert is valid for. Use 0 for default.
//   - signerPubKey is embedded in the signer certificate
//   - caCert is the CA certificate used to sign the certificate
//   - caPrivKey is the CA private key used to sign the certificate
func CreateSignerCert(cn string, validityDays int,
	signerPubKey crypto.PublicKey,
	caCert *x509.Certificate, caPrivKey crypto.PrivateKey) (
	signerCert *x509.Certificate, err error) {

	if cn == "" || signerPubKey == nil {
		return nil, fmt.Errorf("missing signer cn or public key")
	} else if caCert == nil || caPrivKey == nil {
		return nil, fmt.Errorf("missing CA certificate or key")
	}
	if validityDays <= 0 {
		validityDays = DefaultCertValidityDays
	}
	serial := time.Now().Unix() - 2
	template := &x509.Certificate{
		SerialNumber: big.NewInt(serial),
		Subject: pkix.Name{
			Organization: caCert.Subject.Organization,
			CommonName:   cn,
		},
		NotBefore: time.Now().Add(-time.Second),
		NotAfter:  time.Now().AddDate(0, 0, validityDays),

		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
	}
	certDerBytes, err := x509.CreateCertificate(
		rand.Reader, template, caCert, signerPubKey, caPrivKey)
	if err == nil {
		signerCert, err = x509.ParseCertificate(certDerBytes)
	}
	return signerCert, err
}

// CreateDeviceCert creates a device leaf certificate for client auth,
// signed by the given signer.
//
// The subject carries the device ID as CN plus the signer's organization and
// an optional country, so the DN reads CN=<deviceID>,O=<org>,C=<country>.
//
//   - deviceID is the unique device ID used as the CN
//   - country is included in the subject when not empty
//   - validityDays is the duration the cert is valid for. Use 0 for default.
//   - devicePubKey is embedded in the leaf certificate
//   - signerCert is the signer certificate used to sign the leaf
//   - signerPrivKey is the signer private key used to sign the leaf
func CreateDeviceCert(deviceID string, country string, validityDays int,
	devicePubKey crypto.PublicKey,
	signerCert *x509.Certificate, signerPrivKey crypto.PrivateKey) (
	deviceCert *x509.Certificate, err error) {

	if deviceID == "" || devicePubKey == nil {
		return nil, fmt.Errorf("missing deviceID or device public key")
	} else if signerCert == nil || signerPrivKey == nil {
		return nil, fmt.Errorf("missing signer certificate or key")
	}
	if validityDays <= 0 {
		validityDays = DefaultCertValidityDays
	}
	subject := pkix.Name{
		Organization: signerCert.Subject.Organization,
		CommonName:   deviceID,
	}
	if country != "" {
		subject.Country = []string{country}
	}
	serial := time.Now().Unix() - 3
	template := &x509.Certificate{
		SerialNumber: big.NewInt(serial),
		Subject:      subject,
		NotBefore:    time.Now().Add(-time.Second),
		NotAfter:     time.Now().AddDate(0, 0, validityDays),

		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},

		IsCA:           false,
		MaxPathLenZero: true,
	}
	certDerBytes, err := x509.CreateCertificate(
		rand.Reader, template, signerCert, devicePubKey, signerPrivKey)
	if err == nil {
		deviceCert, err = x509.ParseCertificate(certDerBytes)
	}
	return deviceCert, err
}
