package selfsigned

import (
	"crypto"
	"crypto/x509"

	"github.com/iotkit/provkit/utils"
)

const TestDeviceID = "device1"
const TestOrg = "iotkit-test"
const TestCountry = "CA"

// TestDeviceBundle holds a CA, intermediate signer and device leaf
// certificate chain intended for testing
type TestDeviceBundle struct {
	// the key type used to generate the private keys
	keyType utils.KeyType

	// root CA
	CaCert    *x509.Certificate
	CaPrivKey crypto.PrivateKey

	// intermediate signer of the device certificate
	SignerCert    *x509.Certificate
	SignerPrivKey crypto.PrivateKey
	SignerCertPEM string

	// device leaf certificate
	DeviceID    string
	LeafCert    *x509.Certificate
	LeafPrivKey crypto.PrivateKey
	LeafCertPEM string
	LeafKeyPEM  string
}

// CreateTestDeviceBundle creates a CA, signer and device leaf certificate
// chain with keys for testing.
// The leaf subject DN reads CN=<deviceID>,O=<org>,C=<country>.
func CreateTestDeviceBundle(deviceID string, keyType utils.KeyType) TestDeviceBundle {
	bundle := TestDeviceBundle{
		keyType:  keyType,
		DeviceID: deviceID,
	}
	var err error
	bundle.CaCert, bundle.CaPrivKey, _, err = CreateTestCA(
		TestCountry, TestOrg, "testdeviceca", 1, keyType)
	if err != nil {
		panic("CreateTestDeviceBundle failed: " + err.Error())
	}

	signerPrivKey, signerPubKey := utils.NewKey(keyType)
	bundle.SignerPrivKey = signerPrivKey
	bundle.SignerCert, err = CreateSignerCert(
		"testsigner", 1, signerPubKey, bundle.CaCert, bundle.CaPrivKey)
	if err != nil {
		panic("unable to create signer cert: " + err.Error())
	}
	bundle.SignerCertPEM = utils.X509CertToPEM(bundle.SignerCert)

	leafPrivKey, leafPubKey := utils.NewKey(keyType)
	bundle.LeafPrivKey = leafPrivKey
	bundle.LeafCert, err = CreateDeviceCert(
		deviceID, TestCountry, 1, leafPubKey,
		bundle.SignerCert, bundle.SignerPrivKey)
	if err != nil {
		panic("unable to create device cert: " + err.Error())
	}
	bundle.LeafCertPEM = utils.X509CertToPEM(bundle.LeafCert)
	bundle.LeafKeyPEM = utils.PrivateKeyToPEM(leafPrivKey)

	return bundle
}
