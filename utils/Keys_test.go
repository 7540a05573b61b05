package utils_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotkit/provkit/lib/logging"
	"github.com/iotkit/provkit/modules/security/module/selfsigned"
	"github.com/iotkit/provkit/utils"
)

func TestMain(m *testing.M) {
	logging.SetLogging("info", "")
	os.Exit(m.Run())
}

func TestKeyPemRoundTrip(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	keyTypes := []utils.KeyType{
		utils.KeyTypeECDSA, utils.KeyTypeED25519, utils.KeyTypeRSA}

	for _, keyType := range keyTypes {
		privKey, pubKey := utils.NewKey(keyType)
		require.NotNil(t, privKey, "keyType %s", keyType)
		require.NotNil(t, pubKey)

		privPEM := utils.PrivateKeyToPEM(privKey)
		assert.NotEmpty(t, privPEM)

		privKey2, err := utils.PrivateKeyFromPEM(privPEM)
		require.NoError(t, err)
		require.NotNil(t, privKey2)
		switch keyType {
		case utils.KeyTypeECDSA:
			assert.IsType(t, &ecdsa.PrivateKey{}, privKey2)
		case utils.KeyTypeED25519:
			assert.IsType(t, ed25519.PrivateKey{}, privKey2)
		case utils.KeyTypeRSA:
			assert.IsType(t, &rsa.PrivateKey{}, privKey2)
		}
	}
	// unknown type has no key
	privKey, pubKey := utils.NewKey(utils.KeyTypeUnknown)
	assert.Nil(t, privKey)
	assert.Nil(t, pubKey)
}

func TestPemToDerRequiresArmor(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	// bare base64 without BEGIN/END markers is not accepted
	bareB64 := base64.StdEncoding.EncodeToString([]byte("some der bytes"))
	_, err := utils.PemToDer(bareB64)
	require.Error(t, err)

	_, err = utils.PemToDer("")
	require.Error(t, err)
}

func TestBadKeyPem(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	_, err := utils.PrivateKeyFromPEM("not a key")
	require.Error(t, err)

	// valid armor, but the content is a certificate
	bundle := selfsigned.CreateTestDeviceBundle("device1", utils.KeyTypeECDSA)
	_, err = utils.PrivateKeyFromPEM(bundle.LeafCertPEM)
	require.Error(t, err)
}

func TestX509CertPemRoundTrip(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	bundle := selfsigned.CreateTestDeviceBundle("device1", utils.KeyTypeECDSA)

	asPEM := utils.X509CertToPEM(bundle.LeafCert)
	assert.NotEmpty(t, asPEM)
	asX509, err := utils.X509CertFromPEM(asPEM)
	require.NoError(t, err)
	assert.Equal(t, bundle.LeafCert.Raw, asX509.Raw)

	pubKey := utils.PublicKeyFromCert(asX509)
	assert.NotEmpty(t, pubKey)
}

func TestX509CertsFromPEMConcatenated(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	bundle := selfsigned.CreateTestDeviceBundle("device1", utils.KeyTypeECDSA)
	concatenated := utils.X509CertToPEM(bundle.CaCert) +
		bundle.SignerCertPEM + bundle.LeafCertPEM

	certs, err := utils.X509CertsFromPEM(concatenated)
	require.NoError(t, err)
	require.Len(t, certs, 3)
	assert.Equal(t, bundle.CaCert.Raw, certs[0].Raw)
	assert.Equal(t, bundle.SignerCert.Raw, certs[1].Raw)
	assert.Equal(t, bundle.LeafCert.Raw, certs[2].Raw)

	// no pem blocks at all
	_, err = utils.X509CertsFromPEM("plain text")
	require.Error(t, err)
}
