package hsm_test

import (
	"errors"
	"os"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotkit/provkit/lib/logging"
	"github.com/iotkit/provkit/modules/hsm/api"
	"github.com/iotkit/provkit/modules/security/module/selfsigned"
	"github.com/iotkit/provkit/utils"
)

func TestMain(m *testing.M) {
	logging.SetLogging("info", "")
	os.Exit(m.Run())
}

func TestTrustBundleResponse(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	certText := "-----BEGIN CERTIFICATE-----\nsome certificate text\n-----END CERTIFICATE-----"
	jsonText := `{"certificate":"` +
		`-----BEGIN CERTIFICATE-----\nsome certificate text\n-----END CERTIFICATE-----"}`

	resp, err := api.NewTrustBundleResponse(jsonText)
	require.NoError(t, err)
	// the field value is returned exactly as received
	assert.Equal(t, certText, resp.Certificates())
}

func TestTrustBundleIgnoresOtherFields(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	jsonText := `{"version":2,"expires":"2026-01-01","certificate":"pem goes here"}`
	resp, err := api.NewTrustBundleResponse(jsonText)
	require.NoError(t, err)
	assert.Equal(t, "pem goes here", resp.Certificates())
}

func TestTrustBundleMissingCertificate(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	var malformedErr *api.MalformedResponseError

	// an absent certificate field is a hard error, not an empty bundle
	resp, err := api.NewTrustBundleResponse(`{"other":"field"}`)
	require.Error(t, err)
	assert.True(t, errors.As(err, &malformedErr))
	assert.Nil(t, resp)

	// an empty bundle however is accepted as-is
	resp, err = api.NewTrustBundleResponse(`{"certificate":""}`)
	require.NoError(t, err)
	assert.Equal(t, "", resp.Certificates())
}

func TestTrustBundleBadJson(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	var malformedErr *api.MalformedResponseError

	// not json
	_, err := api.NewTrustBundleResponse("this is not json")
	require.Error(t, err)
	assert.True(t, errors.As(err, &malformedErr))

	// certificate field isn't a string
	_, err = api.NewTrustBundleResponse(`{"certificate":42}`)
	require.Error(t, err)
	assert.True(t, errors.As(err, &malformedErr))
}

// The bundle value can hold multiple concatenated PEM certificates.
// Splitting them is the consumer's job, using utils.
func TestTrustBundleSplitCerts(t *testing.T) {
	t.Logf("---%s---\n", t.Name())
	bundle := selfsigned.CreateTestDeviceBundle("device1", utils.KeyTypeECDSA)
	caCertPEM := utils.X509CertToPEM(bundle.CaCert)
	concatenated := caCertPEM + bundle.SignerCertPEM

	jsonData, err := jsoniter.MarshalToString(map[string]string{
		"certificate": concatenated,
	})
	require.NoError(t, err)
	resp, err := api.NewTrustBundleResponse(jsonData)
	require.NoError(t, err)
	assert.Equal(t, concatenated, resp.Certificates())

	certs, err := utils.X509CertsFromPEM(resp.Certificates())
	require.NoError(t, err)
	require.Len(t, certs, 2)
	// order of the blocks is kept
	assert.Equal(t, bundle.CaCert.Raw, certs[0].Raw)
	assert.Equal(t, bundle.SignerCert.Raw, certs[1].Raw)
}
