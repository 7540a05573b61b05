package module

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/iotkit/provkit/modules/security"
	"github.com/iotkit/provkit/modules/security/config"
)

// SecurityModule makes the device identity available to the provisioning
// client. This implements the ISecurityProviderX509 interface through its
// provider.
//
// At startup the module reads the leaf certificate, leaf key and signer
// chain PEM files named in its config and builds the X509 security provider
// from them. This is the only place identity files are read; the provider
// itself works on in-memory PEM text.
type SecurityModule struct {
	// configuration. Allow manual configuration before Start.
	Config config.SecurityConfig

	// the provider built at startup
	provider *X509SecurityProvider
}

// Provider returns the security provider with the device identity.
// This returns nil before the module is started.
func (m *SecurityModule) Provider() security.ISecurityProviderX509 {
	if m.provider == nil {
		return nil
	}
	return m.provider
}

// Start reads the identity PEM files and builds the security provider.
// This fails if a file cannot be read or its content does not parse.
func (m *SecurityModule) Start() (err error) {
	leafCertPEM, err := os.ReadFile(m.Config.LeafCertFile)
	if err != nil {
		return fmt.Errorf("unable to read the leaf certificate: %w", err)
	}
	leafKeyPEM, err := os.ReadFile(m.Config.LeafKeyFile)
	if err != nil {
		return fmt.Errorf("unable to read the leaf private key: %w", err)
	}
	signerCertsPEM := make([]string, 0, len(m.Config.SignerCertFiles))
	for _, signerFile := range m.Config.SignerCertFiles {
		signerPEM, err := os.ReadFile(signerFile)
		if err != nil {
			return fmt.Errorf("unable to read signer certificate: %w", err)
		}
		signerCertsPEM = append(signerCertsPEM, string(signerPEM))
	}

	m.provider, err = NewX509SecurityProvider(
		string(leafCertPEM), string(leafKeyPEM), signerCertsPEM)
	if err != nil {
		slog.Error("unable to load the device identity",
			"leafCertFile", m.Config.LeafCertFile, "err", err.Error())
		return err
	}
	slog.Info("security module started",
		slog.String("moduleID", m.Config.ModuleID),
		slog.String("commonName", m.provider.CommonName()),
		slog.Int("signerCerts", len(m.provider.SignerCertificates())))
	return nil
}

// Stop the module. The identity remains usable by existing consumers.
func (m *SecurityModule) Stop() {
	m.provider = nil
}

// NewSecurityModule creates a new security module instance.
// cfg holds the identity file locations. See NewSecurityConfig for defaults.
func NewSecurityModule(cfg config.SecurityConfig) *SecurityModule {
	if cfg.ModuleID == "" {
		cfg.ModuleID = security.DefaultSecurityModuleID
	}
	m := &SecurityModule{
		Config: cfg,
	}
	return m
}
