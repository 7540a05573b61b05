package config

import (
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/iotkit/provkit/modules/security"
)

// SecurityConfig with the file locations of the device identity PEMs.
//
// The security module reads these files once at startup. The provider itself
// never touches the filesystem.
type SecurityConfig struct {
	// File with the PEM encoded device leaf certificate
	LeafCertFile string `yaml:"leafCertFile"`

	// File with the PEM encoded private key of the leaf certificate
	LeafKeyFile string `yaml:"leafKeyFile"`

	// Files with the PEM encoded signer certificates, in chain order.
	// Optional, the chain can be empty.
	SignerCertFiles []string `yaml:"signerCertFiles,omitempty"`

	// optional moduleID override for multiple instances
	ModuleID string `yaml:"moduleID,omitempty"`
}

// NewSecurityConfig creates a new config with default values
//
// certsDir is the directory holding the identity PEM files
func NewSecurityConfig(certsDir string) SecurityConfig {
	cfg := SecurityConfig{
		ModuleID:     security.DefaultSecurityModuleID,
		LeafCertFile: path.Join(certsDir, security.DefaultLeafCertName),
		LeafKeyFile:  path.Join(certsDir, security.DefaultLeafKeyName),
	}
	return cfg
}

// LoadSecurityConfig loads the security config from a yaml file
func LoadSecurityConfig(cfgPath string) (cfg SecurityConfig, err error) {
	cfgData, err := os.ReadFile(cfgPath)
	if err == nil {
		err = yaml.Unmarshal(cfgData, &cfg)
	}
	return cfg, err
}
