// Package utils with key and certificate helpers for device provisioning
package utils

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

type KeyType string

const (
	KeyTypeECDSA   KeyType = "ecdsa"
	KeyTypeED25519 KeyType = "ed25519"
	KeyTypeRSA     KeyType = "rsa"
	KeyTypeUnknown KeyType = ""
)

// NewKey creates a new key-pair of the given type.
// This returns nil if the key type is unknown.
func NewKey(keyType KeyType) (crypto.PrivateKey, crypto.PublicKey) {
	switch keyType {
	case KeyTypeECDSA:
		return NewEcdsaKey()
	case KeyTypeED25519:
		return NewEd25519Key()
	case KeyTypeRSA:
		return NewRsaKey()
	default:
		return nil, nil
	}
}

// NewEcdsaKey creates a new ECDSA key-pair using the P256 curve
func NewEcdsaKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey) {
	// for rsa, ecdsa this is a ptr, ed25519 a non-pointer key
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic("unable to create ECDSA key")
	}
	return privKey, &privKey.PublicKey
}

// NewEd25519Key creates a new ED25519 key-pair
func NewEd25519Key() (ed25519.PrivateKey, ed25519.PublicKey) {
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err.Error())
	}
	return privKey, privKey.Public().(ed25519.PublicKey)
}

// NewRsaKey creates a new 2048 bit RSA key-pair
func NewRsaKey() (*rsa.PrivateKey, *rsa.PublicKey) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err.Error())
	}
	return privKey, &privKey.PublicKey
}

// PemToDer extracts the DER content from the given PEM text.
// The text must contain a single PEM armored block (-----BEGIN ... END-----).
// Anything else returns an error.
func PemToDer(pemText string) ([]byte, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, fmt.Errorf("not a valid PEM string")
	}
	return block.Bytes, nil
}

// PrivateKeyFromPEM reads the private key from a PEM encoded key or key-pair.
// This decodes PKCS8 (rsa, ecdsa, ed25519) keys and falls back to the legacy
// PKCS1 (rsa) and SEC1 (ecdsa) encodings.
// This returns an error if the PEM is not a valid private key.
func PrivateKeyFromPEM(privatePEM string) (crypto.PrivateKey, error) {
	derBytes, err := PemToDer(privatePEM)
	if err != nil {
		return nil, err
	}
	// rsa, ecdsa export a ptr, ed25519 exports a non-pointer key
	rawPrivateKey, err := x509.ParsePKCS8PrivateKey(derBytes)
	if err == nil {
		return rawPrivateKey, nil
	}
	// PKCS1 is RSA
	rsaKey, err := x509.ParsePKCS1PrivateKey(derBytes)
	if err == nil {
		return rsaKey, nil
	}
	// SEC1 is ECDSA
	ecKey, err := x509.ParseECPrivateKey(derBytes)
	if err == nil {
		return ecKey, nil
	}
	return nil, fmt.Errorf("PEM block is not a supported private key: %w", err)
}

// PrivateKeyToPEM returns the PKCS8 PEM encoded private key
func PrivateKeyToPEM(privKey crypto.PrivateKey) string {
	keyBytes, err := x509.MarshalPKCS8PrivateKey(privKey)
	if err != nil {
		panic("private key can't be marshalled: " + err.Error())
	}
	block := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}
	return string(pem.EncodeToMemory(block))
}
