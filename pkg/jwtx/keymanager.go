package jwtx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/healthdesk/pkg/cryptox"
)

// KeyManager bundles the registry's signer with a verifier for its tokens.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// NewKeyManager wires a signer into a fresh KeySet and verifier for issuer.
func NewKeyManager(signer Signer, issuer string) (*KeyManager, error) {
	if issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	keys := NewKeySet()
	keys.AddSigner(signer)

	return &KeyManager{
		Signer:   signer,
		Verifier: NewVerifierEdDSA(keys, issuer),
		KeySet:   keys,
	}, nil
}

// LoadOrGenerateKey reads a PEM Ed25519 key from path, creating one (0600)
// when the file is missing. An empty path generates a key that only lives in
// memory, so every token dies with the process.
func LoadOrGenerateKey(path string) (signer *EdDSASigner, generated bool, err error) {
	if path == "" {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, false, err
		}
		s, err := NewSignerEdDSA("", pemKey)
		return s, true, err
	}

	pemKey, err := os.ReadFile(path)
	switch {
	case err == nil:
		s, err := NewSignerEdDSA("", pemKey)
		return s, false, err

	case errors.Is(err, os.ErrNotExist):
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, false, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, false, fmt.Errorf("jwtx: create key dir: %w", err)
		}
		if err := os.WriteFile(path, pemKey, 0o600); err != nil {
			return nil, false, fmt.Errorf("jwtx: write key file: %w", err)
		}
		s, err := NewSignerEdDSA("", pemKey)
		return s, true, err

	default:
		return nil, false, fmt.Errorf("jwtx: read key file: %w", err)
	}
}
