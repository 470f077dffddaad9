package jwtx

import (
	"crypto/ed25519"
	"sync"
)

// KeySet holds the public keys tokens may be verified against, by kid.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// AddSigner registers a signer's public key under its kid.
func (k *KeySet) AddSigner(s Signer) {
	k.Add(s.KID(), s.PublicKey())
}

func (k *KeySet) Add(kid string, pub ed25519.PublicKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = pub
}

func (k *KeySet) Get(kid string) (ed25519.PublicKey, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	pub, ok := k.pub[kid]
	return pub, ok
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}
