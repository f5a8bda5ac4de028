// Package cryptoutil wraps the external signature and hash primitives
// the identity, registry and stream-chain packages build on: Ed25519
// signing, SHA-256 commitments, and the deterministic field-ordered
// encoding that sign/verify share (spec.md §4.1, §6).
package cryptoutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// PublicKey and PrivateKey alias the standard library's Ed25519 types
// directly; the module never needs a wider key abstraction.
type (
	PublicKey  = ed25519.PublicKey
	PrivateKey = ed25519.PrivateKey
)

// Signature is a detached Ed25519 signature (64 bytes).
type Signature []byte

// GenerateKey produces a fresh Ed25519 key pair.
func GenerateKey() (PublicKey, PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("cryptoutil: generate key: %w", err)
	}
	return pub, priv, nil
}

// Sign signs the given bytes with sk.
func Sign(sk PrivateKey, data []byte) Signature {
	return Signature(ed25519.Sign(sk, data))
}

// Verify reports whether sig is a valid Ed25519 signature of data under pk.
func Verify(pk PublicKey, data []byte, sig Signature) bool {
	if len(pk) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pk, data, []byte(sig))
}

// Equal reports whether two signatures are byte-identical.
func Equal(a, b Signature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
