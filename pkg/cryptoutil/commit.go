package cryptoutil

import (
	"crypto/sha256"
	"encoding/base64"
)

// Commit returns the commitment of a public key: base64(SHA-256(pk)).
// A commitment names a key without revealing it (spec.md §3).
func Commit(pk PublicKey) string {
	sum := sha256.Sum256([]byte(pk))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// HashConcat returns the raw SHA-256 digest of the concatenation of parts.
// Used by the anchor/stream AL and ASI derivations (spec.md §4.4).
func HashConcat(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// B64 base64-encodes a raw digest for use as a string identifier.
func B64(digest []byte) string {
	return base64.StdEncoding.EncodeToString(digest)
}
