// Package streamchain implements the anchor/stream half of the core
// (spec.md §3, §4.4): small published Anchor records that bind a
// profile key to an identity's UDI without revealing either, the
// Streams that third-party profile keys build atop that binding, and
// chains of Streams that rotate their signing key under a master
// trust-line group carried in the previous Stream.
package streamchain

import (
	"github.com/raiap/identity-core/pkg/cryptoutil"
)

// AnchorDomain and AnchorType name the reserved registry topic anchors
// are published under (spec.md §6, item 4).
const (
	AnchorDomain = "raiap.io"
	AnchorType   = "anchor"
)

// Anchor is a small published record binding a profile key to an
// identity's UDI via AL, the anchor locator hash, without revealing
// the profile key itself; the salt R and sequence number SN are carried
// in the clear (spec.md §3).
type Anchor struct {
	R  string
	SN uint64
	AL string
}

// NewAnchor signs {udi, r} with the profile key and sets AL to the
// base64-encoded SHA-256 of that signature (spec.md §4.4, §6 item 2).
func NewAnchor(profileSK cryptoutil.PrivateKey, udi, r string, sn uint64) *Anchor {
	sig := cryptoutil.Sign(profileSK, alSignedData(udi, r))
	return &Anchor{R: r, SN: sn, AL: cryptoutil.B64(cryptoutil.HashConcat(sig))}
}

// ALSignature reproduces the signature that produced a.AL, for a caller
// who holds profileSK and wants to hand the signature to a stream
// holder as the anchor-stream linkage witness (spec.md §4.4).
func (a *Anchor) ALSignature(profileSK cryptoutil.PrivateKey, udi string) cryptoutil.Signature {
	return cryptoutil.Sign(profileSK, alSignedData(udi, a.R))
}

// MarshalBinary encodes the anchor for publication as registry info
// (spec.md §4.4: "typically published by writing anchor.to_bytes() into
// a registry").
func (a *Anchor) MarshalBinary() ([]byte, error) {
	e := cryptoutil.NewEncoder()
	e.String(a.R)
	e.Uint64(a.SN)
	e.String(a.AL)
	return e.Finish(), nil
}

// UnmarshalAnchor decodes an Anchor previously produced by MarshalBinary.
func UnmarshalAnchor(data []byte) (*Anchor, error) {
	const op = "streamchain.UnmarshalAnchor"
	d := cryptoutil.NewDecoder(data)
	r, err := d.String()
	if err != nil {
		return nil, errDecode(op, err)
	}
	sn, err := d.Uint64()
	if err != nil {
		return nil, errDecode(op, err)
	}
	al, err := d.String()
	if err != nil {
		return nil, errDecode(op, err)
	}
	return &Anchor{R: r, SN: sn, AL: al}, nil
}

func alSignedData(udi, r string) []byte {
	e := cryptoutil.NewEncoder()
	e.String(udi)
	e.String(r)
	return e.Finish()
}
