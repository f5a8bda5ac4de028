// Package registry implements the per-identity, per-topic append-only
// signed chains described in spec.md §4.3: each entry is pinned to a
// specific card key and chains locally once its genesis entry is tied
// to the owning identity's current chain tip.
package registry

import (
	"github.com/raiap/identity-core/pkg/coreerr"
	"github.com/raiap/identity-core/pkg/cryptoutil"
)

// Operation distinguishes a registry entry's effect. DEL is a logical
// tombstone, never a physical removal (spec.md §4.3).
type Operation string

const (
	Set Operation = "SET"
	Del Operation = "DEL"
)

// Entry is one signed operation in a registry chain (spec.md §3). The
// signature covers {id, typ, oper, info, prev} in that order.
type Entry struct {
	ID       string
	Typ      string
	Oper     Operation
	Info     []byte
	Prev     cryptoutil.Signature
	Sig      cryptoutil.Signature
	KeyIndex int
}

// Sign produces a new Entry signed by sk, whose public key's commitment
// the caller is responsible for matching against the owning card at
// KeyIndex (the identity package enforces that before Save).
func Sign(sk cryptoutil.PrivateKey, id, typ string, oper Operation, info []byte, prev cryptoutil.Signature, keyIndex int) *Entry {
	e := &Entry{ID: id, Typ: typ, Oper: oper, Info: info, Prev: prev, KeyIndex: keyIndex}
	e.Sig = cryptoutil.Sign(sk, e.signedData())
	return e
}

// Verify reports whether the entry's signature is valid under key.
func (e *Entry) Verify(key cryptoutil.PublicKey) bool {
	return cryptoutil.Verify(key, e.signedData(), e.Sig)
}

func (e *Entry) signedData() []byte {
	enc := cryptoutil.NewEncoder()
	enc.String(e.ID)
	enc.String(e.Typ)
	enc.String(string(e.Oper))
	enc.Bytes(e.Info)
	enc.Bytes(e.Prev)
	return enc.Finish()
}

// Chain is the append-only sequence of Entry values sharing one topic id.
// All entries in a Chain share the same Typ (spec.md §8 property 6).
type Chain struct {
	entries []Entry
}

// Entries returns the chain's entries in append order. The returned
// slice is a copy; callers cannot mutate chain history through it.
func (c *Chain) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Last returns the most recently appended entry, or ok=false for an
// empty/nil chain.
func (c *Chain) Last() (Entry, bool) {
	if c == nil || len(c.entries) == 0 {
		return Entry{}, false
	}
	return c.entries[len(c.entries)-1], true
}

// Append validates and appends entry to the chain. genesisPrev is the
// identity's current chain tip, used only when this is the chain's
// first entry (spec.md §4.3: "Tying the first entry to identity.prev()
// binds the registry's genesis to the card that authored it").
func (c *Chain) Append(entry Entry, genesisPrev cryptoutil.Signature) (*Chain, error) {
	const op = "registry.Chain.Append"
	last, exists := c.Last()
	if !exists {
		if !sigEqual(entry.Prev, genesisPrev) {
			return nil, coreerr.New(coreerr.InvalidChainLink, op, "first entry must chain to the identity's current tip")
		}
	} else {
		if !sigEqual(entry.Prev, last.Sig) {
			return nil, coreerr.New(coreerr.InvalidChainLink, op, "entry.prev does not match the chain's last signature")
		}
		if entry.Typ != last.Typ {
			return nil, coreerr.New(coreerr.TypeMismatch, op, "entry typ differs from the chain's established type")
		}
	}

	var prevEntries []Entry
	if c != nil {
		prevEntries = c.entries
	}
	next := &Chain{entries: make([]Entry, len(prevEntries)+1)}
	copy(next.entries, prevEntries)
	next.entries[len(next.entries)-1] = entry
	return next, nil
}

func sigEqual(a, b cryptoutil.Signature) bool {
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
