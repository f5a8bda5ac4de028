package identity

import (
	"github.com/raiap/identity-core/pkg/cryptoutil"
)

// Cancel is a signed event disabling the identity (spec.md §3). The
// signature covers {is_close, prev} in that order. If IsClose is true,
// the acting key must belong to a MASTER group; this permanently
// closes the identity.
type Cancel struct {
	IsClose bool
	Prev    cryptoutil.Signature
	Sig     cryptoutil.Signature
	Key     cryptoutil.PublicKey
}

// NewCancel signs and returns a Cancel extending prev.
func NewCancel(isClose bool, sk cryptoutil.PrivateKey, pk cryptoutil.PublicKey, prev cryptoutil.Signature) *Cancel {
	c := &Cancel{IsClose: isClose, Prev: prev, Key: pk}
	c.Sig = cryptoutil.Sign(sk, c.signedData())
	return c
}

// Verify reports whether the Cancel's signature is valid under its own key.
func (c *Cancel) Verify() bool {
	return cryptoutil.Verify(c.Key, c.signedData(), c.Sig)
}

func (c *Cancel) signedData() []byte {
	e := cryptoutil.NewEncoder()
	e.Bool(c.IsClose)
	e.Bytes(c.Prev)
	return e.Finish()
}

// Renew is a signed event committing to the next card's key (spec.md
// §3). The signature covers {commit, prev}. The verifying key is
// either carried inline (Key != nil, issued while the identity is
// still enabled) or omitted (Key == nil, bound to a preceding Cancel's
// key) — spec.md §9 "Inline vs carried keys on Renew".
type Renew struct {
	Commit string
	Prev   cryptoutil.Signature
	Sig    cryptoutil.Signature
	Key    cryptoutil.PublicKey // nil when bound to a prior Cancel
}

// NewRenewWithKey signs a Renew that carries its verifying key inline
// (used while the identity is enabled, performing an implicit cancel).
func NewRenewWithKey(sk cryptoutil.PrivateKey, pk cryptoutil.PublicKey, nextKey cryptoutil.PublicKey, prev cryptoutil.Signature) *Renew {
	r := &Renew{Commit: cryptoutil.Commit(nextKey), Prev: prev, Key: pk}
	r.Sig = cryptoutil.Sign(sk, r.signedData())
	return r
}

// NewRenewBound signs a Renew that omits its verifying key, to be
// verified against a preceding Cancel's key instead.
func NewRenewBound(sk cryptoutil.PrivateKey, nextKey cryptoutil.PublicKey, prev cryptoutil.Signature) *Renew {
	r := &Renew{Commit: cryptoutil.Commit(nextKey), Prev: prev}
	r.Sig = cryptoutil.Sign(sk, r.signedData())
	return r
}

// Verify reports whether the Renew's signature is valid under key.
func (r *Renew) Verify(key cryptoutil.PublicKey) bool {
	return cryptoutil.Verify(key, r.signedData(), r.Sig)
}

func (r *Renew) signedData() []byte {
	e := cryptoutil.NewEncoder()
	e.String(r.Commit)
	e.Bytes(r.Prev)
	return e.Finish()
}

// Evolve records one completed or in-progress evolution: a Cancel
// alone (identity disabled, awaiting Renew), a Renew alone (a direct
// renew from an enabled identity, awaiting the matching Card), or a
// Cancel+Renew pair (awaiting the matching Card). Modeled as a struct with two optional
// fields, matching spec.md §3's Evolve record and acknowledging the
// "impossible states unrepresentable" design note (spec.md §9) only
// partially: Go has no sum types, so identity.go's state machine is
// the real enforcement of which combinations are reachable.
type Evolve struct {
	Cancel *Cancel
	Renew  *Renew
}
