package identity

import (
	"github.com/raiap/identity-core/pkg/cryptoutil"
)

// Card is an immutable, signed unit binding a public key to a set of
// authorized trust-line groups (spec.md §3). The signature covers
// {is_genesis, info, groups} in that order (spec.md §4.1).
type Card struct {
	IsGenesis bool
	Info      []byte
	groups    groupSet
	Sig       cryptoutil.Signature
	Key       cryptoutil.PublicKey
}

// NewCard signs and returns a new Card authored by sk over the given
// info and groups.
func NewCard(isGenesis bool, sk cryptoutil.PrivateKey, pk cryptoutil.PublicKey, info []byte, groups []TrustLineGroup) (*Card, error) {
	gs, err := newGroupSet(groups)
	if err != nil {
		return nil, err
	}
	c := &Card{IsGenesis: isGenesis, Info: info, groups: gs, Key: pk}
	c.Sig = cryptoutil.Sign(sk, c.signedData())
	return c, nil
}

// Groups returns the card's trust-line groups in canonical (commit-sorted) order.
func (c *Card) Groups() []TrustLineGroup {
	return c.groups.slice()
}

// Group looks up the trust-line group authorizing the given commitment.
func (c *Card) Group(commit string) (TrustLineGroup, bool) {
	g, ok := c.groups[commit]
	return g, ok
}

// Verify reports whether the card's signature is valid under its own key.
func (c *Card) Verify() bool {
	return cryptoutil.Verify(c.Key, c.signedData(), c.Sig)
}

func (c *Card) signedData() []byte {
	e := cryptoutil.NewEncoder()
	e.Bool(c.IsGenesis)
	e.Bytes(c.Info)
	c.groups.encode(e)
	return e.Finish()
}
