package streamchain

import (
	"github.com/raiap/identity-core/pkg/cryptoutil"
	"github.com/raiap/identity-core/pkg/identity"
)

// Operation mirrors registry.Operation for the records a Stream carries
// (spec.md §4.4 Record).
type Operation string

const (
	Set Operation = "SET"
	Del Operation = "DEL"
)

// Record is the payload a StreamBlock (or a genesis) carries.
type Record struct {
	Oper Operation
	Info []byte
}

// ExtRenew authorizes a non-first Stream in a Chain: Renew is signed by
// a master key present in the previous Stream's groups, and Key is that
// previous Stream's own authoring (profile) public key (spec.md §3, §4.4).
type ExtRenew struct {
	Renew *identity.Renew
	Key   cryptoutil.PublicKey
}

// Stream is a signed chain of records authored by a profile key, linked
// to an Anchor via its ASI commitment (spec.md §3, §4.4).
type Stream struct {
	ASI     string
	groups  groupSet
	Genesis Record
	Renew   *ExtRenew
	Sig     cryptoutil.Signature
	Blocks  []StreamBlock
}

// StreamBlock is one appended record, chained to the previous block (or
// the genesis) by signature.
type StreamBlock struct {
	Record Record
	Prev   cryptoutil.Signature
	Sig    cryptoutil.Signature
}

// NewStream computes the ASI from {udi, r} signed by profileSK, then
// signs the genesis payload {asi, groups, genesis, renew?} (spec.md
// §4.4). renew is nil for a chain's root stream.
func NewStream(profileSK cryptoutil.PrivateKey, profilePK cryptoutil.PublicKey, udi, r string, groups []identity.TrustLineGroup, genesis Record, renew *ExtRenew) (*Stream, error) {
	gs, err := newGroupSet(groups)
	if err != nil {
		return nil, err
	}
	asiSig := cryptoutil.Sign(profileSK, asiSignedData(udi, r))
	s := &Stream{
		ASI:     cryptoutil.B64(cryptoutil.HashConcat([]byte(profilePK), asiSig)),
		groups:  gs,
		Genesis: genesis,
		Renew:   renew,
	}
	s.Sig = cryptoutil.Sign(profileSK, s.genesisSignedData())
	return s, nil
}

// Groups returns the stream's trust-line groups in canonical order.
func (s *Stream) Groups() []identity.TrustLineGroup {
	return s.groups.slice()
}

// Group looks up the trust-line group authorizing the given commitment.
func (s *Stream) Group(commit string) (identity.TrustLineGroup, bool) {
	g, ok := s.groups[commit]
	return g, ok
}

// Prev returns the stream's current chain tip: the last block's
// signature, or the genesis signature if no blocks have been appended.
func (s *Stream) Prev() cryptoutil.Signature {
	if len(s.Blocks) == 0 {
		return s.Sig
	}
	return s.Blocks[len(s.Blocks)-1].Sig
}

// Save appends block after validating it chains from the current tip
// (spec.md §4.4).
func (s *Stream) Save(block StreamBlock) error {
	const op = "streamchain.Stream.Save"
	if !cryptoutil.Equal(block.Prev, s.Prev()) {
		return errInvalidChainLink(op)
	}
	s.Blocks = append(s.Blocks, block)
	return nil
}

// NewStreamBlock signs a new block extending prev with profileSK.
func NewStreamBlock(profileSK cryptoutil.PrivateKey, record Record, prev cryptoutil.Signature) *StreamBlock {
	b := &StreamBlock{Record: record, Prev: prev}
	b.Sig = cryptoutil.Sign(profileSK, b.signedData())
	return b
}

// CheckASI recomputes SHA256(pk || sig) and compares it with s.ASI, then
// verifies sig as an AL-signature of {udi, r} under pk. Both must hold
// for the linkage to be accepted (spec.md §4.4, testable property 7).
func (s *Stream) CheckASI(udi, r string, pk cryptoutil.PublicKey, sig cryptoutil.Signature) bool {
	if cryptoutil.B64(cryptoutil.HashConcat([]byte(pk), sig)) != s.ASI {
		return false
	}
	return cryptoutil.Verify(pk, asiSignedData(udi, r), sig)
}

// VerifyStream verifies the genesis signature and every block's
// signature under pk (spec.md §4.4).
func (s *Stream) VerifyStream(pk cryptoutil.PublicKey) error {
	const op = "streamchain.Stream.VerifyStream"
	if !s.Verify(pk) {
		return errInvalidSignature(op)
	}
	for _, b := range s.Blocks {
		if !b.Verify(pk) {
			return errInvalidSignature(op)
		}
	}
	return nil
}

// Verify reports whether the genesis signature is valid under pk.
func (s *Stream) Verify(pk cryptoutil.PublicKey) bool {
	return cryptoutil.Verify(pk, s.genesisSignedData(), s.Sig)
}

// Verify reports whether the block's signature is valid under pk.
func (b *StreamBlock) Verify(pk cryptoutil.PublicKey) bool {
	return cryptoutil.Verify(pk, b.signedData(), b.Sig)
}

func (s *Stream) genesisSignedData() []byte {
	e := cryptoutil.NewEncoder()
	e.String(s.ASI)
	s.groups.encode(e)
	encodeRecord(e, s.Genesis)
	if s.Renew != nil {
		e.OptBytes(encodeExtRenew(s.Renew), true)
	} else {
		e.OptBytes(nil, false)
	}
	return e.Finish()
}

// encodeExtRenew flattens an ExtRenew into the bytes carried as the
// genesis signature's trailing optional field, so that tampering with
// either the authorizing renew or the prior stream's declared key
// invalidates the genesis signature (spec.md §4.1 Stream genesis row).
func encodeExtRenew(ext *ExtRenew) []byte {
	e := cryptoutil.NewEncoder()
	e.String(ext.Renew.Commit)
	e.Bytes(ext.Renew.Prev)
	e.Bytes(ext.Renew.Sig)
	e.Bytes(ext.Renew.Key)
	e.Bytes(ext.Key)
	return e.Finish()
}

func (b *StreamBlock) signedData() []byte {
	e := cryptoutil.NewEncoder()
	encodeRecord(e, b.Record)
	e.Bytes(b.Prev)
	return e.Finish()
}

func encodeRecord(e *cryptoutil.Encoder, r Record) {
	e.Bool(r.Oper == Set)
	e.Bytes(r.Info)
}

func asiSignedData(udi, r string) []byte {
	e := cryptoutil.NewEncoder()
	e.String(udi)
	e.String(r)
	return e.Finish()
}
