package streamchain

import (
	"io"
	"log"

	"github.com/raiap/identity-core/pkg/audit"
	"github.com/raiap/identity-core/pkg/cryptoutil"
	"github.com/raiap/identity-core/pkg/metrics"
)

// Chain is an ordered sequence of Streams where every non-root Stream
// is authorized by a master key listed in the groups of the Stream it
// replaces (spec.md §3, §4.4).
type Chain struct {
	streams []*Stream

	log     *log.Logger
	audit   *audit.Log
	metrics *metrics.Set
}

// Option configures optional collaborators on a Chain.
type Option func(*Chain)

// WithLogger attaches a logger; one line when the chain is opened and
// one per accepted Save.
func WithLogger(l *log.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// WithAudit attaches an audit.Log for observability bookkeeping.
func WithAudit(a *audit.Log) Option {
	return func(c *Chain) { c.audit = a }
}

// WithMetrics attaches a metrics.Set for Prometheus instrumentation.
func WithMetrics(m *metrics.Set) Option {
	return func(c *Chain) { c.metrics = m }
}

var discardLogger = log.New(io.Discard, "", 0)

// NewChain opens a Chain at genesis, which must carry no ExtRenew.
func NewChain(genesis *Stream, opts ...Option) (*Chain, error) {
	const op = "streamchain.NewChain"
	if genesis.Renew != nil {
		return nil, errInvalidState(op, "the root stream must not carry an ext renew")
	}
	c := &Chain{streams: []*Stream{genesis}, log: discardLogger}
	for _, opt := range opts {
		opt(c)
	}
	c.log.Printf("stream chain opened asi=%s", genesis.ASI)
	c.audit.Record("streamchain.opened", genesis.ASI, "")
	return c, nil
}

// Streams returns a copy of the chain's stream sequence, index 0 being
// the root.
func (c *Chain) Streams() []*Stream {
	out := make([]*Stream, len(c.streams))
	copy(out, c.streams)
	return out
}

// Latest returns the most recently appended stream.
func (c *Chain) Latest() *Stream {
	return c.streams[len(c.streams)-1]
}

// Save validates and appends stream, which must carry an ExtRenew
// authorizing the rotation from the chain's current latest stream
// (spec.md §4.4):
//
//  1. stream.Renew must be present.
//  2. The current latest stream must verify fully under ext.Key (its
//     own prior authoring key).
//  3. ext.Renew must carry an inline master key and verify under it.
//  4. That master key's commitment must be listed in the latest
//     stream's groups.
//  5. ext.Renew.Prev must equal the latest stream's current tip.
func (c *Chain) Save(stream *Stream) error {
	const op = "streamchain.Chain.Save"
	if stream.Renew == nil {
		return errMissingField(op, "a non-root stream must carry an ext renew")
	}
	ext := stream.Renew

	prior := c.Latest()
	if err := prior.VerifyStream(ext.Key); err != nil {
		return err
	}

	if ext.Renew.Key == nil {
		return errMissingField(op, "ext renew must carry an inline master key")
	}
	if !ext.Renew.Verify(ext.Renew.Key) {
		return errInvalidSignature(op)
	}
	mcommit := cryptoutil.Commit(ext.Renew.Key)
	if _, ok := prior.Group(mcommit); !ok {
		return errMissingAuthority(op, "master commit is not listed in the prior stream's groups")
	}
	if !cryptoutil.Equal(ext.Renew.Prev, prior.Prev()) {
		return errInvalidChainLink(op)
	}

	c.streams = append(c.streams, stream)

	c.log.Printf("stream chain rotated asi=%s streams=%d", stream.ASI, len(c.streams))
	c.audit.Record("streamchain.rotated", stream.ASI, "")
	if c.metrics != nil {
		c.metrics.StreamChainRotations.Inc()
	}
	return nil
}

// Check walks the chain in reverse starting from the latest stream,
// verified under latestKey, confirming at each step that the ExtRenew
// carried by the newer stream names a master group held by the older
// one and chains to its tip, and finishing successfully only when a
// root stream (no ExtRenew) is reached with no requirement left
// outstanding (spec.md §4.4).
func (c *Chain) Check(latestKey cryptoutil.PublicKey) error {
	const op = "streamchain.Chain.Check"
	if len(c.streams) == 0 {
		return errMissingField(op, "chain has no streams")
	}

	verifyKey := latestKey
	var expectMasterCommit string
	var expectPrevTip cryptoutil.Signature
	expectSet := false

	for i := len(c.streams) - 1; i >= 0; i-- {
		s := c.streams[i]

		if expectSet {
			if _, ok := s.Group(expectMasterCommit); !ok {
				return errMissingAuthority(op, "master commit required by the newer stream's renew is not listed in this stream's groups")
			}
			if !cryptoutil.Equal(expectPrevTip, s.Prev()) {
				return errInvalidChainLink(op)
			}
			expectSet = false
		}

		if err := s.VerifyStream(verifyKey); err != nil {
			return err
		}

		if s.Renew == nil {
			if i != 0 {
				return errMissingField(op, "non-root stream is missing its ext renew")
			}
			return nil
		}

		ext := s.Renew
		if ext.Renew.Key == nil {
			return errMissingField(op, "ext renew must carry an inline master key")
		}
		if !ext.Renew.Verify(ext.Renew.Key) {
			return errInvalidSignature(op)
		}
		expectMasterCommit = cryptoutil.Commit(ext.Renew.Key)
		expectPrevTip = ext.Renew.Prev
		expectSet = true
		verifyKey = ext.Key
	}
	return errMissingField(op, "chain root stream not found")
}
