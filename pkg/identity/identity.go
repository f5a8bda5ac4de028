package identity

import (
	"io"
	"log"

	"github.com/raiap/identity-core/pkg/audit"
	"github.com/raiap/identity-core/pkg/cryptoutil"
	"github.com/raiap/identity-core/pkg/metrics"
	"github.com/raiap/identity-core/pkg/policy"
	"github.com/raiap/identity-core/pkg/registry"
)

// Identity is a signed hash-chain of Cards, punctuated by evolution
// events that permit controlled key rotation under the authority of a
// card's trust-line groups, and hosting a set of named, per-topic
// registry chains (spec.md §3). The zero value is not usable; build
// one with Create.
type Identity struct {
	udi   string
	cards []*Card
	evols []Evolve

	regs map[string]*registry.Chain

	enabled bool

	policy policy.Policy
	log    *log.Logger
	audit  *audit.Log
	metrics *metrics.Set
}

// Option configures optional collaborators on an Identity.
type Option func(*Identity)

// WithPolicy overrides the default policy.
func WithPolicy(p policy.Policy) Option {
	return func(id *Identity) { id.policy = p }
}

// WithLogger attaches a logger; one line per accepted state transition.
func WithLogger(l *log.Logger) Option {
	return func(id *Identity) { id.log = l }
}

// WithAudit attaches an audit.Log for observability bookkeeping.
func WithAudit(a *audit.Log) Option {
	return func(id *Identity) { id.audit = a }
}

// WithMetrics attaches a metrics.Set for Prometheus instrumentation.
func WithMetrics(m *metrics.Set) Option {
	return func(id *Identity) { id.metrics = m }
}

var discardLogger = log.New(io.Discard, "", 0)

// Create validates genesis and, if valid, returns a new enabled
// Identity whose UDI is the commitment of the genesis card's key
// (spec.md §4.2).
func Create(genesis *Card, opts ...Option) (*Identity, error) {
	const op = "identity.Create"
	if genesis == nil || !genesis.Verify() {
		return nil, errInvalidSignature(op)
	}
	if !genesis.IsGenesis {
		return nil, errInvalidState(op, "the first card must be a genesis card")
	}

	id := &Identity{
		udi:     cryptoutil.Commit(genesis.Key),
		cards:   []*Card{genesis},
		regs:    make(map[string]*registry.Chain),
		enabled: true,
		policy:  policy.Default(),
		log:     discardLogger,
	}
	for _, opt := range opts {
		opt(id)
	}
	id.log.Printf("identity created udi=%s", id.udi)
	id.audit.Record("identity.created", id.udi, "genesis card accepted")
	if id.metrics != nil {
		id.metrics.CardsTotal.Inc()
	}
	return id, nil
}

// UDI returns the identity's immutable unique distributed identifier.
func (id *Identity) UDI() string { return id.udi }

// Enabled reports whether the identity currently accepts appends and cancels.
func (id *Identity) Enabled() bool { return id.enabled }

// CurrentCard returns the most recently appended card. An Identity
// always has at least one card (spec.md §8 property 1), so this never
// returns nil.
func (id *Identity) CurrentCard() *Card {
	return id.cards[len(id.cards)-1]
}

// Cards returns a copy of the identity's card sequence, index 0 being genesis.
func (id *Identity) Cards() []*Card {
	out := make([]*Card, len(id.cards))
	copy(out, id.cards)
	return out
}

// Evols returns a copy of the identity's evolution record sequence.
func (id *Identity) Evols() []Evolve {
	out := make([]Evolve, len(id.evols))
	copy(out, id.evols)
	return out
}

// Prev returns the chain's current tip signature: the last card's
// signature while enabled; otherwise the signature of the pending
// renew if present, else the pending cancel's signature (spec.md §4.2).
func (id *Identity) Prev() (cryptoutil.Signature, error) {
	const op = "identity.Prev"
	if id.enabled {
		return id.CurrentCard().Sig, nil
	}
	if len(id.evols) == 0 {
		return nil, errInvalidState(op, "identity is disabled but has no evolutions")
	}
	last := id.evols[len(id.evols)-1]
	if last.Renew != nil {
		return last.Renew.Sig, nil
	}
	if last.Cancel == nil {
		return nil, errInvalidState(op, "expected a pending cancel")
	}
	return last.Cancel.Sig, nil
}

// Cancel validates and applies a Cancel event (spec.md §4.2). On
// success, enabled becomes false and a Cancel-only Evolve is appended.
// If ev.IsClose is true and accepted, the identity is permanently
// closed (a later Renew always fails with PermanentlyClosed).
func (id *Identity) Cancel(ev *Cancel) error {
	const op = "identity.Cancel"
	if !id.enabled {
		return errInvalidState(op, "identity is already disabled")
	}

	card := id.CurrentCard()
	if !cryptoutil.Equal(ev.Prev, card.Sig) {
		return errInvalidChainLink(op)
	}
	if !ev.Verify() {
		return errInvalidSignature(op)
	}

	commit := cryptoutil.Commit(ev.Key)
	group, ok := card.Group(commit)
	if !ok {
		return errMissingAuthority(op, "no trust-line group matches the acting key")
	}
	if ev.IsClose && group.Type != Master {
		return errMissingAuthority(op, "only a MASTER group may close an identity permanently")
	}

	id.enabled = false
	id.evols = append(id.evols, Evolve{Cancel: ev})

	id.log.Printf("identity cancelled udi=%s is_close=%v", id.udi, ev.IsClose)
	kind := "identity.cancelled"
	if ev.IsClose {
		kind = "identity.closed"
	}
	id.audit.Record(kind, id.udi, "")
	return nil
}

// Renew validates and applies a Renew event (spec.md §4.2). Two cases
// determine the verifying key: from an enabled identity, ev.Key must
// be present and the call appends a Renew-only evolution (no Cancel
// recorded), performing an implicit cancel (spec.md §9 "direct renew");
// from a disabled identity with a pending cancel-only evolution, ev.Key
// is not consulted and verification uses that cancel's key, replacing
// the evols tail with the completed pair. In both cases the identity
// remains disabled afterward; evolve() re-enables it.
func (id *Identity) Renew(ev *Renew) error {
	const op = "identity.Renew"
	card := id.CurrentCard()

	var verifyKey cryptoutil.PublicKey
	var next Evolve
	var replaceTail bool

	if id.enabled {
		if !cryptoutil.Equal(ev.Prev, card.Sig) {
			return errInvalidChainLink(op)
		}
		if ev.Key == nil {
			return errMissingField(op, "a renew issued while enabled must carry its verifying key inline")
		}
		verifyKey = ev.Key
		next = Evolve{Cancel: nil, Renew: ev}
	} else {
		if len(id.evols) == 0 {
			return errInvalidState(op, "identity is disabled but has no evolutions")
		}
		last := id.evols[len(id.evols)-1]
		if last.Cancel == nil || last.Renew != nil {
			return errInvalidState(op, "identity has no pending cancel awaiting a renew")
		}
		if last.Cancel.IsClose {
			return errPermanentlyClosed(op)
		}
		if !cryptoutil.Equal(ev.Prev, last.Cancel.Sig) {
			return errInvalidChainLink(op)
		}
		verifyKey = last.Cancel.Key
		next = Evolve{Cancel: last.Cancel, Renew: ev}
		replaceTail = true
	}

	if !ev.Verify(verifyKey) {
		return errInvalidSignature(op)
	}

	commit := cryptoutil.Commit(verifyKey)
	if _, ok := card.Group(commit); !ok {
		return errMissingAuthority(op, "no trust-line group matches the verifying key")
	}

	if id.policy.RequireGroupForNextKey {
		if _, ok := card.Group(ev.Commit); !ok {
			return errMissingAuthority(op, "policy requires the next card's key to already own a trust-line group")
		}
	}

	id.enabled = false
	if replaceTail {
		id.evols[len(id.evols)-1] = next
	} else {
		id.evols = append(id.evols, next)
	}

	id.log.Printf("identity renew accepted udi=%s next_commit=%s", id.udi, ev.Commit)
	id.audit.Record("identity.renewed", id.udi, ev.Commit)
	return nil
}

// Evolve validates and appends the new card matching a pending renew,
// re-enabling the identity (spec.md §4.2).
func (id *Identity) Evolve(card *Card) error {
	const op = "identity.Evolve"
	if id.enabled {
		return errInvalidState(op, "cannot evolve an enabled identity")
	}
	if card.IsGenesis {
		return errInvalidState(op, "cannot evolve onto a genesis card")
	}
	if len(id.evols) == 0 {
		return errInvalidState(op, "identity is disabled but has no evolutions")
	}
	last := id.evols[len(id.evols)-1]
	if last.Renew == nil {
		return errMissingField(op, "a renew must be pending to evolve")
	}
	if last.Renew.Commit != cryptoutil.Commit(card.Key) {
		return errInvalidState(op, "card key does not match the pending renew's commitment")
	}
	if !card.Verify() {
		return errInvalidSignature(op)
	}

	id.enabled = true
	id.cards = append(id.cards, card)

	id.log.Printf("identity evolved udi=%s cards=%d", id.udi, len(id.cards))
	id.audit.Record("identity.evolved", id.udi, "")
	if id.metrics != nil {
		id.metrics.CardsTotal.Inc()
		id.metrics.EvolutionsTotal.Inc()
	}
	return nil
}

