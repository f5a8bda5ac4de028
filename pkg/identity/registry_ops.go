package identity

import (
	"github.com/raiap/identity-core/pkg/registry"
)

// Save validates and appends entry to its registry chain (spec.md
// §4.3). The entry must be signed by the identity's current card key,
// at that card's index; a new chain is created on first use, with its
// genesis entry bound to the identity's current prev().
func (id *Identity) Save(entry registry.Entry) error {
	const op = "identity.Save"
	if !id.enabled {
		return errInvalidState(op, "identity is disabled")
	}

	currentIndex := len(id.cards) - 1
	if entry.KeyIndex != currentIndex {
		return errIndexMismatch(op, currentIndex, entry.KeyIndex)
	}

	card := id.CurrentCard()
	if !entry.Verify(card.Key) {
		return errInvalidSignature(op)
	}

	prev, err := id.Prev()
	if err != nil {
		return err
	}

	chain := id.regs[entry.ID]
	next, err := chain.Append(entry, prev)
	if err != nil {
		return err
	}
	id.regs[entry.ID] = next

	id.log.Printf("registry entry saved udi=%s id=%s oper=%s", id.udi, entry.ID, entry.Oper)
	id.audit.Record("registry.saved", entry.ID, string(entry.Oper))
	if id.metrics != nil {
		id.metrics.RegistryEntriesTotal.WithLabelValues(string(entry.Oper)).Inc()
	}
	return nil
}

// Registry returns the chain for topic id, and whether one exists.
func (id *Identity) Registry(topicID string) (*registry.Chain, bool) {
	chain, ok := id.regs[topicID]
	return chain, ok
}
