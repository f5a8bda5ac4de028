package identity

import (
	"testing"

	"github.com/raiap/identity-core/pkg/coreerr"
	"github.com/raiap/identity-core/pkg/cryptoutil"
	"github.com/raiap/identity-core/pkg/registry"
)

// registrySaveFixture builds a fresh identity and returns it alongside
// the genesis card's own signing key, which is what registry entries
// at key_index 0 must be signed with.
func registrySaveFixture(t *testing.T) (*Identity, cryptoutil.PrivateKey) {
	t.Helper()
	mpk, _ := mustKey(t)
	gpk, gsk := mustKey(t)

	card, err := NewCard(true, gsk, gpk, []byte("genesis"), []TrustLineGroup{NewTrustLineGroup(Master, mpk)})
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	id, err := Create(card)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id, gsk
}

// TestRegistrySaveChain is seed scenario S5.
func TestRegistrySaveChain(t *testing.T) {
	id, gsk := registrySaveFixture(t)

	idPrev, err := id.Prev()
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}

	entry1 := registry.Sign(gsk, "idp.io", "test", registry.Set, []byte("v1"), idPrev, 0)
	if err := id.Save(*entry1); err != nil {
		t.Fatalf("Save entry1: %v", err)
	}

	entry2 := registry.Sign(gsk, "idp.io", "test", registry.Set, []byte("v2"), entry1.Sig, 0)
	if err := id.Save(*entry2); err != nil {
		t.Fatalf("Save entry2: %v", err)
	}

	chain, ok := id.Registry("idp.io")
	if !ok {
		t.Fatal("expected a registry chain under idp.io")
	}
	if len(chain.Entries()) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain.Entries()))
	}

	entry3 := registry.Sign(gsk, "idp.io", "test", registry.Set, []byte("v3"), idPrev, 0)
	if err := id.Save(*entry3); !coreerr.OfKind(err, coreerr.InvalidChainLink) {
		t.Fatalf("Save with stale prev: got %v, want InvalidChainLink", err)
	}
}

func TestRegistrySaveRejectsWrongIndex(t *testing.T) {
	id, gsk := registrySaveFixture(t)

	idPrev, err := id.Prev()
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	entry := registry.Sign(gsk, "idp.io", "test", registry.Set, nil, idPrev, 1)
	if err := id.Save(*entry); !coreerr.OfKind(err, coreerr.IndexMismatch) {
		t.Fatalf("Save with wrong key_index: got %v, want IndexMismatch", err)
	}
}

func TestRegistrySaveRejectsTypeChange(t *testing.T) {
	id, gsk := registrySaveFixture(t)

	idPrev, err := id.Prev()
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	entry1 := registry.Sign(gsk, "idp.io", "test", registry.Set, []byte("v1"), idPrev, 0)
	if err := id.Save(*entry1); err != nil {
		t.Fatalf("Save entry1: %v", err)
	}

	entry2 := registry.Sign(gsk, "idp.io", "other-type", registry.Set, []byte("v2"), entry1.Sig, 0)
	if err := id.Save(*entry2); !coreerr.OfKind(err, coreerr.TypeMismatch) {
		t.Fatalf("Save with a changed typ: got %v, want TypeMismatch", err)
	}
}

func TestRegistryReadMissingTopic(t *testing.T) {
	id, _ := registrySaveFixture(t)
	if _, ok := id.Registry("nope.io"); ok {
		t.Fatal("expected no registry chain for an unused topic")
	}
}
