package registry

import (
	"testing"

	"github.com/raiap/identity-core/pkg/coreerr"
	"github.com/raiap/identity-core/pkg/cryptoutil"
)

func mustKey(t *testing.T) (cryptoutil.PublicKey, cryptoutil.PrivateKey) {
	t.Helper()
	pk, sk, err := cryptoutil.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return pk, sk
}

func TestSignVerify(t *testing.T) {
	_, sk := mustKey(t)
	pk, _ := mustKey(t)
	entry := Sign(sk, "idp.io", "test", Set, []byte("v1"), nil, 0)
	if !entry.Verify(sk.Public().(cryptoutil.PublicKey)) {
		t.Error("entry failed to verify under its own signing key")
	}
	if entry.Verify(pk) {
		t.Error("entry verified under an unrelated key")
	}
}

func TestAppendToNilChain(t *testing.T) {
	var chain *Chain
	genesisPrev := cryptoutil.Signature([]byte("tip"))
	_, sk := mustKey(t)
	entry := Sign(sk, "idp.io", "test", Set, []byte("v1"), genesisPrev, 0)

	next, err := chain.Append(*entry, genesisPrev)
	if err != nil {
		t.Fatalf("Append to nil chain: %v", err)
	}
	if len(next.Entries()) != 1 {
		t.Fatalf("chain length = %d, want 1", len(next.Entries()))
	}
}

func TestAppendRejectsBrokenLink(t *testing.T) {
	var chain *Chain
	genesisPrev := cryptoutil.Signature([]byte("tip"))
	_, sk := mustKey(t)
	entry := Sign(sk, "idp.io", "test", Set, []byte("v1"), genesisPrev, 0)

	if _, err := chain.Append(*entry, cryptoutil.Signature([]byte("different tip"))); !errIsKind(err, coreerr.InvalidChainLink) {
		t.Fatalf("Append with mismatched genesis prev: got %v, want InvalidChainLink", err)
	}
}

func TestAppendRejectsTypeMismatch(t *testing.T) {
	var chain *Chain
	genesisPrev := cryptoutil.Signature([]byte("tip"))
	_, sk := mustKey(t)
	entry1 := Sign(sk, "idp.io", "test", Set, []byte("v1"), genesisPrev, 0)

	chain, err := chain.Append(*entry1, genesisPrev)
	if err != nil {
		t.Fatalf("Append entry1: %v", err)
	}

	entry2 := Sign(sk, "idp.io", "different", Set, []byte("v2"), entry1.Sig, 0)
	if _, err := chain.Append(*entry2, genesisPrev); !errIsKind(err, coreerr.TypeMismatch) {
		t.Fatalf("Append with changed typ: got %v, want TypeMismatch", err)
	}
}

func TestChainImmutableOnAppend(t *testing.T) {
	var chain *Chain
	genesisPrev := cryptoutil.Signature([]byte("tip"))
	_, sk := mustKey(t)
	entry1 := Sign(sk, "idp.io", "test", Set, []byte("v1"), genesisPrev, 0)

	next, err := chain.Append(*entry1, genesisPrev)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(chain.Entries()) != 0 {
		t.Fatal("Append mutated the receiver's predecessor chain")
	}
	if len(next.Entries()) != 1 {
		t.Fatal("Append did not extend the new chain")
	}
}

func errIsKind(err error, kind coreerr.Kind) bool {
	return coreerr.OfKind(err, kind)
}
