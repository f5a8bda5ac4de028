package cryptoutil

import "testing"

func TestSignAndVerify(t *testing.T) {
	pk, sk, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	data := []byte("hello identity core")
	sig := Sign(sk, data)

	if !Verify(pk, data, sig) {
		t.Error("valid signature failed to verify")
	}

	if Verify(pk, []byte("tampered"), sig) {
		t.Error("verify succeeded against the wrong message")
	}

	otherPK, _, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if Verify(otherPK, data, sig) {
		t.Error("verify succeeded under the wrong key")
	}
}

func TestCommitDeterministic(t *testing.T) {
	pk, _, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if Commit(pk) != Commit(pk) {
		t.Error("Commit is not deterministic for the same key")
	}

	other, _, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if Commit(pk) == Commit(other) {
		t.Error("two distinct keys produced the same commitment")
	}
}

func TestEqual(t *testing.T) {
	a := Signature([]byte{1, 2, 3})
	b := Signature([]byte{1, 2, 3})
	c := Signature([]byte{1, 2, 4})

	if !Equal(a, b) {
		t.Error("identical signatures compared unequal")
	}
	if Equal(a, c) {
		t.Error("distinct signatures compared equal")
	}
	if Equal(a, Signature([]byte{1, 2})) {
		t.Error("signatures of different length compared equal")
	}
}

func TestEncoderDeterministic(t *testing.T) {
	build := func() []byte {
		e := NewEncoder()
		e.Bool(true)
		e.Uint64(42)
		e.String("topic")
		e.Bytes([]byte{9, 9})
		e.OptBytes(nil, false)
		return e.Finish()
	}

	if string(build()) != string(build()) {
		t.Error("encoder output is not deterministic for identical inputs")
	}

	e1 := NewEncoder()
	e1.String("a")
	e1.String("bb")

	e2 := NewEncoder()
	e2.String("ab")
	e2.String("b")

	if string(e1.Finish()) == string(e2.Finish()) {
		t.Error("length-prefixing failed to distinguish differently-split strings")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.String("raiap.io/test")
	e.Uint64(7)
	e.Bytes([]byte("payload"))

	d := NewDecoder(e.Finish())
	s, err := d.String()
	if err != nil || s != "raiap.io/test" {
		t.Fatalf("String roundtrip: got (%q, %v)", s, err)
	}
	n, err := d.Uint64()
	if err != nil || n != 7 {
		t.Fatalf("Uint64 roundtrip: got (%d, %v)", n, err)
	}
	b, err := d.Bytes()
	if err != nil || string(b) != "payload" {
		t.Fatalf("Bytes roundtrip: got (%q, %v)", b, err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	d := NewDecoder([]byte{0, 0})
	if _, err := d.Uint64(); err == nil {
		t.Error("expected an error decoding a truncated uint64")
	}
}
