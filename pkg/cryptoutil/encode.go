package cryptoutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Encoder builds the deterministic byte stream fed to Sign/Verify. The
// only requirement (spec.md §4.1) is that the same sequence of Encoder
// method calls, in the same order, is made by both the signer and the
// verifier for a given logical value; encoding need not be canonical
// across implementations. Every scalar is fixed-width; every variable
// length field is length-prefixed with a big-endian uint64.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bool appends a single byte: 1 for true, 0 for false.
func (e *Encoder) Bool(b bool) *Encoder {
	if b {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
	return e
}

// Uint64 appends v as 8 big-endian bytes.
func (e *Encoder) Uint64(v uint64) *Encoder {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
	return e
}

// Bytes appends a big-endian uint64 length prefix followed by b.
func (e *Encoder) Bytes(b []byte) *Encoder {
	e.Uint64(uint64(len(b)))
	e.buf.Write(b)
	return e
}

// String appends s as a length-prefixed byte slice.
func (e *Encoder) String(s string) *Encoder {
	return e.Bytes([]byte(s))
}

// OptBytes encodes an optional byte slice as a presence flag followed
// by the bytes when present, modeling Rust's Option<T> in the signed
// field orders of spec.md §4.1 (e.g. Stream genesis's trailing `renew?`).
func (e *Encoder) OptBytes(b []byte, present bool) *Encoder {
	e.Bool(present)
	if present {
		e.Bytes(b)
	}
	return e
}

// Finish returns the accumulated byte stream.
func (e *Encoder) Finish() []byte {
	return e.buf.Bytes()
}

// Decoder reads back a byte stream produced by Encoder. It is used only
// for opaque blobs that round-trip through storage (e.g. an Anchor);
// signed payloads are never decoded, only re-encoded and compared.
type Decoder struct {
	buf []byte
}

// NewDecoder wraps data for sequential reads matching the Encoder calls
// that produced it.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

func (d *Decoder) take(n int) ([]byte, error) {
	if len(d.buf) < n {
		return nil, fmt.Errorf("cryptoutil: decode: need %d bytes, have %d", n, len(d.buf))
	}
	out := d.buf[:n]
	d.buf = d.buf[n:]
	return out, nil
}

// Uint64 reads 8 big-endian bytes.
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Bytes reads a length-prefixed byte slice.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.Uint64()
	if err != nil {
		return nil, err
	}
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// String reads a length-prefixed string.
func (d *Decoder) String() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
