// Package coreerr defines the typed error kinds returned by every
// signature-chain operation in this module.
package coreerr

import (
	"errors"
	"fmt"
)

// Kind names the semantic category of a rejected operation, independent
// of the diagnostic message attached to it.
type Kind string

const (
	// InvalidSignature means a signature did not verify under the expected key.
	InvalidSignature Kind = "invalid_signature"
	// InvalidChainLink means a prev field did not equal the expected tip.
	InvalidChainLink Kind = "invalid_chain_link"
	// InvalidState means the operation is not legal in the current state
	// (e.g. cancel on a disabled identity, evolve while enabled).
	InvalidState Kind = "invalid_state_for_operation"
	// MissingAuthority means no trust-line group matches the acting key's
	// commitment, or a master-only action was attempted by a slave key.
	MissingAuthority Kind = "missing_authority"
	// MissingField means a required optional value is absent (e.g. a
	// Renew issued while enabled without an inline key).
	MissingField Kind = "missing_field"
	// IndexMismatch means a registry entry's key_index does not match
	// the identity's current card position.
	IndexMismatch Kind = "index_mismatch"
	// TypeMismatch means a registry entry's typ differs from the type
	// already established for that chain.
	TypeMismatch Kind = "type_mismatch"
	// PermanentlyClosed means a renew was attempted after a closing cancel.
	PermanentlyClosed Kind = "permanently_closed"
	// DecodeError means deserialization of an opaque blob failed.
	DecodeError Kind = "decode_error"
)

// Error is the typed error returned by every rejected operation. The
// pre-check-then-commit discipline (spec.md §7) guarantees that when an
// Error is returned, no mutation was applied.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "identity.Cancel"
	Msg  string
	Err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers match by Kind alone: errors.Is(err, coreerr.New(coreerr.InvalidChainLink, "", "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an Error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap constructs an Error of the given kind around a lower-level cause.
func Wrap(kind Kind, op, msg string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: cause}
}

// OfKind reports whether err (or any error it wraps) is a coreerr.Error
// of the given kind.
func OfKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
