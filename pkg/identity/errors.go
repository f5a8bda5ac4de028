package identity

import (
	"fmt"

	"github.com/raiap/identity-core/pkg/coreerr"
)

func errDuplicateGroupCommit(commit string) error {
	return coreerr.New(coreerr.InvalidState, "identity.Card", fmt.Sprintf("duplicate trust-line group commit %q", commit))
}

func errInvalidSignature(op string) error {
	return coreerr.New(coreerr.InvalidSignature, op, "signature did not verify under the expected key")
}

func errInvalidChainLink(op string) error {
	return coreerr.New(coreerr.InvalidChainLink, op, "prev does not match the expected chain tip")
}

func errInvalidState(op, msg string) error {
	return coreerr.New(coreerr.InvalidState, op, msg)
}

func errMissingAuthority(op, msg string) error {
	return coreerr.New(coreerr.MissingAuthority, op, msg)
}

func errMissingField(op, msg string) error {
	return coreerr.New(coreerr.MissingField, op, msg)
}

func errPermanentlyClosed(op string) error {
	return coreerr.New(coreerr.PermanentlyClosed, op, "identity was closed permanently by a master cancel")
}

func errIndexMismatch(op string, want, got int) error {
	return coreerr.New(coreerr.IndexMismatch, op, fmt.Sprintf("registry key_index %d does not match current card index %d", got, want))
}
