package streamchain

import (
	"fmt"

	"github.com/raiap/identity-core/pkg/coreerr"
)

func errDuplicateGroupCommit(commit string) error {
	return coreerr.New(coreerr.InvalidState, "streamchain.Stream", fmt.Sprintf("duplicate trust-line group commit %q", commit))
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

func errDecode(op string, cause error) error {
	return coreerr.Wrap(coreerr.DecodeError, op, "malformed anchor encoding", cause)
}
