package identity

import (
	"sort"

	"github.com/raiap/identity-core/pkg/cryptoutil"
)

// GroupType distinguishes a trust-line group's authority level.
type GroupType string

const (
	// Master groups may close an identity permanently and always carry
	// authority to cancel/renew.
	Master GroupType = "MASTER"
	// Slave groups may cancel/renew but never close permanently.
	Slave GroupType = "SLAVE"
)

// TrustLineGroup names a key, by commitment, that is authorized to act
// on a Card's behalf (spec.md §3).
type TrustLineGroup struct {
	Type   GroupType
	Commit string
}

// NewTrustLineGroup builds a TrustLineGroup for pk.
func NewTrustLineGroup(typ GroupType, pk cryptoutil.PublicKey) TrustLineGroup {
	return TrustLineGroup{Type: typ, Commit: cryptoutil.Commit(pk)}
}

// groupSet is the canonical, commit-keyed representation of a Card's
// groups: order-insensitive for lookups, but sorted by commit whenever
// it must be laid out for signing (spec.md §3 invariant: commits unique
// within one card).
type groupSet map[string]TrustLineGroup

func newGroupSet(groups []TrustLineGroup) (groupSet, error) {
	gs := make(groupSet, len(groups))
	for _, g := range groups {
		if _, exists := gs[g.Commit]; exists {
			return nil, errDuplicateGroupCommit(g.Commit)
		}
		gs[g.Commit] = g
	}
	return gs, nil
}

// sortedCommits returns the group commits in ascending order, the
// canonical order used when encoding groups for signing.
func (gs groupSet) sortedCommits() []string {
	commits := make([]string, 0, len(gs))
	for c := range gs {
		commits = append(commits, c)
	}
	sort.Strings(commits)
	return commits
}

func (gs groupSet) encode(e *cryptoutil.Encoder) {
	commits := gs.sortedCommits()
	e.Uint64(uint64(len(commits)))
	for _, c := range commits {
		g := gs[c]
		e.String(c)
		e.Bool(g.Type == Master)
	}
}

func (gs groupSet) slice() []TrustLineGroup {
	out := make([]TrustLineGroup, 0, len(gs))
	for _, c := range gs.sortedCommits() {
		out = append(out, gs[c])
	}
	return out
}
