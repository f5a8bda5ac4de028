package streamchain

import (
	"sort"

	"github.com/raiap/identity-core/pkg/cryptoutil"
	"github.com/raiap/identity-core/pkg/identity"
)

// groupSet is a Stream's own commit-keyed set of trust-line groups,
// mirroring the one a Card carries (spec.md §3: "Chain of streams...
// authorized by a master key present in the previous Stream's groups").
// Streams and Cards are distinct chains with independently-scoped
// authority, so this set is not shared with package identity.
type groupSet map[string]identity.TrustLineGroup

func newGroupSet(groups []identity.TrustLineGroup) (groupSet, error) {
	gs := make(groupSet, len(groups))
	for _, g := range groups {
		if _, exists := gs[g.Commit]; exists {
			return nil, errDuplicateGroupCommit(g.Commit)
		}
		gs[g.Commit] = g
	}
	return gs, nil
}

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
		e.Bool(g.Type == identity.Master)
	}
}

func (gs groupSet) slice() []identity.TrustLineGroup {
	out := make([]identity.TrustLineGroup, 0, len(gs))
	for _, c := range gs.sortedCommits() {
		out = append(out, gs[c])
	}
	return out
}
