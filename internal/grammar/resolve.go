package grammar

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
)

// Resolve follows the redirect chain of n until it reaches a node that does
// not redirect. The returned node's children are the ones to traverse in
// place of n's. Targets are looked up from the root.
//
// A chain longer than the number of nodes in the tree can only be a cycle,
// which is reported as a *derrors.GrammarError, as is a target that does
// not exist.
func (t *Tree) Resolve(n *Node) (*Node, error) {
	current := n
	for hops := 0; current.hasRedirect; hops++ {
		if hops >= t.size {
			return nil, derrors.NewGrammarError(n.PathString(),
				fmt.Sprintf("redirect cycle detected starting at %q", n.PathString()))
		}

		target, ok := t.Lookup(current.redirect)
		if !ok {
			return nil, derrors.NewGrammarError(current.PathString(),
				fmt.Sprintf("redirect of %q points to missing node %q", current.PathString(), strings.Join(current.redirect, " ")))
		}
		current = target
	}
	return current, nil
}

// EffectiveChildren returns the children n exposes for traversal, after
// redirect resolution.
func (t *Tree) EffectiveChildren(n *Node) ([]*Node, error) {
	resolved, err := t.Resolve(n)
	if err != nil {
		return nil, err
	}
	return resolved.Children(), nil
}
