package minimizer

import (
	"errors"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Node is a generic AST node for the optimizer's pass/collapse rewrites
// (spec §3 "AST": "tree of Nodes, each carrying a string value, a parent
// reference (nullable for root), and an ordered sequence of child
// Nodes").
type Node struct {
	Value    string
	Parent   *Node
	Children []*Node
}

// passValue marks a node collapsible by virtue of being structurally
// inert, independent of what its single child carries.
const passValue = "pass"

// OptimizeAST repeatedly applies the collapse rewrites until no node
// changes:
//   - a node whose value is empty or "pass" and has exactly one child is
//     replaced by that child;
//   - with useBooleanReduction, a node with >= 2 children whose values are
//     all byte-equal is likewise replaced by a single child.
//
// A nil root fails with MalformedInput (spec §4.D "Failure modes").
func OptimizeAST(root *Node, useBooleanReduction bool) (*Node, error) {
	if root == nil {
		return nil, nxerrors.NewMalformedInput(errors.New("nil AST root"))
	}
	root.Parent = nil

	current := root
	for {
		rewritten, changed := rewriteOnce(current, useBooleanReduction)
		if !changed {
			rewritten.Parent = nil
			return rewritten, nil
		}
		current = rewritten
	}
}

// rewriteOnce performs a single bottom-up pass, reporting whether any
// node changed. It keeps Parent consistent as it goes: a surviving
// child is reparented onto n, and a node collapsed away hands its own
// Parent down to the child replacing it in n's parent's child list.
func rewriteOnce(n *Node, useBooleanReduction bool) (*Node, bool) {
	if n == nil {
		return nil, false
	}

	changedAny := false
	newChildren := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		rewrittenChild, changed := rewriteOnce(child, useBooleanReduction)
		if changed {
			changedAny = true
		}
		rewrittenChild.Parent = n
		newChildren = append(newChildren, rewrittenChild)
	}
	n.Children = newChildren

	if (n.Value == "" || n.Value == passValue) && len(n.Children) == 1 {
		collapsed := n.Children[0]
		collapsed.Parent = n.Parent
		return collapsed, true
	}

	if useBooleanReduction && len(n.Children) >= 2 && allChildValuesEqual(n.Children) {
		collapsed := n.Children[0]
		collapsed.Parent = n.Parent
		return collapsed, true
	}

	return n, changedAny
}

func allChildValuesEqual(children []*Node) bool {
	first := children[0].Value
	for _, c := range children[1:] {
		if c.Value != first {
			return false
		}
	}
	return true
}
