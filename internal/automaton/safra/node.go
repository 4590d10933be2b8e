package safra

import (
	"ecaverify/internal/bitset"
	"ecaverify/internal/automaton/nbw"
)

// accumulateSubtreeNames collects this node's name and every descendant's
// name into names (width 2*nbwSize, bit = name-1).
func (n *node) accumulateSubtreeNames(names *bitset.Set) {
	names.Set(n.name - 1)
	for _, c := range n.children {
		c.accumulateSubtreeNames(names)
	}
}

// killImmediate frees this node's name (and its descendants', recursively)
// right away, used when an already-materialized subtree is killed by its
// parent getting marked. Unlike the "subtree dies during its own
// transition" path, these names are safe to reuse for the remainder of
// the current transition, so they are not routed through tempNames.
func (n *node) killImmediate(t *Tree) {
	t.freeName(n.name)
	for _, c := range n.children {
		c.killImmediate(t)
	}
}

// cloneSpawnAndTransition implements spec.md §4.2 steps 1-5, verbatim
// from _examples/original_source/SafraTree.cpp's
// SafraNode::clone_spawn_and_transition, adapted to Go's value-and-pointer
// idiom (no node->tree back-pointer; the tree is threaded explicitly).
//
// killSet is the single state-set accumulator threaded by reference
// through the entire depth-first traversal: by the time a node's
// children are visited, it already holds every state claimed by earlier
// siblings (at any level) and by the traversal so far. This is what
// implements the horizontal disjointness and vertical-subset invariants
// of a Safra tree. Mirror its exact order of operations; do not
// "simplify" it without re-deriving the construction from
// SPEC_FULL.md §9 SafraTree ownership notes.
func (old *node) cloneSpawnAndTransition(newTree *Tree, a *nbw.NBW, symbol int, isRoot bool, killSet *bitset.Set, final *bitset.Set) *node {
	ret := &node{name: old.name, label: a.Transition(old.label, symbol)}

	if ret.label.IsSubsetOf(killSet) {
		if isRoot {
			newTree.root = nil
		} else {
			toFree := bitset.New(newTree.tempNames.Len())
			old.accumulateSubtreeNames(toFree)
			newTree.tempNames.Union(toFree)
		}
		return nil
	}

	newChildName := newTree.allocateName()

	ret.label.Difference(killSet)

	for _, oldChild := range old.children {
		if clonedChild := oldChild.cloneSpawnAndTransition(newTree, a, symbol, false, killSet, final); clonedChild != nil {
			ret.children = append(ret.children, clonedChild)
		}
	}

	newChildStates := bitset.And(ret.label, final)
	newChildStates.Difference(killSet)
	killSet.Union(newChildStates)

	switch {
	case ret.label.IsSubsetOf(killSet):
		ret.marked = true
		newTree.markName(ret.name)
		for _, c := range ret.children {
			c.killImmediate(newTree)
		}
		ret.children = nil
		newTree.reserveTempName(newChildName)
	case !newChildStates.IsEmpty():
		newChild := &node{name: newChildName, label: newChildStates, marked: MarkNewChildren}
		if MarkNewChildren {
			newTree.markName(newChildName)
		}
		ret.children = append(ret.children, newChild)
	default:
		newTree.reserveTempName(newChildName)
	}

	killSet.Union(ret.label)

	if isRoot {
		newTree.freeTempNames()
	}
	return ret
}

