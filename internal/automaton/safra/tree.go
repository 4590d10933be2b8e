// Package safra implements Safra trees: the labeled ordered rose trees
// used by determinize to convert an NBW into a DRW.
//
// Grounded on _examples/original_source/SafraTree.{hpp,cpp}, rearchitected:
// no back-pointer from node to tree and no module-level name/id counters.
// Nodes are individually allocated and linked by child pointers; there is
// no node arena. Each tree tracks its live and marked names in bitsets.
package safra

import (
	"hash/maphash"

	"ecaverify/internal/bitset"
	"ecaverify/internal/automaton/nbw"
)

// MarkNewChildren mirrors the MARK_NEW_CHILDREN compile-time setting of
// the original: newly spawned children are marked immediately. This is
// the only supported policy (spec.md §4.2 step 4: "per the
// MARK_NEW_CHILDREN=true policy of this design").
const MarkNewChildren = true

// node is one element of a Safra tree, linked to its children by pointer.
type node struct {
	name     int // 1-based, unique within the owning tree, <= 2*nbwSize
	label    *bitset.Set
	marked   bool
	children []*node
}

// Tree is an ordered rose tree over NBW state sets; see SPEC_FULL.md §3.
// A Tree with root == nil is the "empty tree" / dead state.
type Tree struct {
	nbwSize int
	root    *node

	usedNames   *bitset.Set // width 2*nbwSize; which names are live
	markedNames *bitset.Set // width 2*nbwSize; marked during the last transition
	tempNames   *bitset.Set // width 2*nbwSize; scratch, live only during one transition

	hash uint64

	// Index is set by the determinization worklist once this tree is
	// assigned a DRW-state index; -1 until then. Not part of tree identity.
	Index int
}

// NBWSize returns the size of the NBW this tree was built against.
func (t *Tree) NBWSize() int { return t.nbwSize }

// IsEmpty reports whether this is the dead-state (rootless) tree.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// UsedNames returns a copy of the tree's used-name bitmask (width 2N).
func (t *Tree) UsedNames() *bitset.Set { return t.usedNames.Clone() }

// MarkedNames returns a copy of the names marked by the most recent
// transition that produced this tree (width 2N).
func (t *Tree) MarkedNames() *bitset.Set { return t.markedNames.Clone() }

func newBareTree(nbwSize int) *Tree {
	w := 2 * nbwSize
	return &Tree{
		nbwSize:     nbwSize,
		usedNames:   bitset.New(w),
		markedNames: bitset.New(w),
		tempNames:   bitset.New(w),
		Index:       -1,
	}
}

// BuildInitial constructs the initial Safra tree for a: a root labeled
// with a's initial states. If every initial state is final the root
// itself is marked; if only some are, the root gets one marked child
// holding the initial states that are also final; if none are, the root
// stands alone, unmarked. Marked nodes are recorded in MarkedNames.
func BuildInitial(a *nbw.NBW) *Tree {
	t := newBareTree(a.N)
	initial := a.Initial()
	final := a.Final()

	root := &node{name: t.allocateName(), label: initial}
	t.root = root

	overlap := bitset.And(initial, final)
	switch {
	case overlap.IsEmpty():
		root.marked = false
	case initial.IsSubsetOf(final):
		root.marked = true
		t.markName(root.name)
	default:
		root.marked = false
		child := &node{name: t.allocateName(), label: overlap, marked: true}
		root.children = append(root.children, child)
		t.markName(child.name)
	}

	t.computeHash()
	return t
}

// Transition produces the next Safra tree on symbol a, per spec.md §4.2.
func Transition(old *Tree, automaton *nbw.NBW, symbol int) *Tree {
	if old.IsEmpty() {
		dead := newBareTree(old.nbwSize)
		dead.hash = 0
		return dead
	}

	next := newBareTree(old.nbwSize)
	next.usedNames = old.usedNames.Clone()

	killSet := bitset.New(automaton.N)
	final := automaton.Final()

	next.root = old.root.cloneSpawnAndTransition(next, automaton, symbol, true, killSet, final)
	next.computeHash()
	return next
}

// Equal reports structural equality per spec.md §4.2: same used-names
// mask and structurally identical root subtrees (matching names and
// labels in the same order). The marked flag is intentionally excluded,
// matching the original's SafraNode::operator==.
func Equal(a, b *Tree) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() && b.IsEmpty()
	}
	if a.hash != b.hash {
		return false
	}
	if !a.usedNames.Equal(b.usedNames) {
		return false
	}
	return nodesEqual(a.root, b.root)
}

func nodesEqual(a, b *node) bool {
	if a.name != b.name {
		return false
	}
	if !a.label.Equal(b.label) {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !nodesEqual(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonicalization key: structurally equal trees always
// produce the same key, used by determinize's worklist map. Distinct
// trees may (rarely) collide; Equal is the source of truth.
func (t *Tree) Key() string {
	if t.IsEmpty() {
		return "∅"
	}
	var sb []byte
	sb = appendNodeKey(sb, t.root)
	sb = append(sb, '|')
	sb = append(sb, t.usedNames.Key()...)
	return string(sb)
}

func appendNodeKey(sb []byte, n *node) []byte {
	sb = append(sb, 'n')
	sb = appendInt(sb, n.name)
	sb = append(sb, ':')
	sb = append(sb, n.label.Key()...)
	sb = append(sb, '(')
	for _, c := range n.children {
		sb = appendNodeKey(sb, c)
	}
	sb = append(sb, ')')
	return sb
}

func appendInt(sb []byte, v int) []byte {
	if v == 0 {
		return append(sb, '0')
	}
	var buf [20]byte
	i := len(buf)
	neg := v < 0
	if neg {
		v = -v
	}
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return append(sb, buf[i:]...)
}

var hashSeed = maphash.MakeSeed()

func (t *Tree) computeHash() {
	if t.IsEmpty() {
		t.hash = 0
		return
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteString(t.Key())
	t.hash = h.Sum64()
}

// Hash returns the precomputed structural hash, for use in hash-keyed
// canonicalization sets.
func (t *Tree) Hash() uint64 { return t.hash }

// allocateName returns the lowest unused name (1-based) and marks it
// used.
func (t *Tree) allocateName() int {
	w := t.usedNames.Len()
	for i := 0; i < w; i++ {
		if !t.usedNames.Test(i) {
			t.usedNames.Set(i)
			return i + 1
		}
	}
	// Unreachable if spec.md's name-count invariant (names <= 2N) holds.
	panic("safra: no free node name available")
}

func (t *Tree) freeName(name int) {
	t.usedNames.Clear(name - 1)
	t.markedNames.Clear(name - 1)
}

func (t *Tree) markName(name int) {
	t.markedNames.Set(name - 1)
}

func (t *Tree) reserveTempName(name int) {
	t.tempNames.Set(name - 1)
}

// freeTempNames releases names that were reserved but never consumed by
// a surviving child during this transition.
func (t *Tree) freeTempNames() {
	t.usedNames.Difference(t.tempNames)
	t.tempNames.ClearAll()
}
