package nbw

import (
	"testing"

	"ecaverify/internal/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// infinitelyOftenA builds the textbook 2-state NBW over alphabet {0=a,1=b}
// recognizing "a occurs infinitely often": state 0 loops to itself on b
// and to state 1 (accepting) on a; state 1 loops back to state 0 on
// either symbol.
func infinitelyOftenA() *NBW {
	edges := []Edge{
		{From: 0, Symbol: 0, To: 1},
		{From: 0, Symbol: 1, To: 0},
		{From: 1, Symbol: 0, To: 0},
		{From: 1, Symbol: 1, To: 0},
	}
	return Construct(2, 2, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
}

func TestTransitionUnion(t *testing.T) {
	a := infinitelyOftenA()
	res := a.Transition(bitset.FromSlice(2, []int{0, 1}), 0)
	assert.True(t, res.Equal(bitset.FromSlice(2, []int{0, 1})))
}

func TestAccessibleCoaccessible(t *testing.T) {
	a := infinitelyOftenA()
	assert.True(t, a.Accessible().Equal(bitset.FromSlice(2, []int{0, 1})))
	assert.True(t, a.Coaccessible().Equal(bitset.FromSlice(2, []int{0, 1})))
	assert.False(t, a.IsEmpty())
}

func TestIsEmptyUnreachableAccepting(t *testing.T) {
	// state 1 is accepting but unreachable from the initial state.
	edges := []Edge{{From: 0, Symbol: 0, To: 0}}
	a := Construct(2, 1, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
	assert.True(t, a.IsEmpty())
}

func TestIsEmptyNoInfiniteAcceptingPath(t *testing.T) {
	// accepting state 1 is reachable but has no cycle through it.
	edges := []Edge{{From: 0, Symbol: 0, To: 1}}
	a := Construct(2, 1, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
	assert.True(t, a.IsEmpty())
}

func TestTrimIdempotentAndPreservesNonEmptiness(t *testing.T) {
	a := infinitelyOftenA()
	first := a.Trim()
	second := a.Trim()
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, second)
	assert.True(t, a.Trimmed())
	assert.False(t, a.IsEmpty())
}

func TestIsEmptySingleAcceptingStateWithoutSelfLoop(t *testing.T) {
	// one accepting state, but delta(0,0)=0 is absent, so it has no
	// self-loop and no accepting cycle: the language is empty even
	// though N==1 going in.
	a := Construct(1, 1, nil, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	assert.True(t, a.IsEmpty())
}

func TestIsEmptySingleAcceptingStateWithSelfLoop(t *testing.T) {
	edges := []Edge{{From: 0, Symbol: 0, To: 0}}
	a := Construct(1, 1, edges, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	assert.False(t, a.IsEmpty())
}

func TestTrimCollapsesEmptyLanguage(t *testing.T) {
	edges := []Edge{{From: 0, Symbol: 0, To: 1}, {From: 1, Symbol: 0, To: 1}}
	a := Construct(3, 1, edges, bitset.FromSlice(3, []int{0}), bitset.FromSlice(3, []int{2}))
	removed := a.Trim()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, a.N)
	assert.True(t, a.final.IsEmpty())
}

func TestProjectUniversalOnSingleActiveTrack(t *testing.T) {
	// alphabet is 2 tracks (Sigma=4): track 0 only constrains behavior.
	// state 0 --(bit0=1)--> 1 (accepting self loop on everything),
	// state 0 --(bit0=0)--> dead end (no transition, not accepting).
	edges := []Edge{
		{From: 0, Symbol: 1, To: 1}, // bit0=1,bit1=0
		{From: 0, Symbol: 3, To: 1}, // bit0=1,bit1=1
		{From: 1, Symbol: 0, To: 1},
		{From: 1, Symbol: 1, To: 1},
		{From: 1, Symbol: 2, To: 1},
		{From: 1, Symbol: 3, To: 1},
	}
	a := Construct(2, 4, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
	a.Project(0)
	// now symbol 0 (bit0=0) should also reach state 1.
	res := a.Transition(bitset.FromSlice(2, []int{0}), 0)
	assert.True(t, res.Test(1))
	assert.False(t, a.Trimmed())
}

func TestDisjointSumUnion(t *testing.T) {
	a := infinitelyOftenA()
	edges := []Edge{{From: 0, Symbol: 0, To: 0}, {From: 0, Symbol: 1, To: 0}}
	b := Construct(1, 2, edges, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	sum := DisjointSum(a, b)
	require.Equal(t, a.N+b.N, sum.N)
	assert.False(t, sum.IsEmpty())
}

func TestIntersectAcceptsSharedUniversalLanguage(t *testing.T) {
	// a accepts words where state "A-final" occurs i.o.; b similarly for B.
	// Both automata here accept every word (self-loop accepting state),
	// so their Büchi intersection must also accept every word.
	edges := []Edge{{From: 0, Symbol: 0, To: 0}}
	a := Construct(1, 1, edges, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	b := Construct(1, 1, edges, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	inter := Intersect(a, b)
	assert.False(t, inter.IsEmpty())
}

func TestIntersectEmptyWhenOneSideEmpty(t *testing.T) {
	edges := []Edge{{From: 0, Symbol: 0, To: 0}}
	a := Construct(1, 1, edges, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	emptyB := Empty(1)
	inter := Intersect(a, emptyB)
	assert.True(t, inter.IsEmpty())
}

func TestPreconditionOnAlphabetMismatch(t *testing.T) {
	a := Construct(1, 1, nil, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	b := Construct(1, 2, nil, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	assert.Panics(t, func() { DisjointSum(a, b) })
}

func TestCacheAgreesWithUncached(t *testing.T) {
	a := infinitelyOftenA()
	uncached := a.Transition(bitset.FromSlice(2, []int{0, 1}), 0)
	a.EnableCache(DefaultCacheStateLimit)
	cached := a.Transition(bitset.FromSlice(2, []int{0, 1}), 0)
	assert.True(t, uncached.Equal(cached))
}
