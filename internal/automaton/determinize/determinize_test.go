package determinize

import (
	"testing"

	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/automaton/safra"
	"ecaverify/internal/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// infinitelyOftenA is the textbook 2-state "a occurs infinitely often"
// NBW used by spec.md §8's worked determinization example.
func infinitelyOftenA() *nbw.NBW {
	edges := []nbw.Edge{
		{From: 0, Symbol: 0, To: 1},
		{From: 0, Symbol: 1, To: 0},
		{From: 1, Symbol: 0, To: 0},
		{From: 1, Symbol: 1, To: 0},
	}
	return nbw.Construct(2, 2, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
}

func TestDeterminizeInfinitelyOftenAYieldsTwoStateDRW(t *testing.T) {
	a := infinitelyOftenA()
	d, _, err := Run(a, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, d.N)
	assert.Equal(t, 0, d.Initial())
	require.Len(t, d.Pairs, 1)
	assert.True(t, d.Pairs[0].Fin.IsEmpty())
	assert.Equal(t, 1, d.Pairs[0].Inf.PopCount())
	assert.False(t, d.IsEmpty())
}

func TestDeterminizeStateLimitExceeded(t *testing.T) {
	a := infinitelyOftenA()
	_, _, err := Run(a, Options{MaxStates: 1})
	assert.ErrorIs(t, err, ErrStateLimitExceeded)
}

func TestDeterminizeEmptyLanguageYieldsEmptyDRW(t *testing.T) {
	edges := []nbw.Edge{{From: 0, Symbol: 0, To: 1}}
	a := nbw.Construct(2, 1, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
	d, _, err := Run(a, Options{})
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestDeterminizeCallsProgressCallbackInDiscoveryOrder(t *testing.T) {
	a := infinitelyOftenA()
	var seen []int
	_, _, err := Run(a, Options{OnStateDiscovered: func(idx int, _ *safra.Tree) {
		seen = append(seen, idx)
	}})
	require.NoError(t, err)
	for i, v := range seen {
		assert.Equal(t, i, v)
	}
}

func TestDeterminizeSaveTreesRetainsContext(t *testing.T) {
	a := infinitelyOftenA()
	d, ctx, err := Run(a, Options{SaveTrees: true})
	require.NoError(t, err)
	assert.Len(t, ctx.Trees, d.N)
}
