package complement

import (
	"testing"

	"ecaverify/internal/automaton/determinize"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplementOfUniversalIsEmpty(t *testing.T) {
	edges := []nbw.Edge{{From: 0, Symbol: 0, To: 0}}
	a := nbw.Construct(1, 1, edges, bitset.FromSlice(1, []int{0}), bitset.FromSlice(1, []int{0}))
	comp, err := Complement(a, determinize.Options{})
	require.NoError(t, err)
	assert.True(t, comp.IsEmpty())
}

func TestComplementOfEmptyIsUniversal(t *testing.T) {
	a := nbw.Empty(1)
	comp, err := Complement(a, determinize.Options{})
	require.NoError(t, err)
	assert.False(t, comp.IsEmpty())
}

func TestDoubleComplementRoundTripsOnInfinitelyOftenA(t *testing.T) {
	edges := []nbw.Edge{
		{From: 0, Symbol: 0, To: 1},
		{From: 0, Symbol: 1, To: 0},
		{From: 1, Symbol: 0, To: 0},
		{From: 1, Symbol: 1, To: 0},
	}
	a := nbw.Construct(2, 2, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
	once, err := Complement(a, determinize.Options{})
	require.NoError(t, err)
	twice, err := Complement(once, determinize.Options{})
	require.NoError(t, err)
	// L(a) is nonempty, so its double complement must be too.
	assert.False(t, twice.IsEmpty())
}

func TestComplementPropagatesStateLimitError(t *testing.T) {
	edges := []nbw.Edge{
		{From: 0, Symbol: 0, To: 1},
		{From: 0, Symbol: 1, To: 0},
		{From: 1, Symbol: 0, To: 0},
		{From: 1, Symbol: 1, To: 0},
	}
	a := nbw.Construct(2, 2, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
	_, err := Complement(a, determinize.Options{MaxStates: 1})
	assert.Error(t, err)
}
