package ioformat

import (
	"bytes"
	"testing"

	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infinitelyOftenA() *nbw.NBW {
	edges := []nbw.Edge{
		{From: 0, Symbol: 0, To: 1},
		{From: 0, Symbol: 1, To: 0},
		{From: 1, Symbol: 0, To: 0},
		{From: 1, Symbol: 1, To: 0},
	}
	return nbw.Construct(2, 2, edges, bitset.FromSlice(2, []int{0}), bitset.FromSlice(2, []int{1}))
}

func TestBuechiRoundTrip(t *testing.T) {
	a := infinitelyOftenA()
	var buf bytes.Buffer
	require.NoError(t, WriteBuechi(&buf, a))

	b, err := ParseBuechi(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.N, b.N)
	assert.Equal(t, a.Sigma, b.Sigma)
	assert.True(t, a.Initial().Equal(b.Initial()))
	assert.True(t, a.Final().Equal(b.Final()))
	for s := 0; s < a.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			want := a.Transition(bitset.FromSlice(a.N, []int{s}), sym)
			got := b.Transition(bitset.FromSlice(b.N, []int{s}), sym)
			assert.True(t, want.Equal(got))
		}
	}
}

func TestBuechiRejectsBadHeader(t *testing.T) {
	_, err := ParseBuechi(bytes.NewBufferString("NOTBUECHI\n1\n1\n0\n\n\n"))
	assert.Error(t, err)
}

func TestRabinRoundTrip(t *testing.T) {
	pair := drw.Pair{Fin: bitset.New(2), Inf: bitset.FromSlice(2, []int{1})}
	d := drw.Construct(2, 2, []int{1, 0, 0, 0}, 0, []drw.Pair{pair})

	var buf bytes.Buffer
	require.NoError(t, WriteRabin(&buf, d))

	d2, err := ParseRabin(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.N, d2.N)
	assert.Equal(t, d.Initial(), d2.Initial())
	require.Len(t, d2.Pairs, 1)
	assert.True(t, d2.Pairs[0].Inf.Equal(pair.Inf))
	for s := 0; s < d.N; s++ {
		for sym := 0; sym < d.Sigma; sym++ {
			assert.Equal(t, d.Step(s, sym), d2.Step(s, sym))
		}
	}
}

func TestGAStRoundTrip(t *testing.T) {
	a := infinitelyOftenA()
	a.Alphabet = "ab"

	var buf bytes.Buffer
	require.NoError(t, WriteGASt(&buf, a))

	b, err := ParseGASt(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.N, b.N)
	assert.Equal(t, a.Sigma, b.Sigma)
	for s := 0; s < a.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			want := a.Transition(bitset.FromSlice(a.N, []int{s}), sym)
			got := b.Transition(bitset.FromSlice(b.N, []int{s}), sym)
			assert.True(t, want.Equal(got))
		}
	}
}

func TestGAStRejectsMultipleAcceptingStates(t *testing.T) {
	a := infinitelyOftenA()
	a.Alphabet = "ab"
	two := bitset.FromSlice(2, []int{0, 1})
	a2 := nbw.Construct(2, 2, nil, a.Initial(), two)
	a2.Alphabet = "ab"
	var buf bytes.Buffer
	assert.Error(t, WriteGASt(&buf, a2))
}
